package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/fieldshape/jsonschema"
)

func newJSONSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "jsonschema SCHEMA",
		Short:   "export one schema as a JSON Schema document",
		Example: "fieldshape jsonschema -f schemas.yaml User",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			schemas, err := selectSchemas(reg, args)
			if err != nil {
				return err
			}
			doc, err := jsonschema.FromSummary(reg.Resolver(), schemas[0], a.options())
			if err != nil {
				return err
			}
			b, err := jsonschema.MarshalIndent(doc)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
}
