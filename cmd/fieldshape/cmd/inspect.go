package cmd

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var exampleForInspectCmd = `fieldshape inspect -f schemas.yaml
fieldshape inspect -f schemas.yaml User Post --required-from-fields
`

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "inspect [SCHEMA...]",
		Short:   "print the resolved type of every field",
		Example: exampleForInspectCmd,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			schemas, err := selectSchemas(reg, args)
			if err != nil {
				return err
			}
			r := reg.Resolver()
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"schema", "field", "type", "required"})
			table.SetAutoWrapText(false)
			for _, s := range schemas {
				sum := r.Introspect(s, a.options())
				for _, f := range sum.Fields {
					table.Append([]string{s.ClassName(), f.Name, f.Type.String(), strconv.FormatBool(sum.IsRequired(f.Name))})
				}
			}
			table.Render()
			return nil
		},
	}
}
