package cmd

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	fs "github.com/reoring/fieldshape"
	"github.com/reoring/fieldshape/openapi"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type openapiOpts struct {
	title   string
	version string
	output  string
}

var exampleForOpenAPICmd = `fieldshape openapi -f schemas.yaml
fieldshape openapi -f schemas.yaml -o json --title "Blog API" User
`

func newOpenAPICmd(a *app) *cobra.Command {
	opt := openapiOpts{}
	c := &cobra.Command{
		Use:     "openapi [SCHEMA...]",
		Short:   "export schemas as an OpenAPI 3.0 document",
		Example: exampleForOpenAPICmd,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opt.output != outputJSON && opt.output != outputYAML {
				return errors.Errorf("unsupported output %q, the possible values are %v", opt.output, []string{outputJSON, outputYAML})
			}
			reg, err := a.registry()
			if err != nil {
				return err
			}
			schemas, err := selectSchemas(reg, args)
			if err != nil {
				return err
			}
			p := openapi.NewPlugin(a.v.GetBool(flagRequiredFromFields))
			p.Resolver = reg.Resolver()
			p.Logger = a.log
			refs := make([]fs.SchemaRef, len(schemas))
			for i, s := range schemas {
				refs[i] = s
			}
			doc, err := p.Document(cmd.Context(), opt.title, opt.version, refs...)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			if opt.output == outputYAML {
				if out, err = toYAML(out); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	c.Flags().StringVar(&opt.title, "title", "fieldshape", "info.title of the document")
	c.Flags().StringVar(&opt.version, "api-version", "1.0.0", "info.version of the document")
	c.Flags().StringVarP(&opt.output, "output", "o", outputYAML, "output format (json or yaml)")
	return c
}

// toYAML re-encodes a JSON document as YAML, keeping key order.
func toYAML(data []byte) ([]byte, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	return yaml.Marshal(&n)
}
