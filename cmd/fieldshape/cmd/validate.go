package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/reoring/fieldshape/dsl"
	"github.com/reoring/fieldshape/dto"
)

type validateOpts struct {
	partial bool
}

var exampleForValidateCmd = `fieldshape validate -f schemas.yaml User payload.json
cat payload.json | fieldshape validate -f schemas.yaml User -
`

func newValidateCmd(a *app) *cobra.Command {
	opt := validateOpts{}
	c := &cobra.Command{
		Use:     "validate SCHEMA PAYLOAD",
		Short:   "validate a JSON payload against a schema",
		Example: exampleForValidateCmd,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry()
			if err != nil {
				return err
			}
			schemas, err := selectSchemas(reg, args[:1])
			if err != nil {
				return err
			}
			data, err := readPayload(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			d := dto.DTO{Schema: schemas[0]}
			if opt.partial {
				d.Options = append(d.Options, dsl.Partial())
			}
			out, err := d.DecodeBytes(cmd.Context(), data)
			var ve *dto.ValidationException
			if errors.As(err, &ve) {
				table := tablewriter.NewWriter(cmd.OutOrStdout())
				table.SetHeader([]string{"path", "code", "message"})
				table.SetAutoWrapText(false)
				for _, it := range ve.Extra {
					table.Append([]string{it.Path, it.Code, it.Message})
				}
				table.Render()
				return errors.Errorf("%s: %d issue(s)", args[1], len(ve.Extra))
			}
			if err != nil {
				return err
			}
			a.log.WithField("fields", len(out)).Debug("payload loaded")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return err
		},
	}
	c.Flags().BoolVar(&opt.partial, "partial", false, "skip required checks")
	return c
}

func readPayload(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
