// Package cmd implements the fieldshape command line.
package cmd

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	fs "github.com/reoring/fieldshape"
	"github.com/reoring/fieldshape/dsl"
	"github.com/reoring/fieldshape/schemafile"
)

const (
	flagConfig             = "config"
	flagFile               = "file"
	flagDebug              = "debug"
	flagRequiredFromFields = "required-from-fields"
)

var longRootCmdDescription = `fieldshape reads schema declarations from a YAML or JSON file and reports
the structural type of every field. It can export the schemas as JSON Schema
or as OpenAPI 3.0 components and validate payloads against them.

Every flag can also be set through a FIELDSHAPE_* environment variable
(for example FIELDSHAPE_FILE) or through --config.
`

// app carries the per-invocation settings shared by the subcommands.
type app struct {
	v   *viper.Viper
	log *logrus.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:           "fieldshape",
		Short:         "Inspect and export field-based schemas.",
		Long:          longRootCmdDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.String(flagConfig, "", "config file (yaml or json) holding flag defaults")
	flags.StringP(flagFile, "f", "", "schema file to read")
	flags.BoolP(flagDebug, "d", false, "turn on debug logging")
	flags.Bool(flagRequiredFromFields, false, "list only fields declared required in \"required\"")
	rootCmd.DisableAutoGenTag = true

	rootCmd.AddCommand(
		newInspectCmd(a),
		newJSONSchemaCmd(a),
		newOpenAPICmd(a),
		newValidateCmd(a),
	)
	return rootCmd
}

// Execute runs the command line. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.Errorf("fieldshape: %v", err)
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("FIELDSHAPE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if cfg := a.v.GetString(flagConfig); cfg != "" {
		a.v.SetConfigFile(cfg)
		if err := a.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "read config %s", cfg)
		}
	}

	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if a.v.GetBool(flagDebug) {
		a.log.SetLevel(logrus.DebugLevel)
	}
	return nil
}

func (a *app) options() fs.Options {
	return fs.Options{UseDeclaredRequired: a.v.GetBool(flagRequiredFromFields), RemoveExcluded: true}
}

// registry loads the schema file named by --file.
func (a *app) registry() (*schemafile.Registry, error) {
	path := a.v.GetString(flagFile)
	if path == "" {
		return nil, errors.New("no schema file given (use --file or FIELDSHAPE_FILE)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reg, err := schemafile.Load(data)
	if err != nil {
		return nil, err
	}
	a.log.WithField("file", path).Debugf("loaded %d schemas", len(reg.Names()))
	return reg, nil
}

// selectSchemas returns the named schemas, or every schema when names is empty.
func selectSchemas(reg *schemafile.Registry, names []string) ([]*dsl.ObjectSchema, error) {
	if len(names) == 0 {
		names = reg.Names()
	}
	out := make([]*dsl.ObjectSchema, 0, len(names))
	for _, n := range names {
		s, ok := reg.Schema(n)
		if !ok {
			return nil, errors.Errorf("schema %q is not declared", n)
		}
		out = append(out, s)
	}
	return out, nil
}
