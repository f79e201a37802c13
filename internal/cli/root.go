// Package cli implements the etdump command line tool: encode and decode
// dump files, inspect the embedded schemas, and manage a dump archive. All
// conversion semantics live in the library; commands are thin wrappers.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/edgetrace/etdump/flatc"
)

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	ConfigPath string
	Variant    string
}

// NewRootCommand creates the root command for the etdump CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "etdump",
		Short: "Convert runtime trace dumps between JSON and binary form",
		Long: `etdump converts structured runtime trace dumps between canonical JSON
and the compact binary encoding produced by the flatc schema compiler.

Two schema variants exist: "legacy" (flat profile events) and "current"
(event-based with debug payloads). Pick one with --variant.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to tool config YAML")
	cmd.PersistentFlags().StringVar(&opts.Variant, "variant", "current", "schema variant (legacy|current)")

	cmd.AddCommand(NewEncodeCommand(opts))
	cmd.AddCommand(NewDecodeCommand(opts))
	cmd.AddCommand(NewSchemasCommand(opts))
	cmd.AddCommand(NewArchiveCommand(opts))

	return cmd
}

// transcoder builds the compiler adapter from the loaded config.
func (o *RootOptions) transcoder() (flatc.Transcoder, error) {
	cfg, err := LoadConfig(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	return flatc.NewTool(cfg.Flatc.Bin, cfg.Flatc.Args...), nil
}
