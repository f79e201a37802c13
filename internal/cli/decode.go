package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edgetrace/etdump"
)

// NewDecodeCommand creates the decode command: compiled binary in,
// indented canonical JSON out.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <dump.etdp>",
		Short: "Decompile a binary dump into canonical JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runDecode(opts *RootOptions, input string, cmd *cobra.Command) error {
	variant, err := etdump.ParseVariant(opts.Variant)
	if err != nil {
		return err
	}
	tool, err := opts.transcoder()
	if err != nil {
		return err
	}
	codec, err := etdump.New(variant, tool)
	if err != nil {
		return err
	}

	blob, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	rec, err := codec.Deserialize(cmd.Context(), blob)
	if err != nil {
		return err
	}
	out, err := etdump.EncodeIndent(rec, "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
