package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edgetrace/etdump"
)

// EncodeOptions holds flags for the encode command.
type EncodeOptions struct {
	*RootOptions
	Output string
}

// NewEncodeCommand creates the encode command: canonical JSON in, compiled
// binary out.
func NewEncodeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EncodeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "encode <dump.json>",
		Short: "Compile a JSON dump into its binary form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default <input>.etdp)")

	return cmd
}

func runEncode(opts *EncodeOptions, input string, cmd *cobra.Command) error {
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

	payload, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	// Going through Decode validates the JSON against the variant's
	// descriptor before the compiler sees it.
	rec, err := etdump.Decode(payload, variant.Descriptor())
	if err != nil {
		return err
	}
	blob, err := codec.Serialize(cmd.Context(), rec)
	if err != nil {
		return err
	}

	output := opts.Output
	if output == "" {
		output = input + ".etdp"
	}
	if err := os.WriteFile(output, blob, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %s)\n", output, len(blob), variant)
	return nil
}
