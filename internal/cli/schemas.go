package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edgetrace/etdump/schema"
)

// NewSchemasCommand creates the schemas command: list the embedded schema
// resources, or print one by name.
func NewSchemasCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemas [name]",
		Short: "List or print the embedded schema definitions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, name := range schema.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			text, err := schema.Resource(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(text))
			return nil
		},
	}
	return cmd
}
