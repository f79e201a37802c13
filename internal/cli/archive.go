package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/edgetrace/etdump"
	"github.com/edgetrace/etdump/archive"
)

// ArchiveOptions holds flags for the archive command group.
type ArchiveOptions struct {
	*RootOptions
	DB string
}

// NewArchiveCommand creates the archive command group: store, retrieve, and
// list serialized dumps in a SQLite archive.
func NewArchiveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ArchiveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Manage a SQLite archive of binary dumps",
	}
	cmd.PersistentFlags().StringVar(&opts.DB, "db", "etdump.db", "archive database path")

	cmd.AddCommand(&cobra.Command{
		Use:   "put <name> <dump.etdp>",
		Short: "Store a binary dump under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchivePut(opts, args[0], args[1], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <id> <output>",
		Short: "Write an archived dump to a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveGet(opts, args[0], args[1], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List archived dumps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveList(opts, cmd)
		},
	})

	return cmd
}

func runArchivePut(opts *ArchiveOptions, name, input string, cmd *cobra.Command) error {
	variant, err := etdump.ParseVariant(opts.Variant)
	if err != nil {
		return err
	}
	blob, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	a, err := archive.Open(opts.DB)
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.Put(cmd.Context(), name, variant, blob)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored %s as id %d\n", name, id)
	return nil
}

func runArchiveGet(opts *ArchiveOptions, idArg, output string, cmd *cobra.Command) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", idArg)
	}
	a, err := archive.Open(opts.DB)
	if err != nil {
		return err
	}
	defer a.Close()

	entry, err := a.Get(cmd.Context(), id)
	if err != nil {
		return err
	}
	if err := os.WriteFile(output, entry.Payload, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %s)\n", output, len(entry.Payload), entry.Variant)
	return nil
}

func runArchiveList(opts *ArchiveOptions, cmd *cobra.Command) error {
	a, err := archive.Open(opts.DB)
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.List(cmd.Context())
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\n",
			e.ID, e.Name, e.Variant, e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
