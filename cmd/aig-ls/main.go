// Command aig-ls prints an AIG's header counts, to test the aig
// package. Grounded on original_source/aig-ls/main.c.
package main

import (
	"fmt"
	"os"

	"github.com/aiger/libaig/aig"
	"github.com/spf13/cobra"
)

func run(cmd *cobra.Command, args []string) error {
	path := args[0]

	store, err := aig.Load(path, aig.Options{})
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "M = %d\n", store.MaxIndex())
	fmt.Fprintf(out, "I = %d\n", store.InputCount())
	fmt.Fprintf(out, "L = %d\n", store.LatchCount())
	fmt.Fprintf(out, "O = %d\n", store.OutputCount())
	fmt.Fprintf(out, "A = %d\n", store.AndCount())
	return nil
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "aig-ls filename",
		Short:         "Print an AIG's header counts",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
