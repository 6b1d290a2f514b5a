// Command aig2sat translates an AIG into an SMT-LIB2 script, to test
// the aig package. Grounded on original_source/aig2sat/main.c,
// including the optional second "write to this file instead of
// stdout" argument.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/aiger/libaig/aig"
	"github.com/spf13/cobra"
)

func run(cmd *cobra.Command, args []string) error {
	store, err := aig.Load(args[0], aig.Options{})
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if len(args) > 1 {
		f, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("creating %s: %w", args[1], err)
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		defer w.Flush()
		out = w
	}

	return store.WriteSMTLIB2(out)
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "aig2sat filename [output-filename]",
		Short:         "Translate an AIG into an SMT-LIB2 script",
		Args:          cobra.RangeArgs(1, 2),
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
