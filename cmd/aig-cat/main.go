// Command aig-cat echoes an AIG back out in AIGER-ASCII form, to test
// the aig package. Grounded on original_source/aig-cat/main.c,
// including its node-print ordering (inputs, then latches, then AND
// gates, then outputs) from original_source/libaig/src/node_iter.c.
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
	fmt.Fprintf(out, "aag %d %d %d %d %d\n",
		store.MaxIndex(), store.InputCount(), store.LatchCount(),
		store.OutputCount(), store.AndCount())

	it := store.NewNodeIter()
	for it.HasNext() {
		n, err := it.Next()
		if err != nil {
			return err
		}
		switch n.Kind {
		case aig.NodeInput:
			fmt.Fprintf(out, "%d\n", n.VariableIndex*2)
		case aig.NodeLatch:
			next := n.Next * 2
			if n.NextNegated {
				next++
			}
			fmt.Fprintf(out, "%d %d\n", n.VariableIndex*2, next)
		case aig.NodeAnd:
			rhs0 := n.RHS[0] * 2
			if n.RHSNegated[0] {
				rhs0++
			}
			rhs1 := n.RHS[1] * 2
			if n.RHSNegated[1] {
				rhs1++
			}
			fmt.Fprintf(out, "%d %d %d\n", n.VariableIndex*2, rhs0, rhs1)
		}
	}

	for i := uint64(0); i < store.OutputCount(); i++ {
		n, err := store.GetOutputNoSymbol(i)
		if err != nil {
			return err
		}
		lit := n.TargetVariableIndex * 2
		if n.Negated {
			lit++
		}
		fmt.Fprintf(out, "%d\n", lit)
	}

	return nil
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "aig-cat filename",
		Short:         "Echo an AIG back out in AIGER-ASCII form",
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
