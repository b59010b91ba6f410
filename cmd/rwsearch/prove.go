package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "prove EQUATION",
		Short:   "Proves a single equation",
		Example: `  rwsearch prove -r peano.hcl "add(s(z), s(z)) = s(s(z))"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProver()
			if err != nil {
				return err
			}
			out, err := p.ProveString(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.Explain())
			return nil
		},
	}
}
