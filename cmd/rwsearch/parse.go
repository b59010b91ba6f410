package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/parser"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "Parses an equations file and prints it back",
		Args:  cobra.ExactArgs(1),
		// Parsing needs neither rules nor logging.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		PersistentPostRun: func(cmd *cobra.Command, args []string) {},
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := os.ReadFile(args[0])
			if err != nil {
				return errors.New("failed to read %s: %v", args[0], err)
			}
			eqs, err := parser.ParseEquations(string(bs))
			if err != nil {
				return errors.New("%s: %v", args[0], err)
			}
			for _, eq := range eqs {
				fmt.Fprintf(cmd.OutOrStdout(), "%v.\n", eq)
			}
			return nil
		},
	}
}
