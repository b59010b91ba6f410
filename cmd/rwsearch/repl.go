package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/brunokim/rewrite-search/errors"
	"github.com/brunokim/rewrite-search/prover"
)

var historyFile string

func newREPLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Proves equations interactively",
		Long: `Reads equations terminated by '.', possibly spanning many lines, and prints
their proofs.

Commands:
  :rules   lists the loaded rules
  :quit    exits`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	cmd.Flags().StringVar(&historyFile, "history", filepath.Join(os.TempDir(), "rwsearch-history"), "History file")
	return cmd
}

func runREPL(cmd *cobra.Command, args []string) error {
	p, err := newProver()
	if err != nil {
		return err
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 "?- ",
		HistoryFile:            historyFile,
		DisableAutoSaveHistory: true,
		Stdout:                 cmd.OutOrStdout(),
	})
	if err != nil {
		return errors.New("failed to start readline: %v", err)
	}
	defer rl.Close()
	r := repl{prover: p, readline: rl, out: cmd.OutOrStdout()}
	return r.loop(cmd)
}

type repl struct {
	prover   *prover.Prover
	readline *readline.Instance
	out      io.Writer
}

func (r repl) loop(cmd *cobra.Command) error {
	for {
		input, isClose := r.readInput()
		if isClose {
			return nil
		}
		switch input {
		case ":quit", ":q":
			return nil
		case ":rules":
			for _, rule := range r.prover.Catalogue().Rules() {
				fmt.Fprintln(r.out, rule)
			}
			continue
		}
		out, err := r.prover.ProveString(cmd.Context(), input)
		if err != nil {
			fmt.Fprintln(r.out, err)
			fmt.Fprintln(r.out, "false.")
			continue
		}
		fmt.Fprintln(r.out, out.Explain())
		fmt.Fprintln(r.out, "true.")
	}
}

// readInput reads lines until one ends with '.', or a command starting with ':'.
func (r repl) readInput() (string, bool) {
	r.readline.SetPrompt("?- ")
	var lines []string
	for {
		line, err := r.readline.Readline()
		if err != nil {
			return "", true
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if len(lines) == 0 && strings.HasPrefix(line, ":") {
			return line, false
		}
		lines = append(lines, line)
		if !strings.HasSuffix(line, ".") {
			r.readline.SetPrompt("|  ")
			continue
		}
		break
	}
	input := strings.Join(lines, " ")
	r.readline.SaveHistory(input)
	return input, false
}
