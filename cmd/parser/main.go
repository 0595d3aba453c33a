// Command lexidx-parser tokenizes a tagged corpus into the word stream
// consumed by lexidx-indexer.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lexarc/lexidx"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("parser failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lexidx-parser <path>",
		Short: "Tokenize a tagged corpus into a word stream",
		Long: `lexidx-parser reads a tagged corpus file and writes a word stream to
standard output: one token per line, a blank line between documents,
and each document's first token its (unstemmed) identifier.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open corpus: %w", err)
			}
			defer f.Close()

			return lexidx.Parse(f, os.Stdout)
		},
	}
}
