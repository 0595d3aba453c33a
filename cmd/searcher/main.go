// Command lexidx-searcher evaluates a conjunctive keyword query against
// an on-disk inverted index built by lexidx-indexer.
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
		slog.Error("searcher failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "lexidx-searcher <word> [<word>...]",
		Short: "Evaluate a conjunctive keyword query against an index",
		Long: `lexidx-searcher opens the index files under the data directory and
evaluates the given words as an AND query, printing each ranked result
as "<doc_id> <score>", one per line. An empty result is not an error.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := lexidx.OpenIndexReader(dataDir)
			if err != nil {
				return fmt.Errorf("open index: %w", err)
			}
			defer reader.Close()

			results, err := lexidx.Search(reader, args)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}

			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %f\n", r.DocID, r.Score)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "./data", "directory containing the index files")
	return cmd
}
