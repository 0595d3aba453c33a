// Command lexidx-indexer consumes a word stream and produces the
// on-disk inverted index lexidx-searcher queries.
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
		slog.Error("indexer failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	cmd := &cobra.Command{
		Use:   "lexidx-indexer <wordstream-file>",
		Short: "Build an on-disk inverted index from a word stream",
		Long: `lexidx-indexer reads the word stream produced by lexidx-parser (a file
path, or "-" for standard input) and writes doc_id_list.txt,
dict_and_offset.bin, posting_list.bin, and bitmap_index.bin into the
data directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			var in *os.File
			if args[0] == "-" {
				in = os.Stdin
			} else {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open word stream: %w", err)
				}
				defer f.Close()
				in = f
			}

			docs, dict, err := lexidx.BuildIndex(in, logger)
			if err != nil {
				return fmt.Errorf("build index: %w", err)
			}

			if err := lexidx.WriteIndex(dataDir, docs, dict); err != nil {
				return fmt.Errorf("write index: %w", err)
			}

			logger.Info("index written",
				slog.String("dataDir", dataDir),
				slog.Int("documents", docs.Len()),
				slog.Int("terms", dict.Len()),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "./data", "directory to write the index files into")
	return cmd
}
