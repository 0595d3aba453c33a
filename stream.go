package lexidx

import (
	"bufio"
	"io"
	"log/slog"
)

// ═══════════════════════════════════════════════════════════════════════════════
// THE STREAM CONSUMER
// ═══════════════════════════════════════════════════════════════════════════════
// Consumes the parser's line-oriented word stream and builds the
// in-memory Dictionary and DocSet that writer.go later serializes.
//
// Stream grammar:
//   - the first non-blank line (and the line immediately after every
//     blank line) is a document identifier;
//   - every other non-blank line is a stemmed content word belonging to
//     the current document;
//   - a blank line separates documents and advances doc-index.
//
// Within a document, a term's repeats land on the tail of its posting
// list in O(1) (BumpTailFreq) rather than a full scan, because the
// stream is document-grouped: postings for the current document are
// always appended in the order they're seen, so the tail is always the
// most recent (and only possible) match for the current doc-index.
// ═══════════════════════════════════════════════════════════════════════════════

// progressInterval is how many content words trigger a progress log
// line, matching the source indexer's 1,000,000-word cadence.
const progressInterval = 1_000_000

// BuildIndex reads a word stream from r and returns the populated
// doc-id table and term dictionary.
func BuildIndex(r io.Reader, log *slog.Logger) (*DocSet, *Dictionary, error) {
	docs := NewDocSet()
	dict := NewDictionary(1)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	docIndex := -1
	expectDocID := true
	wordCount := 0

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			expectDocID = true
			continue
		}

		if expectDocID {
			docIndex = docs.Append(line)
			expectDocID = false
			continue
		}

		indexWord(dict, line, docIndex)
		wordCount++
		if log != nil && wordCount%progressInterval == 0 {
			log.Info("indexing progress", slog.Int("words", wordCount), slog.Int("docIndex", docIndex))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return docs, dict, nil
}

// indexWord applies spec's tail-inspection optimization: look up the
// term's posting list, bump the tail freq if it already covers the
// current document, else append a fresh posting.
func indexWord(dict *Dictionary, term string, docIndex int) {
	list, created := dict.InsertOrGet(term)
	if created {
		list.AppendTail(posting{docIndex: docIndex, freq: 1})
		return
	}

	if tail, ok := list.Tail(); ok && tail.docIndex == docIndex {
		list.BumpTailFreq()
		return
	}
	list.AppendTail(posting{docIndex: docIndex, freq: 1})
}
