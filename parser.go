package lexidx

import (
	"bufio"
	"io"
)

// ═══════════════════════════════════════════════════════════════════════════════
// THE TOKENIZER (PARSER STAGE)
// ═══════════════════════════════════════════════════════════════════════════════
// Scans a byte stream for a tagged corpus (à la the WSJ/TREC markup
// format), emitting one word per line with a blank line between
// documents. This stage sits outside the spec's hard invariants — its
// XML-like tag recognition is a convenience for this particular corpus
// shape, not a contract the indexer or searcher depend on; they only
// ever see the resulting word stream.
//
// Algorithm, byte by byte:
//  1. Accumulate alphanumeric bytes into a word buffer.
//  2. A non-alphanumeric byte ends the current word (if any).
//  3. After a '<', a word ended by '>' is markup and is dropped, not
//     emitted; if that word is exactly "DOC" directly after the '<' (the
//     opening tag <DOC>, not </DOC>), a blank line is emitted (except
//     before the very first document) and the next word is flagged as
//     the document's identifier. A word inside a tag that ends at any
//     other byte (e.g. an attribute name before a space or '=') is
//     emitted like ordinary text, so <DOC> is recognized only without
//     attributes.
//  4. A flagged document-identifier word is emitted unstemmed; every
//     other word is stemmed before being emitted.
// ═══════════════════════════════════════════════════════════════════════════════

// Parse reads a tagged corpus from r and writes the word stream
// described above to w.
func Parse(r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	br := bufio.NewReader(r)

	var word []byte
	inAngle := false
	isDocID := false
	firstDoc := true
	prevByte4 := [4]byte{} // last 4 bytes seen, to detect "<DOC" at a tag's start

	flush := func() error {
		if len(word) == 0 {
			return nil
		}
		if isDocID {
			isDocID = false
			if _, err := out.Write(word); err != nil {
				return err
			}
		} else {
			stemmed := Stem(string(word))
			if _, err := out.WriteString(stemmed); err != nil {
				return err
			}
		}
		word = word[:0]
		return out.WriteByte('\n')
	}

	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if b == '<' {
			inAngle = true
		}

		if !isAlnumByte(b) && !(isDocID && b == '-') {
			if len(word) == 0 {
				prevByte4 = shiftIn(prevByte4, b)
				continue
			}
			if inAngle && b == '>' {
				inAngle = false
				if string(word) == "DOC" && prevByte4[0] == '<' {
					if !firstDoc {
						if err := out.WriteByte('\n'); err != nil {
							return err
						}
					}
					firstDoc = false
					isDocID = true
				}
				word = word[:0]
			} else {
				if err := flush(); err != nil {
					return err
				}
			}
		} else {
			word = append(word, b)
		}

		prevByte4 = shiftIn(prevByte4, b)
	}

	if err := flush(); err != nil {
		return err
	}
	return out.Flush()
}

func shiftIn(window [4]byte, b byte) [4]byte {
	window[0], window[1], window[2], window[3] = window[1], window[2], window[3], b
	return window
}

func isAlnumByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	default:
		return false
	}
}
