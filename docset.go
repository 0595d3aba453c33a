package lexidx

import "fmt"

// ═══════════════════════════════════════════════════════════════════════════════
// THE DOCUMENT-ID TABLE
// ═══════════════════════════════════════════════════════════════════════════════
// A flat, positionally indexed table of document identifiers, grown by
// tail-append during indexing (one id per document boundary) and
// random-accessed by doc-index during search. On disk it is a sequence
// of DocIDRecordSize-byte fixed-width records so the searcher can seek
// directly to a doc-index without scanning.
// ═══════════════════════════════════════════════════════════════════════════════

// DocIDSize is the fixed width, in bytes, of a stored document
// identifier. Longer identifiers are truncated; shorter ones are
// padded on write.
const DocIDSize = 14

// DocIDRecordSize is the on-disk width of one doc-id record: the
// identifier plus its trailing newline.
const DocIDRecordSize = DocIDSize + 1

// DocSet is an ordered, positionally indexed collection of document
// identifiers. The zero value is ready to use.
type DocSet struct {
	ids []string
}

// NewDocSet creates an empty document-id table.
func NewDocSet() *DocSet {
	return &DocSet{}
}

// Append adds id as the next document, returning its newly assigned
// doc-index.
func (d *DocSet) Append(id string) int {
	d.ids = append(d.ids, id)
	return len(d.ids) - 1
}

// Len reports the number of documents.
func (d *DocSet) Len() int { return len(d.ids) }

// At returns the identifier for a doc-index, or an error if out of
// range.
func (d *DocSet) At(docIndex int) (string, error) {
	if docIndex < 0 || docIndex >= len(d.ids) {
		return "", fmt.Errorf("lexidx: doc-index %d out of range [0,%d)", docIndex, len(d.ids))
	}
	return d.ids[docIndex], nil
}

// Each calls fn with every document id in doc-index order.
func (d *DocSet) Each(fn func(docIndex int, id string)) {
	for i, id := range d.ids {
		fn(i, id)
	}
}

// padDocID pads or truncates id to exactly DocIDSize bytes. Short
// identifiers are padded with spaces (the source's convention for this
// fixed-width record, kept here so the record reads as readable text
// rather than embedding NUL bytes); long ones are truncated.
func padDocID(id string) [DocIDSize]byte {
	var buf [DocIDSize]byte
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf[:], id) // longer ids are truncated; shorter ones keep the space padding above
	return buf
}

// trimDocID strips the space padding padDocID applied.
func trimDocID(buf []byte) string {
	end := len(buf)
	for end > 0 && buf[end-1] == ' ' {
		end--
	}
	return string(buf[:end])
}
