package lexidx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ═══════════════════════════════════════════════════════════════════════════════
// THE INDEX READER
// ═══════════════════════════════════════════════════════════════════════════════
// Opens the on-disk index files and resolves a term to its postings
// byte range via binary search, without loading the dictionary into
// memory. The dictionary, postings and doc-id files are all accessed by
// positioned reads: one 64-byte dictionary record, one postings byte
// range, or one 14-byte doc-id record at a time. Only the optional
// bitmap accelerator file is loaded in full, once, at open time.
// ═══════════════════════════════════════════════════════════════════════════════

// ErrTermNotFound is returned by Lookup when a term has no dictionary
// entry.
var ErrTermNotFound = errors.New("lexidx: term not found")

// IndexReader holds open handles to an on-disk index and resolves
// queries against it without materializing the dictionary in memory.
type IndexReader struct {
	dictFile     *os.File
	postingsFile *os.File
	docIDFile    *os.File
	recordCount  int64
	postingsLen  int64
	bitmaps      *bitmapIndex // nil if bitmap_index.bin is absent or stale
}

// OpenIndexReader opens the three core index files (and, if present
// and not stale, the bitmap accelerator file) under dataDir.
func OpenIndexReader(dataDir string) (*IndexReader, error) {
	dictFile, err := os.Open(filepath.Join(dataDir, DictOffsetFileName))
	if err != nil {
		return nil, fmt.Errorf("lexidx: open dictionary file: %w", err)
	}
	info, err := dictFile.Stat()
	if err != nil {
		dictFile.Close()
		return nil, fmt.Errorf("lexidx: stat dictionary file: %w", err)
	}
	if info.Size()%dictRecordSize != 0 {
		dictFile.Close()
		return nil, fmt.Errorf("lexidx: dictionary file size %d is not a multiple of record size %d", info.Size(), dictRecordSize)
	}

	postingsFile, err := os.Open(filepath.Join(dataDir, PostingListFileName))
	if err != nil {
		dictFile.Close()
		return nil, fmt.Errorf("lexidx: open postings file: %w", err)
	}
	postingsInfo, err := postingsFile.Stat()
	if err != nil {
		dictFile.Close()
		postingsFile.Close()
		return nil, fmt.Errorf("lexidx: stat postings file: %w", err)
	}

	docIDFile, err := os.Open(filepath.Join(dataDir, DocIDListFileName))
	if err != nil {
		dictFile.Close()
		postingsFile.Close()
		return nil, fmt.Errorf("lexidx: open doc-id file: %w", err)
	}

	r := &IndexReader{
		dictFile:     dictFile,
		postingsFile: postingsFile,
		docIDFile:    docIDFile,
		recordCount:  info.Size() / dictRecordSize,
		postingsLen:  postingsInfo.Size(),
	}

	bitmapPath := filepath.Join(dataDir, BitmapIndexFileName)
	if bitmapInfo, err := os.Stat(bitmapPath); err == nil && !bitmapInfo.ModTime().Before(info.ModTime()) {
		bm, err := loadBitmapIndex(bitmapPath, r.recordCount)
		if err == nil {
			r.bitmaps = bm
		}
		// A malformed or unreadable bitmap file is not fatal: the
		// accelerator is strictly optional, so the reader simply
		// falls back to full decode-and-intersect.
	}

	return r, nil
}

// Close releases the reader's open file handles.
func (r *IndexReader) Close() error {
	var firstErr error
	for _, f := range []*os.File{r.dictFile, r.postingsFile, r.docIDFile} {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// dictRecord is one decoded dictionary entry.
type dictRecord struct {
	key    termKey
	offset uint32
}

// readRecord reads the i-th fixed-width dictionary record (0-based).
func (r *IndexReader) readRecord(i int64) (dictRecord, error) {
	buf := make([]byte, dictRecordSize)
	if _, err := r.dictFile.ReadAt(buf, i*dictRecordSize); err != nil {
		return dictRecord{}, fmt.Errorf("lexidx: read dictionary record %d: %w", i, err)
	}
	var rec dictRecord
	copy(rec.key[:], buf[:MaxKeySize])
	rec.offset = binary.BigEndian.Uint32(buf[MaxKeySize:])
	return rec, nil
}

// termLocation is a resolved dictionary hit: the postings byte range
// and the dictionary record position (needed to find the matching
// bitmap in bitmap_index.bin, which is written in the same order).
type termLocation struct {
	begin, end  int64
	recordIndex int64
}

// Lookup binary-searches the dictionary file for term and returns its
// postings byte range [begin, end) within posting_list.bin.
func (r *IndexReader) Lookup(term string) (termLocation, error) {
	key := makeTermKey(term)

	lo, hi := int64(0), r.recordCount-1
	var found *dictRecord
	var foundIdx int64 = -1

	for lo <= hi {
		mid := lo + (hi-lo)/2
		rec, err := r.readRecord(mid)
		if err != nil {
			return termLocation{}, err
		}
		switch cmp := rec.key.compare(key); {
		case cmp == 0:
			found = &rec
			foundIdx = mid
			lo = hi + 1 // terminate loop
		case cmp < 0:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}

	if found == nil {
		return termLocation{}, ErrTermNotFound
	}

	begin := int64(found.offset)
	var end int64
	if foundIdx+1 < r.recordCount {
		next, err := r.readRecord(foundIdx + 1)
		if err != nil {
			return termLocation{}, err
		}
		end = int64(next.offset)
	} else {
		end = r.postingsLen
	}
	return termLocation{begin: begin, end: end, recordIndex: foundIdx}, nil
}

// HasBitmapAccelerator reports whether a usable bitmap_index.bin was
// loaded at open time.
func (r *IndexReader) HasBitmapAccelerator() bool {
	return r.bitmaps != nil
}

// BitmapIntersectionEmpty reports whether the AND of the bitmaps at the
// given dictionary record positions is definitely empty. Callers must
// only invoke this when HasBitmapAccelerator is true.
func (r *IndexReader) BitmapIntersectionEmpty(recordIndexes []int64) bool {
	return r.bitmaps.intersectEmpty(recordIndexes)
}

// ReadPostings reads the raw byte range [begin, end) from the postings
// file.
func (r *IndexReader) ReadPostings(begin, end int64) ([]byte, error) {
	buf := make([]byte, end-begin)
	if _, err := r.postingsFile.ReadAt(buf, begin); err != nil {
		return nil, fmt.Errorf("lexidx: read postings range [%d,%d): %w", begin, end, err)
	}
	return buf, nil
}

// DocID resolves a doc-index to its stored document identifier by
// seeking directly to its fixed-width record.
func (r *IndexReader) DocID(docIndex int) (string, error) {
	buf := make([]byte, DocIDSize)
	off := int64(docIndex) * DocIDRecordSize
	if _, err := r.docIDFile.ReadAt(buf, off); err != nil {
		return "", fmt.Errorf("lexidx: read doc-id record %d: %w", docIndex, err)
	}
	return trimDocID(buf), nil
}
