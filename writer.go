package lexidx

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// THE INDEX WRITER
// ═══════════════════════════════════════════════════════════════════════════════
// Serializes the three core index files plus one accelerator file, all
// derived from a single in-order traversal of the Dictionary:
//
//   doc_id_list.txt    - DocIDRecordSize-byte records, doc-index order
//   dict_and_offset.bin - 64-byte records, ascending term order
//   posting_list.bin   - delta + variable-byte encoded postings, same
//                         term order as the dictionary file
//   bitmap_index.bin   - one length-prefixed roaring bitmap per term,
//                         same term order; a derivable accelerator, not
//                         a source of truth
//
// The writer tracks a running byte offset into the postings file as it
// walks the dictionary; for each term it writes the dictionary record
// first (with the offset the postings are about to start at), then
// appends the encoded posting list and advances the offset.
// ═══════════════════════════════════════════════════════════════════════════════

const (
	DocIDListFileName   = "doc_id_list.txt"
	DictOffsetFileName  = "dict_and_offset.bin"
	PostingListFileName = "posting_list.bin"
	BitmapIndexFileName = "bitmap_index.bin"
	dictRecordSize      = MaxKeySize + 4
)

// WriteIndex serializes docs and dict into dataDir, producing the four
// files described above. dataDir is created if it does not exist.
func WriteIndex(dataDir string, docs *DocSet, dict *Dictionary) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("lexidx: create data dir: %w", err)
	}

	if err := writeDocIDList(filepath.Join(dataDir, DocIDListFileName), docs); err != nil {
		return err
	}
	if err := writeDictAndPostings(
		filepath.Join(dataDir, DictOffsetFileName),
		filepath.Join(dataDir, PostingListFileName),
		filepath.Join(dataDir, BitmapIndexFileName),
		dict,
	); err != nil {
		return err
	}
	return nil
}

func writeDocIDList(path string, docs *DocSet) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("lexidx: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var writeErr error
	docs.Each(func(_ int, id string) {
		if writeErr != nil {
			return
		}
		padded := padDocID(id)
		if _, err := w.Write(padded[:]); err != nil {
			writeErr = err
			return
		}
		// A newline follows every record, including the last, for
		// read/seek symmetry (spec's own recommendation; the
		// searcher's fixed-offset seek+read(14) works either way).
		if err := w.WriteByte('\n'); err != nil {
			writeErr = err
		}
	})
	if writeErr != nil {
		return fmt.Errorf("lexidx: write %s: %w", path, writeErr)
	}
	return w.Flush()
}

func writeDictAndPostings(dictPath, postingsPath, bitmapPath string, dict *Dictionary) error {
	dictFile, err := os.Create(dictPath)
	if err != nil {
		return fmt.Errorf("lexidx: create %s: %w", dictPath, err)
	}
	defer dictFile.Close()

	postingsFile, err := os.Create(postingsPath)
	if err != nil {
		return fmt.Errorf("lexidx: create %s: %w", postingsPath, err)
	}
	defer postingsFile.Close()

	bitmapFile, err := os.Create(bitmapPath)
	if err != nil {
		return fmt.Errorf("lexidx: create %s: %w", bitmapPath, err)
	}
	defer bitmapFile.Close()

	dictW := bufio.NewWriter(dictFile)
	postW := bufio.NewWriter(postingsFile)
	bitmapW := bufio.NewWriter(bitmapFile)

	var offset uint32
	var writeErr error

	dict.Each(func(key [MaxKeySize]byte, list *postingList) {
		if writeErr != nil {
			return
		}
		list.Sort()

		record := make([]byte, 0, dictRecordSize)
		record = append(record, key[:]...)
		record = binary.BigEndian.AppendUint32(record, offset)
		if _, err := dictW.Write(record); err != nil {
			writeErr = fmt.Errorf("lexidx: write dict record: %w", err)
			return
		}

		encoded, bitmap := encodePostingList(list)
		n, err := postW.Write(encoded)
		if err != nil {
			writeErr = fmt.Errorf("lexidx: write postings: %w", err)
			return
		}
		offset += uint32(n)

		bitmapBytes, err := bitmap.ToBytes()
		if err != nil {
			writeErr = fmt.Errorf("lexidx: serialize bitmap: %w", err)
			return
		}
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(bitmapBytes)))
		if _, err := bitmapW.Write(lenBuf[:]); err != nil {
			writeErr = fmt.Errorf("lexidx: write bitmap length: %w", err)
			return
		}
		if _, err := bitmapW.Write(bitmapBytes); err != nil {
			writeErr = fmt.Errorf("lexidx: write bitmap: %w", err)
		}
	})
	if writeErr != nil {
		return writeErr
	}

	if err := dictW.Flush(); err != nil {
		return fmt.Errorf("lexidx: flush %s: %w", dictPath, err)
	}
	if err := postW.Flush(); err != nil {
		return fmt.Errorf("lexidx: flush %s: %w", postingsPath, err)
	}
	if err := bitmapW.Flush(); err != nil {
		return fmt.Errorf("lexidx: flush %s: %w", bitmapPath, err)
	}
	return nil
}

// encodePostingList produces the delta + variable-byte encoded byte
// stream for one term's posting list, plus a roaring bitmap of the
// same list's doc-indexes for the accelerator file. list must already
// be sorted ascending by doc-index.
func encodePostingList(list *postingList) ([]byte, *roaring.Bitmap) {
	var buf []byte
	bitmap := roaring.New()
	prev := 0
	first := true

	list.Each(func(p posting) {
		delta := p.docIndex
		if !first {
			delta = p.docIndex - prev
		}
		first = false
		prev = p.docIndex

		buf = EncodeVarint(buf, uint64(delta))
		buf = EncodeVarint(buf, uint64(p.freq))
		bitmap.Add(uint32(p.docIndex))
	})

	return buf, bitmap
}
