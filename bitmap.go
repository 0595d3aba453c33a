package lexidx

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/RoaringBitmap/roaring"
)

// ═══════════════════════════════════════════════════════════════════════════════
// THE BITMAP ACCELERATOR
// ═══════════════════════════════════════════════════════════════════════════════
// bitmap_index.bin holds one roaring bitmap per dictionary term, in the
// same term order as dict_and_offset.bin, each length-prefixed so the
// file can be scanned sequentially at load time. It is derivable
// entirely from posting_list.bin (the bitmap is just the set of
// doc-indexes in a term's posting list) and exists only to let the
// query engine cheaply rule out an empty conjunctive result before
// paying for a full decode of every term's posting list.
// ═══════════════════════════════════════════════════════════════════════════════

// bitmapIndex holds every term's bitmap indexed by its dictionary
// record position, loaded once at reader-open time.
type bitmapIndex struct {
	byRecord []*roaring.Bitmap
}

// loadBitmapIndex reads bitmap_index.bin in full. expectedCount is the
// dictionary's record count; a mismatch means the file is stale or
// corrupt and the caller should treat the accelerator as unavailable.
func loadBitmapIndex(path string, expectedCount int64) (*bitmapIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	bitmaps := make([]*roaring.Bitmap, 0, expectedCount)

	for {
		var lenBuf [4]byte
		_, err := io.ReadFull(r, lenBuf[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("lexidx: read bitmap length: %w", err)
		}
		n := binary.LittleEndian.Uint32(lenBuf[:])

		payload := make([]byte, n)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("lexidx: read bitmap payload: %w", err)
		}

		bm := roaring.New()
		if _, err := bm.FromBuffer(payload); err != nil {
			return nil, fmt.Errorf("lexidx: decode bitmap: %w", err)
		}
		bitmaps = append(bitmaps, bm)
	}

	if int64(len(bitmaps)) != expectedCount {
		return nil, fmt.Errorf("lexidx: bitmap index has %d records, dictionary has %d", len(bitmaps), expectedCount)
	}
	return &bitmapIndex{byRecord: bitmaps}, nil
}

// intersectEmpty reports whether the AND of the bitmaps at the given
// dictionary record positions is definitely empty. It is used only as
// a short-circuit: a false result means "maybe non-empty, proceed with
// the real decode+merge," never "definitely non-empty."
func (b *bitmapIndex) intersectEmpty(recordIndexes []int64) bool {
	if len(recordIndexes) == 0 {
		return false
	}
	acc := b.byRecord[recordIndexes[0]].Clone()
	for _, idx := range recordIndexes[1:] {
		acc.And(b.byRecord[idx])
		if acc.IsEmpty() {
			return true
		}
	}
	return acc.IsEmpty()
}
