package lexidx

import "testing"

func TestEncodePostingList_DeltaEncodesAscendingDocIndexes(t *testing.T) {
	l := newPostingList()
	l.AppendTail(posting{docIndex: 3, freq: 2})
	l.AppendTail(posting{docIndex: 7, freq: 1})
	l.AppendTail(posting{docIndex: 8, freq: 5})

	encoded, bitmap := encodePostingList(l)

	decoded := decodePostings(encoded)
	want := []posting{{3, 2}, {7, 1}, {8, 5}}
	if len(decoded) != len(want) {
		t.Fatalf("decodePostings returned %d postings, want %d", len(decoded), len(want))
	}
	for i, p := range want {
		if decoded[i] != p {
			t.Errorf("decoded[%d] = %+v, want %+v", i, decoded[i], p)
		}
	}

	for _, p := range want {
		if !bitmap.Contains(uint32(p.docIndex)) {
			t.Errorf("accelerator bitmap missing doc-index %d", p.docIndex)
		}
	}
	if bitmap.GetCardinality() != uint64(len(want)) {
		t.Errorf("bitmap cardinality = %d, want %d", bitmap.GetCardinality(), len(want))
	}
}

func TestEncodePostingList_SingleEntry(t *testing.T) {
	l := newPostingList()
	l.AppendTail(posting{docIndex: 0, freq: 1})

	encoded, _ := encodePostingList(l)
	decoded := decodePostings(encoded)
	if len(decoded) != 1 || decoded[0] != (posting{0, 1}) {
		t.Errorf("decodePostings = %+v, want [{0 1}]", decoded)
	}
}
