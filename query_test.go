package lexidx

import (
	"strings"
	"testing"
)

func TestIntersectSortedPostings_SumsFreqOnMatch(t *testing.T) {
	a := []posting{{0, 2}, {2, 1}, {5, 4}}
	b := []posting{{0, 1}, {1, 9}, {5, 3}}

	got := intersectSortedPostings(a, b)
	want := []posting{{0, 3}, {5, 7}}

	if len(got) != len(want) {
		t.Fatalf("intersectSortedPostings = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestIntersectSortedPostings_NoOverlap(t *testing.T) {
	a := []posting{{0, 1}, {2, 1}}
	b := []posting{{1, 1}, {3, 1}}

	got := intersectSortedPostings(a, b)
	if len(got) != 0 {
		t.Errorf("intersectSortedPostings with no overlap = %+v, want empty", got)
	}
}

func TestIntersectSortedPostings_EmptyOperand(t *testing.T) {
	if got := intersectSortedPostings(nil, []posting{{0, 1}}); len(got) != 0 {
		t.Errorf("intersect with an empty operand = %+v, want empty", got)
	}
}

func TestSearch_RanksByScoreDescendingStableOnTies(t *testing.T) {
	stream := "a\nfox\n\nb\nfox\nfox\n\nc\nfox\nfox\n"
	docs, dict, err := BuildIndex(strings.NewReader(stream), nil)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	dataDir := t.TempDir()
	if err := WriteIndex(dataDir, docs, dict); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}

	r, err := OpenIndexReader(dataDir)
	if err != nil {
		t.Fatalf("OpenIndexReader: %v", err)
	}
	defer r.Close()

	results, err := Search(r, []string{"fox"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Search(fox) = %+v, want 3 results", results)
	}
	// b and c both score 2 (a tie); a scores 1. Descending score with
	// input-order tie-break means b, then c, then a.
	if results[0].DocID != "b" || results[1].DocID != "c" || results[2].DocID != "a" {
		t.Errorf("ranked order = %+v, want [b c a]", results)
	}
}

