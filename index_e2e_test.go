package lexidx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildSampleIndex indexes a tiny three-document word stream and
// returns the data directory it was written to.
func buildSampleIndex(t *testing.T) string {
	t.Helper()

	stream := strings.Join([]string{
		"doc1",
		"cat", "dog", "cat",
		"",
		"doc2",
		"dog", "bird",
		"",
		"doc3",
		"cat", "bird", "bird",
	}, "\n")

	docs, dict, err := BuildIndex(strings.NewReader(stream), nil)
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}

	dataDir := t.TempDir()
	if err := WriteIndex(dataDir, docs, dict); err != nil {
		t.Fatalf("WriteIndex: %v", err)
	}
	return dataDir
}

func TestEndToEnd_SingleTermQuery(t *testing.T) {
	dataDir := buildSampleIndex(t)

	r, err := OpenIndexReader(dataDir)
	if err != nil {
		t.Fatalf("OpenIndexReader: %v", err)
	}
	defer r.Close()

	results, err := Search(r, []string{"cat"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search(cat) = %+v, want 2 results", results)
	}
	byDoc := map[string]float64{}
	for _, res := range results {
		byDoc[res.DocID] = res.Score
	}
	if byDoc["doc1"] != 2 {
		t.Errorf("doc1 score for 'cat' = %v, want 2", byDoc["doc1"])
	}
	if byDoc["doc3"] != 1 {
		t.Errorf("doc3 score for 'cat' = %v, want 1", byDoc["doc3"])
	}
}

func TestEndToEnd_ConjunctiveQuery(t *testing.T) {
	dataDir := buildSampleIndex(t)

	r, err := OpenIndexReader(dataDir)
	if err != nil {
		t.Fatalf("OpenIndexReader: %v", err)
	}
	defer r.Close()

	results, err := Search(r, []string{"dog", "cat"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].DocID != "doc1" {
		t.Fatalf("Search(dog cat) = %+v, want a single doc1 hit", results)
	}
	if results[0].Score != 3 {
		t.Errorf("doc1 combined score = %v, want 3 (2+1)", results[0].Score)
	}
}

func TestEndToEnd_MissingTermShortCircuits(t *testing.T) {
	dataDir := buildSampleIndex(t)

	r, err := OpenIndexReader(dataDir)
	if err != nil {
		t.Fatalf("OpenIndexReader: %v", err)
	}
	defer r.Close()

	results, err := Search(r, []string{"cat", "zzzzznotaterm"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search with a missing term = %+v, want empty", results)
	}
}

func TestEndToEnd_BitmapAcceleratorIsTransparent(t *testing.T) {
	dataDir := buildSampleIndex(t)

	withBitmap, err := OpenIndexReader(dataDir)
	if err != nil {
		t.Fatalf("OpenIndexReader: %v", err)
	}
	if !withBitmap.HasBitmapAccelerator() {
		t.Fatal("expected bitmap accelerator to be loaded")
	}
	gotWith, err := Search(withBitmap, []string{"dog", "bird"})
	withBitmap.Close()
	if err != nil {
		t.Fatalf("Search with bitmap: %v", err)
	}

	if err := os.Remove(filepath.Join(dataDir, BitmapIndexFileName)); err != nil {
		t.Fatalf("remove bitmap file: %v", err)
	}

	withoutBitmap, err := OpenIndexReader(dataDir)
	if err != nil {
		t.Fatalf("OpenIndexReader (no bitmap): %v", err)
	}
	defer withoutBitmap.Close()
	if withoutBitmap.HasBitmapAccelerator() {
		t.Fatal("accelerator should be unavailable once the file is removed")
	}
	gotWithout, err := Search(withoutBitmap, []string{"dog", "bird"})
	if err != nil {
		t.Fatalf("Search without bitmap: %v", err)
	}

	if len(gotWith) != len(gotWithout) {
		t.Fatalf("result count differs: with=%d without=%d", len(gotWith), len(gotWithout))
	}
	for i := range gotWith {
		if gotWith[i] != gotWithout[i] {
			t.Errorf("result[%d] differs: with=%+v without=%+v", i, gotWith[i], gotWithout[i])
		}
	}
}

func TestEndToEnd_EmptyQuery(t *testing.T) {
	dataDir := buildSampleIndex(t)

	r, err := OpenIndexReader(dataDir)
	if err != nil {
		t.Fatalf("OpenIndexReader: %v", err)
	}
	defer r.Close()

	results, err := Search(r, nil)
	if err != nil {
		t.Fatalf("Search(nil): %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search(nil) = %+v, want empty", results)
	}
}
