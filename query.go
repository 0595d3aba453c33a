package lexidx

import "sort"

// ═══════════════════════════════════════════════════════════════════════════════
// THE QUERY ENGINE
// ═══════════════════════════════════════════════════════════════════════════════
// Evaluates a conjunctive (AND-only) multi-term query: normalize each
// term, look it up, decode its posting list, intersect all the found
// lists with frequency summation, and rank. A missing term empties the
// whole result immediately — there is no partial-match or OR semantics.
//
// The intersection itself is a two-pointer merge rather than the
// nested-scan comparison a naive implementation would reach for:
// because both operand lists are sorted ascending by doc-index, a
// linear merge produces the identical result in O(|R|+|P|) instead of
// O(|R|·|P|).
// ═══════════════════════════════════════════════════════════════════════════════

// SearchResult is one ranked hit. Score is a float to match the
// grounding source's `float score` field and its `"%s %f\n"` output
// format (original_source/searcher.c), even though it is always an
// integral frequency sum.
type SearchResult struct {
	DocID string
	Score float64
}

// Search evaluates terms as a conjunctive query against r and returns
// ranked results, or an empty slice if any term is absent from the
// dictionary (not an error: a missing term is a normal, empty result).
func Search(r *IndexReader, terms []string) ([]SearchResult, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	locations := make([]termLocation, len(terms))
	for i, term := range terms {
		stemmed := Stem(term)
		loc, err := r.Lookup(stemmed)
		if err != nil {
			if err == ErrTermNotFound {
				return nil, nil
			}
			return nil, err
		}
		locations[i] = loc
	}

	if r.HasBitmapAccelerator() {
		recordIndexes := make([]int64, len(locations))
		for i, loc := range locations {
			recordIndexes[i] = loc.recordIndex
		}
		if r.BitmapIntersectionEmpty(recordIndexes) {
			return nil, nil
		}
	}

	postingLists := make([][]posting, len(terms))
	for i, loc := range locations {
		raw, err := r.ReadPostings(loc.begin, loc.end)
		if err != nil {
			return nil, err
		}
		postingLists[i] = decodePostings(raw)
	}

	result := postingLists[0]
	for i := 1; i < len(postingLists); i++ {
		result = intersectSortedPostings(result, postingLists[i])
		if len(result) == 0 {
			return nil, nil
		}
	}

	results := make([]SearchResult, len(result))
	for i, p := range result {
		docID, err := r.DocID(p.docIndex)
		if err != nil {
			return nil, err
		}
		results[i] = SearchResult{DocID: docID, Score: float64(p.freq)}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results, nil
}

// decodePostings reverses the delta + variable-byte encoding of
// writer.go's encodePostingList back into a slice of postings.
func decodePostings(raw []byte) []posting {
	var out []posting
	off := 0
	prev := 0
	for off < len(raw) {
		var delta, freq uint64
		delta, off = DecodeVarint(raw, off)
		freq, off = DecodeVarint(raw, off)
		docIndex := prev + int(delta)
		prev = docIndex
		out = append(out, posting{docIndex: docIndex, freq: int(freq)})
	}
	return out
}

// intersectSortedPostings merges two posting lists, sorted ascending by
// doc-index, into the set of postings whose doc-index appears in both,
// summing matching freqs. Both inputs must already be sorted.
func intersectSortedPostings(a, b []posting) []posting {
	var out []posting
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].docIndex == b[j].docIndex:
			out = append(out, posting{docIndex: a[i].docIndex, freq: a[i].freq + b[j].freq})
			i++
			j++
		case a[i].docIndex < b[j].docIndex:
			i++
		default:
			j++
		}
	}
	return out
}
