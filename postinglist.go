package lexidx

// ═══════════════════════════════════════════════════════════════════════════════
// THE POSTING LIST
// ═══════════════════════════════════════════════════════════════════════════════
// A posting list is the per-term sequence of (doc-index, freq) pairs,
// ordered ascending by doc-index with no duplicate doc-index values. It
// is a plain singly-linked list with head and tail pointers: tail-append
// is O(1), which the indexer relies on heavily (stream.go appends one
// posting per new (term, document) pair and bumps the tail's freq for
// repeats within a document), and in-order iteration walks it front to
// back for serialization (writer.go).
//
// Because the indexer's input stream is document-grouped (all of one
// document's words arrive consecutively), postings normally arrive in
// already-sorted doc-index order and Sort is a defensive no-op in
// practice. It still has to exist and behave correctly for any input,
// so it is implemented as a proper merge sort rather than assumed away.
// ═══════════════════════════════════════════════════════════════════════════════

// posting is one (doc-index, frequency) pair.
type posting struct {
	docIndex int
	freq     int
}

type postingNode struct {
	value posting
	next  *postingNode
}

// postingList is a singly-linked, tail-append posting list.
type postingList struct {
	head *postingNode
	tail *postingNode
	size int
}

func newPostingList() *postingList {
	return &postingList{}
}

// Len reports the number of postings.
func (l *postingList) Len() int { return l.size }

// Tail returns the last posting and true, or a zero posting and false
// if the list is empty. The indexer uses this to implement the
// same-document tail-frequency-bump optimization in §4.4 without
// walking the whole list.
func (l *postingList) Tail() (posting, bool) {
	if l.tail == nil {
		return posting{}, false
	}
	return l.tail.value, true
}

// BumpTailFreq increments the freq of the last posting in place. Callers
// must only call this when Tail() has already confirmed the tail's
// doc-index matches the document currently being indexed.
func (l *postingList) BumpTailFreq() {
	if l.tail != nil {
		l.tail.value.freq++
	}
}

// AppendTail adds a new posting at the end of the list in O(1).
func (l *postingList) AppendTail(p posting) {
	node := &postingNode{value: p}
	if l.tail == nil {
		l.head = node
		l.tail = node
	} else {
		l.tail.next = node
		l.tail = node
	}
	l.size++
}

// Each calls fn with every posting in order, from head to tail.
func (l *postingList) Each(fn func(posting)) {
	for n := l.head; n != nil; n = n.next {
		fn(n.value)
	}
}

// ToSlice materializes the list as a slice, in order.
func (l *postingList) ToSlice() []posting {
	out := make([]posting, 0, l.size)
	l.Each(func(p posting) { out = append(out, p) })
	return out
}

// postingListFromSlice builds a posting list from an already-ordered
// slice, used by the query engine to hold decoded posting lists without
// going through AppendTail one posting at a time.
func postingListFromSlice(postings []posting) *postingList {
	l := newPostingList()
	for _, p := range postings {
		l.AppendTail(p)
	}
	return l
}

// Sort performs a stable, iterative (non-recursive) bottom-up merge
// sort ascending by doc-index. Defensive: the indexer's document-
// grouped stream already produces sorted lists, but a fresh
// implementation must not assume well-formed input.
//
// ALGORITHM: classic bottom-up merge sort for linked lists. Repeatedly
// merge adjacent runs of length `width`, doubling `width` each pass
// (1, 2, 4, 8, ...). Recursion depth would be O(log n) with a top-down
// split; this avoids recursion altogether by working run-by-run over
// the list with an explicit loop, so the only O(log n) quantity is the
// number of passes, not call-stack depth.
func (l *postingList) Sort() {
	if l.head == nil || l.head.next == nil {
		return
	}

	for width := 1; ; width *= 2 {
		dummy := &postingNode{}
		tail := dummy
		current := l.head
		merges := 0

		for current != nil {
			merges++
			left := current
			right := splitAfter(left, width)
			current = splitAfter(right, width)

			tail = mergeRuns(tail, left, right)
		}

		l.head = dummy.next
		if merges <= 1 {
			break
		}
	}

	// Recompute the tail pointer and size after relinking.
	current := l.head
	size := 0
	var last *postingNode
	for current != nil {
		last = current
		size++
		current = current.next
	}
	l.tail = last
	l.size = size
}

// splitAfter walks `width` nodes forward from n, cuts the list there,
// and returns the remainder (nil if the list ended first).
func splitAfter(n *postingNode, width int) *postingNode {
	for i := 1; i < width && n != nil; i++ {
		n = n.next
	}
	if n == nil {
		return nil
	}
	rest := n.next
	n.next = nil
	return rest
}

// mergeRuns merges two already-sorted runs (a, b) of bounded length,
// appending the merged result after `tail`, and returns the new tail.
func mergeRuns(tail, a, b *postingNode) *postingNode {
	for a != nil && b != nil {
		if a.value.docIndex <= b.value.docIndex {
			tail.next = a
			a = a.next
		} else {
			tail.next = b
			b = b.next
		}
		tail = tail.next
	}
	if a != nil {
		tail.next = a
	} else {
		tail.next = b
	}
	for tail.next != nil {
		tail = tail.next
	}
	return tail
}
