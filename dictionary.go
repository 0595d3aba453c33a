// Package lexidx implements a three-stage batch inverted-index search
// engine: a parser that tokenizes a corpus into a word stream, an
// indexer that builds an on-disk inverted index from that stream, and
// a searcher that evaluates conjunctive keyword queries against it.
//
// ═══════════════════════════════════════════════════════════════════════════════
// THE ORDERED DICTIONARY
// ═══════════════════════════════════════════════════════════════════════════════
// The dictionary maps a stemmed term to its posting list. It must support
// O(log n) lookup and an in-order traversal that yields terms in ascending
// byte-lexicographic order, because that traversal order is exactly the
// order the on-disk dictionary file is written in (writer.go).
//
// Any balanced ordered container satisfies this contract. This one is a
// skip list: a probabilistic tower-of-pointers structure that gives
// O(log n) expected search without the rebalancing logic a red-black
// tree needs. Keys are fixed 60-byte, zero-padded, byte-compared term
// blocks (MaxKeySize), matching the on-disk dictionary record layout
// exactly so no conversion is needed between the in-memory key and the
// bytes written to dict_and_offset.bin.
// ═══════════════════════════════════════════════════════════════════════════════

package lexidx

import (
	"bytes"
	"math/rand"
)

// MaxKeySize is the width, in bytes, of a zero-padded dictionary key.
// Terms longer than MaxKeySize-1 bytes are truncated at this width; the
// truncated form is what gets indexed and must be searched identically.
const MaxKeySize = 60

// maxTowerHeight bounds how many levels a skip list node's tower can
// have. 32 levels comfortably supports corpora far larger than a single
// process can hold in memory (2^32 terms).
const maxTowerHeight = 32

// termKey is a fixed-width, zero-padded dictionary key. Comparison is
// byte-lexicographic on the padded bytes, which is equivalent to
// NUL-terminated string comparison because the padding is zero.
type termKey [MaxKeySize]byte

// makeTermKey packs a term into a zero-padded fixed-width key, silently
// truncating anything past MaxKeySize-1 bytes.
func makeTermKey(term string) termKey {
	var k termKey
	if len(term) > MaxKeySize-1 {
		term = term[:MaxKeySize-1]
	}
	copy(k[:], term) // remaining bytes stay zero: the array's zero value
	return k
}

func (k termKey) compare(other termKey) int {
	return bytes.Compare(k[:], other[:])
}

// dictNode is a single skip list node: a term key, its posting list, and
// a tower of forward pointers, one per level the node was promoted to.
type dictNode struct {
	key   termKey
	value *postingList
	tower [maxTowerHeight]*dictNode
}

// Dictionary is the in-memory ordered map from stemmed term to posting
// list. The zero value is not usable; construct with NewDictionary.
type Dictionary struct {
	head   *dictNode // sentinel; head.tower[0] is the first real entry
	height int       // current tallest tower in use, always >= 1
	size   int
	rng    *rand.Rand
}

// NewDictionary creates an empty dictionary.
func NewDictionary(seed int64) *Dictionary {
	return &Dictionary{
		head:   &dictNode{},
		height: 1,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Len reports the number of distinct terms in the dictionary.
func (d *Dictionary) Len() int { return d.size }

// search walks the tower from the top level down, returning the node
// whose key exactly matches (nil if absent) and the per-level journey:
// the last node visited at each level before the key would be inserted.
// The journey is exactly what InsertOrGet needs to splice a new node in.
func (d *Dictionary) search(key termKey) (*dictNode, [maxTowerHeight]*dictNode) {
	var journey [maxTowerHeight]*dictNode
	current := d.head

	for level := d.height - 1; level >= 0; level-- {
		for next := current.tower[level]; next != nil && next.key.compare(key) < 0; next = current.tower[level] {
			current = next
		}
		journey[level] = current
	}

	if next := current.tower[0]; next != nil && next.key.compare(key) == 0 {
		return next, journey
	}
	return nil, journey
}

// Lookup finds the posting list for a stemmed term, if any.
func (d *Dictionary) Lookup(term string) (*postingList, bool) {
	node, _ := d.search(makeTermKey(term))
	if node == nil {
		return nil, false
	}
	return node.value, true
}

// InsertOrGet returns the existing posting list for term, or creates an
// empty one and inserts it. The second return value reports whether a
// new entry was created.
func (d *Dictionary) InsertOrGet(term string) (*postingList, bool) {
	key := makeTermKey(term)
	node, journey := d.search(key)
	if node != nil {
		return node.value, false
	}

	height := d.randomHeight()
	node = &dictNode{key: key, value: newPostingList()}

	for level := 0; level < height; level++ {
		pred := journey[level]
		if pred == nil {
			pred = d.head
		}
		node.tower[level] = pred.tower[level]
		pred.tower[level] = node
	}

	if height > d.height {
		d.height = height
	}
	d.size++
	return node.value, true
}

// randomHeight draws a node height from a geometric distribution (the
// classic skip-list "coin flip"): each level beyond the first has half
// the probability of the one below it.
func (d *Dictionary) randomHeight() int {
	height := 1
	for d.rng.Float64() < 0.5 && height < maxTowerHeight {
		height++
	}
	return height
}

// Each performs an in-order traversal, calling fn with every (key,
// posting list) pair in ascending term order. This is the order the
// index writer relies on when it serializes dict_and_offset.bin.
func (d *Dictionary) Each(fn func(key [MaxKeySize]byte, list *postingList)) {
	for node := d.head.tower[0]; node != nil; node = node.tower[0] {
		fn(node.key, node.value)
	}
}
