package lexidx

// ═══════════════════════════════════════════════════════════════════════════════
// THE STEMMER
// ═══════════════════════════════════════════════════════════════════════════════
// Normalization is a hard invariant shared between the indexer and the
// searcher: both must reduce a raw token to the same stemmed term, or
// dictionary lookups silently diverge between index time and query
// time. The procedure is deliberately non-linguistic — ASCII lowercase
// followed by removing at most one suffix from a fixed, ordered table —
// not the teacher's Snowball/Porter2 stemmer. A real linguistic
// stemmer would disagree with this table on plenty of words (e.g. it
// would not strip "ness" ahead of "s"), and that disagreement is exactly
// what the invariant forbids.
// ═══════════════════════════════════════════════════════════════════════════════

// suffixes is the ordered suffix-removal table. Longest entries come
// first so that, e.g., "able" is tried before a shorter suffix that
// happens to also match the tail of the same word. The first suffix
// whose removal leaves a stem of at least minStemLen bytes wins; no
// further suffixes are tried.
var suffixes = []string{
	"able", "ible", "ness", "ment", "ions", "ings",
	"ies", "ion", "ing", "ate", "ize", "ise", "ant", "ent", "ful", "ous", "ive",
	"es", "er", "or", "al", "ic", "ly", "ed", "en", "fy",
	"'s", "s",
}

// minStemLen is the shortest a word may be left after suffix removal.
const minStemLen = 3

// Stem lowercases word (ASCII only, per spec's "no Unicode
// normalization beyond ASCII case folding" Non-goal) and removes at
// most one trailing suffix from the ordered table.
func Stem(word string) string {
	buf := []byte(word)
	lowerASCII(buf)
	return stripSuffix(string(buf))
}

// lowerASCII lowercases in place, touching only bytes in 'A'-'Z'. Bytes
// at or above 0x80 are left untouched: the spec's case folding is
// strictly ASCII, not Unicode-aware.
func lowerASCII(buf []byte) {
	for i, b := range buf {
		if b >= 'A' && b <= 'Z' {
			buf[i] = b + ('a' - 'A')
		}
	}
}

func stripSuffix(word string) string {
	for _, suf := range suffixes {
		if len(word) <= len(suf) {
			continue
		}
		if hasSuffix(word, suf) {
			stem := word[:len(word)-len(suf)]
			if len(stem) >= minStemLen {
				return stem
			}
		}
	}
	return word
}

func hasSuffix(word, suf string) bool {
	n := len(word)
	m := len(suf)
	if n < m {
		return false
	}
	return word[n-m:] == suf
}
