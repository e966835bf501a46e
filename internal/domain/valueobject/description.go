// Package valueobject contains domain value objects for the SpendLens system.
package valueobject

import "strings"

// minOverlapWordLen excludes short filler words from overlap counting.
const minOverlapWordLen = 2

// NormalizeDescription lowercases a free-text label, strips non-alphanumeric
// characters and collapses whitespace. The result is used as a grouping and
// matching key.
func NormalizeDescription(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// WordOverlapRatio computes |common words| / max(|words a|, |words b|) over
// normalized descriptions, counting only words longer than two characters.
// Both inputs must already be normalized.
func WordOverlapRatio(a, b string) float64 {
	wordsA := significantWords(a)
	wordsB := significantWords(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(wordsA))
	for _, w := range wordsA {
		setA[w] = struct{}{}
	}
	common := 0
	seen := make(map[string]struct{}, len(wordsB))
	for _, w := range wordsB {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := setA[w]; ok {
			common++
		}
	}

	max := len(setA)
	if len(seen) > max {
		max = len(seen)
	}
	return float64(common) / float64(max)
}

// SimilarDescriptions reports whether two raw descriptions match: identical
// after normalization, one a substring of the other, or word overlap at or
// above the given threshold.
func SimilarDescriptions(a, b string, overlapThreshold float64) bool {
	na := NormalizeDescription(a)
	nb := NormalizeDescription(b)
	if na == "" || nb == "" {
		return na == nb
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return WordOverlapRatio(na, nb) >= overlapThreshold
}

func significantWords(s string) []string {
	fields := strings.Fields(s)
	words := fields[:0]
	for _, w := range fields {
		if len(w) > minOverlapWordLen {
			words = append(words, w)
		}
	}
	return words
}
