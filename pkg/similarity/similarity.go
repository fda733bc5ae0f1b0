// Package similarity provides bounded edit-distance scoring for typo recovery.
package similarity

import "strings"

// DefaultMaxDistance bounds the edit-distance computation for typical
// identifier-length inputs.
const DefaultMaxDistance = 5

// shortWordLength is the length at or below which raw edit ratios
// under-reward near misses and boosted floors apply.
const shortWordLength = 5

// Normalize lowercases the input and strips every non-alphanumeric rune, so
// "HTTP Request" and "httpRequest" compare equal.
func Normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// Distance computes the Levenshtein distance between a and b, bounded by
// maxDistance. When the length difference alone exceeds the bound, or the
// running row minimum does, it returns maxDistance+1 without finishing the
// matrix.
func Distance(a, b string, maxDistance int) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return min(len(b), maxDistance+1)
	}

	if len(b) == 0 {
		return min(len(a), maxDistance+1)
	}

	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}

	if diff > maxDistance {
		return maxDistance + 1
	}

	// Two rolling rows instead of a full matrix.
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]

		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}

		// Every entry in this row already exceeds the bound; no later row
		// can come back under it.
		if rowMin > maxDistance {
			return maxDistance + 1
		}

		prev, curr = curr, prev
	}

	if prev[len(b)] > maxDistance {
		return maxDistance + 1
	}

	return prev[len(b)]
}

// Ratio converts an edit distance to a similarity in [0,1] over the
// normalized forms of a and b. Single-edit and transposition near-misses on
// short words get boosted floors.
func Ratio(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)

	if na == nb {
		return 1.0
	}

	maxLen := max(len(na), len(nb))
	if maxLen == 0 {
		return 0.0
	}

	dist := Distance(na, nb, DefaultMaxDistance)
	if dist > DefaultMaxDistance {
		return 0.0
	}

	ratio := 1.0 - float64(dist)/float64(maxLen)

	if maxLen <= shortWordLength {
		switch {
		case dist == 1:
			ratio = max(ratio, 0.75)
		case dist == 2 && isTransposition(na, nb):
			ratio = max(ratio, 0.65)
		}
	}

	return ratio
}

// isTransposition reports whether a and b differ only by one swap of two
// adjacent characters.
func isTransposition(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a)-1; i++ {
		if a[i] != b[i] {
			return a[i] == b[i+1] && a[i+1] == b[i] &&
				a[:i] == b[:i] && a[i+2:] == b[i+2:]
		}
	}

	return false
}
