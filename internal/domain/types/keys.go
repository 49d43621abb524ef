// Package types contains common types used across the application
package types

import "strings"

// Separators used by canonical keys. Player ids must not contain them.
const (
	PairSep  = "|"
	MatchSep = "::"
)

// PairKey returns the canonical key of the unordered pair {a, b}.
// ok is false when either id is empty or both are the same.
func PairKey(a, b string) (string, bool) {
	if a == "" || b == "" || a == b {
		return "", false
	}
	if b < a {
		a, b = b, a
	}
	return a + PairSep + b, true
}

// SplitPairKey returns the two sorted player ids of a pair key.
func SplitPairKey(key string) (string, string, bool) {
	a, b, ok := strings.Cut(key, PairSep)
	if !ok || a == "" || b == "" || a == b {
		return "", "", false
	}
	return a, b, true
}

// MatchKey returns the canonical key of two pairs playing each other.
// Each pair is given as its two player ids. ok is false when a pair is
// incomplete or the pairs share a player.
func MatchKey(one, two [2]string) (string, bool) {
	k1, ok := PairKey(one[0], one[1])
	if !ok {
		return "", false
	}
	k2, ok := PairKey(two[0], two[1])
	if !ok {
		return "", false
	}
	for _, a := range one {
		for _, b := range two {
			if a == b {
				return "", false
			}
		}
	}
	return MatchKeyOf(k1, k2), true
}

// MatchKeyOf joins two already canonical pair keys. Callers are expected to
// have checked that the pairs are disjoint.
func MatchKeyOf(k1, k2 string) string {
	if k2 < k1 {
		k1, k2 = k2, k1
	}
	return k1 + MatchSep + k2
}

// SplitMatchKey returns the two pair keys of a match key in sorted order.
func SplitMatchKey(key string) (string, string, bool) {
	k1, k2, ok := strings.Cut(key, MatchSep)
	if !ok {
		return "", "", false
	}
	if _, _, ok := SplitPairKey(k1); !ok {
		return "", "", false
	}
	if _, _, ok := SplitPairKey(k2); !ok {
		return "", "", false
	}
	return k1, k2, true
}
