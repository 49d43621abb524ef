package sessionsim

import (
	"fmt"
	"sort"
)

// verifyCandidates checks the filter, the ordering and that no excluded key
// is offered.
func verifyCandidates(cands []Candidate, excluded ...map[string]bool) []string {
	var out []string
	seen := make(map[string]bool, len(cands))
	for i, c := range cands {
		if seen[c.Key] {
			out = append(out, fmt.Sprintf("candidate %s listed twice", c.Key))
		}
		seen[c.Key] = true
		if c.Diff < MinDiff || c.Diff > MaxDiff {
			out = append(out, fmt.Sprintf("candidate %s diff %.2f outside [%.1f, %.1f]", c.Key, c.Diff, MinDiff, MaxDiff))
		}
		if c.Fairness < MinFairness {
			out = append(out, fmt.Sprintf("candidate %s fairness %.3f below %.2f", c.Key, c.Fairness, MinFairness))
		}
		if i > 0 && c.Highlight > cands[i-1].Highlight {
			out = append(out, fmt.Sprintf("candidate %d highlight %d above previous %d", i, c.Highlight, cands[i-1].Highlight))
		}
		for _, set := range excluded {
			if set[c.Key] {
				out = append(out, fmt.Sprintf("excluded key %s recommended", c.Key))
			}
		}
	}
	return out
}

// verifyMatches checks that planned keys are unique and that every expected
// key is planned.
func verifyMatches(matches []Match, expected map[string]bool) []string {
	var out []string
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if seen[m.Key] {
			out = append(out, fmt.Sprintf("match %s planned twice", m.Key))
		}
		seen[m.Key] = true
	}
	missing := make([]string, 0)
	for k := range expected {
		if !seen[k] {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	for _, k := range missing {
		out = append(out, fmt.Sprintf("match %s missing from plan", k))
	}
	return out
}

// verifyPairRanking checks that ranks are dense and scores never increase.
func verifyPairRanking(entries []PairEntry) []string {
	var out []string
	for i, e := range entries {
		if i == 0 {
			if e.Rank != 1 {
				out = append(out, fmt.Sprintf("first pair %s has rank %d", e.Pair.Key, e.Rank))
			}
			continue
		}
		prev := entries[i-1]
		switch {
		case e.Pair.Score > prev.Pair.Score:
			out = append(out, fmt.Sprintf("pair %s scores above %s", e.Pair.Key, prev.Pair.Key))
		case e.Pair.Score == prev.Pair.Score && e.Rank != prev.Rank:
			out = append(out, fmt.Sprintf("tied pairs %s and %s ranked apart", prev.Pair.Key, e.Pair.Key))
		case e.Pair.Score < prev.Pair.Score && e.Rank != prev.Rank+1:
			out = append(out, fmt.Sprintf("pair %s rank %d after %d", e.Pair.Key, e.Rank, prev.Rank))
		}
	}
	return out
}
