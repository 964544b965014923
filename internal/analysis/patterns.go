package analysis

import (
	"sort"
	"strings"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/workflow"
)

// Pattern is a combination of actions sharing a group id
type Pattern struct {
	Actions   []string `json:"actions" yaml:"actions"`
	Frequency int      `json:"frequency" yaml:"frequency"`
}

// PatternSet holds the frequent patterns of one size
type PatternSet struct {
	Length   int       `json:"length" yaml:"length"`
	Patterns []Pattern `json:"patterns" yaml:"patterns"`
}

// GroupPatterns counts every combination of 2..maxLength actions (kept in
// recorded order) within each group-map entry across all groups, keeping
// those seen at least minFrequency times.
func GroupPatterns(groups map[string][]string, maxLength, minFrequency int) []PatternSet {
	counts := make(map[string]int)
	actions := make(map[string][]string)

	groupIDs := make([]string, 0, len(groups))
	for id := range groups {
		groupIDs = append(groupIDs, id)
	}
	sort.Strings(groupIDs)

	for _, id := range groupIDs {
		members := groups[id]
		limit := maxLength
		if len(members) < limit {
			limit = len(members)
		}
		for size := 2; size <= limit; size++ {
			combinations(members, size, func(combo []string) {
				key := workflow.CanonicalValue(combo)
				if _, ok := actions[key]; !ok {
					actions[key] = append([]string{}, combo...)
				}
				counts[key]++
			})
		}
	}

	bySize := make(map[int][]Pattern)
	for key, freq := range counts {
		if freq < minFrequency {
			continue
		}
		combo := actions[key]
		bySize[len(combo)] = append(bySize[len(combo)], Pattern{Actions: combo, Frequency: freq})
	}

	sets := []PatternSet{}
	for size := 2; size <= maxLength; size++ {
		patterns, ok := bySize[size]
		if !ok {
			continue
		}
		sort.Slice(patterns, func(i, j int) bool {
			if patterns[i].Frequency != patterns[j].Frequency {
				return patterns[i].Frequency > patterns[j].Frequency
			}
			return strings.Join(patterns[i].Actions, "\x00") < strings.Join(patterns[j].Actions, "\x00")
		})
		sets = append(sets, PatternSet{Length: size, Patterns: patterns})
	}
	return sets
}

// combinations calls fn with every size-element combination of items,
// preserving their relative order. fn must not retain the slice.
func combinations(items []string, size int, fn func([]string)) {
	combo := make([]string, size)
	var pick func(start, depth int)
	pick = func(start, depth int) {
		if depth == size {
			fn(combo)
			return
		}
		for i := start; i <= len(items)-(size-depth); i++ {
			combo[depth] = items[i]
			pick(i+1, depth+1)
		}
	}
	pick(0, 0)
}
