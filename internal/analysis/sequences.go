package analysis

import "sort"

// Sequence is a chain of consecutive actions and how often it occurs
type Sequence struct {
	Actions []string `json:"actions" yaml:"actions"`
	Count   int      `json:"count" yaml:"count"`
}

// SequenceSet holds the ranked sequences of one length
type SequenceSet struct {
	Length    int        `json:"length" yaml:"length"`
	Sequences []Sequence `json:"sequences" yaml:"sequences"`
}

// SequenceOptions bounds the sequence search
type SequenceOptions struct {
	MinLength    int
	MaxLength    int
	MinFrequency int
	// Limit caps the sequences kept per length; zero keeps all
	Limit int
}

// CommonSequences finds simple paths of MinLength..MaxLength actions in the
// flow graph. A path occurs as often as its least recorded edge. Paths are
// ranked by count, ties keep discovery order: sources ascending, then
// successors in recorded order. Branches already below MinFrequency are
// not extended.
func CommonSequences(g *Graph, opts SequenceOptions) []SequenceSet {
	if opts.MinLength < 2 {
		opts.MinLength = 2
	}
	if opts.MaxLength < opts.MinLength {
		opts.MaxLength = opts.MinLength
	}

	byLength := make(map[int][]Sequence)
	var walk func(path []string, onPath map[string]bool, count int)
	walk = func(path []string, onPath map[string]bool, count int) {
		if len(path) >= opts.MinLength {
			byLength[len(path)] = append(byLength[len(path)], Sequence{
				Actions: append([]string{}, path...),
				Count:   count,
			})
		}
		if len(path) == opts.MaxLength {
			return
		}
		last := path[len(path)-1]
		for _, next := range g.Successors(last) {
			if onPath[next] {
				continue
			}
			c := g.Multiplicity(last, next)
			if len(path) > 1 && count < c {
				c = count
			}
			// Counts never grow along a path
			if c < opts.MinFrequency {
				continue
			}
			onPath[next] = true
			walk(append(path, next), onPath, c)
			delete(onPath, next)
		}
	}

	for _, source := range g.Connected() {
		walk([]string{source}, map[string]bool{source: true}, 0)
	}

	sets := make([]SequenceSet, 0, opts.MaxLength-opts.MinLength+1)
	for length := opts.MinLength; length <= opts.MaxLength; length++ {
		var kept []Sequence
		for _, seq := range byLength[length] {
			if seq.Count >= opts.MinFrequency {
				kept = append(kept, seq)
			}
		}
		sort.SliceStable(kept, func(i, j int) bool { return kept[i].Count > kept[j].Count })
		if opts.Limit > 0 && len(kept) > opts.Limit {
			kept = kept[:opts.Limit]
		}
		if kept == nil {
			kept = []Sequence{}
		}
		sets = append(sets, SequenceSet{Length: length, Sequences: kept})
	}
	return sets
}
