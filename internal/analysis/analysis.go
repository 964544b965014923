package analysis

import "github.com/deploymenttheory/go-shortcuts-doc/internal/corpus"

// Options tunes the sequence and pattern searches
type Options struct {
	MinSequenceLength int
	MaxSequenceLength int
	MaxPatternLength  int
	MinFrequency      int
	TopSequences      int
}

// DefaultOptions mirrors the configuration defaults
func DefaultOptions() Options {
	return Options{
		MinSequenceLength: 2,
		MaxSequenceLength: 5,
		MaxPatternLength:  5,
		MinFrequency:      2,
		TopSequences:      10,
	}
}

// FlowAnalysis groups the graph-based results
type FlowAnalysis struct {
	MostCommonSequences []SequenceSet `json:"most_common_sequences" yaml:"most_common_sequences"`
	CentralActions      []Score       `json:"central_actions" yaml:"central_actions"`
	IsolatedActions     []string      `json:"isolated_actions" yaml:"isolated_actions"`
}

// Report is every derived statistic, ready for the reporting collaborators
type Report struct {
	ActionFlows         FlowAnalysis              `json:"action_flows" yaml:"action_flows"`
	CommonPatterns      []PatternSet              `json:"common_patterns" yaml:"common_patterns"`
	ParameterUsage      map[string]map[string]int `json:"parameter_usage" yaml:"parameter_usage"`
	VersionDistribution map[string][]string       `json:"version_distribution" yaml:"version_distribution"`
	MenuComplexity      MenuStats                 `json:"menu_complexity" yaml:"menu_complexity"`

	graph *Graph
}

// Graph returns the flow graph the report was computed from
func (r *Report) Graph() *Graph {
	return r.graph
}

// Analyze runs every analysis over snap. It never mutates snap.
func Analyze(snap *corpus.Snapshot, opts Options) *Report {
	g := BuildGraph(snap)
	return &Report{
		ActionFlows: FlowAnalysis{
			MostCommonSequences: CommonSequences(g, SequenceOptions{
				MinLength:    opts.MinSequenceLength,
				MaxLength:    opts.MaxSequenceLength,
				MinFrequency: opts.MinFrequency,
				Limit:        opts.TopSequences,
			}),
			CentralActions:  Centrality(g),
			IsolatedActions: IsolatedActions(g),
		},
		CommonPatterns:      GroupPatterns(snap.GroupMap, opts.MaxPatternLength, opts.MinFrequency),
		ParameterUsage:      ParameterUsage(snap),
		VersionDistribution: VersionDistribution(snap),
		MenuComplexity:      MenuComplexity(snap.MenuStructures),
		graph:               g,
	}
}
