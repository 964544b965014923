package analysis

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/corpus"
)

// flows records each workflow's consecutive pairs the way ingestion does
func flows(c *corpus.Corpus, version string, workflows ...[]string) {
	for _, wf := range workflows {
		for i, id := range wf {
			c.RecordAction(id, map[string]interface{}{}, version)
			if i < len(wf)-1 {
				c.RecordTransition(id, wf[i+1])
			}
		}
	}
}

func TestBuildGraphKeepsIsolatedNodes(t *testing.T) {
	c := corpus.New()
	flows(c, "1", []string{"A", "B"}, []string{"solo"})

	g := BuildGraph(c.ToSnapshot())
	assert.Equal(t, []string{"A", "B", "solo"}, g.Nodes)
	assert.Equal(t, []Edge{{From: "A", To: "B"}}, g.Edges)
	assert.Equal(t, []string{"solo"}, IsolatedActions(g))
}

func TestEndToEndHasNoIsolatedActions(t *testing.T) {
	c := corpus.New()
	flows(c, "100", []string{"A", "B"})
	assert.Empty(t, IsolatedActions(BuildGraph(c.ToSnapshot())))
}

func TestCentralityProperties(t *testing.T) {
	c := corpus.New()
	flows(c, "1",
		[]string{"A", "B", "C"},
		[]string{"A", "C"},
		[]string{"D", "C", "C"},
		[]string{"lonely"},
	)
	g := BuildGraph(c.ToSnapshot())

	scores := Centrality(g)
	require.Len(t, scores, 4)

	total := 0.0
	for _, s := range scores {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.NotEqual(t, "lonely", s.Action)
		total += s.Score
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.Equal(t, "C", scores[0].Action)

	again := Centrality(BuildGraph(c.ToSnapshot()))
	assert.Equal(t, scores, again)
}

func TestCentralityTieBreaksByIdentifier(t *testing.T) {
	c := corpus.New()
	flows(c, "1", []string{"b", "a"}, []string{"a", "b"})

	scores := Centrality(BuildGraph(c.ToSnapshot()))
	require.Len(t, scores, 2)
	assert.InDelta(t, scores[0].Score, scores[1].Score, 1e-12)
	assert.Equal(t, "a", scores[0].Action)
	assert.True(t, math.Abs(scores[0].Score-0.5) < 1e-6)
}

func TestCentralityEmptyGraph(t *testing.T) {
	c := corpus.New()
	flows(c, "1", []string{"x"})
	assert.Empty(t, Centrality(BuildGraph(c.ToSnapshot())))
}

func TestCommonSequences(t *testing.T) {
	c := corpus.New()
	flows(c, "1",
		[]string{"A", "B", "C"},
		[]string{"A", "B", "C"},
		[]string{"A", "B"},
		[]string{"B", "D"},
	)
	g := BuildGraph(c.ToSnapshot())

	sets := CommonSequences(g, SequenceOptions{MinLength: 2, MaxLength: 3, MinFrequency: 1})
	require.Len(t, sets, 2)

	assert.Equal(t, 2, sets[0].Length)
	assert.Equal(t, []Sequence{
		{Actions: []string{"A", "B"}, Count: 3},
		{Actions: []string{"B", "C"}, Count: 2},
		{Actions: []string{"B", "D"}, Count: 1},
	}, sets[0].Sequences)

	assert.Equal(t, 3, sets[1].Length)
	assert.Equal(t, []Sequence{
		{Actions: []string{"A", "B", "C"}, Count: 2},
		{Actions: []string{"A", "B", "D"}, Count: 1},
	}, sets[1].Sequences)

	filtered := CommonSequences(g, SequenceOptions{MinLength: 2, MaxLength: 2, MinFrequency: 2, Limit: 1})
	assert.Equal(t, []Sequence{{Actions: []string{"A", "B"}, Count: 3}}, filtered[0].Sequences)
}

func TestCommonSequencesSkipCycles(t *testing.T) {
	c := corpus.New()
	flows(c, "1", []string{"A", "A", "B", "A"})
	g := BuildGraph(c.ToSnapshot())

	sets := CommonSequences(g, SequenceOptions{MinLength: 3, MaxLength: 3})
	require.Len(t, sets, 1)
	assert.Empty(t, sets[0].Sequences)
}

func TestCommonSequencesDenseGraphBelowFrequency(t *testing.T) {
	c := corpus.New()
	var ids []string
	for i := 0; i < 40; i++ {
		ids = append(ids, fmt.Sprintf("com.example.action%02d", i))
	}
	for _, from := range ids {
		for _, to := range ids {
			if from != to {
				flows(c, "1", []string{from, to})
			}
		}
	}
	// One chain recorded twice still qualifies
	chain := []string{"com.example.action00", "com.example.action01", "com.example.action02"}
	flows(c, "1", chain)
	g := BuildGraph(c.ToSnapshot())

	start := time.Now()
	sets := CommonSequences(g, SequenceOptions{MinLength: 2, MaxLength: 5, MinFrequency: 2})
	assert.Less(t, time.Since(start), 2*time.Second)

	require.Len(t, sets, 4)
	assert.Equal(t, []Sequence{
		{Actions: chain[:2], Count: 2},
		{Actions: chain[1:], Count: 2},
	}, sets[0].Sequences)
	assert.Equal(t, []Sequence{{Actions: chain, Count: 2}}, sets[1].Sequences)
	assert.Empty(t, sets[2].Sequences)
	assert.Empty(t, sets[3].Sequences)
}

func TestGroupPatterns(t *testing.T) {
	groups := map[string][]string{
		"g1": {"menu", "text", "menu"},
		"g2": {"menu", "text"},
		"g3": {"if", "else"},
	}
	sets := GroupPatterns(groups, 3, 2)
	require.Len(t, sets, 1)
	assert.Equal(t, 2, sets[0].Length)
	assert.Equal(t, []Pattern{{Actions: []string{"menu", "text"}, Frequency: 2}}, sets[0].Patterns)

	all := GroupPatterns(groups, 3, 1)
	require.Len(t, all, 2)
	assert.Equal(t, []Pattern{{Actions: []string{"menu", "text", "menu"}, Frequency: 1}}, all[1].Patterns)
}

func TestParameterUsage(t *testing.T) {
	snap := &corpus.Snapshot{ParameterTypes: map[string][]string{
		"a.b.c": {"WFInput: string", "WFInput: mapping", "Count: number"},
	}}
	assert.Equal(t, map[string]map[string]int{"a.b.c": {"WFInput": 2, "Count": 1}}, ParameterUsage(snap))
}

func TestVersionDistribution(t *testing.T) {
	c := corpus.New()
	flows(c, "100", []string{"B", "A"})
	flows(c, "200", []string{"A"})

	dist := VersionDistribution(c.ToSnapshot())
	assert.Equal(t, map[string][]string{"100": {"A", "B"}, "200": {"A"}}, dist)
	assert.Equal(t, []string{"100", "200"}, SortedVersions(dist))
}

func TestMenuComplexity(t *testing.T) {
	menus := map[string]corpus.Menu{
		"outer": {Prompt: "Main", Items: []string{"Settings", "Quit", "Open"}},
		"inner": {Prompt: "Settings", Items: []string{"On"}},
		"plain": {Prompt: "", Items: []string{}},
	}
	stats := MenuComplexity(menus)
	assert.Equal(t, 3, stats.TotalMenus)
	assert.Equal(t, 3, stats.MaxItems)
	assert.InDelta(t, 4.0/3.0, stats.AverageItems, 1e-9)
	assert.Equal(t, 1, stats.NestedMenus)

	assert.Equal(t, MenuStats{}, MenuComplexity(nil))
}

func TestAnalyzeDoesNotMutate(t *testing.T) {
	c := corpus.New()
	flows(c, "1", []string{"A", "B", "C"}, []string{"A", "B"})
	snap := c.ToSnapshot()
	before := c.ToSnapshot()

	report := Analyze(snap, DefaultOptions())
	assert.True(t, before.Equal(snap))
	assert.NotNil(t, report.Graph())
	assert.Equal(t, []Sequence{{Actions: []string{"A", "B"}, Count: 2}}, report.ActionFlows.MostCommonSequences[0].Sequences)
	assert.Empty(t, report.ActionFlows.IsolatedActions)
	assert.Len(t, report.ActionFlows.CentralActions, 3)
}
