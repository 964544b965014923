// Package analysis derives read-only statistics from a corpus snapshot:
// the action flow graph, centrality, common sequences and distributions.
package analysis

import (
	"sort"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/corpus"
)

// Edge is a directed transition between two actions
type Edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// Graph is the deduplicated action flow graph. Every known action is a
// node, including those that never take part in a transition.
type Graph struct {
	Nodes []string
	Edges []Edge

	// successors keeps targets in first-recorded order
	successors map[string][]string
	// multiplicity counts every recorded occurrence of an edge
	multiplicity map[Edge]int
	connected    corpus.StringSet
}

// BuildGraph builds the flow graph of snap
func BuildGraph(snap *corpus.Snapshot) *Graph {
	g := &Graph{
		successors:   make(map[string][]string),
		multiplicity: make(map[Edge]int),
		connected:    corpus.NewStringSet(),
	}

	nodes := corpus.NewStringSet(snap.KnownActions...)
	for from, targets := range snap.ActionRelationships {
		for _, to := range targets {
			g.addEdge(from, to)
			nodes.Add(from)
			nodes.Add(to)
		}
	}

	// Successor order and multiplicity follow the recorded flows
	for from, targets := range snap.ActionFlows {
		ordered := make([]string, 0, len(targets))
		seen := corpus.NewStringSet()
		for _, to := range targets {
			e := Edge{From: from, To: to}
			if _, ok := g.multiplicity[e]; !ok {
				// A flow without a relationship entry still counts as an edge
				g.addEdge(from, to)
				nodes.Add(from)
				nodes.Add(to)
			}
			g.multiplicity[e]++
			if seen.Add(to) {
				ordered = append(ordered, to)
			}
		}
		// Relationship-only targets go after the recorded ones, sorted
		for _, to := range g.successors[from] {
			if seen.Add(to) {
				ordered = append(ordered, to)
			}
		}
		g.successors[from] = ordered
	}

	g.Nodes = nodes.Sorted()
	sort.Slice(g.Edges, func(i, j int) bool {
		if g.Edges[i].From != g.Edges[j].From {
			return g.Edges[i].From < g.Edges[j].From
		}
		return g.Edges[i].To < g.Edges[j].To
	})
	return g
}

func (g *Graph) addEdge(from, to string) {
	e := Edge{From: from, To: to}
	if _, ok := g.multiplicity[e]; ok {
		return
	}
	g.multiplicity[e] = 0
	g.Edges = append(g.Edges, e)
	g.successors[from] = append(g.successors[from], to)
	g.connected.Add(from)
	g.connected.Add(to)
}

// Successors returns the distinct targets of id in first-recorded order
func (g *Graph) Successors(id string) []string {
	return g.successors[id]
}

// Multiplicity returns how many times the edge was recorded. Edges known
// only from the relationship set count once.
func (g *Graph) Multiplicity(from, to string) int {
	n, ok := g.multiplicity[Edge{From: from, To: to}]
	if !ok {
		return 0
	}
	if n == 0 {
		return 1
	}
	return n
}

// Connected returns the nodes with at least one incident edge, sorted
func (g *Graph) Connected() []string {
	return g.connected.Sorted()
}

// IsolatedActions returns known actions without any incident edge
func IsolatedActions(g *Graph) []string {
	isolated := []string{}
	for _, id := range g.Nodes {
		if !g.connected.Has(id) {
			isolated = append(isolated, id)
		}
	}
	return isolated
}
