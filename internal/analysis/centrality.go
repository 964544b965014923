package analysis

import (
	"math"
	"sort"
)

const (
	defaultDamping    = 0.85
	defaultTolerance  = 1e-6
	defaultIterations = 100
)

// Score is the centrality of one action
type Score struct {
	Action string  `json:"action" yaml:"action"`
	Score  float64 `json:"score" yaml:"score"`
}

// Centrality ranks the connected actions of g with PageRank. Scores are
// non-negative and sum to 1; the result is sorted by score, then identifier.
func Centrality(g *Graph) []Score {
	nodes := g.Connected()
	n := len(nodes)
	if n == 0 {
		return []Score{}
	}

	index := make(map[string]int, n)
	for i, id := range nodes {
		index[id] = i
	}
	outDegree := make([]int, n)
	incoming := make([][]int, n)
	for _, e := range g.Edges {
		from, to := index[e.From], index[e.To]
		outDegree[from]++
		incoming[to] = append(incoming[to], from)
	}

	rank := make([]float64, n)
	for i := range rank {
		rank[i] = 1 / float64(n)
	}

	next := make([]float64, n)
	for iter := 0; iter < defaultIterations; iter++ {
		dangling := 0.0
		for i, d := range outDegree {
			if d == 0 {
				dangling += rank[i]
			}
		}
		base := (defaultDamping*dangling + (1 - defaultDamping)) / float64(n)

		delta := 0.0
		for i := range next {
			sum := 0.0
			for _, j := range incoming[i] {
				sum += rank[j] / float64(outDegree[j])
			}
			next[i] = base + defaultDamping*sum
			delta += math.Abs(next[i] - rank[i])
		}
		rank, next = next, rank
		if delta < float64(n)*defaultTolerance {
			break
		}
	}

	total := 0.0
	for _, r := range rank {
		total += r
	}
	scores := make([]Score, n)
	for i, id := range nodes {
		scores[i] = Score{Action: id, Score: rank[i] / total}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Action < scores[j].Action
	})
	return scores
}
