package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/analysis"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/fsutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/logger"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/workflow"
)

const (
	flowGraphFile           = "action_flow.dot"
	versionDistributionFile = "version_distribution.csv"
)

// Plotter writes graph and chart source files for external tools:
// Graphviz DOT for the flow graph, CSV for the version distribution.
type Plotter struct {
	dir string
	log *logger.Logger
}

// NewPlotter returns a plotter writing into dir
func NewPlotter(dir string, log *logger.Logger) *Plotter {
	if log == nil {
		log = logger.Nop()
	}
	return &Plotter{dir: dir, log: log}
}

// WriteAll writes every visualisation and returns the paths written
func (p *Plotter) WriteAll(report *analysis.Report) ([]string, error) {
	flow, err := p.WriteFlowGraph(report.Graph(), report.ActionFlows.CentralActions)
	if err != nil {
		return nil, err
	}
	dist, err := p.WriteVersionDistribution(report.VersionDistribution)
	if err != nil {
		return []string{flow}, err
	}
	return []string{flow, dist}, nil
}

// WriteFlowGraph writes g as a Graphviz digraph. Nodes are labelled with
// their display names and, when scored, their centrality.
func (p *Plotter) WriteFlowGraph(g *analysis.Graph, scores []analysis.Score) (string, error) {
	if g == nil {
		return "", fmt.Errorf("%w: no flow graph", errors.ErrInvalidArgument)
	}
	path := filepath.Join(p.dir, flowGraphFile)
	if err := p.write(path, FlowGraphDOT(g, scores)); err != nil {
		return "", err
	}
	p.log.Info("Generated flow graph", map[string]interface{}{"file": path, "nodes": len(g.Nodes), "edges": len(g.Edges)})
	return path, nil
}

// WriteVersionDistribution writes one CSV row per version with its action count
func (p *Plotter) WriteVersionDistribution(distribution map[string][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"version", "actions"})
	for _, v := range analysis.SortedVersions(distribution) {
		_ = w.Write([]string{v, strconv.Itoa(len(distribution[v]))})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrFileWriteError, err)
	}

	path := filepath.Join(p.dir, versionDistributionFile)
	if err := p.write(path, buf.Bytes()); err != nil {
		return "", err
	}
	p.log.Info("Generated version distribution", map[string]interface{}{"file": path, "versions": len(distribution)})
	return path, nil
}

// FlowGraphDOT renders g in the DOT language
func FlowGraphDOT(g *analysis.Graph, scores []analysis.Score) []byte {
	score := make(map[string]float64, len(scores))
	for _, s := range scores {
		score[s.Action] = s.Score
	}

	var b strings.Builder
	b.WriteString("digraph action_flow {\n")
	b.WriteString("  node [shape=box, style=filled, fillcolor=lightblue];\n")
	b.WriteString("  edge [color=gray];\n")
	for _, id := range g.Nodes {
		label := workflow.MustDisplayName(id)
		if s, ok := score[id]; ok {
			label = fmt.Sprintf("%s\\n%.3f", label, s)
		}
		fmt.Fprintf(&b, "  %s [label=%s];\n", strconv.Quote(id), quoteLabel(label))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&b, "  %s -> %s [label=%d];\n", strconv.Quote(e.From), strconv.Quote(e.To), g.Multiplicity(e.From, e.To))
	}
	b.WriteString("}\n")
	return []byte(b.String())
}

// quoteLabel quotes a label keeping the DOT line break escape intact
func quoteLabel(label string) string {
	return `"` + strings.ReplaceAll(label, `"`, `\"`) + `"`
}

func (p *Plotter) write(path string, content []byte) error {
	if err := fsutil.WriteFileAtomic(path, content, 0644); err != nil {
		return fmt.Errorf("%w: %s: %v", errors.ErrFileWriteError, path, err)
	}
	return nil
}
