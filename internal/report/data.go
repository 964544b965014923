// Package report renders the corpus and its analysis as documentation,
// raw data exports and graph files.
package report

import (
	"strings"
	"time"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/analysis"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/jsonutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/corpus"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/workflow"
)

const timestampLayout = "2006-01-02 15:04:05"

// ActionDoc is the documentation of one action
type ActionDoc struct {
	Identifier string   `json:"identifier"`
	Name       string   `json:"name"`
	Versions   []string `json:"versions"`
	Parameters []string `json:"parameters"`
	// Examples is the indented JSON of the recorded signatures, empty when
	// the action was only ever seen without samples
	Examples string `json:"examples,omitempty"`
}

// TemplateData is what every documentation template receives
type TemplateData struct {
	Timestamp       string           `json:"timestamp"`
	TotalActions    int              `json:"total_actions"`
	TotalVariations int              `json:"total_variations"`
	Actions         []ActionDoc      `json:"actions"`
	Analysis        *analysis.Report `json:"analysis"`
}

// Prepare assembles template data from a snapshot and its analysis
func Prepare(snap *corpus.Snapshot, report *analysis.Report, now time.Time) *TemplateData {
	data := &TemplateData{
		Timestamp:    now.Format(timestampLayout),
		TotalActions: len(snap.KnownActions),
		Actions:      make([]ActionDoc, 0, len(snap.KnownActions)),
		Analysis:     report,
	}

	for _, id := range corpus.NewStringSet(snap.KnownActions...).Sorted() {
		doc := ActionDoc{
			Identifier: id,
			Name:       workflow.MustDisplayName(id),
			Versions:   nonNil(snap.ActionVersions[id]),
			Parameters: nonNil(snap.ParameterTypes[id]),
		}
		if sigs := snap.Signatures(id); len(sigs) > 0 {
			if raw, err := jsonutil.MarshalIndent(sigs); err == nil {
				doc.Examples = strings.TrimRight(string(raw), "\n")
			}
			data.TotalVariations += len(sigs)
		}
		data.Actions = append(data.Actions, doc)
	}
	return data
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
