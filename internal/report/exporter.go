package report

import (
	"bytes"
	"fmt"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/analysis"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/fsutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/jsonutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/corpus"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/logger"
)

const (
	ExportJSON = "json"
	ExportYAML = "yaml"

	exportBaseName = "shortcuts_data"
)

// ExportData is the raw-data document: recorded signatures, metadata and
// the analysis report
type ExportData struct {
	Actions  map[string][][]string `json:"actions" yaml:"actions"`
	Metadata map[string][]string   `json:"metadata" yaml:"metadata"`
	Analysis *analysis.Report      `json:"analysis" yaml:"analysis"`
}

// NewExportData builds the export document for snap
func NewExportData(snap *corpus.Snapshot, report *analysis.Report) *ExportData {
	return &ExportData{Actions: snap.ActionsDB, Metadata: snap.Metadata, Analysis: report}
}

// Exporter serialises ExportData as JSON or YAML
type Exporter struct {
	outputDir string
	log       *logger.Logger
}

// NewExporter returns an exporter writing into outputDir by default
func NewExporter(outputDir string, log *logger.Logger) *Exporter {
	if log == nil {
		log = logger.Nop()
	}
	return &Exporter{outputDir: outputDir, log: log}
}

// Export writes data in format to output, defaulting to
// <output_dir>/shortcuts_data.<format>. It returns the path written.
func (e *Exporter) Export(format string, data *ExportData, output string) (string, error) {
	content, err := Marshal(format, data)
	if err != nil {
		return "", err
	}

	if output == "" {
		output = filepath.Join(e.outputDir, exportBaseName+"."+format)
	}
	if err := fsutil.WriteFileAtomic(output, content, 0644); err != nil {
		return "", fmt.Errorf("%w: %s: %v", errors.ErrFileWriteError, output, err)
	}

	e.log.Info("Exported data", map[string]interface{}{"format": format, "file": output})
	return output, nil
}

// Marshal encodes data in an export format
func Marshal(format string, data *ExportData) ([]byte, error) {
	switch format {
	case ExportJSON:
		return jsonutil.MarshalIndent(data)
	case ExportYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return nil, fmt.Errorf("%w: yaml: %v", errors.ErrFileWriteError, err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("%w: yaml: %v", errors.ErrFileWriteError, err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: export format %q", errors.ErrUnsupportedFormat, format)
	}
}
