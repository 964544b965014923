// Package tooling is the library entry point: it wires configuration,
// logging, the corpus store, ingestion, analysis and reporting into one
// session value.
package tooling

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/analysis"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/config"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/corpus"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/ingest"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/logger"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/report"
)

// InitOptions contains options for opening a session
type InitOptions struct {
	ConfigFile   string // Path to configuration file
	Debug        bool   // Enable debug logging
	LogFormat    string // Log format: "human" or "json"
	LogFile      string // Path to log file
	DatabaseFile string // Overrides database.file
	SuppressLog  bool   // Suppress all logging
}

// DefaultOptions returns the default initialization options
func DefaultOptions() InitOptions {
	return InitOptions{
		Debug:     false,
		LogFormat: "human",
	}
}

// Stats summarises the corpus
type Stats struct {
	KnownActions    int
	Variations      int
	Transitions     int
	Relationships   int
	UUIDs           int
	Groups          int
	Menus           int
	Versions        int
	MetadataFields  int
	IsolatedActions int
}

// Session is one open corpus plus everything needed to grow and document it
type Session struct {
	Config *config.AppConfig
	Log    *logger.Logger
	Corpus *corpus.Corpus

	store *corpus.Store
	now   func() time.Time
}

// Open loads configuration, builds a logger and opens the corpus
func Open(options InitOptions) (*Session, error) {
	cfg, err := config.Load(options.ConfigFile)
	if err != nil {
		return nil, err
	}
	if options.Debug {
		cfg.Debug = true
	}
	if options.LogFormat != "" {
		cfg.LogFormat = options.LogFormat
	}
	if options.LogFile != "" {
		cfg.LogFile = options.LogFile
	}
	if options.DatabaseFile != "" {
		cfg.Database.File = options.DatabaseFile
	}

	log := logger.Nop()
	if !options.SuppressLog {
		log, err = logger.New(logger.Config{Debug: cfg.Debug, LogFormat: cfg.LogFormat, LogFile: cfg.LogFile})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}
	return NewSession(cfg, log)
}

// NewSession opens the corpus described by cfg. An unreadable snapshot is
// logged and the session starts from an empty corpus.
func NewSession(cfg *config.AppConfig, log *logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.Nop()
	}
	store, err := corpus.NewStore(corpus.StoreConfig{
		File:        cfg.Database.File,
		BackupDir:   cfg.Database.BackupDir,
		BackupCount: cfg.Database.BackupCount,
		Compression: cfg.Database.BackupCompression,
	}, log)
	if err != nil {
		return nil, err
	}

	c, err := store.Load()
	if err != nil {
		if !stderrors.Is(err, errors.ErrStorageRead) {
			return nil, err
		}
		log.Error("Failed to load corpus snapshot, starting empty", err, map[string]interface{}{
			"file": store.Path(),
		})
	}

	log.Debug("Session opened", map[string]interface{}{
		"config_file": cfg.ConfigFile,
		"database":    store.Path(),
		"actions":     c.Size(),
	})
	return &Session{Config: cfg, Log: log, Corpus: c, store: store, now: time.Now}, nil
}

// Ingest processes a workflow file or directory into the corpus
func (s *Session) Ingest(ctx context.Context, path string, recursive bool) (*ingest.Result, error) {
	engine := ingest.New(s.Corpus, ingest.Options{
		Recursive:  recursive || s.Config.Ingest.Recursive,
		Extensions: s.Config.Ingest.Extensions,
	}, s.Log)
	return engine.Ingest(ctx, path)
}

// Analyze computes the graph and statistics view of the current corpus
func (s *Session) Analyze() *analysis.Report {
	return analysis.Analyze(s.Corpus.ToSnapshot(), s.analysisOptions())
}

// Document renders documentation. An empty format renders every configured
// format into the output directory; output is only honoured for one format.
// A nil rep is computed from the current corpus.
func (s *Session) Document(rep *analysis.Report, format, output string) (map[string]string, error) {
	snap := s.Corpus.ToSnapshot()
	if rep == nil {
		rep = analysis.Analyze(snap, s.analysisOptions())
	}
	data := report.Prepare(snap, rep, s.now())
	renderer := report.NewRenderer(report.RendererConfig{
		OutputDir:    s.Config.Output.Dir,
		TemplatesDir: s.Config.Output.TemplatesDir,
		Formats:      s.Config.Output.Formats,
	}, s.Log)

	if format != "" {
		path, err := renderer.Render(format, data, output)
		if err != nil {
			return nil, err
		}
		return map[string]string{format: path}, nil
	}

	written, failed := renderer.RenderAll(data)
	if len(failed) > 0 {
		var errs []error
		for f, err := range failed {
			errs = append(errs, fmt.Errorf("%s: %w", f, err))
		}
		return written, stderrors.Join(errs...)
	}
	return written, nil
}

// Export writes the raw data as json or yaml
func (s *Session) Export(format, output string) (string, error) {
	snap := s.Corpus.ToSnapshot()
	data := report.NewExportData(snap, analysis.Analyze(snap, s.analysisOptions()))
	return report.NewExporter(s.Config.Output.Dir, s.Log).Export(format, data, output)
}

// Visualize writes the flow graph and version distribution files of rep,
// analysing the current corpus when rep is nil
func (s *Session) Visualize(rep *analysis.Report) ([]string, error) {
	if rep == nil {
		rep = s.Analyze()
	}
	return report.NewPlotter(s.Config.Visualization.Dir, s.Log).WriteAll(rep)
}

// Stats counts what the corpus holds
func (s *Session) Stats() Stats {
	snap := s.Corpus.ToSnapshot()
	stats := Stats{
		KnownActions:    len(snap.KnownActions),
		UUIDs:           len(snap.UUIDMap),
		Groups:          len(snap.GroupMap),
		Menus:           len(snap.MenuStructures),
		Versions:        len(analysis.VersionDistribution(snap)),
		MetadataFields:  len(snap.Metadata),
		IsolatedActions: len(analysis.IsolatedActions(analysis.BuildGraph(snap))),
	}
	for _, sigs := range snap.ActionsDB {
		stats.Variations += len(sigs)
	}
	for _, targets := range snap.ActionFlows {
		stats.Transitions += len(targets)
	}
	for _, targets := range snap.ActionRelationships {
		stats.Relationships += len(targets)
	}
	return stats
}

// Save persists the corpus, backing up the previous snapshot
func (s *Session) Save() error {
	return s.store.Save(s.Corpus)
}

// Backups lists snapshot backups, newest first
func (s *Session) Backups() ([]corpus.Backup, error) {
	return s.store.Backups()
}

// Restore replaces the snapshot with a backup and reloads the corpus
func (s *Session) Restore(name string) (*corpus.Backup, error) {
	backup, err := s.store.Restore(name)
	if err != nil {
		return nil, err
	}
	c, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	s.Corpus = c
	return backup, nil
}

// Close flushes the logger
func (s *Session) Close() {
	_ = s.Log.Sync()
}

func (s *Session) analysisOptions() analysis.Options {
	return analysis.Options{
		MinSequenceLength: s.Config.Analysis.MinSequenceLength,
		MaxSequenceLength: s.Config.Analysis.MaxSequenceLength,
		MaxPatternLength:  s.Config.Analysis.MaxPatternLength,
		MinFrequency:      s.Config.Analysis.MinPatternFrequency,
		TopSequences:      s.Config.Analysis.TopSequences,
	}
}
