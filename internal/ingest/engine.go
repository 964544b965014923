// Package ingest drives the workflow parser over files and folds each
// parsed workflow into a corpus.
package ingest

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/fsutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/jsonutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/plistutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/corpus"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/logger"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/workflow"
)

// DefaultExtensions are the file types picked up from directories
var DefaultExtensions = []string{".json", ".plist", ".shortcut"}

// Options controls directory scanning
type Options struct {
	Recursive  bool
	Extensions []string
}

// FileError is a per-file failure that did not stop the run
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Result summarises one Ingest call
type Result struct {
	RunID          string
	ProcessedFiles []string
	NewActions     []string
	Errors         []FileError
}

// Engine folds workflow files into a corpus
type Engine struct {
	corpus  *corpus.Corpus
	options Options
	log     *logger.Logger
}

// New returns an engine writing into c
func New(c *corpus.Corpus, options Options, log *logger.Logger) *Engine {
	if len(options.Extensions) == 0 {
		options.Extensions = DefaultExtensions
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{corpus: c, options: options, log: log}
}

// Ingest processes path, a single workflow file or a directory of them.
// Only a missing root or a cancelled context return an error; files that
// fail to decode or parse are reported in Result.Errors.
func (e *Engine) Ingest(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrPathNotAccessible, path, err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = fsutil.FindFilesByExt(path, e.options.Extensions, e.options.Recursive)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errors.ErrPathNotAccessible, path, err)
		}
	}

	result := &Result{
		RunID:          uuid.NewString(),
		ProcessedFiles: []string{},
		NewActions:     []string{},
	}
	log := e.log.WithFields(map[string]interface{}{"run_id": result.RunID})
	log.Info("Starting ingestion", map[string]interface{}{"path": path, "files": len(files)})

	discovered := corpus.NewStringSet()
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		newIDs, err := e.ingestFile(file)
		if err != nil {
			log.Warn("Skipping workflow file", map[string]interface{}{"file": file, "error": err.Error()})
			result.Errors = append(result.Errors, FileError{Path: file, Err: err})
			continue
		}
		result.ProcessedFiles = append(result.ProcessedFiles, file)
		for _, id := range newIDs {
			discovered.Add(id)
		}
	}

	result.NewActions = discovered.Sorted()
	log.Info("Ingestion finished", map[string]interface{}{
		"processed":   len(result.ProcessedFiles),
		"new_actions": len(result.NewActions),
		"errors":      len(result.Errors),
	})
	return result, nil
}

// ingestFile parses one file completely before touching the corpus, so a
// rejected document records nothing.
func (e *Engine) ingestFile(path string) ([]string, error) {
	doc, encoding, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	wf, err := workflow.Parse(doc)
	if err != nil {
		return nil, err
	}

	e.corpus.RecordMetadata(wf.Metadata)

	var newIDs []string
	for i, action := range wf.Actions {
		if e.corpus.RecordAction(action.Identifier, action.Parameters, wf.Version) {
			newIDs = append(newIDs, action.Identifier)
		}
		if i < len(wf.Actions)-1 {
			e.corpus.RecordTransition(action.Identifier, wf.Actions[i+1].Identifier)
		}
	}

	e.log.Debug("Ingested workflow", map[string]interface{}{
		"file":     path,
		"encoding": encoding,
		"actions":  len(wf.Actions),
		"version":  wf.Version,
	})
	return newIDs, nil
}

// decodeFile reads JSON exports directly and everything plist-shaped through
// the plist decoder.
func decodeFile(path string) (map[string]interface{}, string, error) {
	switch strings.ToLower(fsutil.GetExtension(path)) {
	case ".plist", ".shortcut":
		info, err := plistutil.ReadPlist(path)
		if err != nil {
			return nil, "", err
		}
		return info.Data, "plist/" + plistutil.FormatToString(info.Format), nil
	default:
		doc, err := jsonutil.ReadJSONFile(path)
		return doc, "json", err
	}
}

