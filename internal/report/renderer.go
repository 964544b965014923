package report

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"path/filepath"
	"sort"
	"strings"
	texttemplate "text/template"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/analysis"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/fsutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/jsonutil"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/logger"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
	FormatJSON     = "json"

	documentBaseName = "shortcuts_documentation"
	templateExt      = ".tmpl"
)

var formatExtensions = map[string]string{
	FormatMarkdown: ".md",
	FormatHTML:     ".html",
	FormatJSON:     ".json",
}

// RendererConfig locates templates and output
type RendererConfig struct {
	OutputDir    string
	TemplatesDir string
	// Formats rendered by RenderAll
	Formats []string
}

// Renderer turns TemplateData into documentation files
type Renderer struct {
	config RendererConfig
	log    *logger.Logger
}

// NewRenderer returns a renderer
func NewRenderer(config RendererConfig, log *logger.Logger) *Renderer {
	if log == nil {
		log = logger.Nop()
	}
	return &Renderer{config: config, log: log}
}

// Formats lists every format Render accepts: the built-in ones plus any
// custom template found in the templates directory.
func (r *Renderer) Formats() []string {
	formats := builtinFormats()
	if r.config.TemplatesDir == "" || !fsutil.DirExists(r.config.TemplatesDir) {
		return formats
	}
	entries, err := fsutil.ListFiles(r.config.TemplatesDir)
	if err != nil {
		return formats
	}
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		seen[f] = true
	}
	for _, e := range entries {
		if filepath.Ext(e.Name) != templateExt {
			continue
		}
		name := strings.TrimSuffix(e.Name, templateExt)
		if !seen[name] {
			seen[name] = true
			formats = append(formats, name)
		}
	}
	sort.Strings(formats)
	return formats
}

// Render writes data in format to output, or to the default document path
// in the output directory when output is empty. It returns the path written.
func (r *Renderer) Render(format string, data *TemplateData, output string) (string, error) {
	content, err := r.RenderBytes(format, data)
	if err != nil {
		return "", err
	}

	if output == "" {
		output = filepath.Join(r.config.OutputDir, documentBaseName+extensionFor(format))
	}
	if err := fsutil.WriteFileAtomic(output, content, 0644); err != nil {
		return "", fmt.Errorf("%w: %s: %v", errors.ErrFileWriteError, output, err)
	}

	r.log.Info("Generated documentation", map[string]interface{}{"format": format, "file": output})
	return output, nil
}

// RenderAll renders every configured format into the output directory.
// A failing format is logged and reported without stopping the others.
func (r *Renderer) RenderAll(data *TemplateData) (map[string]string, map[string]error) {
	written := make(map[string]string)
	failed := make(map[string]error)
	for _, format := range r.config.Formats {
		path, err := r.Render(format, data, "")
		if err != nil {
			r.log.Error("Failed to generate documentation", err, map[string]interface{}{"format": format})
			failed[format] = err
			continue
		}
		written[format] = path
	}
	return written, failed
}

// RenderBytes renders data in format without writing it anywhere
func (r *Renderer) RenderBytes(format string, data *TemplateData) ([]byte, error) {
	if format == FormatJSON {
		return jsonutil.MarshalIndent(data)
	}

	source, err := r.templateSource(format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if format == FormatHTML {
		tmpl, err := htmltemplate.New(format).Funcs(htmltemplate.FuncMap(templateFuncs)).Parse(source)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errors.ErrTemplateError, format, err)
		}
		err = tmpl.Execute(&buf, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", errors.ErrTemplateError, format, err)
		}
		return buf.Bytes(), nil
	}

	tmpl, err := texttemplate.New(format).Funcs(templateFuncs).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrTemplateError, format, err)
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errors.ErrTemplateError, format, err)
	}
	return buf.Bytes(), nil
}

// templateSource prefers <templates_dir>/<format>.tmpl over the embedded
// default of the same name.
func (r *Renderer) templateSource(format string) (string, error) {
	if strings.ContainsAny(format, `/\`) || format == "" {
		return "", fmt.Errorf("%w: %q", errors.ErrUnsupportedFormat, format)
	}
	name := format + templateExt

	if r.config.TemplatesDir != "" {
		path := filepath.Join(r.config.TemplatesDir, name)
		if fsutil.FileExists(path) {
			content, err := fsutil.ReadFile(path)
			if err != nil {
				return "", fmt.Errorf("%w: %s: %v", errors.ErrFileReadError, path, err)
			}
			r.log.Debug("Using template override", map[string]interface{}{"template": path})
			return string(content), nil
		}
	}

	content, err := defaultTemplates.ReadFile("templates/" + name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errors.ErrUnsupportedFormat, format)
	}
	return string(content), nil
}

var templateFuncs = texttemplate.FuncMap{
	"join": strings.Join,
	"top": func(scores []analysis.Score, n int) []analysis.Score {
		if len(scores) > n {
			return scores[:n]
		}
		return scores
	},
}

func extensionFor(format string) string {
	if ext, ok := formatExtensions[format]; ok {
		return ext
	}
	return "." + format
}

func builtinFormats() []string {
	return []string{FormatHTML, FormatJSON, FormatMarkdown}
}
