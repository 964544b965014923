// Package workflow turns decoded Shortcuts workflow documents into ordered
// actions, a version string and allow-listed metadata.
package workflow

import (
	"fmt"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
)

// Action is one step of a workflow
type Action struct {
	Index      int
	Identifier string
	Parameters map[string]interface{}
}

// Workflow is one parsed document
type Workflow struct {
	Actions  []Action
	Version  string
	Metadata map[string][]string
}

// Identifiers returns the action identifiers in document order
func (w *Workflow) Identifiers() []string {
	ids := make([]string, len(w.Actions))
	for i, a := range w.Actions {
		ids[i] = a.Identifier
	}
	return ids
}

// Parse validates doc and extracts its actions, version and metadata.
// Nothing is returned for a document that fails any check.
func Parse(doc map[string]interface{}) (*Workflow, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", errors.ErrInvalidDocument)
	}

	rawActions, ok := doc[KeyActions]
	if !ok {
		return nil, fmt.Errorf("%w: missing required field %s", errors.ErrInvalidDocument, KeyActions)
	}
	entries, ok := rawActions.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s is a %s, not a list", errors.ErrInvalidDocument, KeyActions, KindOf(rawActions))
	}

	version, err := ExtractVersion(doc)
	if err != nil {
		return nil, err
	}

	actions := make([]Action, 0, len(entries))
	for i, entry := range entries {
		action, err := parseAction(i, entry)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}

	return &Workflow{
		Actions:  actions,
		Version:  version,
		Metadata: ExtractMetadata(doc),
	}, nil
}

// ExtractVersion returns the first present version field, stringified
func ExtractVersion(doc map[string]interface{}) (string, error) {
	for _, key := range VersionKeys {
		if v, ok := doc[key]; ok && v != nil {
			return ScalarString(v), nil
		}
	}
	return "", fmt.Errorf("%w: expected one of %v", errors.ErrMissingVersion, VersionKeys)
}

// ExtractMetadata coerces every allow-listed field present in doc to strings
func ExtractMetadata(doc map[string]interface{}) map[string][]string {
	metadata := make(map[string][]string)
	for _, key := range MetadataKeys {
		v, ok := doc[key]
		if !ok {
			continue
		}
		metadata[key] = []string{ScalarString(v)}
	}
	return metadata
}

func parseAction(index int, entry interface{}) (Action, error) {
	obj, ok := entry.(map[string]interface{})
	if !ok {
		return Action{}, fmt.Errorf("%w: action %d is a %s, not a mapping", errors.ErrMalformedAction, index, KindOf(entry))
	}

	identifier, _ := obj[KeyActionIdentifier].(string)
	if identifier == "" {
		return Action{}, fmt.Errorf("%w: action %d has no %s", errors.ErrMalformedAction, index, KeyActionIdentifier)
	}

	params := map[string]interface{}{}
	if raw, present := obj[KeyActionParameters]; present && raw != nil {
		p, ok := raw.(map[string]interface{})
		if !ok {
			return Action{}, fmt.Errorf("%w: action %d (%s) parameters are a %s", errors.ErrMalformedAction, index, identifier, KindOf(raw))
		}
		params = p
	}

	return Action{Index: index, Identifier: identifier, Parameters: params}, nil
}
