package workflow

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/jsonutil"
)

// CanonicalValue returns a deterministic string form of v: JSON encoding
// with sorted object keys. Strings stay quoted so "1" and 1 differ.
func CanonicalValue(v interface{}) string {
	s, err := jsonutil.Canonical(v)
	if err != nil {
		// Values outside the JSON model still need a stable form
		return fmt.Sprintf("%#v", v)
	}
	return s
}

// ScalarString renders v as a plain display string: strings unquoted,
// numbers as written, nested values as canonical JSON.
func ScalarString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case nil:
		return "null"
	}
	switch KindOf(v) {
	case KindNumber, KindBoolean:
		return fmt.Sprint(v)
	default:
		return CanonicalValue(v)
	}
}

// Signature is the canonical, order-independent encoding of one parameter
// mapping: "name: <canonical value>" entries sorted by name.
type Signature []string

// NewSignature builds the signature of params
func NewSignature(params map[string]interface{}) Signature {
	names := sortedNames(params)
	sig := make(Signature, 0, len(names))
	for _, name := range names {
		sig = append(sig, name+": "+CanonicalValue(params[name]))
	}
	return sig
}

// Key is the string used to deduplicate signatures
func (s Signature) Key() string {
	return CanonicalValue([]string(s))
}

// TypeEntries returns "name: kind" for every parameter, sorted by name
func TypeEntries(params map[string]interface{}) []string {
	names := sortedNames(params)
	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, name+": "+KindOf(params[name]).String())
	}
	return entries
}

func sortedNames(params map[string]interface{}) []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
