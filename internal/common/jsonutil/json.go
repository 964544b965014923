package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/fsutil"
)

// ReadJSONFile reads a JSON file and decodes its top-level object.
// Numbers are kept as json.Number so integer values survive exactly.
func ReadJSONFile(path string) (map[string]interface{}, error) {
	if !fsutil.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", errors.ErrFileNotFound, path)
	}

	data, err := fsutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrFileReadError, err.Error())
	}

	return DecodeObject(data)
}

// DecodeObject decodes a JSON object using json.Number for numbers
func DecodeObject(data []byte) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := Decode(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, err.Error())
	}
	if result == nil {
		return nil, fmt.Errorf("%w: top-level value is not an object", errors.ErrUnsupportedFile)
	}
	return result, nil
}

// Decode unmarshals data into v with json.Number enabled
func Decode(data []byte, v interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return decoder.Decode(v)
}

// Canonical returns a deterministic JSON encoding of v: object keys sorted,
// no HTML escaping, no trailing newline.
func Canonical(v interface{}) (string, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// MarshalIndent encodes v with two-space indentation and no HTML escaping
func MarshalIndent(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteJSONFile atomically writes v to path as indented JSON
func WriteJSONFile(path string, v interface{}) error {
	data, err := MarshalIndent(v)
	if err != nil {
		return fmt.Errorf("%w: %s", errors.ErrFileWriteError, err.Error())
	}

	if err := fsutil.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %s", errors.ErrFileWriteError, err.Error())
	}
	return nil
}
