package jsonutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
)

func TestReadJSONFileKeepsIntegers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"WFWorkflowIconStartColor": 4282601983, "ok": true}`), 0644))

	data, err := ReadJSONFile(path)
	require.NoError(t, err)
	assert.Equal(t, json.Number("4282601983"), data["WFWorkflowIconStartColor"])
	assert.Equal(t, true, data["ok"])
}

func TestReadJSONFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadJSONFile(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, errors.ErrFileNotFound)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{invalid json"), 0644))
	_, err = ReadJSONFile(bad)
	assert.ErrorIs(t, err, errors.ErrUnsupportedFile)

	array := filepath.Join(dir, "array.json")
	require.NoError(t, os.WriteFile(array, []byte("[1, 2]"), 0644))
	_, err = ReadJSONFile(array)
	assert.ErrorIs(t, err, errors.ErrUnsupportedFile)
}

func TestCanonicalSortsKeys(t *testing.T) {
	a, err := Canonical(map[string]interface{}{"b": 1, "a": map[string]interface{}{"y": "<x>", "x": nil}})
	require.NoError(t, err)
	assert.Equal(t, `{"a":{"x":null,"y":"<x>"},"b":1}`, a)
}

func TestWriteJSONFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	require.NoError(t, WriteJSONFile(path, map[string]interface{}{"save": "test"}))

	data, err := ReadJSONFile(path)
	require.NoError(t, err)
	assert.Equal(t, "test", data["save"])
}
