package plistutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
)

func TestWriteReadPlistNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shortcut.plist")
	doc := map[string]interface{}{
		"WFWorkflowClientVersion": "1200",
		"WFWorkflowMinimumClientVersion": uint64(900),
		"WFWorkflowActions": []interface{}{
			map[string]interface{}{
				"WFWorkflowActionIdentifier": "is.workflow.actions.text",
				"WFWorkflowActionParameters": map[string]interface{}{
					"WFTextActionText": "Hello",
					"Blob":             []byte("hi"),
				},
			},
		},
	}

	for _, format := range []Format{FormatXML, FormatBinary} {
		t.Run(FormatToString(format), func(t *testing.T) {
			require.NoError(t, WritePlist(path, doc, format))

			info, err := ReadPlist(path)
			require.NoError(t, err)
			assert.Equal(t, format, info.Format)
			assert.Equal(t, "1200", info.Data["WFWorkflowClientVersion"])
			assert.Equal(t, json.Number("900"), info.Data["WFWorkflowMinimumClientVersion"])

			actions := info.Data["WFWorkflowActions"].([]interface{})
			params := actions[0].(map[string]interface{})["WFWorkflowActionParameters"].(map[string]interface{})
			assert.Equal(t, "aGk=", params["Blob"])
		})
	}
}

func TestNormalizeScalars(t *testing.T) {
	ts := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, json.Number("-3"), Normalize(int64(-3)))
	assert.Equal(t, json.Number("1.5"), Normalize(1.5))
	assert.Equal(t, "2024-05-01T10:00:00Z", Normalize(ts))
	assert.Equal(t, true, Normalize(true))
}

func TestReadPlistErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadPlist(filepath.Join(dir, "missing.plist"))
	assert.ErrorIs(t, err, errors.ErrFileNotFound)

	bad := filepath.Join(dir, "bad.plist")
	require.NoError(t, os.WriteFile(bad, []byte("<?xml version=\"1.0\"?><plist><dict><key>a</key>"), 0644))
	_, err = ReadPlist(bad)
	assert.ErrorIs(t, err, errors.ErrUnsupportedFile)
}
