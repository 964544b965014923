package compression

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
)

func TestCompressExtractFormats(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "snapshot.json")
	payload := []byte(strings.Repeat(`{"known_actions":["is.workflow.actions.text"]}`, 64))
	require.NoError(t, os.WriteFile(src, payload, 0644))

	for _, format := range []Format{None, GZIP, BZIP2, XZ} {
		t.Run(string(format), func(t *testing.T) {
			dst := filepath.Join(dir, "backup"+format.Extension())
			require.NoError(t, CompressFile(src, dst, format))
			assert.Equal(t, format, DetectFormat(dst))

			data, err := ExtractFile(dst, format)
			require.NoError(t, err)
			assert.Equal(t, payload, data)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("XZ")
	require.NoError(t, err)
	assert.Equal(t, XZ, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, None, f)

	_, err = ParseFormat("zip")
	assert.ErrorIs(t, err, errors.ErrUnsupportedCompression)
}
