package compression

import (
	"compress/gzip"
	"io"
)

// newGZIPWriter wraps w in a GZIP compressor
func newGZIPWriter(w io.Writer) (io.WriteCloser, error) {
	return gzip.NewWriter(w), nil
}

// newGZIPReader wraps r in a GZIP decompressor
func newGZIPReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}
