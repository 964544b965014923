package compression

import (
	"io"

	"github.com/ulikunitz/xz"
)

// newXZWriter wraps w in an XZ compressor
func newXZWriter(w io.Writer) (io.WriteCloser, error) {
	return xz.NewWriter(w)
}

// newXZReader wraps r in an XZ decompressor
func newXZReader(r io.Reader) (io.ReadCloser, error) {
	xzReader, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(xzReader), nil
}
