// Package compression compresses and restores single files (snapshot backups)
package compression

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
)

// Format names a single-file compression format
type Format string

const (
	// None stores files uncompressed
	None Format = "none"
	// GZIP is the gzip format
	GZIP Format = "gzip"
	// BZIP2 is the bzip2 format
	BZIP2 Format = "bzip2"
	// XZ is the xz format
	XZ Format = "xz"
)

var extensions = map[Format]string{
	None:  "",
	GZIP:  ".gz",
	BZIP2: ".bz2",
	XZ:    ".xz",
}

// ParseFormat converts a configuration string into a Format
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", None:
		return None, nil
	case GZIP, BZIP2, XZ:
		return f, nil
	default:
		return None, fmt.Errorf("%w: %s", errors.ErrUnsupportedCompression, s)
	}
}

// Extension returns the file suffix used for the format ("" for None)
func (f Format) Extension() string {
	return extensions[f]
}

// DetectFormat infers the format from a file name suffix
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return GZIP
	case ".bz2":
		return BZIP2
	case ".xz":
		return XZ
	default:
		return None
	}
}

// CompressFile writes src to dst compressed with format
func CompressFile(src, dst string, format Format) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	w, err := newWriter(format, out)
	if err != nil {
		out.Close()
		return err
	}

	if _, err := io.Copy(w, in); err != nil {
		w.Close()
		out.Close()
		return fmt.Errorf("%w: %v", errors.ErrCompressionFailed, err)
	}
	// The compressor must flush before the file is closed
	if err := w.Close(); err != nil {
		out.Close()
		return fmt.Errorf("%w: %v", errors.ErrCompressionFailed, err)
	}
	return out.Close()
}

// ExtractFile decompresses src according to format and returns its contents
func ExtractFile(src string, format Format) ([]byte, error) {
	in, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	r, err := newReader(format, in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDecompressionFailed, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDecompressionFailed, err)
	}
	return data, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func newWriter(format Format, w io.Writer) (io.WriteCloser, error) {
	switch format {
	case None:
		return nopWriteCloser{w}, nil
	case GZIP:
		return newGZIPWriter(w)
	case BZIP2:
		return newBZIP2Writer(w)
	case XZ:
		return newXZWriter(w)
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedCompression, format)
	}
}

func newReader(format Format, r io.Reader) (io.ReadCloser, error) {
	switch format {
	case None:
		return io.NopCloser(r), nil
	case GZIP:
		return newGZIPReader(r)
	case BZIP2:
		return newBZIP2Reader(r)
	case XZ:
		return newXZReader(r)
	default:
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedCompression, format)
	}
}
