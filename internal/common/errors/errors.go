package errors

import (
	"errors"
)

var (
	// General Errors
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrUnsupportedFile   = errors.New("unsupported file format")
	ErrPathNotAccessible = errors.New("path is not accessible")
	ErrPathNotFound      = errors.New("path does not exist")

	// Document Errors
	ErrInvalidDocument         = errors.New("invalid workflow document")
	ErrMissingVersion          = errors.New("workflow document has no version field")
	ErrMalformedAction         = errors.New("malformed workflow action")
	ErrInvalidIdentifierFormat = errors.New("invalid action identifier format")

	// Storage Errors
	ErrStorageRead    = errors.New("error reading corpus snapshot")
	ErrStorageWrite   = errors.New("error writing corpus snapshot")
	ErrBackupNotFound = errors.New("backup not found")

	// Compression Errors
	ErrCompressionFailed      = errors.New("compression failed")
	ErrDecompressionFailed    = errors.New("decompression failed")
	ErrUnsupportedCompression = errors.New("unsupported compression format")

	// File & Directory Errors
	ErrFileNotFound   = errors.New("file not found")
	ErrFileReadError  = errors.New("error reading file")
	ErrFileWriteError = errors.New("error writing to file")

	// Report Errors
	ErrUnsupportedFormat = errors.New("unsupported output format")
	ErrTemplateError     = errors.New("error rendering template")

	// Configuration Errors
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrConfigParseError = errors.New("error parsing configuration")
)
