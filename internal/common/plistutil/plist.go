// Package plistutil provides utilities for working with property list files
package plistutil

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/errors"
	"github.com/deploymenttheory/go-shortcuts-doc/internal/common/fsutil"
	"howett.net/plist"
)

// Format represents the plist format
type Format int

const (
	// FormatXML is the XML plist format
	FormatXML Format = iota
	// FormatBinary is the binary plist format
	FormatBinary
	// FormatOpenStep is the OpenStep plist format
	FormatOpenStep
	// FormatGNUStep is the GNUStep plist format
	FormatGNUStep
)

// PlistInfo contains information about a property list
type PlistInfo struct {
	Path   string
	Format Format
	Data   map[string]interface{}
}

// ReadPlist reads a property list file and returns its top-level dictionary
// normalised to JSON value kinds (see Normalize)
func ReadPlist(path string) (*PlistInfo, error) {
	data, err := fsutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("%w: %s", errors.ErrPathNotAccessible, path)
	}

	var raw interface{}
	format, err := plist.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrUnsupportedFile, err.Error())
	}

	dict, ok := Normalize(raw).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: top-level value is not a dictionary", errors.ErrUnsupportedFile)
	}

	return &PlistInfo{
		Path:   path,
		Format: fromLibraryFormat(format),
		Data:   dict,
	}, nil
}

// WritePlist writes data to a property list file in the specified format
func WritePlist(path string, data map[string]interface{}, format Format) error {
	encoded, err := plist.MarshalIndent(data, toLibraryFormat(format), "\t")
	if err != nil {
		return fmt.Errorf("%w: %s", errors.ErrFileWriteError, err.Error())
	}
	if err := fsutil.WriteFile(path, encoded, 0644); err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("%w: %s", errors.ErrPermissionDenied, path)
		}
		return fmt.Errorf("%w: %s", errors.ErrFileWriteError, path)
	}
	return nil
}

// Normalize converts decoded plist values into the kinds produced by
// encoding/json with UseNumber: integers and reals become json.Number,
// data blobs become base64 strings, dates become RFC 3339 strings and UIDs
// become numbers.
func Normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = Normalize(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = Normalize(item)
		}
		return out
	case uint64:
		return json.Number(strconv.FormatUint(val, 10))
	case int64:
		return json.Number(strconv.FormatInt(val, 10))
	case float64:
		return floatNumber(val)
	case float32:
		return floatNumber(float64(val))
	case plist.UID:
		return json.Number(strconv.FormatUint(uint64(val), 10))
	case []byte:
		return base64.StdEncoding.EncodeToString(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return val
	}
}

func floatNumber(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		// Not representable as a JSON number
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// FormatToString converts a Format enum to a string
func FormatToString(format Format) string {
	switch format {
	case FormatXML:
		return "XML"
	case FormatBinary:
		return "Binary"
	case FormatOpenStep:
		return "OpenStep"
	case FormatGNUStep:
		return "GNUStep"
	default:
		return "Unknown"
	}
}

func fromLibraryFormat(format int) Format {
	switch format {
	case plist.BinaryFormat:
		return FormatBinary
	case plist.OpenStepFormat:
		return FormatOpenStep
	case plist.GNUStepFormat:
		return FormatGNUStep
	default:
		return FormatXML
	}
}

func toLibraryFormat(format Format) int {
	switch format {
	case FormatBinary:
		return plist.BinaryFormat
	case FormatOpenStep:
		return plist.OpenStepFormat
	case FormatGNUStep:
		return plist.GNUStepFormat
	default:
		return plist.XMLFormat
	}
}
