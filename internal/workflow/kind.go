package workflow

import "encoding/json"

// Kind classifies a decoded JSON value
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindNull
	KindList
	KindMapping
)

var kindNames = [...]string{
	KindUnknown: "unknown",
	KindString:  "string",
	KindNumber:  "number",
	KindBoolean: "boolean",
	KindNull:    "null",
	KindList:    "list",
	KindMapping: "mapping",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// KindOf returns the kind of a value produced by encoding/json (with or
// without UseNumber) or by plistutil.Normalize.
func KindOf(v interface{}) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindNumber
	case string:
		return KindString
	case bool:
		return KindBoolean
	case []interface{}, []string:
		return KindList
	case map[string]interface{}:
		return KindMapping
	default:
		return KindUnknown
	}
}
