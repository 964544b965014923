package workflow

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignatureIgnoresKeyOrder(t *testing.T) {
	a := NewSignature(map[string]interface{}{"b": json.Number("1"), "a": map[string]interface{}{"y": true, "x": "s"}})
	b := NewSignature(map[string]interface{}{"a": map[string]interface{}{"x": "s", "y": true}, "b": json.Number("1")})

	assert.Equal(t, Signature{`a: {"x":"s","y":true}`, "b: 1"}, a)
	assert.Equal(t, a.Key(), b.Key())
}

func TestSignatureDistinguishesStringsFromNumbers(t *testing.T) {
	a := NewSignature(map[string]interface{}{"n": "1"})
	b := NewSignature(map[string]interface{}{"n": json.Number("1")})
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestEmptySignature(t *testing.T) {
	sig := NewSignature(map[string]interface{}{})
	assert.Empty(t, sig)
	assert.Equal(t, "[]", sig.Key())
}

func TestTypeEntries(t *testing.T) {
	entries := TypeEntries(map[string]interface{}{
		"WFInput":  map[string]interface{}{},
		"Count":    json.Number("2"),
		"Show":     true,
		"Items":    []interface{}{},
		"Nothing":  nil,
		"Subtitle": "x",
	})
	assert.Equal(t, []string{
		"Count: number",
		"Items: list",
		"Nothing: null",
		"Show: boolean",
		"Subtitle: string",
		"WFInput: mapping",
	}, entries)
}

func TestScalarString(t *testing.T) {
	assert.Equal(t, "abc", ScalarString("abc"))
	assert.Equal(t, "12", ScalarString(json.Number("12")))
	assert.Equal(t, "true", ScalarString(true))
	assert.Equal(t, "null", ScalarString(nil))
	assert.Equal(t, `[1,"a"]`, ScalarString([]interface{}{json.Number("1"), "a"}))
}
