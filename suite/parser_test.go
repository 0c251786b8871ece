package suite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parsedValue struct {
	Value scalarString `json:"value" yaml:"value"`
}

func TestDecodeScalars(t *testing.T) {
	for _, p := range []struct {
		input    string
		expected string
	}{
		{`{"value": "5"}`, "5"},
		{`{"value": 5}`, "5"},
		{`{"value": 2.0}`, "2.0"},
		{`{"value": true}`, "true"},
		{`{"value": null}`, ""},
		{`{value: flow-style YAML}`, "flow-style YAML"},
		{`value: " 5 "`, " 5 "},
		{`value: 120`, "120"},
		{`value: 2.0`, "2.0"},
		{`value: 1e3`, "1e3"},
		{`value: ERR`, "ERR"},
		{`value: ~`, ""},
		{"value:", ""},
		{"value: |\n  (+ 2 3)\n  (* 2 3)\n", "(+ 2 3)\n(* 2 3)\n"},
		{"base: &b 42\nvalue: *b\n", "42"},
	} {
		t.Run(p.input, func(t *testing.T) {
			var v parsedValue
			require.NoError(t, decodeSuiteFile([]byte(p.input), &v))
			assert.Equal(t, p.expected, string(v.Value))
		})
	}
}

func TestDecodeRejectsNonScalar(t *testing.T) {
	for _, input := range []string{
		`{"value": {"a": 1}}`,
		`{"value": [1, 2]}`,
		"value: [1, 2]",
		"value:\n  a: 1\n",
	} {
		t.Run(input, func(t *testing.T) {
			var v parsedValue
			assert.Error(t, decodeSuiteFile([]byte(input), &v))
		})
	}
}

func TestDecodeMalformedInput(t *testing.T) {
	var v parsedValue
	assert.Error(t, decodeSuiteFile([]byte("value: [unterminated"), &v))
	assert.Error(t, decodeSuiteFile([]byte(`{"value": "5"`), &v))
}
