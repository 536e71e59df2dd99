package hcldoc

import (
	"context"
	"testing"

	"github.com/specialistvlad/optgen/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSource(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := `
id      = "base"
name    = "Base"
header  = "options/base_options.h"

option {
  name       = "mode"
  long       = "mode=MODE"
  read_only  = true
  default    = 3
  ratio      = 0.5
  predicates = ["a", "b"]
  mode "ZED" {
    name = "zed"
  }
  mode "ALPHA" {
    name = "alpha"
  }
}
option {
  name = "second"
}
`

	// --- Act ---
	doc, err := NewLoader().LoadSource(context.Background(), "base.hcl", []byte(src))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "header", "option"}, doc.Keys())

	id, ok := doc.Lookup("id")
	require.True(t, ok)
	assert.Equal(t, "base", id.Value)
	assert.Equal(t, config.Pos{File: "base.hcl", Line: 2}, id.Pos)

	optionAttr, ok := doc.Lookup("option")
	require.True(t, ok)
	options, ok := optionAttr.Value.([]*config.Document)
	require.True(t, ok)
	require.Len(t, options, 2)

	first := options[0]
	assert.Equal(t, 6, first.Pos.Line)
	assert.Equal(t, []string{"name", "long", "read_only", "default", "ratio", "predicates", "mode"}, first.Keys())

	values := map[string]any{}
	for _, a := range first.Attributes() {
		values[a.Key] = a.Value
	}
	assert.Equal(t, true, values["read_only"])
	assert.Equal(t, int64(3), values["default"])
	assert.Equal(t, 0.5, values["ratio"])
	assert.Equal(t, []any{"a", "b"}, values["predicates"])

	modes, ok := values["mode"].(*config.Document)
	require.True(t, ok)
	assert.Equal(t, []string{"ZED", "ALPHA"}, modes.Keys(), "labeled blocks keep source order")
}

func TestLoadSource_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "syntax", src: "id = \n", wantErr: "failed to parse HCL file bad.hcl"},
		{name: "variable reference", src: "id = other\n", wantErr: "Variables not allowed"},
		{name: "nested list", src: "includes = [[\"a\"]]\n", wantErr: "nested lists are not allowed"},
		{name: "object value", src: "includes = { a = 1 }\n", wantErr: "are not allowed"},
		{name: "null", src: "id = null\n", wantErr: "null is not allowed"},
		{name: "two labels", src: "mode \"A\" \"B\" {\n}\n", wantErr: "takes at most one label, got 2"},
		{name: "attribute and block", src: "option = 1\noption {\n}\n", wantErr: "is both an attribute and a repeated block"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			_, err := NewLoader().LoadSource(context.Background(), "bad.hcl", []byte(tc.src))

			// --- Assert ---
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
