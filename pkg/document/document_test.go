package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FormatsAgree(t *testing.T) {
	fromYAML, err := Load(filepath.Join("testdata", "panel.yaml"))
	require.NoError(t, err)
	fromTOML, err := Load(filepath.Join("testdata", "panel.toml"))
	require.NoError(t, err)

	require.Len(t, fromYAML.Layout, 1)
	assert.Equal(t, fromYAML.Layout, fromTOML.Layout)
	assert.Equal(t, true, fromTOML.Vars["showFooter"])
	assert.Equal(t, true, fromYAML.Vars["showFooter"])
}

func TestFormatFor(t *testing.T) {
	type tc struct {
		path    string
		want    Format
		wantErr bool
	}

	tests := map[string]tc{
		"yaml":      {path: "a.yaml", want: FormatYAML},
		"yml upper": {path: "dir/A.YML", want: FormatYAML},
		"toml":      {path: "a.toml", want: FormatTOML},
		"json":      {path: "a.json", wantErr: true},
		"none":      {path: "layout", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := FormatFor(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("layout:\n  - view: root\n    colour: red\n"), FormatYAML)
	assert.ErrorContains(t, err, "failed to parse YAML")

	_, err = Parse([]byte("[[layout]]\nview = \"root\"\ncolour = \"red\"\n"), FormatTOML)
	assert.ErrorContains(t, err, "layout.colour")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestParseVar(t *testing.T) {
	type tc struct {
		in      string
		name    string
		value   any
		wantErr bool
	}

	tests := map[string]tc{
		"bool":     {in: "showFooter=false", name: "showFooter", value: false},
		"int":      {in: "count=3", name: "count", value: 3},
		"string":   {in: "title=Hello there", name: "title", value: "Hello there"},
		"list":     {in: "rows=[a, b]", name: "rows", value: []any{"a", "b"}},
		"empty":    {in: "title=", name: "title", value: ""},
		"no value": {in: "title", wantErr: true},
		"no name":  {in: "=3", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			gotName, gotValue, err := ParseVar(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, gotName)
			assert.Equal(t, tt.value, gotValue)
		})
	}
}
