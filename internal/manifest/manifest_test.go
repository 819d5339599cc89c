package manifest

import (
	"encoding/json"
	"testing"

	"github.com/dpgen-labs/dpgen/internal/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackMeta(t *testing.T) {
	meta, err := ParsePackMeta([]byte(`{"pack":{"pack_format":48,"description":"hello"}}`))
	require.NoError(t, err)
	assert.Equal(t, 48, meta.Pack.PackFormat)
	assert.Equal(t, "hello", meta.DescriptionText())
}

func TestDescriptionTextComponent(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"object", `{"text":"x"}`, "x"},
		{"object with extra", `{"text":"Hello ","extra":[{"text":"world","color":"gold"},"!"]}`, "Hello world!"},
		{"array", `["", {"text":"a"}, "b", 3]`, "ab3"},
		{"translate only", `{"translate":"pack.desc"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta, err := ParsePackMeta([]byte(`{"pack":{"pack_format":48,"description":` + tt.description + `}}`))
			require.NoError(t, err)
			assert.Equal(t, tt.want, meta.DescriptionText())
		})
	}

	meta, err := ParsePackMeta([]byte(`{"pack":{"pack_format":48}}`))
	require.NoError(t, err)
	assert.Equal(t, "", meta.DescriptionText())
}

func TestReadDescription(t *testing.T) {
	fsys := workspace.Memory()
	require.NoError(t, fsys.CreateDir("/good"))
	require.NoError(t, fsys.CreateFile("/good/pack.mcmeta", []byte(`{"pack":{"pack_format":7,"description":"my pack"}}`)))
	require.NoError(t, fsys.CreateDir("/broken"))
	require.NoError(t, fsys.CreateFile("/broken/pack.mcmeta", []byte(`{"pack":`)))

	desc, err := ReadDescription(fsys, "/good")
	require.NoError(t, err)
	assert.Equal(t, "my pack", desc)

	desc, err = ReadDescription(fsys, "/broken")
	require.NoError(t, err, "parse errors are recovered")
	assert.Equal(t, "", desc)

	_, err = ReadDescription(fsys, "/missing")
	assert.Error(t, err, "read errors propagate")
}

func TestNewPackMetaIsValid(t *testing.T) {
	data, err := json.Marshal(NewPackMeta(48, "desc"))
	require.NoError(t, err)

	result, err := Validate(SchemaPack, data)
	require.NoError(t, err)
	assert.True(t, result.Valid, "issues: %v", result.Issues)
}

func TestValidatePack(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{"minimal", `{"pack":{"pack_format":7,"description":"x"}}`, true},
		{"text component", `{"pack":{"pack_format":7,"description":{"text":"x"}}}`, true},
		{"missing pack", `{}`, false},
		{"format not integer", `{"pack":{"pack_format":"7","description":"x"}}`, false},
		{"missing description", `{"pack":{"pack_format":7}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(SchemaPack, []byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, "issues: %v", result.Issues)
			if !tt.valid {
				assert.NotEmpty(t, result.Issues)
			}
		})
	}
}

func TestValidateTemplatesYAML(t *testing.T) {
	valid := `
templates:
  - label: "data/%namespace%/item_modifier/"
    group: Custom
    generates:
      - type: folder
        rel: data/%namespace%/item_modifier/
      - type: file
        rel: data/%namespace%/function/hello.mcfunction
        content:
          - say hi
    remote:
      - owner: misode
        repo: mcmeta
        ref: "%version%-data"
        path: data/minecraft/loot_table/blocks
`
	result, err := Validate(SchemaTemplates, []byte(valid))
	require.NoError(t, err)
	assert.True(t, result.Valid, "issues: %v", result.Issues)

	invalid := `
templates:
  - label: x
    generates:
      - type: symlink
        rel: a
`
	result, err = Validate(SchemaTemplates, []byte(invalid))
	require.NoError(t, err)
	require.False(t, result.Valid)
	assert.Equal(t, "/templates/0/generates/0/type", result.Issues[0].Path)
}

func TestValidateUnparseable(t *testing.T) {
	_, err := Validate(SchemaPack, []byte("{not: [valid"))
	assert.Error(t, err)
}

func TestValidateUnknownSchema(t *testing.T) {
	_, err := Validate(Schema("nope.json"), []byte("{}"))
	assert.Error(t, err)
}
