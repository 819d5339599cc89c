package manifest

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dpgen-labs/dpgen/internal/workspace"
)

// PackMeta is the content of a datapack's pack.mcmeta.
type PackMeta struct {
	Pack PackSection `json:"pack"`
}

// PackSection is the "pack" object of pack.mcmeta.
type PackSection struct {
	PackFormat  int             `json:"pack_format"`
	Description json.RawMessage `json:"description,omitempty"`
}

// DescriptionText returns the description as plain text. Text components
// are flattened: the "text" of a component followed by its "extra" parts, and
// the parts of an array in order. A missing or undecodable field yields "".
func (p *PackMeta) DescriptionText() string {
	if p == nil || len(p.Pack.Description) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(p.Pack.Description, &v); err != nil {
		return ""
	}
	var b strings.Builder
	componentText(&b, v)
	return b.String()
}

func componentText(b *strings.Builder, v any) {
	switch c := v.(type) {
	case string:
		b.WriteString(c)
	case []any:
		for _, part := range c {
			componentText(b, part)
		}
	case map[string]any:
		if text, ok := c["text"].(string); ok {
			b.WriteString(text)
		}
		componentText(b, c["extra"])
	case float64:
		b.WriteString(strconv.FormatFloat(c, 'f', -1, 64))
	case bool:
		b.WriteString(strconv.FormatBool(c))
	}
}

// ParsePackMeta decodes pack.mcmeta bytes.
func ParsePackMeta(data []byte) (*PackMeta, error) {
	var meta PackMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parsing pack.mcmeta: %w", err)
	}
	return &meta, nil
}

// ReadDescription returns pack.description from root/pack.mcmeta. A file
// that cannot be parsed yields an empty description and no error; read
// failures are returned.
func ReadDescription(fsys *workspace.FS, root string) (string, error) {
	data, err := fsys.ReadFile(filepath.Join(root, "pack.mcmeta"))
	if err != nil {
		return "", err
	}
	meta, err := ParsePackMeta(data)
	if err != nil {
		return "", nil
	}
	return meta.DescriptionText(), nil
}

// NewPackMeta returns the pack.mcmeta document for a new datapack.
func NewPackMeta(packFormat int, description string) map[string]any {
	return map[string]any{
		"pack": map[string]any{
			"pack_format": packFormat,
			"description": description,
		},
	}
}
