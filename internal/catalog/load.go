package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/dpgen-labs/dpgen/internal/manifest"
	"github.com/dpgen-labs/dpgen/internal/vars"
	"github.com/dpgen-labs/dpgen/internal/workspace"
	"go.yaml.in/yaml/v3"
)

// GroupCustom is the group assigned to user templates that name none.
const GroupCustom = "Custom"

// Placeholders available in a remote source's target template.
const (
	targetPath = "path"
	targetName = "name"
)

type templatesFile struct {
	Templates []unitSpec `yaml:"templates"`
}

type unitSpec struct {
	Label     string       `yaml:"label"`
	Group     string       `yaml:"group"`
	Picked    bool         `yaml:"picked"`
	Generates []recordSpec `yaml:"generates"`
	Remote    []remoteSpec `yaml:"remote"`
}

type recordSpec struct {
	Type    string      `yaml:"type"`
	Rel     string      `yaml:"rel"`
	Content yaml.Node   `yaml:"content"`
	Append  *appendSpec `yaml:"append"`
}

type appendSpec struct {
	Key  string `yaml:"key"`
	Elem any    `yaml:"elem"`
}

type remoteSpec struct {
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Ref    string `yaml:"ref"`
	Path   string `yaml:"path"`
	Target string `yaml:"target"`
}

// Load parses a templates file. The document is validated against the
// embedded templates schema before decoding.
func Load(data []byte) ([]Unit, error) {
	result, err := manifest.Validate(manifest.SchemaTemplates, data)
	if err != nil {
		return nil, fmt.Errorf("validating templates: %w", err)
	}
	if !result.Valid {
		msgs := make([]string, len(result.Issues))
		for i, issue := range result.Issues {
			msgs[i] = issue.String()
		}
		return nil, fmt.Errorf("invalid templates file: %s", strings.Join(msgs, "; "))
	}

	var file templatesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	units := make([]Unit, 0, len(file.Templates))
	for i, spec := range file.Templates {
		u, err := spec.unit()
		if err != nil {
			return nil, fmt.Errorf("template %d (%s): %w", i, spec.Label, err)
		}
		units = append(units, u)
	}
	return units, nil
}

// LoadFile reads and parses a templates file. A missing file yields no units.
func LoadFile(fsys *workspace.FS, path string) ([]Unit, error) {
	if path == "" || !fsys.PathAccessible(path) {
		return nil, nil
	}
	data, err := fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return Load(data)
}

func (s unitSpec) unit() (Unit, error) {
	u := Unit{
		Label:  s.Label,
		Group:  s.Group,
		Picked: s.Picked,
	}
	if u.Group == "" {
		u.Group = GroupCustom
	}

	for _, r := range s.Generates {
		rec, err := r.record()
		if err != nil {
			return Unit{}, err
		}
		u.Generates = append(u.Generates, rec)
	}
	for _, r := range s.Remote {
		u.Remote = append(u.Remote, r.source())
	}
	return u, nil
}

func (s recordSpec) record() (Record, error) {
	if Kind(s.Type) == KindFolder {
		return Folder(s.Rel), nil
	}

	content, err := decodeContent(&s.Content)
	if err != nil {
		return Record{}, fmt.Errorf("content of %s: %w", s.Rel, err)
	}
	rec := File(s.Rel, content)
	if s.Append != nil {
		rec.Append = &Append{Key: s.Append.Key, Elem: s.Append.Elem}
	}
	return rec, nil
}

// decodeContent treats a sequence of strings as lines and anything else as
// a structured value.
func decodeContent(node *yaml.Node) (Content, error) {
	if node.Kind == 0 {
		return Lines(), nil
	}

	if node.Kind == yaml.SequenceNode && allStrings(node.Content) {
		lines := make([]string, len(node.Content))
		for i, n := range node.Content {
			lines[i] = n.Value
		}
		return Lines(lines...), nil
	}

	if node.Kind == yaml.ScalarNode && node.Tag == "!!str" {
		return Lines(strings.Split(node.Value, "\n")...), nil
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return Content{}, err
	}
	return JSON(v), nil
}

func allStrings(nodes []*yaml.Node) bool {
	for _, n := range nodes {
		if n.Kind != yaml.ScalarNode || n.Tag != "!!str" {
			return false
		}
	}
	return true
}

func (s remoteSpec) source() RemoteSource {
	src := RemoteSource{
		Owner: s.Owner,
		Repo:  s.Repo,
		Ref:   s.Ref,
		Path:  s.Path,
	}
	if s.Target != "" {
		target := s.Target
		src.Target = func(e RemoteEntry) string {
			c := vars.Empty().With(targetPath, e.Path).With(targetName, e.Name)
			return vars.Resolve(target, c)
		}
	}
	return src
}
