// Package catalog holds the selectable template units offered when
// generating a datapack, and flattens a selection into the ordered list of
// file and folder records to write.
package catalog

// Kind distinguishes folder records from file records.
type Kind string

const (
	KindFile   Kind = "file"
	KindFolder Kind = "folder"
)

// Content is the body of a file record: either text lines or a structured
// JSON-like value (maps, slices, strings, numbers, booleans).
type Content struct {
	Lines []string
	Value any
}

// IsStructured reports whether the content is rendered as JSON.
func (c Content) IsStructured() bool {
	return c.Value != nil
}

// Lines returns line-based content.
func Lines(lines ...string) Content {
	return Content{Lines: lines}
}

// JSON returns structured content.
func JSON(v any) Content {
	return Content{Value: v}
}

// Append describes an element to push onto the array found at a dotted key
// path in structured content, e.g. {Key: "values", Elem: "foo:load"}.
type Append struct {
	Key  string
	Elem any
}

// Record is one file or folder to materialize. Rel is relative to the
// datapack root, uses forward slashes, and may contain %placeholders%.
type Record struct {
	Kind    Kind
	Rel     string
	Content Content
	Append  *Append
}

// Folder returns a folder record.
func Folder(rel string) Record {
	return Record{Kind: KindFolder, Rel: rel}
}

// File returns a file record.
func File(rel string, content Content) Record {
	return Record{Kind: KindFile, Rel: rel, Content: content}
}

// RemoteEntry is one file returned by a remote listing.
type RemoteEntry struct {
	Path    string // path inside the remote repository
	Name    string // base name
	Content []byte
}

// RemoteSource declares a remote directory whose files become records.
// Ref may contain %placeholders% (typically %version%).
type RemoteSource struct {
	Owner  string
	Repo   string
	Ref    string
	Path   string
	Target func(RemoteEntry) string
}

// TargetFor maps an entry to its relative path in the datapack. Sources
// without a Target keep the entry's repository path.
func (s RemoteSource) TargetFor(e RemoteEntry) string {
	if s.Target == nil {
		return e.Path
	}
	return s.Target(e)
}

// Unit is one user-facing choice. Label may contain %placeholders%.
type Unit struct {
	Label     string
	Group     string
	Picked    bool
	Generates []Record
	Remote    []RemoteSource
}

// Clone returns a deep copy of u, so callers may resolve labels or mutate
// content without touching the shared table.
func (u Unit) Clone() Unit {
	out := u
	if u.Generates != nil {
		out.Generates = make([]Record, len(u.Generates))
		for i, r := range u.Generates {
			out.Generates[i] = r.Clone()
		}
	}
	if u.Remote != nil {
		out.Remote = append([]RemoteSource(nil), u.Remote...)
	}
	return out
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	out := r
	if r.Content.Lines != nil {
		out.Content.Lines = append([]string{}, r.Content.Lines...)
	}
	out.Content.Value = copyValue(r.Content.Value)
	if r.Append != nil {
		out.Append = &Append{Key: r.Append.Key, Elem: copyValue(r.Append.Elem)}
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[k] = copyValue(e)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, e := range val {
			a[i] = copyValue(e)
		}
		return a
	default:
		return val
	}
}
