// Package vars substitutes %name% placeholders in template strings and
// structured template values.
package vars

import (
	"regexp"
	"sort"
	"strings"
	"time"
)

// Placeholder names understood by the built-in catalog.
const (
	DatapackName        = "datapackName"
	DatapackDescription = "datapackDescription"
	Namespace           = "namespace"
	Date                = "date"
	Version             = "version"
	FileResourcePath    = "fileResourcePath"
)

// Container is an ordered set of placeholder values. It is not mutated after
// construction; With returns an extended copy.
type Container struct {
	keys   []string
	values map[string]string
	// tokens matches %key% for the defined keys only, so a stray or unknown
	// %...% never swallows the delimiter of a following token.
	tokens *regexp.Regexp
}

// Empty returns a Container with no values.
func Empty() *Container {
	return &Container{values: make(map[string]string)}
}

// New creates a Container holding the per-run datapack values.
func New(name, description, namespace, date string) *Container {
	c := Empty()
	c.set(DatapackName, name)
	c.set(DatapackDescription, description)
	c.set(Namespace, namespace)
	c.set(Date, date)
	c.compile()
	return c
}

func (c *Container) set(key, value string) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
}

func (c *Container) compile() {
	if len(c.keys) == 0 {
		c.tokens = nil
		return
	}
	names := make([]string, len(c.keys))
	for i, k := range c.keys {
		names[i] = regexp.QuoteMeta(k)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	c.tokens = regexp.MustCompile("%(?:" + strings.Join(names, "|") + ")%")
}

// With returns a copy of c with key set to value. A nil c behaves like
// Empty().
func (c *Container) With(key, value string) *Container {
	if c == nil {
		c = Empty()
	}
	out := &Container{
		keys:   append([]string(nil), c.keys...),
		values: make(map[string]string, len(c.values)+1),
	}
	for k, v := range c.values {
		out.values[k] = v
	}
	out.set(key, value)
	out.compile()
	return out
}

// Resolve replaces every %name% token whose name is defined in c.
// Unknown tokens are left verbatim. Substituted values are not re-scanned.
func Resolve(template string, c *Container) string {
	if c == nil || c.tokens == nil {
		return template
	}
	return c.tokens.ReplaceAllStringFunc(template, func(tok string) string {
		return c.values[tok[1:len(tok)-1]]
	})
}

// ResolveValue returns a deep copy of v with Resolve applied to every string,
// including map keys. Values other than strings, maps and slices are
// returned as-is.
func ResolveValue(v any, c *Container) any {
	switch val := v.(type) {
	case string:
		return Resolve(val, c)
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, e := range val {
			m[Resolve(k, c)] = ResolveValue(e, c)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, e := range val {
			a[i] = ResolveValue(e, c)
		}
		return a
	case []string:
		a := make([]string, len(val))
		for i, e := range val {
			a[i] = Resolve(e, c)
		}
		return a
	default:
		return val
	}
}

// FormatDate renders t with a Go time layout. An empty layout falls back to
// 2006/01/02.
func FormatDate(layout string, t time.Time) string {
	if layout == "" {
		layout = "2006/01/02"
	}
	return t.Format(layout)
}
