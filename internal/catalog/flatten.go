package catalog

import (
	"strings"

	"github.com/dpgen-labs/dpgen/internal/vars"
)

// ResolveLabels returns deep copies of units with their labels resolved
// against c.
func ResolveLabels(units []Unit, c *vars.Container) []Unit {
	out := make([]Unit, len(units))
	for i, u := range units {
		out[i] = u.Clone()
		out[i].Label = vars.Resolve(u.Label, c)
	}
	return out
}

// Defaults returns the indexes of units picked by default.
func Defaults(units []Unit) []int {
	var idx []int
	for i, u := range units {
		if u.Picked {
			idx = append(idx, i)
		}
	}
	return idx
}

// RemoteSources collects the remote sources of the selected units in
// selection order.
func RemoteSources(selected []Unit) []RemoteSource {
	var out []RemoteSource
	for _, u := range selected {
		out = append(out, u.Remote...)
	}
	return out
}

// Flatten concatenates the records of the selected units in selection
// order, then the remotely fetched records, then descriptor (when not nil).
func Flatten(selected []Unit, fetched []Record, descriptor *Record) []Record {
	var out []Record
	for _, u := range selected {
		out = append(out, u.Generates...)
	}
	out = append(out, fetched...)
	if descriptor != nil {
		out = append(out, *descriptor)
	}
	return out
}

// AppendElem pushes elem onto the slice found by walking the dotted key
// path through nested maps of object. It reports false without modifying
// anything when an intermediate key is missing, a step is not a map, or the
// terminal value is not a slice.
func AppendElem(object any, key string, elem any) bool {
	if key == "" {
		return false
	}
	keys := strings.Split(key, ".")

	parent, ok := object.(map[string]any)
	if !ok {
		return false
	}
	for _, k := range keys[:len(keys)-1] {
		next, ok := parent[k].(map[string]any)
		if !ok {
			return false
		}
		parent = next
	}

	last := keys[len(keys)-1]
	arr, ok := parent[last].([]any)
	if !ok {
		return false
	}
	parent[last] = append(arr, elem)
	return true
}
