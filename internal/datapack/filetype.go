package datapack

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// FileType is a resource type recognized under data/<namespace>/.
type FileType struct {
	Name string // e.g. "function", "tag/block"
	Path string // directory under data/<namespace>/, e.g. "tags/block"
	Ext  string // ".mcfunction" or ".json"
}

// FileTypes lists the resource directories of the current datapack layout.
var FileTypes = []FileType{
	{Name: "advancement", Path: "advancement", Ext: ".json"},
	{Name: "banner_pattern", Path: "banner_pattern", Ext: ".json"},
	{Name: "chat_type", Path: "chat_type", Ext: ".json"},
	{Name: "damage_type", Path: "damage_type", Ext: ".json"},
	{Name: "dimension", Path: "dimension", Ext: ".json"},
	{Name: "dimension_type", Path: "dimension_type", Ext: ".json"},
	{Name: "enchantment", Path: "enchantment", Ext: ".json"},
	{Name: "function", Path: "function", Ext: ".mcfunction"},
	{Name: "item_modifier", Path: "item_modifier", Ext: ".json"},
	{Name: "loot_table", Path: "loot_table", Ext: ".json"},
	{Name: "predicate", Path: "predicate", Ext: ".json"},
	{Name: "recipe", Path: "recipe", Ext: ".json"},
	{Name: "tag/block", Path: "tags/block", Ext: ".json"},
	{Name: "tag/entity_type", Path: "tags/entity_type", Ext: ".json"},
	{Name: "tag/fluid", Path: "tags/fluid", Ext: ".json"},
	{Name: "tag/function", Path: "tags/function", Ext: ".json"},
	{Name: "tag/game_event", Path: "tags/game_event", Ext: ".json"},
	{Name: "tag/item", Path: "tags/item", Ext: ".json"},
	{Name: "trim_material", Path: "trim_material", Ext: ".json"},
	{Name: "trim_pattern", Path: "trim_pattern", Ext: ".json"},
	{Name: "worldgen/biome", Path: "worldgen/biome", Ext: ".json"},
	{Name: "worldgen/configured_feature", Path: "worldgen/configured_feature", Ext: ".json"},
	{Name: "worldgen/placed_feature", Path: "worldgen/placed_feature", Ext: ".json"},
	{Name: "worldgen/structure", Path: "worldgen/structure", Ext: ".json"},
}

// byPathLength holds FileTypes ordered longest path first so nested types
// like worldgen/biome win over shorter prefixes.
var byPathLength = func() []FileType {
	out := append([]FileType(nil), FileTypes...)
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].Path) > len(out[j].Path) })
	return out
}()

// rel returns filePath relative to root with forward slashes. ok is false when
// filePath is not inside root.
func rel(filePath, root string) (string, bool) {
	r, err := filepath.Rel(root, filePath)
	if err != nil {
		return "", false
	}
	r = filepath.ToSlash(r)
	if r == ".." || strings.HasPrefix(r, "../") {
		return "", false
	}
	return r, true
}

// GetFileType returns the resource type of filePath under root.
func GetFileType(filePath, root string) (FileType, bool) {
	r, ok := rel(filePath, root)
	if !ok {
		return FileType{}, false
	}
	parts := strings.SplitN(r, "/", 3)
	if len(parts) < 3 || parts[0] != "data" {
		return FileType{}, false
	}
	rest := parts[2]
	for _, ft := range byPathLength {
		if strings.HasPrefix(rest, ft.Path+"/") && strings.HasSuffix(rest, ft.Ext) {
			return ft, true
		}
	}
	return FileType{}, false
}

// ResourcePath converts a file under data/<namespace>/<typePath>/ into its
// namespace:path identifier. An empty typePath matches any single directory.
// Paths that do not match are returned relative to root, unchanged.
func ResourcePath(filePath, root, typePath string) string {
	r, ok := rel(filePath, root)
	if !ok {
		return filePath
	}

	pattern := `[^/]+`
	if typePath != "" {
		pattern = regexp.QuoteMeta(typePath)
	}
	re := regexp.MustCompile(`^data/([^/]+)/` + pattern + `/(.*)\.(?:mcfunction|json)$`)
	return re.ReplaceAllString(r, "$1:$2")
}

// FileResourcePath computes the resource path of filePath using its detected
// resource type.
func FileResourcePath(filePath, root string) string {
	ft, _ := GetFileType(filePath, root)
	return ResourcePath(filePath, root, ft.Path)
}

// Namespace returns the namespace segment of a file under data/<namespace>/.
// It returns "" when filePath is not under a namespace directory.
func Namespace(filePath, root string) string {
	r, ok := rel(filePath, root)
	if !ok {
		return ""
	}
	parts := strings.SplitN(r, "/", 3)
	if len(parts) < 3 || parts[0] != "data" {
		return ""
	}
	return parts[1]
}
