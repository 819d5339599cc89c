package catalog

import "github.com/dpgen-labs/dpgen/internal/manifest"

// Group names of the built-in table, in display order.
const (
	GroupLoadTick = "#load & #tick"
	GroupVanilla  = "Vanilla data"
	GroupFolders  = "Folders"
)

// vanillaRepo is the mirror of extracted vanilla data, one branch per version.
const (
	vanillaOwner = "misode"
	vanillaRepo  = "mcmeta"
	vanillaRef   = "%version%-data"
)

type group struct {
	name  string
	units []Unit
}

var builtin = []group{
	{
		name: GroupLoadTick,
		units: []Unit{
			functionTagUnit("load"),
			functionTagUnit("tick"),
		},
	},
	{
		name: GroupVanilla,
		units: []Unit{
			vanillaTagUnit("block"),
			vanillaTagUnit("entity_type"),
			vanillaTagUnit("fluid"),
			vanillaTagUnit("item"),
		},
	},
	{
		name: GroupFolders,
		units: folderUnits(
			"advancement",
			"function",
			"dimension",
			"dimension_type",
			"loot_table",
			"predicate",
			"recipe",
			"tags/block",
			"tags/entity_type",
			"tags/fluid",
			"tags/function",
			"tags/item",
		),
	},
}

// functionTagUnit registers %namespace%:<name> in #minecraft:<name> and
// creates the empty function.
func functionTagUnit(name string) Unit {
	id := "%namespace%:" + name
	return Unit{
		Label:  "#" + name + ".json & " + id + ".mcfunction",
		Picked: true,
		Generates: []Record{
			{
				Kind:    KindFile,
				Rel:     "data/minecraft/tags/function/" + name + ".json",
				Content: JSON(map[string]any{"values": []any{id}}),
				Append:  &Append{Key: "values", Elem: id},
			},
			File("data/%namespace%/function/"+name+".mcfunction", Lines()),
		},
	}
}

func vanillaTagUnit(kind string) Unit {
	return Unit{
		Label: "All Vanilla tags/" + kind,
		Remote: []RemoteSource{{
			Owner: vanillaOwner,
			Repo:  vanillaRepo,
			Ref:   vanillaRef,
			Path:  "data/minecraft/tags/" + kind,
		}},
	}
}

func folderUnits(dirs ...string) []Unit {
	units := make([]Unit, len(dirs))
	for i, d := range dirs {
		rel := "data/%namespace%/" + d + "/"
		units[i] = Unit{Label: rel, Generates: []Record{Folder(rel)}}
	}
	return units
}

// Builtin returns deep copies of the built-in units in display order with
// their Group set.
func Builtin() []Unit {
	var out []Unit
	for _, g := range builtin {
		for _, u := range g.units {
			c := u.Clone()
			c.Group = g.name
			out = append(out, c)
		}
	}
	return out
}

// PackDescriptor returns the pack.mcmeta record appended to every new
// datapack.
func PackDescriptor(packFormat int) Record {
	return File("pack.mcmeta", JSON(manifest.NewPackMeta(packFormat, "%datapackDescription%")))
}
