// Package manifest reads and validates the JSON/YAML documents dpgen deals
// with: a datapack's pack.mcmeta and the user-supplied templates file. Both
// are checked against JSON Schemas embedded in the binary.
package manifest
