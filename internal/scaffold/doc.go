// Package scaffold materializes a flattened list of catalog records into a
// datapack directory. Folders are always created; files are written only
// when nothing exists at their path, so existing work is never overwritten.
// Placeholders in paths and content are resolved per record, with
// %fileResourcePath% bound to the resource location of the file being
// written.
package scaffold
