// Package remote lists and downloads reference files from a source-hosting
// API and turns them into catalog records.
//
// The GitHub contents API is the production Lister. The Fetcher wraps any
// Lister, races the whole listing against a download timeout and reports
// per-entry progress.
package remote
