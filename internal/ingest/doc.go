// Package ingest copies source audio into the managed episodes directory.
//
// Titles are normalized into filesystem- and URL-safe slugs by Slugify. The
// copy lands in a temporary file beside the target and is renamed into place,
// so the episode name only ever refers to a complete file. An existing file
// with the same slug is replaced and only a warning is logged: two titles that
// normalize identically share one audio file.
package ingest
