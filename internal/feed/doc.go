// Package feed edits the podcast feed document in place.
//
// The feed is treated as text with one anchor: the first </channel> end tag,
// located with an XML tokenizer so indentation, comments and CDATA do not
// confuse the search. New items are spliced immediately before that anchor
// and every other byte of the document is preserved. The spliced document is
// parsed with gofeed before it replaces the original through a temp file and
// rename, so a failed run leaves the feed untouched.
//
// Store.Append holds an advisory lock file beside the feed while it works. A
// second podfeed run fails fast with ErrLocked instead of racing; podfeed does
// not queue or merge concurrent additions.
package feed
