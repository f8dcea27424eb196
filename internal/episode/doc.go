// Package episode builds the descriptor for a new feed item and renders it as
// an RSS <item> fragment.
//
// Descriptors are created once per invocation from the stored audio file, the
// probe result, and the current time. GUIDs are the configured prefix followed
// by either the Unix timestamp in seconds (two builds in the same second
// collide) or a random UUID. Rendering goes through encoding/xml so markup
// characters in titles and descriptions are escaped.
package episode
