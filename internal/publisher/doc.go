// Package publisher runs the add-episode pipeline: store the audio, probe its
// duration, build the feed item, and splice it into the feed.
//
// Steps run once, in order, with no retries. The feed anchor is checked before
// any audio is copied so a feed that cannot accept items fails the run without
// leaving a stray file behind. A failed duration probe is logged and the item
// is published without a duration.
package publisher
