package feed

import "errors"

var (
	// ErrMarkerNotFound reports a feed without a </channel> end tag to insert before.
	ErrMarkerNotFound = errors.New("closing </channel> marker not found")
	// ErrMalformed reports a feed the XML tokenizer rejected before reaching the marker.
	ErrMalformed = errors.New("feed is not well-formed XML")
	// ErrLocked reports that another process holds the feed lock.
	ErrLocked = errors.New("feed is locked by another podfeed process")
	// ErrVerification reports a spliced document that did not read back as expected.
	ErrVerification = errors.New("spliced feed failed verification")
)
