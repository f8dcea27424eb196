package feed

import (
	"bytes"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// verify parses both documents and confirms updated holds exactly one more
// item than original, carrying guid.
func verify(original, updated []byte, guid string) error {
	parser := gofeed.NewParser()
	before, err := parser.Parse(bytes.NewReader(original))
	if err != nil {
		// The original was never a readable feed; only the new document is checked.
		before = &gofeed.Feed{}
	}
	after, err := parser.Parse(bytes.NewReader(updated))
	if err != nil {
		return fmt.Errorf("%w: parse: %v", ErrVerification, err)
	}
	if got, want := len(after.Items), len(before.Items)+1; got != want {
		return fmt.Errorf("%w: expected %d items, found %d", ErrVerification, want, got)
	}
	for _, item := range after.Items {
		if item != nil && item.GUID == guid {
			return nil
		}
	}
	return fmt.Errorf("%w: guid %q not present", ErrVerification, guid)
}
