package feed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

const itemIndent = "  "

// Item is a feed entry that can render itself for insertion.
type Item interface {
	ItemGUID() string
	RenderItem(prefix string) ([]byte, error)
}

// Anchor locates the closing channel marker inside a document.
type Anchor struct {
	// Offset is the byte offset of the "</" that opens the marker.
	Offset int
	// LineStart is the offset of the first byte of the marker's line.
	LineStart int
	// Indent is the whitespace between LineStart and Offset.
	Indent string
	// OwnLine reports whether only whitespace precedes the marker on its line.
	OwnLine bool
}

// FindAnchor returns the position of the first </channel> end tag in doc.
func FindAnchor(doc []byte) (Anchor, error) {
	decoder := xml.NewDecoder(bytes.NewReader(doc))
	decoder.Strict = true
	decoder.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	for {
		offset := int(decoder.InputOffset())
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Anchor{}, ErrMarkerNotFound
			}
			// The marker was never reached, so both conditions hold.
			return Anchor{}, fmt.Errorf("%w (%w: %v)", ErrMarkerNotFound, ErrMalformed, err)
		}
		end, ok := tok.(xml.EndElement)
		if !ok || end.Name.Local != "channel" {
			continue
		}
		// A self-closing <channel/> yields a synthetic end element with no
		// bytes of its own; there is nothing to insert before.
		if !bytes.HasPrefix(doc[offset:], []byte("</")) {
			return Anchor{}, ErrMarkerNotFound
		}
		return anchorAt(doc, offset), nil
	}
}

func anchorAt(doc []byte, offset int) Anchor {
	lineStart := bytes.LastIndexByte(doc[:offset], '\n') + 1
	prefix := doc[lineStart:offset]
	return Anchor{
		Offset:    offset,
		LineStart: lineStart,
		Indent:    string(prefix),
		OwnLine:   len(bytes.TrimLeft(prefix, " \t")) == 0,
	}
}

// Splice returns doc with item inserted immediately before the closing channel
// marker. When the marker sits on its own line the item is placed on the lines
// above it, indented one level deeper than the marker.
func Splice(doc []byte, item Item) ([]byte, error) {
	anchor, err := FindAnchor(doc)
	if err != nil {
		return nil, err
	}

	var insertAt int
	var fragment []byte
	if anchor.OwnLine {
		rendered, err := item.RenderItem(anchor.Indent + itemIndent)
		if err != nil {
			return nil, err
		}
		insertAt = anchor.LineStart
		fragment = append(rendered, '\n')
	} else {
		rendered, err := item.RenderItem(itemIndent)
		if err != nil {
			return nil, err
		}
		insertAt = anchor.Offset
		fragment = make([]byte, 0, len(rendered)+2)
		fragment = append(fragment, '\n')
		fragment = append(fragment, rendered...)
		fragment = append(fragment, '\n')
	}

	out := make([]byte, 0, len(doc)+len(fragment))
	out = append(out, doc[:insertAt]...)
	out = append(out, fragment...)
	out = append(out, doc[insertAt:]...)
	return out, nil
}
