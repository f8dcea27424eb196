package episode

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"podfeed/internal/config"
	"podfeed/internal/media/ffprobe"
)

// PubDateLayout is the RFC 1123 layout with a numeric zone used for pubDate.
const PubDateLayout = time.RFC1123Z

// Descriptor is the transient record serialized into one feed item.
type Descriptor struct {
	Title       string
	Description string
	AudioURL    string
	ByteSize    int64
	MIMEType    string
	GUID        string
	Published   time.Time
	Duration    ffprobe.Duration
}

// Input carries the per-invocation values a Descriptor is built from.
type Input struct {
	Title       string
	Description string
	Filename    string
	ByteSize    int64
	Duration    ffprobe.Duration
}

// Builder assembles Descriptors using the podcast settings from config.
type Builder struct {
	cfg     *config.Config
	now     func() time.Time
	newUUID func() string
}

// Option customizes a Builder.
type Option func(*Builder)

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithUUIDGenerator replaces the UUID source used by the uuid GUID style.
func WithUUIDGenerator(fn func() string) Option {
	return func(b *Builder) {
		if fn != nil {
			b.newUUID = fn
		}
	}
}

// NewBuilder returns a Builder for cfg.
func NewBuilder(cfg *config.Config, opts ...Option) *Builder {
	b := &Builder{
		cfg:     cfg,
		now:     time.Now,
		newUUID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the descriptor for in. Description falls back to the title.
func (b *Builder) Build(in Input) (Descriptor, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Descriptor{}, fmt.Errorf("build episode: title is required")
	}
	if strings.TrimSpace(in.Filename) == "" {
		return Descriptor{}, fmt.Errorf("build episode: filename is required")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = title
	}
	now := b.now()
	return Descriptor{
		Title:       title,
		Description: description,
		AudioURL:    b.cfg.EpisodeURL(in.Filename),
		ByteSize:    in.ByteSize,
		MIMEType:    b.cfg.Podcast.MIMEType,
		GUID:        b.guid(now),
		Published:   now,
		Duration:    in.Duration,
	}, nil
}

func (b *Builder) guid(now time.Time) string {
	prefix := b.cfg.Podcast.GUIDPrefix
	if b.cfg.Podcast.GUIDStyle == config.GUIDStyleUUID {
		return prefix + b.newUUID()
	}
	return prefix + strconv.FormatInt(now.Unix(), 10)
}

// PubDate returns the publish timestamp in feed format.
func (d Descriptor) PubDate() string {
	return d.Published.Format(PubDateLayout)
}

// ItemGUID returns the descriptor's GUID.
func (d Descriptor) ItemGUID() string {
	return d.GUID
}

type itemXML struct {
	XMLName     xml.Name     `xml:"item"`
	Title       string       `xml:"title"`
	Description string       `xml:"description"`
	Enclosure   enclosureXML `xml:"enclosure"`
	GUID        guidXML      `xml:"guid"`
	PubDate     string       `xml:"pubDate"`
	Duration    string       `xml:"itunes:duration,omitempty"`
}

type enclosureXML struct {
	URL    string `xml:"url,attr"`
	Length int64  `xml:"length,attr"`
	Type   string `xml:"type,attr"`
}

type guidXML struct {
	IsPermaLink string `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// RenderItem serializes the descriptor as an indented <item> element. Every
// line starts with prefix; nested elements add two spaces.
func (d Descriptor) RenderItem(prefix string) ([]byte, error) {
	mime := d.MIMEType
	if mime == "" {
		mime = "audio/mpeg"
	}
	item := itemXML{
		Title:       d.Title,
		Description: d.Description,
		Enclosure: enclosureXML{
			URL:    d.AudioURL,
			Length: d.ByteSize,
			Type:   mime,
		},
		GUID:    guidXML{IsPermaLink: "false", Value: d.GUID},
		PubDate: d.PubDate(),
	}
	if d.Duration.Known {
		item.Duration = strconv.Itoa(d.Duration.Seconds)
	}
	out, err := xml.MarshalIndent(item, prefix, "  ")
	if err != nil {
		return nil, fmt.Errorf("render item: %w", err)
	}
	return out, nil
}
