package feed

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/mmcdole/gofeed"
)

// Entry summarizes one item already in the feed.
type Entry struct {
	Title     string     `json:"title"`
	GUID      string     `json:"guid"`
	Published *time.Time `json:"published,omitempty"`
	Duration  string     `json:"duration,omitempty"`
	AudioURL  string     `json:"audio_url,omitempty"`
	Length    int64      `json:"length,omitempty"`
}

// Summary describes the feed channel and its items in document order.
type Summary struct {
	Title   string  `json:"title"`
	Entries []Entry `json:"entries"`
}

// Episodes parses the feed and returns its channel title and items.
func (s *Store) Episodes() (Summary, error) {
	data, err := s.Read()
	if err != nil {
		return Summary{}, err
	}
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(data))
	if err != nil {
		return Summary{}, fmt.Errorf("parse feed %s: %w", s.path, err)
	}
	summary := Summary{Title: parsed.Title, Entries: make([]Entry, 0, len(parsed.Items))}
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entry := Entry{
			Title:     item.Title,
			GUID:      item.GUID,
			Published: item.PublishedParsed,
		}
		if item.ITunesExt != nil {
			entry.Duration = item.ITunesExt.Duration
		}
		if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
			entry.AudioURL = item.Enclosures[0].URL
			if length, err := strconv.ParseInt(item.Enclosures[0].Length, 10, 64); err == nil {
				entry.Length = length
			}
		}
		summary.Entries = append(summary.Entries, entry)
	}
	return summary, nil
}
