package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleFeed is a minimal podcast feed with one existing episode.
const SampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
  <channel>
    <title>Sample Show</title>
    <link>https://cast.example.com</link>
    <description>A show used in tests</description>
    <item>
      <title>Pilot</title>
      <description>The first one</description>
      <enclosure url="https://cast.example.com/episodes/pilot.mp3" length="1024" type="audio/mpeg"/>
      <guid isPermaLink="false">podfeed-1700000000</guid>
      <pubDate>Tue, 14 Nov 2023 22:13:20 +0000</pubDate>
      <itunes:duration>61</itunes:duration>
    </item>
  </channel>
</rss>
`

// FeedWithoutChannelClose lacks the closing channel marker.
const FeedWithoutChannelClose = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Broken Show</title>
</rss>
`

// WriteFeed writes contents to path, creating parent directories.
func WriteFeed(t testing.TB, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write feed %s: %v", path, err)
	}
}
