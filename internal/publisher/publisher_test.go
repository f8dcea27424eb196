package publisher_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"podfeed/internal/episode"
	"podfeed/internal/feed"
	"podfeed/internal/logging"
	"podfeed/internal/media/ffprobe"
	"podfeed/internal/publisher"
	"podfeed/internal/testsupport"
)

func writeSource(t *testing.T, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recording.mp3")
	testsupport.WriteFile(t, path, size)
	return path
}

func TestAddPublishesEpisode(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSampleFeed(), testsupport.WithStubbedFFprobe("123.987", 0))
	pub, err := publisher.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("publisher.New: %v", err)
	}

	source := writeSource(t, 5000)
	result, err := pub.Add(context.Background(), publisher.Request{
		Source:      source,
		Title:       "Episode One: Intro!",
		Description: "Welcome & hello",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if result.ProbeErr != nil {
		t.Fatalf("unexpected probe error: %v", result.ProbeErr)
	}

	wantPath := filepath.Join(cfg.Paths.EpisodesDir, "episode-one-intro.mp3")
	if result.Media.Path != wantPath {
		t.Fatalf("unexpected media path: %q", result.Media.Path)
	}
	info, err := os.Stat(wantPath)
	if err != nil {
		t.Fatalf("stat copied audio: %v", err)
	}
	if info.Size() != 5000 || result.Media.Size != 5000 {
		t.Fatalf("unexpected size: file=%d result=%d", info.Size(), result.Media.Size)
	}
	if result.FeedURL != "https://cast.example.com/feed.xml" {
		t.Fatalf("unexpected feed url: %q", result.FeedURL)
	}

	summary, err := feed.Open(cfg.Paths.FeedFile, logging.NewNop()).Episodes()
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if len(summary.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(summary.Entries))
	}
	added := summary.Entries[1]
	if added.Title != "Episode One: Intro!" || added.Duration != "123" || added.Length != 5000 {
		t.Fatalf("unexpected entry: %+v", added)
	}
	if added.AudioURL != "https://cast.example.com/episodes/episode-one-intro.mp3" {
		t.Fatalf("unexpected audio url: %q", added.AudioURL)
	}

	text := testsupport.ReadFile(t, cfg.Paths.FeedFile)
	if !strings.Contains(text, "<description>Welcome &amp; hello</description>") {
		t.Fatalf("expected escaped description in feed:\n%s", text)
	}
}

func TestAddWithoutProberOmitsDuration(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSampleFeed())
	pub, err := publisher.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("publisher.New: %v", err)
	}

	result, err := pub.Add(context.Background(), publisher.Request{Source: writeSource(t, 10), Title: "No Probe"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if result.ProbeErr == nil {
		t.Fatal("expected probe error to be reported")
	}
	if result.Episode.Duration.Known {
		t.Fatalf("expected unknown duration, got %+v", result.Episode.Duration)
	}
	if result.Episode.Description != "No Probe" {
		t.Fatalf("expected description to default to title, got %q", result.Episode.Description)
	}

	text := testsupport.ReadFile(t, cfg.Paths.FeedFile)
	if strings.Count(text, "<itunes:duration>") != 1 {
		t.Fatalf("expected no new duration tag:\n%s", text)
	}
	for _, want := range []string{"<title>No Probe</title>", "<description>No Probe</description>", "no-probe.mp3", result.Episode.GUID, result.Episode.PubDate()} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in feed:\n%s", want, text)
		}
	}
}

func TestAddFailingProberDegradesGracefully(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSampleFeed(), testsupport.WithStubbedFFprobe("garbage", 1))
	pub, err := publisher.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("publisher.New: %v", err)
	}
	result, err := pub.Add(context.Background(), publisher.Request{Source: writeSource(t, 10), Title: "Broken Probe"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if result.ProbeErr == nil || result.Episode.Duration.Known {
		t.Fatalf("expected degraded duration, got %+v err=%v", result.Episode.Duration, result.ProbeErr)
	}
}

func TestAddMissingMarkerLeavesEverythingUntouched(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	original := `<rss version="2.0"><channel/></rss>`
	testsupport.WriteFeed(t, cfg.Paths.FeedFile, original)

	pub, err := publisher.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("publisher.New: %v", err)
	}
	_, err = pub.Add(context.Background(), publisher.Request{Source: writeSource(t, 10), Title: "Lost"})
	if !errors.Is(err, feed.ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}
	if got := testsupport.ReadFile(t, cfg.Paths.FeedFile); got != original {
		t.Fatalf("feed modified:\n%s", got)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.EpisodesDir, "lost.mp3")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no audio copied, stat err=%v", err)
	}
}

func TestAddTwiceSameTitleOverwritesAudioAndAppendsTwoItems(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSampleFeed(), testsupport.WithStubbedFFprobe("10", 0))
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	builder := episode.NewBuilder(cfg, episode.WithClock(func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}))
	pub, err := publisher.New(cfg, logging.NewNop(), publisher.WithBuilder(builder))
	if err != nil {
		t.Fatalf("publisher.New: %v", err)
	}

	first, err := pub.Add(context.Background(), publisher.Request{Source: writeSource(t, 100), Title: "Repeat"})
	if err != nil {
		t.Fatalf("first Add: %v", err)
	}
	second, err := pub.Add(context.Background(), publisher.Request{Source: writeSource(t, 200), Title: "Repeat!"})
	if err != nil {
		t.Fatalf("second Add: %v", err)
	}
	if first.Episode.GUID == second.Episode.GUID {
		t.Fatalf("expected distinct guids, both %q", first.Episode.GUID)
	}
	if first.Media.Path != second.Media.Path {
		t.Fatalf("expected same audio path, got %q and %q", first.Media.Path, second.Media.Path)
	}
	info, err := os.Stat(second.Media.Path)
	if err != nil {
		t.Fatalf("stat audio: %v", err)
	}
	if info.Size() != 200 {
		t.Fatalf("expected second copy to overwrite first, size=%d", info.Size())
	}

	summary, err := feed.Open(cfg.Paths.FeedFile, logging.NewNop()).Episodes()
	if err != nil {
		t.Fatalf("Episodes: %v", err)
	}
	if len(summary.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(summary.Entries))
	}
}

func TestAddUsesInjectedProbe(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSampleFeed())
	var probedPath string
	pub, err := publisher.New(cfg, logging.NewNop(), publisher.WithProbe(func(_ context.Context, path string) (ffprobe.Duration, error) {
		probedPath = path
		return ffprobe.Duration{Seconds: 3600, Known: true}, nil
	}))
	if err != nil {
		t.Fatalf("publisher.New: %v", err)
	}
	result, err := pub.Add(context.Background(), publisher.Request{Source: writeSource(t, 1), Title: "Long One"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if probedPath != result.Media.Path {
		t.Fatalf("probe ran against %q, want copied file %q", probedPath, result.Media.Path)
	}
	if !strings.Contains(testsupport.ReadFile(t, cfg.Paths.FeedFile), "<itunes:duration>3600</itunes:duration>") {
		t.Fatal("expected injected duration in feed")
	}
}

func TestAddValidatesRequest(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSampleFeed())
	pub, err := publisher.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("publisher.New: %v", err)
	}
	if _, err := pub.Add(context.Background(), publisher.Request{Source: "x.mp3", Title: "  "}); err == nil {
		t.Fatal("expected error for blank title")
	}
	if _, err := pub.Add(context.Background(), publisher.Request{Title: "t"}); err == nil {
		t.Fatal("expected error for missing source")
	}
	if _, err := pub.Add(context.Background(), publisher.Request{Source: filepath.Join(t.TempDir(), "missing.mp3"), Title: "t"}); err == nil {
		t.Fatal("expected error for missing source file")
	}
	if got := testsupport.ReadFile(t, cfg.Paths.FeedFile); got != testsupport.SampleFeed {
		t.Fatal("feed modified by rejected requests")
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := publisher.New(nil, nil); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestAddUsesConfiguredBaseURL(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSampleFeed(), testsupport.WithBaseURL("https://cdn.example.com/pod"))
	pub, err := publisher.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("publisher.New: %v", err)
	}
	result, err := pub.Add(context.Background(), publisher.Request{Source: writeSource(t, 1), Title: "Hosted Elsewhere"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if result.Episode.AudioURL != "https://cdn.example.com/pod/episodes/hosted-elsewhere.mp3" {
		t.Fatalf("unexpected audio url %q", result.Episode.AudioURL)
	}
	if result.FeedURL != "https://cdn.example.com/pod/feed.xml" {
		t.Fatalf("unexpected feed url %q", result.FeedURL)
	}
}
