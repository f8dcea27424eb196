package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"podfeed/internal/feed"
	"podfeed/internal/testsupport"
)

func TestAddCommandPublishesEpisode(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSampleFeed(), testsupport.WithStubbedFFprobe("1830.42", 0))
	source := filepath.Join(env.baseDir, "raw.mp3")
	testsupport.WriteFile(t, source, 4096)

	out, stderr, err := runCLI(t, []string{"add", source, "Episode One: Intro!", "First <real> episode"}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v (stderr=%s)", err, stderr)
	}
	stored := filepath.Join(env.cfg.Paths.EpisodesDir, "episode-one-intro.mp3")
	requireContains(t, out, "Copied: "+stored)
	requireContains(t, out, "Duration: 1830s")
	requireContains(t, out, "Episode added: Episode One: Intro!")
	requireContains(t, out, "Feed URL: https://cast.example.com/feed.xml")
	requireContains(t, stderr, "episode published")

	text := testsupport.ReadFile(t, env.cfg.Paths.FeedFile)
	requireContains(t, text, "<description>First &lt;real&gt; episode</description>")
	requireContains(t, text, `<enclosure url="https://cast.example.com/episodes/episode-one-intro.mp3" length="4096" type="audio/mpeg"></enclosure>`)
	requireContains(t, text, "<itunes:duration>1830</itunes:duration>")
	if !strings.HasPrefix(text, strings.Split(testsupport.SampleFeed, "  </channel>")[0]) {
		t.Fatal("existing feed content was not preserved")
	}
	if !strings.HasSuffix(text, "  </channel>\n</rss>\n") {
		t.Fatalf("feed tail changed:\n%s", text)
	}
}

func TestAddCommandWithoutFFprobeWarns(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSampleFeed())
	source := filepath.Join(env.baseDir, "raw.mp3")
	testsupport.WriteFile(t, source, 10)

	out, stderr, err := runCLI(t, []string{"add", source, "Quiet"}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Duration: unknown")
	requireContains(t, stderr, "duration_probe_failed")
	requireContains(t, testsupport.ReadFile(t, env.cfg.Paths.FeedFile), "<description>Quiet</description>")
}

func TestAddCommandRequiresTwoArguments(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSampleFeed())

	_, stderr, err := runCLI(t, []string{"add", "only-one.mp3"}, env.configPath)
	if err == nil {
		t.Fatal("expected usage error")
	}
	requireContains(t, stderr, "Usage:")
	requireContains(t, stderr, "add <audio-file> <title> [description]")

	if _, _, err := runCLI(t, []string{"add", "a", "b", "c", "d"}, env.configPath); err == nil {
		t.Fatal("expected error for too many arguments")
	}
	if got := testsupport.ReadFile(t, env.cfg.Paths.FeedFile); got != testsupport.SampleFeed {
		t.Fatal("feed modified by usage error")
	}
}

func TestAddCommandMissingMarker(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFeed(t, env.cfg.Paths.FeedFile, testsupport.FeedWithoutChannelClose)
	source := filepath.Join(env.baseDir, "raw.mp3")
	testsupport.WriteFile(t, source, 10)

	_, _, err := runCLI(t, []string{"add", source, "Orphan"}, env.configPath)
	if err == nil {
		t.Fatal("expected error for feed without channel close")
	}
	if !errors.Is(err, feed.ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}
	if got := testsupport.ReadFile(t, env.cfg.Paths.FeedFile); got != testsupport.FeedWithoutChannelClose {
		t.Fatal("feed modified")
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.EpisodesDir, "orphan.mp3")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("audio copied despite failure: %v", err)
	}
}

func TestAddCommandFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	feedPath := filepath.Join(env.baseDir, "other", "feed.xml")
	testsupport.WriteFeed(t, feedPath, testsupport.SampleFeed)
	source := filepath.Join(env.baseDir, "raw.mp3")
	testsupport.WriteFile(t, source, 10)

	out, _, err := runCLI(t, []string{
		"--feed", feedPath,
		"--episodes-dir", filepath.Join(env.baseDir, "media"),
		"--base-url", "https://other.example.org/show/",
		"add", source, "Flags",
	}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Copied: "+filepath.Join(env.baseDir, "media", "flags.mp3"))
	requireContains(t, out, "Feed URL: https://other.example.org/show/feed.xml")
	requireContains(t, testsupport.ReadFile(t, feedPath), "https://other.example.org/show/episodes/flags.mp3")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.EpisodesDir, "flags.mp3")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("configured episodes dir should not be used: %v", err)
	}
}

func TestAddCommandBaseURLFromEnvironment(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithSampleFeed())
	t.Setenv("PODFEED_BASE_URL", "https://env.example.net")
	source := filepath.Join(env.baseDir, "raw.mp3")
	testsupport.WriteFile(t, source, 10)

	out, _, err := runCLI(t, []string{"add", source, "Env"}, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Feed URL: https://env.example.net/feed.xml")
}
