package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"podfeed/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The feed lives at <tmp>/site/feed.xml and episodes under <tmp>/site/episodes.
// ffprobe is pointed at a missing binary unless WithStubbedFFprobe is applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.FeedFile = filepath.Join(base, "site", "feed.xml")
	cfgVal.Paths.EpisodesDir = filepath.Join(base, "site", "episodes")
	cfgVal.Podcast.BaseURL = "https://cast.example.com"
	cfgVal.Probe.FFprobeBinary = filepath.Join(base, "bin", "missing-ffprobe")
	cfgVal.Probe.TimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBaseURL overrides the public base URL on the test config.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Podcast.BaseURL = url
	}
}

// WithGUIDStyle overrides the GUID style on the test config.
func WithGUIDStyle(style string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Podcast.GUIDStyle = style
	}
}

// WithSampleFeed writes SampleFeed to the configured feed path.
func WithSampleFeed() ConfigOption {
	return func(b *configBuilder) {
		WriteFeed(b.t, b.cfg.Paths.FeedFile, SampleFeed)
	}
}

// WithStubbedFFprobe writes an ffprobe stand-in that prints output and exits
// with status code, and points the config at it.
func WithStubbedFFprobe(output string, code int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Probe.FFprobeBinary = WriteStub(b.t, filepath.Join(b.baseDir, "bin"), "ffprobe", output, code)
	}
}

// WriteStub writes an executable shell script named name into dir that prints
// output to stdout and exits with code. It returns the script path.
func WriteStub(t testing.TB, dir, name, output string, code int) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	script := "#!/bin/sh\n"
	if output != "" {
		script += "printf '%s\\n' '" + output + "'\n"
	}
	script += "exit " + strconv.Itoa(code) + "\n"
	target := filepath.Join(dir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Paths.FeedFile))
}
