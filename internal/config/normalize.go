package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePodcast()
	c.normalizeProbe()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("PODFEED_FEED_FILE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.FeedFile = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("PODFEED_EPISODES_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.EpisodesDir = strings.TrimSpace(value)
	}
	return c.ExpandPaths()
}

// ExpandPaths expands and absolutizes the path fields. Callers that override
// paths after Load (for example from CLI flags) run it again.
func (c *Config) ExpandPaths() error {
	var err error
	if strings.TrimSpace(c.Paths.FeedFile) == "" {
		c.Paths.FeedFile = filepath.Join(programDir(), defaultFeedFileName)
	}
	if c.Paths.FeedFile, err = expandPath(strings.TrimSpace(c.Paths.FeedFile)); err != nil {
		return fmt.Errorf("paths.feed_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.EpisodesDir) == "" {
		c.Paths.EpisodesDir = filepath.Join(filepath.Dir(c.Paths.FeedFile), defaultEpisodesDirName)
	}
	if c.Paths.EpisodesDir, err = expandPath(strings.TrimSpace(c.Paths.EpisodesDir)); err != nil {
		return fmt.Errorf("paths.episodes_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizePodcast() {
	if value, ok := os.LookupEnv("PODFEED_BASE_URL"); ok && strings.TrimSpace(value) != "" {
		c.Podcast.BaseURL = value
	}
	c.Podcast.BaseURL = strings.TrimRight(strings.TrimSpace(c.Podcast.BaseURL), "/")
	if c.Podcast.BaseURL == "" {
		c.Podcast.BaseURL = defaultBaseURL
	}
	c.Podcast.FeedPath = strings.Trim(strings.TrimSpace(c.Podcast.FeedPath), "/")
	if c.Podcast.FeedPath == "" {
		c.Podcast.FeedPath = defaultFeedPath
	}
	// An empty episodes_path is allowed: files are then served from the base URL.
	c.Podcast.EpisodesPath = strings.Trim(strings.TrimSpace(c.Podcast.EpisodesPath), "/")
	c.Podcast.GUIDPrefix = strings.TrimSpace(c.Podcast.GUIDPrefix)
	c.Podcast.GUIDStyle = strings.ToLower(strings.TrimSpace(c.Podcast.GUIDStyle))
	if c.Podcast.GUIDStyle == "" {
		c.Podcast.GUIDStyle = defaultGUIDStyle
	}
	c.Podcast.MIMEType = strings.TrimSpace(c.Podcast.MIMEType)
	if c.Podcast.MIMEType == "" {
		c.Podcast.MIMEType = defaultMIMEType
	}
	ext := strings.ToLower(strings.TrimSpace(c.Podcast.FileExtension))
	if ext == "" {
		ext = defaultFileExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Podcast.FileExtension = ext
}

func (c *Config) normalizeProbe() {
	c.Probe.FFprobeBinary = strings.TrimSpace(c.Probe.FFprobeBinary)
	if c.Probe.FFprobeBinary == "" {
		c.Probe.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Probe.TimeoutSeconds <= 0 {
		c.Probe.TimeoutSeconds = defaultProbeTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// OverridePaths applies command-line path overrides. When only the feed file
// moves, an episodes directory that was derived from the old feed location
// follows it.
func (c *Config) OverridePaths(feedFile, episodesDir string) error {
	feedFile = strings.TrimSpace(feedFile)
	episodesDir = strings.TrimSpace(episodesDir)
	if feedFile == "" && episodesDir == "" {
		return nil
	}
	if feedFile != "" {
		derived := filepath.Join(filepath.Dir(c.Paths.FeedFile), defaultEpisodesDirName)
		if episodesDir == "" && c.Paths.EpisodesDir == derived {
			c.Paths.EpisodesDir = ""
		}
		c.Paths.FeedFile = feedFile
	}
	if episodesDir != "" {
		c.Paths.EpisodesDir = episodesDir
	}
	return c.ExpandPaths()
}
