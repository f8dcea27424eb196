package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePodcast(); err != nil {
		return err
	}
	if c.Probe.TimeoutSeconds <= 0 {
		return errors.New("probe.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.FeedFile) == "" {
		return errors.New("paths.feed_file must be set")
	}
	return nil
}

func (c *Config) validatePodcast() error {
	parsed, err := url.Parse(c.Podcast.BaseURL)
	if err != nil {
		return fmt.Errorf("podcast.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("podcast.base_url must be an http(s) URL, got %q", c.Podcast.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("podcast.base_url must include a host, got %q", c.Podcast.BaseURL)
	}
	switch c.Podcast.GUIDStyle {
	case GUIDStyleTimestamp, GUIDStyleUUID:
	default:
		return fmt.Errorf("podcast.guid_style must be %q or %q, got %q", GUIDStyleTimestamp, GUIDStyleUUID, c.Podcast.GUIDStyle)
	}
	if c.Podcast.MIMEType == "" {
		return errors.New("podcast.mime_type must be set")
	}
	return nil
}
