package config

import "path/filepath"

const (
	defaultFeedFileName    = "feed.xml"
	defaultEpisodesDirName = "episodes"
	defaultBaseURL         = "https://podcast.example.com"
	defaultFeedPath        = "feed.xml"
	defaultEpisodesPath    = "episodes"
	defaultGUIDPrefix      = "podfeed-"
	defaultGUIDStyle       = GUIDStyleTimestamp
	defaultMIMEType        = "audio/mpeg"
	defaultFileExtension   = ".mp3"
	defaultFFprobeBinary   = "ffprobe"
	defaultProbeTimeout    = 30
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// GUID styles accepted by podcast.guid_style.
const (
	GUIDStyleTimestamp = "timestamp"
	GUIDStyleUUID      = "uuid"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			FeedFile: filepath.Join(programDir(), defaultFeedFileName),
		},
		Podcast: Podcast{
			BaseURL:       defaultBaseURL,
			FeedPath:      defaultFeedPath,
			EpisodesPath:  defaultEpisodesPath,
			GUIDPrefix:    defaultGUIDPrefix,
			GUIDStyle:     defaultGUIDStyle,
			MIMEType:      defaultMIMEType,
			FileExtension: defaultFileExtension,
		},
		Probe: Probe{
			FFprobeBinary:  defaultFFprobeBinary,
			TimeoutSeconds: defaultProbeTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
