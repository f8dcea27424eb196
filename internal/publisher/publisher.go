package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"podfeed/internal/config"
	"podfeed/internal/episode"
	"podfeed/internal/feed"
	"podfeed/internal/ingest"
	"podfeed/internal/logging"
	"podfeed/internal/media/ffprobe"
)

// ProbeFunc returns the duration of the file at path.
type ProbeFunc func(ctx context.Context, path string) (ffprobe.Duration, error)

// Request describes one episode to publish.
type Request struct {
	Source      string
	Title       string
	Description string
}

// Result reports what a successful Add produced.
type Result struct {
	Media   ingest.Media
	Episode episode.Descriptor
	FeedURL string
	// ProbeErr is set when the duration probe failed and the item was
	// published without a duration.
	ProbeErr error
}

// Publisher wires the pipeline components for a single feed.
type Publisher struct {
	cfg      *config.Config
	logger   *slog.Logger
	ingester *ingest.Ingester
	store    *feed.Store
	builder  *episode.Builder
	probe    ProbeFunc
}

// Option customizes a Publisher.
type Option func(*Publisher)

// WithProbe replaces the duration probe.
func WithProbe(fn ProbeFunc) Option {
	return func(p *Publisher) {
		if fn != nil {
			p.probe = fn
		}
	}
}

// WithBuilder replaces the episode builder.
func WithBuilder(b *episode.Builder) Option {
	return func(p *Publisher) {
		if b != nil {
			p.builder = b
		}
	}
}

// New constructs a Publisher from cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Publisher, error) {
	if cfg == nil {
		return nil, errors.New("publisher requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Publisher{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "publisher"),
		ingester: ingest.New(cfg.Paths.EpisodesDir, cfg.Podcast.FileExtension, logger),
		store:    feed.Open(cfg.Paths.FeedFile, logger),
		builder:  episode.NewBuilder(cfg),
	}
	p.probe = p.ffprobeDuration
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Publisher) ffprobeDuration(ctx context.Context, path string) (ffprobe.Duration, error) {
	probeCtx, cancel := context.WithTimeout(ctx, time.Duration(p.cfg.Probe.TimeoutSeconds)*time.Second)
	defer cancel()
	return ffprobe.ProbeDuration(probeCtx, p.cfg.FFprobeBinary(), path)
}

// Add publishes req and returns the stored media and the feed item written.
func (p *Publisher) Add(ctx context.Context, req Request) (Result, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return Result{}, errors.New("title is required")
	}
	if strings.TrimSpace(req.Source) == "" {
		return Result{}, errors.New("audio file path is required")
	}

	if err := p.store.CheckAnchor(); err != nil {
		return Result{}, err
	}

	media, err := p.ingester.Ingest(req.Source, title)
	if err != nil {
		return Result{}, err
	}
	logger := p.logger.With(logging.String(logging.FieldEpisode, media.Slug))

	duration, probeErr := p.probe(ctx, media.Path)
	switch {
	case probeErr != nil:
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Result{}, ctxErr
		}
		logging.WarnWithContext(logger, "duration probe failed", "duration_probe_failed",
			logging.Error(probeErr),
			logging.String("path", media.Path),
			logging.String(logging.FieldImpact, "feed item published without itunes:duration"),
			logging.String(logging.FieldErrorHint, "install ffprobe or set probe.ffprobe_binary"),
		)
		duration = ffprobe.Duration{}
	case !duration.Known:
		logger.Info("ffprobe reported no duration", logging.String("path", media.Path))
	default:
		logger.Debug("duration probed", logging.Int("duration_seconds", duration.Seconds))
	}

	descriptor, err := p.builder.Build(episode.Input{
		Title:       title,
		Description: req.Description,
		Filename:    media.Filename,
		ByteSize:    media.Size,
		Duration:    duration,
	})
	if err != nil {
		return Result{}, err
	}

	if err := p.store.Append(ctx, descriptor); err != nil {
		return Result{}, fmt.Errorf("update feed: %w", err)
	}

	logger.Info("episode published",
		logging.String("title", descriptor.Title),
		logging.String("guid", descriptor.GUID),
		logging.Int64("size_bytes", descriptor.ByteSize),
		logging.String("duration", duration.String()),
	)
	return Result{
		Media:    media,
		Episode:  descriptor,
		FeedURL:  p.cfg.FeedURL(),
		ProbeErr: probeErr,
	}, nil
}
