package ingest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"podfeed/internal/fileutil"
	"podfeed/internal/logging"
)

// Media describes an audio file stored in the episodes directory.
type Media struct {
	Slug     string
	Filename string
	Path     string
	Size     int64
}

// Ingester copies episodes into a single managed directory.
type Ingester struct {
	dir    string
	ext    string
	logger *slog.Logger
}

// New returns an Ingester storing files under dir with the given extension.
func New(dir, ext string, logger *slog.Logger) *Ingester {
	ext = strings.TrimSpace(ext)
	if ext == "" {
		ext = ".mp3"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &Ingester{
		dir:    dir,
		ext:    ext,
		logger: logging.NewComponentLogger(logger, "ingest"),
	}
}

// Dir returns the managed episodes directory.
func (i *Ingester) Dir() string {
	return i.dir
}

// Target returns the slug and destination path an episode titled title is stored at.
func (i *Ingester) Target(title string) (string, string, error) {
	slug, err := Slugify(title)
	if err != nil {
		return "", "", fmt.Errorf("normalize title %q: %w", title, err)
	}
	return slug, filepath.Join(i.dir, slug+i.ext), nil
}

// Ingest copies source into the episodes directory under the normalized title
// and returns the stored file's final size.
func (i *Ingester) Ingest(source, title string) (Media, error) {
	slug, target, err := i.Target(title)
	if err != nil {
		return Media{}, err
	}

	info, err := os.Stat(source)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Media{}, fmt.Errorf("source audio does not exist: %s", source)
		}
		return Media{}, fmt.Errorf("inspect source audio: %w", err)
	}
	if !info.Mode().IsRegular() {
		return Media{}, fmt.Errorf("source audio %s is not a regular file", source)
	}

	if err := os.MkdirAll(i.dir, 0o755); err != nil {
		return Media{}, fmt.Errorf("create episodes directory %q: %w", i.dir, err)
	}

	if _, err := os.Stat(target); err == nil {
		logging.WarnWithContext(i.logger, "replacing existing episode file", "episode_overwritten",
			logging.String(logging.FieldEpisode, slug),
			logging.String("path", target),
			logging.String(logging.FieldImpact, "previous audio with the same normalized title is lost"),
			logging.String(logging.FieldErrorHint, "use a distinct title to keep both files"),
		)
	}

	size, err := fileutil.CopyFileAtomic(source, target)
	if err != nil {
		return Media{}, fmt.Errorf("copy episode: %w", err)
	}

	i.logger.Info("episode audio stored",
		logging.String(logging.FieldEpisode, slug),
		logging.String("path", target),
		logging.Int64("size_bytes", size),
	)
	return Media{
		Slug:     slug,
		Filename: filepath.Base(target),
		Path:     target,
		Size:     size,
	}, nil
}
