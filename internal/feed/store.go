package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gofrs/flock"

	"podfeed/internal/fileutil"
	"podfeed/internal/logging"
)

// Store reads and rewrites a single feed document.
type Store struct {
	path     string
	lockPath string
	logger   *slog.Logger
}

// Open returns a Store for the feed at path. The file is not touched until
// Append or Episodes is called.
func Open(path string, logger *slog.Logger) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
		logger:   logging.NewComponentLogger(logger, "feed"),
	}
}

// Path returns the feed document path.
func (s *Store) Path() string {
	return s.path
}

// Read returns the current feed document.
func (s *Store) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("feed file does not exist: %s", s.path)
		}
		return nil, fmt.Errorf("read feed: %w", err)
	}
	return data, nil
}

// CheckAnchor verifies the feed can accept a new item without modifying it.
func (s *Store) CheckAnchor() error {
	data, err := s.Read()
	if err != nil {
		return err
	}
	if _, err := FindAnchor(data); err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	return nil
}

// Append splices item into the feed and atomically replaces the file. On any
// error the feed on disk is left unchanged.
func (s *Store) Append(ctx context.Context, item Item) error {
	lock := flock.New(s.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire feed lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLocked, s.lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release feed lock", logging.Error(err))
		}
	}()

	original, err := s.Read()
	if err != nil {
		return err
	}
	updated, err := Splice(original, item)
	if err != nil {
		return fmt.Errorf("%s: %w", s.path, err)
	}
	if err := verify(original, updated, item.ItemGUID()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fileutil.ReplaceFile(s.path, updated); err != nil {
		return fmt.Errorf("write feed: %w", err)
	}

	s.logger.Info("feed updated",
		logging.String("path", s.path),
		logging.String("guid", item.ItemGUID()),
		logging.Int("bytes_added", len(updated)-len(original)),
	)
	return nil
}
