package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"podfeed/internal/config"
	"podfeed/internal/deps"
	"podfeed/internal/feed"
	"podfeed/internal/logging"
)

// CheckFeed verifies the feed file is readable, writable and still carries
// the closing channel marker new items are spliced before.
func CheckFeed(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a regular file)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	// The feed directory must accept the temp file the atomic rewrite renames.
	if err := unix.Access(filepath.Dir(path), unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: directory not writable: %v)", path, err)}
	}
	if err := feed.Open(path, logging.NewNop()).CheckAnchor(); err != nil {
		switch {
		case errors.Is(err, feed.ErrMalformed):
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
		case errors.Is(err, feed.ErrMarkerNotFound):
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no </channel> marker)", path)}
		default:
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckEpisodesDir verifies the episodes directory is usable. A missing
// directory passes when its nearest existing ancestor is writable, since the
// first add creates it.
func CheckEpisodesDir(name, path string) Result {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
		}
		if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
	}
	if !os.IsNotExist(err) {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	parent := filepath.Dir(path)
	for {
		parentInfo, statErr := os.Stat(parent)
		if statErr == nil {
			if !parentInfo.IsDir() {
				return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s is not a directory)", path, parent)}
			}
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: no existing parent)", path)}
		}
		parent = next
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckFFprobe reports whether the configured ffprobe binary resolves. The
// check is optional: without ffprobe episodes are published without a
// duration.
func CheckFFprobe(_ context.Context, cfg *config.Config) Result {
	const name = "FFprobe"
	status := deps.Check(deps.Requirement{
		Name:        name,
		Command:     cfg.FFprobeBinary(),
		Description: "Reports episode duration",
		Optional:    true,
	})[0]
	if !status.Available {
		return Result{Name: name, Optional: true, Detail: status.Detail + "; episodes will omit itunes:duration"}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: status.Path}
}
