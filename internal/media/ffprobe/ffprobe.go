package ffprobe

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

var (
	// ErrNotInstalled reports that the ffprobe binary could not be found on PATH.
	ErrNotInstalled = errors.New("ffprobe not installed")
	// ErrUnparseable reports ffprobe output that is not a duration in seconds.
	ErrUnparseable = errors.New("unparseable ffprobe duration")
)

// Duration is the container-level playback length reported by ffprobe.
type Duration struct {
	Seconds int
	Known   bool
}

// String renders the duration as whole seconds, or "unknown".
func (d Duration) String() string {
	if !d.Known {
		return "unknown"
	}
	return strconv.Itoa(d.Seconds)
}

// ProbeDuration executes ffprobe against path, requesting only the container
// duration in bare CSV form, and truncates the result to whole seconds.
func ProbeDuration(ctx context.Context, binary string, path string) (Duration, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Duration{}, errors.New("ffprobe duration: empty path")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "quiet", "-show_entries", "format=duration", "-of", "csv=p=0", "-i", path)
	output, err := cmd.Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Duration{}, fmt.Errorf("ffprobe duration: %w: %s", ErrNotInstalled, binary)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Duration{}, fmt.Errorf("ffprobe duration: %w", ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Duration{}, fmt.Errorf("ffprobe duration: exit status %d: %s", exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Duration{}, fmt.Errorf("ffprobe duration: %w", err)
	}
	return ParseDuration(string(output))
}

// ParseDuration interprets ffprobe's csv=p=0 duration output. Empty output and
// "N/A" yield an unknown Duration without error.
func ParseDuration(output string) (Duration, error) {
	value := firstLine(output)
	if value == "" || strings.EqualFold(value, "N/A") {
		return Duration{}, nil
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return Duration{}, fmt.Errorf("%w: %q", ErrUnparseable, value)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return Duration{}, fmt.Errorf("%w: %q", ErrUnparseable, value)
	}
	return Duration{Seconds: int(math.Trunc(seconds)), Known: true}, nil
}

func firstLine(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return strings.TrimSuffix(trimmed, ",")
		}
	}
	return ""
}
