// Package ffprobe wraps the ffprobe command for container duration lookups.
//
// This package has no podfeed-specific dependencies.
//
// Key types:
//   - Duration: outcome of a probe, with Known reporting whether ffprobe
//     returned a usable value
//
// Primary entry point:
//   - ProbeDuration: executes ffprobe and returns the whole-second duration
//
// ProbeDuration separates "ffprobe ran but the container has no duration"
// (a zero Duration and nil error) from "ffprobe could not run or answer"
// (a non-nil error). Callers decide whether either case is fatal.
package ffprobe
