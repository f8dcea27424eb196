// Package config loads, normalizes, and validates podfeed configuration data.
//
// It supplies repository defaults (a feed.xml and episodes/ directory beside
// the executable), expands user paths including tilde shortcuts, reads TOML
// files, and honours environment fallbacks such as PODFEED_BASE_URL. The
// Config type carries every knob the CLI needs so each pipeline step receives
// explicit paths and URLs instead of reaching for package-level constants.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, a trimmed base URL, and clear validation errors.
package config
