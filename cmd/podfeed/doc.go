// Package main hosts the podfeed CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration (config file, .env,
// environment and flags), builds the structured logger and hands each
// invocation to the internal packages: publisher for "add", feed for "list",
// preflight for "check". Logs go to stderr so stdout only carries the
// command's own output.
package main
