// Package preflight provides readiness checks for the files and binaries
// podfeed depends on.
//
// The CLI "podfeed check" command runs RunAll and renders the results. Each
// check is independent so one failing path does not hide the others.
package preflight
