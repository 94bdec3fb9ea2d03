// Package preflight provides readiness checks for the filesystem paths Engage
// depends on.
//
// The CLI "engage check" command runs RunAll and prints one row per result.
// Checks never modify anything: a missing profile directory is reported, not
// created. The journal check is skipped when the journal is disabled.
package preflight
