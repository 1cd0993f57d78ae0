// Package preflight provides readiness checks for the external tools and
// filesystem paths processing depends on.
//
// The CLI runs RunAll before starting work so a missing ffmpeg binary or
// a full disk surfaces immediately instead of mid-pipeline. The "status"
// command uses the same checks to display environment health.
package preflight
