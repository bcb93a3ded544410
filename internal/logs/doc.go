// Package logs reads back the JSON diagnostics file written by the logging
// package.
//
// Tail returns the last N lines or everything after a byte offset and can
// wait for new lines, which is what `moviewatch logs --follow` polls on.
// ParseEntry and Filter turn raw lines into records that can be narrowed to
// one movie or a minimum level before rendering.
package logs
