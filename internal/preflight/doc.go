// Package preflight provides readiness checks for the filesystem paths and
// remote catalog moviewatch depends on.
//
// The CLI "moviewatch doctor" command runs RunAll and renders the results;
// individual checks can be used on their own.
package preflight
