// Package links exposes paths from inside repos at the workspace root as
// relative symlinks, and reports or removes them.
//
// Every expose declaration becomes an ExposeMapping keyed by the basename
// of the exposed path. Two mappings with the same basename conflict; the
// first in declaration order wins when forced.
package links
