// Package filesystem provides filesystem implementations for dotdot.
//
// This package contains implementations of the types.FS interface backed
// by afero: the OS filesystem for real runs and in-memory filesystems for
// tests that do not need symlinks.
package filesystem
