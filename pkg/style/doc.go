// Package style defines the visual styling for dotdot's terminal output.
//
// Styles have semantic names ("Success", "Path") and are loaded from an
// embedded YAML theme. Colour output is decided once per process with
// SetColorMode.
package style
