// Package ui provides semantic text formatting for installer output.
//
// Formatters carry meaning (Success, Error, Path, Code, ...) rather than raw
// colors, so output degrades gracefully when color is unavailable: with color
// disabled, some formatters substitute plain-text decoration (backticks for
// Code, quotes for Highlight) instead.
//
// Color is disabled when NO_COLOR is set or when fatih/color detects a
// non-terminal sink.
//
//	msg := ui.Success.Sprint("✓") + " Installed to " + ui.Path.Sprint(dir)
package ui
