// Package layout rebuilds paragraphs from engine output: style runs become
// spans, duplicate line detections are merged, and lines are joined into
// paragraph text with a newline-or-space heuristic.
package layout

import (
	"math"
	"strings"
)

// Style is the part of a glyph's appearance that separates spans.
type Style struct {
	Bold   bool
	Italic bool
	Size   float64
}

// RoundSize rounds a font size to 2 decimals so float noise does not split runs.
func RoundSize(size float64) float64 {
	return math.Round(size*100) / 100
}

// StyleFromFontName derives bold/italic from a font name such as
// "Helvetica-BoldOblique" or "ABCDEF+Times-Italic".
func StyleFromFontName(name string, size float64) Style {
	return Style{
		Bold:   strings.Contains(name, "Bold") || strings.Contains(name, "bold"),
		Italic: strings.Contains(name, "Italic") || strings.Contains(name, "italic"),
		Size:   RoundSize(size),
	}
}

// FontFlags is the engine's integer font descriptor.
type FontFlags uint32

const (
	FlagSuperscript FontFlags = 1 << iota
	FlagItalic
	FlagSerifed
	FlagMonospaced
	FlagBold
)

func (f FontFlags) IsBold() bool   { return f&FlagBold != 0 }
func (f FontFlags) IsItalic() bool { return f&FlagItalic != 0 }

// String renders the flags for diagnostics, e.g. "italic, serifed, proportional".
// Only bold and italic ever take part in grouping decisions.
func (f FontFlags) String() string {
	var parts []string
	if f&FlagSuperscript != 0 {
		parts = append(parts, "superscript")
	}
	if f&FlagItalic != 0 {
		parts = append(parts, "italic")
	}
	if f&FlagSerifed != 0 {
		parts = append(parts, "serifed")
	} else {
		parts = append(parts, "sans")
	}
	if f&FlagMonospaced != 0 {
		parts = append(parts, "monospaced")
	} else {
		parts = append(parts, "proportional")
	}
	if f&FlagBold != 0 {
		parts = append(parts, "bold")
	}
	return strings.Join(parts, ", ")
}
