package pdftext

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/SaiNageswarS/paragraph/core"
	"github.com/SaiNageswarS/paragraph/layout"
)

// Glyph is a decoded character plus whether the engine knew its advance width.
type Glyph struct {
	Char     layout.Char
	Measured bool
}

func (g Glyph) baseline() float64 { return g.Char.BBox.Y0 }
func (g Glyph) size() float64     { return g.Char.Style.Size }

// GroupConfig holds the thresholds used to rebuild lines and blocks from a
// glyph stream. All values are fractions of the glyph size or line height.
type GroupConfig struct {
	// LineTolerance is the baseline difference, as a fraction of the larger
	// glyph size, under which two glyphs share a line (default: 0.5)
	LineTolerance float64

	// WordGap is the horizontal gap, as a fraction of glyph size, above which
	// a space is inserted between two measured glyphs (default: 0.25)
	WordGap float64

	// BlockGap is the vertical gap, as a fraction of average line height,
	// above which a new block starts (default: 1.5)
	BlockGap float64
}

// DefaultGroupConfig returns the thresholds used by the pdftext backend.
func DefaultGroupConfig() GroupConfig {
	return GroupConfig{
		LineTolerance: 0.5,
		WordGap:       0.25,
		BlockGap:      1.5,
	}
}

// Grouper turns a page's glyph stream into blocks of lines.
type Grouper struct {
	config GroupConfig
}

// NewGrouper creates a grouper with the default configuration.
func NewGrouper() *Grouper {
	return &Grouper{config: DefaultGroupConfig()}
}

// NewGrouperWithConfig creates a grouper with custom thresholds.
func NewGrouperWithConfig(config GroupConfig) *Grouper {
	return &Grouper{config: config}
}

// Group returns text blocks in content-stream order.
func (g *Grouper) Group(glyphs []Glyph) []layout.CharBlock {
	if len(glyphs) == 0 {
		return nil
	}
	lines := g.groupIntoLines(glyphs)
	return g.groupLinesIntoBlocks(lines)
}

// groupIntoLines cuts the stream whenever the baseline moves by more than the
// tolerance, then orders each line left to right.
func (g *Grouper) groupIntoLines(glyphs []Glyph) []layout.CharLine {
	var (
		lines   []layout.CharLine
		current []Glyph
	)
	flush := func() {
		if len(current) > 0 {
			lines = append(lines, g.buildLine(current))
		}
		current = nil
	}

	for _, gl := range glyphs {
		if len(current) > 0 {
			first := current[0]
			tolerance := math.Max(gl.size(), first.size()) * g.config.LineTolerance
			if math.Abs(gl.baseline()-first.baseline()) > tolerance {
				flush()
			}
		}
		current = append(current, gl)
	}
	flush()
	return lines
}

func (g *Grouper) buildLine(glyphs []Glyph) layout.CharLine {
	sorted := append([]Glyph(nil), glyphs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Char.BBox.X0 < sorted[j].Char.BBox.X0
	})

	chars := make([]layout.Char, 0, len(sorted))
	for i, gl := range sorted {
		if i > 0 {
			if sp, ok := g.wordSpace(sorted[i-1], gl); ok {
				chars = append(chars, sp)
			}
		}
		chars = append(chars, gl.Char)
	}
	return layout.CharLine{BBox: layout.CharBounds(chars), Chars: chars}
}

// wordSpace synthesises the space a PDF encodes as positioning instead of a
// glyph. Only glyphs with known widths are trusted.
func (g *Grouper) wordSpace(prev, next Glyph) (layout.Char, bool) {
	if !prev.Measured || !next.Measured || isBlank(prev.Char.Text) || isBlank(next.Char.Text) {
		return layout.Char{}, false
	}
	gap := next.Char.BBox.X0 - prev.Char.BBox.X1
	if gap <= g.config.WordGap*math.Max(prev.size(), next.size()) {
		return layout.Char{}, false
	}
	return layout.Char{
		Text:  " ",
		Style: prev.Char.Style,
		BBox: core.Rect{
			X0: prev.Char.BBox.X1,
			Y0: prev.Char.BBox.Y0,
			X1: next.Char.BBox.X0,
			Y1: prev.Char.BBox.Y1,
		},
	}, true
}

// groupLinesIntoBlocks starts a new block on a large vertical gap, when a line
// jumps back up the page, or when consecutive lines do not overlap
// horizontally. PDF y grows upwards.
func (g *Grouper) groupLinesIntoBlocks(lines []layout.CharLine) []layout.CharBlock {
	if len(lines) == 0 {
		return nil
	}

	var blocks []layout.CharBlock
	current := layout.CharBlock{Kind: layout.BlockText, Lines: []layout.CharLine{lines[0]}}
	for i := 1; i < len(lines); i++ {
		prev, curr := lines[i-1].BBox, lines[i].BBox
		gap := prev.Y0 - curr.Y1
		avgHeight := (prev.Height() + curr.Height()) / 2

		if gap > avgHeight*g.config.BlockGap || gap < -avgHeight || !layout.Overlaps(prev, curr, 0) {
			blocks = append(blocks, current)
			current = layout.CharBlock{Kind: layout.BlockText}
		}
		current.Lines = append(current.Lines, lines[i])
	}
	return append(blocks, current)
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
