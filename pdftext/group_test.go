package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiNageswarS/paragraph/core"
	"github.com/SaiNageswarS/paragraph/layout"
)

// word lays glyphs out left to right, each half the font size wide.
func word(text string, x, baseline, size float64, measured bool) []Glyph {
	var out []Glyph
	for _, r := range text {
		w := size / 2
		out = append(out, Glyph{
			Char: layout.Char{
				Text:  string(r),
				Style: layout.Style{Size: size},
				BBox:  core.Rect{X0: x, Y0: baseline, X1: x + w, Y1: baseline + size},
			},
			Measured: measured,
		})
		x += w
	}
	return out
}

func lineText(l layout.CharLine) string {
	s := ""
	for _, c := range l.Chars {
		s += c.Text
	}
	return s
}

func concatGlyphs(parts ...[]Glyph) []Glyph {
	var out []Glyph
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestGroupEmpty(t *testing.T) {
	assert.Nil(t, NewGrouper().Group(nil))
}

func TestGroupLinesAndBlocks(t *testing.T) {
	glyphs := concatGlyphs(
		word("Hello", 72, 700, 12, true),
		word("world", 108, 700, 12, true),
		word("again", 72, 686, 12, true),
		word("Far", 72, 600, 12, true),
	)

	blocks := NewGrouper().Group(glyphs)
	require.Len(t, blocks, 2)
	require.Len(t, blocks[0].Lines, 2)
	assert.Equal(t, layout.BlockText, blocks[0].Kind)
	assert.Equal(t, "Hello world", lineText(blocks[0].Lines[0]))
	assert.Equal(t, "again", lineText(blocks[0].Lines[1]))
	assert.Equal(t, core.Rect{X0: 72, Y0: 700, X1: 138, Y1: 712}, blocks[0].Lines[0].BBox)

	require.Len(t, blocks[1].Lines, 1)
	assert.Equal(t, "Far", lineText(blocks[1].Lines[0]))
}

func TestGroupNoSpaceForUnmeasuredGlyphs(t *testing.T) {
	glyphs := concatGlyphs(
		word("ab", 0, 100, 10, false),
		word("cd", 40, 100, 10, false),
	)
	blocks := NewGrouper().Group(glyphs)
	require.Len(t, blocks, 1)
	assert.Equal(t, "abcd", lineText(blocks[0].Lines[0]))
}

func TestGroupNoDoubleSpace(t *testing.T) {
	glyphs := concatGlyphs(
		word("ab ", 0, 100, 10, true),
		word("cd", 40, 100, 10, true),
	)
	blocks := NewGrouper().Group(glyphs)
	require.Len(t, blocks, 1)
	assert.Equal(t, "ab cd", lineText(blocks[0].Lines[0]))
}

func TestGroupSortsLineLeftToRight(t *testing.T) {
	glyphs := concatGlyphs(
		word("tail", 50, 100, 10, false),
		word("head", 0, 102, 10, false),
	)
	blocks := NewGrouper().Group(glyphs)
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Lines, 1)
	assert.Equal(t, "headtail", lineText(blocks[0].Lines[0]))
}

func TestGroupSplitsColumns(t *testing.T) {
	glyphs := concatGlyphs(
		word("left", 0, 700, 10, false),
		word("column", 0, 688, 10, false),
		word("right", 300, 700, 10, false),
	)
	blocks := NewGrouper().Group(glyphs)
	require.Len(t, blocks, 2)
	assert.Len(t, blocks[0].Lines, 2)
	assert.Equal(t, "right", lineText(blocks[1].Lines[0]))
}

func TestGroupCustomConfig(t *testing.T) {
	glyphs := concatGlyphs(
		word("one", 0, 700, 10, false),
		word("two", 0, 670, 10, false),
	)
	assert.Len(t, NewGrouper().Group(glyphs), 2)

	loose := NewGrouperWithConfig(GroupConfig{LineTolerance: 0.5, WordGap: 0.25, BlockGap: 3})
	assert.Len(t, loose.Group(glyphs), 1)
}

func TestGroupFeedsCharPipeline(t *testing.T) {
	bold := word("Bold", 0, 700, 12, true)
	for i := range bold {
		bold[i].Char.Style.Bold = true
	}
	glyphs := concatGlyphs(bold, word("text", 30, 700, 12, true))

	page := layout.CharPage{
		Geometry: layout.PageGeometry{Width: 612, Height: 792},
		Blocks:   NewGrouper().Group(glyphs),
	}
	els := layout.CharPipeline{Assembler: layout.Assembler{Join: layout.JoinNewline}}.Page(page)
	require.Len(t, els, 1)
	assert.Equal(t, "Bold text", els[0].Text)
	assert.Equal(t, []core.TextSpan{
		{Text: "Bold ", IsBold: true, Size: 12},
		{Text: "text", Size: 12},
	}, els[0].Lines[0].Spans)
}
