package layout

import "github.com/SaiNageswarS/paragraph/core"

// Typed records handed over by a backend once it has decoded its engine's
// output. Nothing past this boundary looks at engine-specific structures.

// BlockKind discriminates text blocks from everything else an engine reports.
type BlockKind int

const (
	BlockText BlockKind = iota
	BlockImage
)

// PageGeometry identifies a page and its size.
type PageGeometry struct {
	Index  int // 0-based
	Width  float64
	Height float64
}

// Span is an engine-reported run of text with a flag-encoded style.
type Span struct {
	Text  string
	Flags FontFlags
	Size  float64
}

// SpanLine is an engine-reported line made of pre-grouped spans.
type SpanLine struct {
	BBox  core.Rect
	Spans []Span
}

// SpanBlock is an engine-reported block of pre-grouped lines.
type SpanBlock struct {
	Kind  BlockKind
	BBox  core.Rect
	Lines []SpanLine
}

// SpanPage is one page of pre-grouped engine output.
type SpanPage struct {
	Geometry PageGeometry
	Blocks   []SpanBlock
}

// Char is a single glyph. Text is normally one character.
type Char struct {
	Text  string
	Style Style
	BBox  core.Rect
}

// CharLine is a line of glyphs; a zero BBox is computed from the glyphs.
type CharLine struct {
	BBox  core.Rect
	Chars []Char
}

// CharBlock is a block of glyph lines.
type CharBlock struct {
	Kind  BlockKind
	Lines []CharLine
}

// CharPage is one page of glyph-level engine output.
type CharPage struct {
	Geometry PageGeometry
	Blocks   []CharBlock
}
