package layout

import (
	"math"

	"github.com/SaiNageswarS/paragraph/core"
)

// BuildLine converts an engine line into a LineElement. Lines without spans
// are reported as !ok and dropped by callers.
func BuildLine(l SpanLine) (core.LineElement, bool) {
	if len(l.Spans) == 0 {
		return core.LineElement{}, false
	}
	spans := make([]core.TextSpan, len(l.Spans))
	for i, s := range l.Spans {
		spans[i] = core.TextSpan{
			Text:     s.Text,
			IsBold:   s.Flags.IsBold(),
			IsItalic: s.Flags.IsItalic(),
			Size:     RoundSize(s.Size),
		}
	}
	return core.NewLineElement(l.BBox, spans), true
}

// BuildCharLine segments a glyph line into spans. The engine bbox is used when
// present, otherwise the glyph bounds.
func BuildCharLine(l CharLine) (core.LineElement, bool) {
	spans := Segment(l.Chars)
	if len(spans) == 0 {
		return core.LineElement{}, false
	}
	bbox := l.BBox
	if bbox.IsZero() {
		bbox = CharBounds(l.Chars)
	}
	return core.NewLineElement(bbox, spans), true
}

// CharBounds is the min/max rectangle over the glyphs.
func CharBounds(chars []Char) core.Rect {
	if len(chars) == 0 {
		return core.Rect{}
	}
	r := core.Rect{X0: math.Inf(1), Y0: math.Inf(1), X1: math.Inf(-1), Y1: math.Inf(-1)}
	for _, c := range chars {
		r = r.Union(c.BBox)
	}
	return r
}

// LineBounds is the min/max rectangle over the lines.
func LineBounds(lines []core.LineElement) core.Rect {
	if len(lines) == 0 {
		return core.Rect{}
	}
	r := lines[0].BBox
	for _, l := range lines[1:] {
		r = r.Union(l.BBox)
	}
	return r
}
