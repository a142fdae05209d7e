// core_model.go
// Paragraph data model produced by every extractor. Values are immutable once
// constructed and are owned by the caller that requested extraction.

package core

import "strings"

// Rect is a page‑space rectangle in the engine's native coordinates.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Union returns the smallest rectangle covering r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		X0: min(r.X0, o.X0),
		Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1),
		Y1: max(r.Y1, o.Y1),
	}
}

// IsZero reports whether r is the zero rectangle.
func (r Rect) IsZero() bool { return r == Rect{} }

// TextSpan is a maximal run of text sharing bold, italic and size.
type TextSpan struct {
	Text     string  `json:"text"`
	IsBold   bool    `json:"is_bold"`
	IsItalic bool    `json:"is_italic"`
	Size     float64 `json:"size"`
}

// LineElement is one visual line; Text is the concatenation of its spans.
type LineElement struct {
	BBox  Rect       `json:"bbox"`
	Spans []TextSpan `json:"spans"`
	Text  string     `json:"text"`
}

// NewLineElement builds a line, deriving Text from the spans in order.
func NewLineElement(bbox Rect, spans []TextSpan) LineElement {
	cp := append([]TextSpan(nil), spans...)
	var sb strings.Builder
	for _, s := range cp {
		sb.WriteString(s.Text)
	}
	return LineElement{BBox: bbox, Spans: cp, Text: sb.String()}
}

// Bbox locates a paragraph on a page.
type Bbox struct {
	X0         float64 `json:"x0"`
	Y0         float64 `json:"y0"`
	X1         float64 `json:"x1"`
	Y1         float64 `json:"y1"`
	Page       int     `json:"page"`
	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`
}

// TextElement is one reading block (paragraph‑like unit) of a page.
type TextElement struct {
	BBox  Bbox          `json:"bbox"`
	Text  string        `json:"text"`
	Lines []LineElement `json:"lines"`
}
