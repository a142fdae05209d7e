package mupdf

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SaiNageswarS/paragraph/core"
	"github.com/SaiNageswarS/paragraph/layout"
)

// Document mirrors `mutool draw -F stext.json` output.
type Document struct {
	Pages []Page `json:"pages"`
}

type Page struct {
	Blocks []Block `json:"blocks"`
}

type Block struct {
	Type  string `json:"type"`
	BBox  BBox   `json:"bbox"`
	Lines []Line `json:"lines"`
}

type BBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (b BBox) Rect() core.Rect {
	return core.Rect{X0: b.X, Y0: b.Y, X1: b.X + b.W, Y1: b.Y + b.H}
}

type Line struct {
	WMode int     `json:"wmode"`
	BBox  BBox    `json:"bbox"`
	Font  Font    `json:"font"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
}

type Font struct {
	Name   string  `json:"name"`
	Family string  `json:"family"`
	Weight string  `json:"weight"`
	Style  string  `json:"style"`
	Size   float64 `json:"size"`
}

// Flags encodes the font description with the engine flag bit contract.
func (f Font) Flags() layout.FontFlags {
	var flags layout.FontFlags
	if strings.EqualFold(f.Weight, "bold") {
		flags |= layout.FlagBold
	}
	switch strings.ToLower(f.Style) {
	case "italic", "oblique":
		flags |= layout.FlagItalic
	}
	switch strings.ToLower(f.Family) {
	case "serif":
		flags |= layout.FlagSerifed
	case "monospace":
		flags |= layout.FlagMonospaced
	}
	return flags
}

// Decode parses stext JSON.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("mupdf: decode stext json: %w", err)
	}
	return &doc, nil
}

// SpanPage converts one decoded page. mutool reports a single font per line,
// so every line carries exactly one span; lines with no text have none.
func (p Page) SpanPage(geo layout.PageGeometry, log *slog.Logger) layout.SpanPage {
	out := layout.SpanPage{Geometry: geo, Blocks: make([]layout.SpanBlock, 0, len(p.Blocks))}
	for _, b := range p.Blocks {
		sb := layout.SpanBlock{Kind: layout.BlockImage, BBox: b.BBox.Rect()}
		if b.Type != "text" {
			out.Blocks = append(out.Blocks, sb)
			continue
		}
		sb.Kind = layout.BlockText
		sb.Lines = make([]layout.SpanLine, 0, len(b.Lines))
		for _, l := range b.Lines {
			sl := layout.SpanLine{BBox: l.BBox.Rect()}
			if l.Text != "" {
				flags := l.Font.Flags()
				sl.Spans = []layout.Span{{Text: l.Text, Flags: flags, Size: l.Font.Size}}
				if log != nil {
					log.Debug("mupdf: line", "page", geo.Index+1, "font", l.Font.Name, "flags", flags)
				}
			}
			sb.Lines = append(sb.Lines, sl)
		}
		out.Blocks = append(out.Blocks, sb)
	}
	return out
}
