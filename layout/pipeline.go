package layout

import "github.com/SaiNageswarS/paragraph/core"

// SpanPipeline lays out pages whose engine already grouped spans into lines:
// build, merge, assemble.
type SpanPipeline struct {
	Merger    Merger
	Assembler Assembler
}

// Page returns the page's elements in engine block order.
func (p SpanPipeline) Page(page SpanPage) []core.TextElement {
	var out []core.TextElement
	for _, b := range page.Blocks {
		if b.Kind != BlockText {
			continue
		}
		lines := make([]core.LineElement, 0, len(b.Lines))
		for _, sl := range b.Lines {
			if l, ok := BuildLine(sl); ok {
				lines = append(lines, l)
			}
		}
		lines = p.Merger.Merge(lines)
		if el, ok := p.Assembler.Assemble(b.BBox, page.Geometry, lines); ok {
			out = append(out, el)
		}
	}
	return out
}

// CharPipeline lays out glyph-level pages: segment, build, assemble. Lines
// come from the engine's own grouping and are not merged.
type CharPipeline struct {
	Assembler Assembler
}

// Page returns the page's elements in engine block order. The block bbox is
// the union of its line boxes.
func (p CharPipeline) Page(page CharPage) []core.TextElement {
	var out []core.TextElement
	for _, b := range page.Blocks {
		if b.Kind != BlockText {
			continue
		}
		lines := make([]core.LineElement, 0, len(b.Lines))
		for _, cl := range b.Lines {
			if l, ok := BuildCharLine(cl); ok {
				lines = append(lines, l)
			}
		}
		if el, ok := p.Assembler.Assemble(LineBounds(lines), page.Geometry, lines); ok {
			out = append(out, el)
		}
	}
	return out
}
