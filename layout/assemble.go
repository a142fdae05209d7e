package layout

import (
	"strings"

	"github.com/SaiNageswarS/paragraph/core"
)

// JoinPolicy decides how line texts are glued into paragraph text.
type JoinPolicy int

const (
	// JoinHeuristic breaks after sentence or markdown markers and otherwise
	// joins with a space.
	JoinHeuristic JoinPolicy = iota
	// JoinNewline puts every line on its own line.
	JoinNewline
)

// Assembler turns the final lines of a block into a TextElement.
type Assembler struct {
	FlipY bool // block bbox is bottom-left origin and must be flipped
	Join  JoinPolicy
}

// Assemble builds the element for one block. A block without lines yields
// no element.
func (a Assembler) Assemble(block core.Rect, page PageGeometry, lines []core.LineElement) (core.TextElement, bool) {
	if len(lines) == 0 {
		return core.TextElement{}, false
	}
	if a.FlipY {
		block = FlipY(block, page.Height)
	}

	var text string
	if a.Join == JoinNewline {
		texts := make([]string, len(lines))
		for i, l := range lines {
			texts[i] = l.Text
		}
		text = strings.Join(texts, "\n")
	} else {
		text = JoinLines(lines)
	}

	return core.TextElement{
		BBox: core.Bbox{
			X0:         block.X0,
			Y0:         block.Y0,
			X1:         block.X1,
			Y1:         block.Y1,
			Page:       page.Index,
			PageWidth:  page.Width,
			PageHeight: page.Height,
		},
		Text:  text,
		Lines: append([]core.LineElement(nil), lines...),
	}, true
}

// JoinLines joins line texts left to right, starting a new line after
// sentence ends and markdown markers and using a space otherwise.
func JoinLines(lines []core.LineElement) string {
	text := ""
	for _, l := range lines {
		if text != "" && ShouldAddNewline(text) {
			text += "\n" + l.Text
		} else {
			text += " " + l.Text
		}
		text = strings.TrimSpace(text)
	}
	return text
}

var (
	eosMarks        = ".!?#"
	markdownMarkers = []string{"**", "##"}
)

// ShouldAddNewline reports whether text ends in '.', '!', '?', '#', "**" or "##".
func ShouldAddNewline(text string) bool {
	if text == "" {
		return false
	}
	if strings.ContainsAny(text[len(text)-1:], eosMarks) {
		return true
	}
	for _, m := range markdownMarkers {
		if strings.HasSuffix(text, m) {
			return true
		}
	}
	return false
}
