package layout

import (
	"strings"
	"unicode"

	"github.com/SaiNageswarS/paragraph/core"
)

// Segment splits a glyph stream into spans of uniform bold/italic/size.
//
// Whitespace runs collapse to a single space that stays with the span being
// accumulated; whitespace never opens or closes a span. A closed span keeps at
// most one trailing space.
func Segment(chars []Char) []core.TextSpan {
	var (
		spans []core.TextSpan
		text  string
		style Style
	)
	for _, c := range chars {
		if isSpace(c.Text) {
			if !strings.HasSuffix(text, " ") {
				text += " "
			}
			continue
		}

		cs := c.Style
		cs.Size = RoundSize(cs.Size)
		if cs != style && text != "" {
			spans = append(spans, closeSpan(text, style))
			text = c.Text
		} else {
			text += c.Text
		}
		style = cs
	}
	if text != "" {
		spans = append(spans, closeSpan(text, style))
	}
	return spans
}

func closeSpan(text string, s Style) core.TextSpan {
	trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
	if strings.HasSuffix(text, " ") {
		trimmed += " "
	}
	return core.TextSpan{Text: trimmed, IsBold: s.Bold, IsItalic: s.Italic, Size: s.Size}
}

func isSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
