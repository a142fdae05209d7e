// Package pdftext is the character-stream backend. Glyphs are decoded with
// github.com/ledongthuc/pdf, grouped into lines and blocks, and segmented into
// style runs before paragraphs are assembled.
package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/SaiNageswarS/paragraph/core"
	"github.com/SaiNageswarS/paragraph/layout"
)

// Alias is the registry key of this backend.
const Alias = "pdftext"

// ExtraJoinHeuristic (bool) joins lines with the newline-or-space heuristic
// instead of one newline per line.
const ExtraJoinHeuristic = "pdftext.join_heuristic"

// US Letter, used when a page carries no MediaBox.
const (
	defaultPageWidth  = 612
	defaultPageHeight = 792
)

// widthEstimate approximates a glyph's advance, as a fraction of its size,
// when the font has no width table.
const widthEstimate = 0.5

var (
	// ErrPageContent is returned when a page's content stream cannot be decoded.
	ErrPageContent = errors.New("pdftext: unreadable page content")
	// ErrPageRange is returned for page selections outside the document.
	ErrPageRange = errors.New("pdftext: page out of range")
)

func init() {
	core.Register(Alias, NewExtractor)
}

type extractor struct {
	grouper *Grouper
}

// NewExtractor returns the character-stream extractor.
func NewExtractor() core.Extractor {
	return &extractor{grouper: NewGrouper()}
}

// NewExtractorWithConfig returns an extractor with custom grouping thresholds.
func NewExtractorWithConfig(config GroupConfig) core.Extractor {
	return &extractor{grouper: NewGrouperWithConfig(config)}
}

func (e *extractor) Extract(ctx context.Context, in io.Reader, opts ...core.Option) ([]core.TextElement, error) {
	cfg := core.BuildConfig(opts...)

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("pdftext: read input: %w", err)
	}
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdftext: open pdf: %w", err)
	}

	pages, err := selectPages(cfg.Pages, r.NumPage())
	if err != nil {
		return nil, err
	}

	// The reader is not shared across goroutines: decode every page first.
	decoded := make([]decodedPage, 0, len(pages))
	for _, num := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dp, err := decodePage(r, num)
		if err != nil {
			return nil, err
		}
		cfg.Logger.Debug("pdftext: page decoded", "page", num, "glyphs", len(dp.glyphs))
		decoded = append(decoded, dp)
	}

	join := layout.JoinNewline
	if cfg.Bool(ExtraJoinHeuristic, false) {
		join = layout.JoinHeuristic
	}
	pipe := layout.CharPipeline{Assembler: layout.Assembler{Join: join}}

	elements, err := core.MapPages(ctx, len(decoded), cfg.Workers, func(_ context.Context, i int) ([]core.TextElement, error) {
		dp := decoded[i]
		out := pipe.Page(layout.CharPage{Geometry: dp.geometry, Blocks: e.grouper.Group(dp.glyphs)})
		cfg.Logger.Debug("pdftext: page laid out", "page", dp.geometry.Index+1, "elements", len(out))
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return elements, nil
}

// ExtractFile opens path and extracts its paragraphs.
func ExtractFile(ctx context.Context, path string, opts ...core.Option) ([]core.TextElement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewExtractor().Extract(ctx, f, opts...)
}

type decodedPage struct {
	geometry layout.PageGeometry
	glyphs   []Glyph
}

func decodePage(r *pdf.Reader, num int) (decodedPage, error) {
	page := r.Page(num)
	if page.V.IsNull() {
		return decodedPage{}, fmt.Errorf("%w: page %d missing", ErrPageContent, num)
	}
	texts, err := pageTexts(page)
	if err != nil {
		return decodedPage{}, fmt.Errorf("page %d: %w", num, err)
	}
	w, h := mediaBox(page.V)
	return decodedPage{
		geometry: layout.PageGeometry{Index: num - 1, Width: w, Height: h},
		glyphs:   Glyphs(texts),
	}, nil
}

// pageTexts recovers from the panics the engine raises on malformed streams.
func pageTexts(page pdf.Page) (texts []pdf.Text, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrPageContent, rec)
		}
	}()
	return page.Content().Text, nil
}

// Glyphs converts engine text items to glyphs, dropping empty ones.
func Glyphs(texts []pdf.Text) []Glyph {
	out := make([]Glyph, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		w, measured := t.W, t.W > 0
		if !measured {
			w = t.FontSize * widthEstimate
		}
		out = append(out, Glyph{
			Char: layout.Char{
				Text:  norm.NFC.String(t.S),
				Style: layout.StyleFromFontName(t.Font, t.FontSize),
				BBox:  core.Rect{X0: t.X, Y0: t.Y, X1: t.X + w, Y1: t.Y + t.FontSize},
			},
			Measured: measured,
		})
	}
	return out
}

// mediaBox reads the page size, following /Parent for inherited boxes.
func mediaBox(v pdf.Value) (width, height float64) {
	for depth := 0; depth < 32 && !v.IsNull(); depth++ {
		if box := v.Key("MediaBox"); box.Kind() == pdf.Array && box.Len() == 4 {
			width = math.Abs(box.Index(2).Float64() - box.Index(0).Float64())
			height = math.Abs(box.Index(3).Float64() - box.Index(1).Float64())
			return width, height
		}
		v = v.Key("Parent")
	}
	return defaultPageWidth, defaultPageHeight
}

func selectPages(requested []int, total int) ([]int, error) {
	if len(requested) == 0 {
		all := make([]int, total)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}
	for _, p := range requested {
		if p < 1 || p > total {
			return nil, fmt.Errorf("%w: %d of %d", ErrPageRange, p, total)
		}
	}
	return append([]int(nil), requested...), nil
}
