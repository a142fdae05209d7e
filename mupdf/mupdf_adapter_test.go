package mupdf

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaiNageswarS/paragraph/core"
	"github.com/SaiNageswarS/paragraph/layout"
)

const fixtureJSON = "testdata/sample.stext.json"

var fixtureSizes = []Size{{Width: 600, Height: 800}, {Width: 500, Height: 700}}

func loadFixture(t *testing.T) *Document {
	t.Helper()
	f, err := os.Open(fixtureJSON)
	require.NoError(t, err)
	defer f.Close()

	doc, err := Decode(f)
	require.NoError(t, err)
	return doc
}

func TestDecode(t *testing.T) {
	doc := loadFixture(t)
	require.Len(t, doc.Pages, 2)
	require.Len(t, doc.Pages[0].Blocks, 3)

	b := doc.Pages[0].Blocks[0]
	assert.Equal(t, "text", b.Type)
	assert.Equal(t, core.Rect{X0: 72, Y0: 100, X1: 372, Y1: 140}, b.BBox.Rect())
	assert.Equal(t, "Chapter 1", b.Lines[0].Text)
	assert.Equal(t, "bold", b.Lines[0].Font.Weight)

	_, err := Decode(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func TestFontFlags(t *testing.T) {
	assert.Equal(t, layout.FlagBold, Font{Weight: "bold", Family: "sans-serif"}.Flags())
	assert.Equal(t, layout.FlagItalic|layout.FlagSerifed, Font{Style: "italic", Family: "serif"}.Flags())
	assert.Equal(t, layout.FlagItalic|layout.FlagMonospaced, Font{Style: "Oblique", Family: "monospace"}.Flags())
	assert.Equal(t, layout.FontFlags(0), Font{Weight: "normal", Style: "normal"}.Flags())
}

func TestSpanPage(t *testing.T) {
	doc := loadFixture(t)
	page := doc.Pages[0].SpanPage(layout.PageGeometry{Width: 600, Height: 800}, nil)

	require.Len(t, page.Blocks, 3)
	assert.Equal(t, layout.BlockText, page.Blocks[0].Kind)
	assert.Equal(t, layout.BlockImage, page.Blocks[1].Kind)
	require.Len(t, page.Blocks[0].Lines, 5)
	assert.Empty(t, page.Blocks[0].Lines[3].Spans)
	assert.Equal(t, []layout.Span{{Text: "Chapter 1", Flags: layout.FlagBold, Size: 12}}, page.Blocks[0].Lines[0].Spans)
}

func TestParagraphs(t *testing.T) {
	els, err := Paragraphs(context.Background(), loadFixture(t), fixtureSizes, core.WithWorkers(2))
	require.NoError(t, err)
	require.Len(t, els, 2)

	first := els[0]
	assert.Equal(t, "Chapter 1 Overview.\nThe first paragraph continues here.", first.Text)
	assert.Equal(t, core.Bbox{X0: 72, Y0: 660, X1: 372, Y1: 700, Page: 0, PageWidth: 600, PageHeight: 800}, first.BBox)
	require.Len(t, first.Lines, 3)
	assert.Equal(t, core.Rect{X0: 72, Y0: 100, X1: 240, Y1: 112}, first.Lines[0].BBox)
	assert.Equal(t, []core.TextSpan{
		{Text: "Chapter 1", IsBold: true, Size: 12},
		{Text: " Overview.", Size: 12},
	}, first.Lines[0].Spans)
	assert.Equal(t, core.TextSpan{Text: "The first paragraph", IsItalic: true, Size: 12}, first.Lines[1].Spans[0])

	second := els[1]
	assert.Equal(t, "Page two", second.Text)
	assert.Equal(t, core.Bbox{X0: 50, Y0: 630, X1: 150, Y1: 650, Page: 1, PageWidth: 500, PageHeight: 700}, second.BBox)
}

func TestParagraphsWithoutFlip(t *testing.T) {
	els, err := Paragraphs(context.Background(), loadFixture(t), fixtureSizes, core.WithExtra(ExtraFlipY, false))
	require.NoError(t, err)
	assert.Equal(t, 100.0, els[0].BBox.Y0)
	assert.Equal(t, 140.0, els[0].BBox.Y1)
}

func TestParagraphsSelectedPages(t *testing.T) {
	doc := loadFixture(t)
	doc.Pages = doc.Pages[1:]

	els, err := Paragraphs(context.Background(), doc, fixtureSizes[1:], core.WithPages(5))
	require.NoError(t, err)
	require.Len(t, els, 1)
	assert.Equal(t, 4, els[0].BBox.Page)

	_, err = Paragraphs(context.Background(), doc, fixtureSizes[1:], core.WithPages(5, 6))
	assert.ErrorIs(t, err, ErrPageMismatch)
	_, err = Paragraphs(context.Background(), doc, fixtureSizes)
	assert.ErrorIs(t, err, ErrPageMismatch)
}

func TestParagraphsMergeMargin(t *testing.T) {
	doc := &Document{Pages: []Page{{Blocks: []Block{{
		Type: "text",
		BBox: BBox{X: 0, Y: 0, W: 100, H: 12},
		Lines: []Line{
			{BBox: BBox{X: 0, Y: 0, W: 40, H: 12}, Text: "left"},
			{BBox: BBox{X: 42, Y: 1, W: 40, H: 12}, Text: " right"},
		},
	}}}}}
	sizes := []Size{{Width: 100, Height: 100}}

	els, err := Paragraphs(context.Background(), doc, sizes)
	require.NoError(t, err)
	assert.Len(t, els[0].Lines, 2)

	els, err = Paragraphs(context.Background(), doc, sizes, core.WithMergeMargin(1))
	require.NoError(t, err)
	require.Len(t, els[0].Lines, 1)
	assert.Equal(t, "left right", els[0].Lines[0].Text)
}

func TestParseMediaBoxes(t *testing.T) {
	out := []byte(`<page pagenum="1">
<MediaBox l="0" b="0" r="612" t="792" />
<CropBox l="0" b="0" r="612" t="792" />
<Rotate v="0" />
</page>
<page pagenum="2">
<MediaBox l="10" b="20" r="605.28" t="861.89" />
</page>
`)
	sizes, err := parseMediaBoxes(out)
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, Size{Width: 612, Height: 792}, sizes[0])
	assert.InDelta(t, 595.28, sizes[1].Width, 1e-9)
	assert.InDelta(t, 841.89, sizes[1].Height, 1e-9)

	_, err = parseMediaBoxes([]byte("nothing here"))
	assert.Error(t, err)
}

func TestIntsToPageSpec(t *testing.T) {
	assert.Equal(t, "3", intsToPageSpec([]int{3}))
	assert.Equal(t, "1,4,2", intsToPageSpec([]int{1, 4, 2}))
}

func TestLocalFileSpoolsReaders(t *testing.T) {
	dir := t.TempDir()
	path, cleanup, err := localFile(bytes.NewReader([]byte("%PDF-1.4")), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalFileUsesOpenFile(t *testing.T) {
	f, err := os.Open(fixtureJSON)
	require.NoError(t, err)
	defer f.Close()

	path, cleanup, err := localFile(f, "")
	require.NoError(t, err)
	cleanup()
	assert.Equal(t, fixtureJSON, path)
	_, err = os.Stat(fixtureJSON)
	assert.NoError(t, err)
}

func TestExtractFileWithMutool(t *testing.T) {
	if _, err := discover(); err != nil {
		t.Skipf("mutool unavailable: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	path := filepath.Join(t.TempDir(), "fixture.pdf")
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "B", 14)
	doc.Text(72, 72, "Heading.")
	doc.SetFont("Helvetica", "", 12)
	doc.Text(72, 90, "Body text")
	require.NoError(t, doc.OutputFileAndClose(path))

	els, err := ExtractFile(ctx, path)
	require.NoError(t, err)
	require.NotEmpty(t, els)

	var all strings.Builder
	for _, el := range els {
		assert.Equal(t, 0, el.BBox.Page)
		assert.InDelta(t, 841.89, el.BBox.PageHeight, 0.01)
		all.WriteString(el.Text)
	}
	assert.Contains(t, all.String(), "Heading.")
	assert.Contains(t, all.String(), "Body text")

	sizes, err := PageSizes(ctx, path)
	require.NoError(t, err)
	require.Len(t, sizes, 1)
	assert.InDelta(t, 595.28, sizes[0].Width, 0.01)
}
