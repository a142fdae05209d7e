package mupdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"syscall"

	"github.com/SaiNageswarS/paragraph/core"
	"github.com/SaiNageswarS/paragraph/layout"
)

// Alias is the registry key of this backend.
const Alias = "mupdf"

// ExtraFlipY (bool, default true) controls whether block boxes are flipped
// from bottom-left to top-left origin.
const ExtraFlipY = "mupdf.flip_y"

var (
	// ErrBinaryNotFound is returned when no mutool binary can be located.
	ErrBinaryNotFound = errors.New("mupdf: MuPDF CLI (mutool) not found – install mupdf-tools or set $MUPDF_BIN")
	// ErrPageMismatch is returned when page sizes and stext pages disagree.
	ErrPageMismatch = errors.New("mupdf: page count mismatch")
)

// Binary discovery ----------------------------------------------------------------

var (
	binPath string
	once    sync.Once
	binErr  error
)

// discover searches $MUPDF_BIN, then PATH for mutool.
func discover() (string, error) {
	once.Do(func() {
		candidates := []string{}
		if env := strings.TrimSpace(envOr("MUPDF_BIN", "")); env != "" {
			candidates = append(candidates, env)
		}
		exe := "mutool"
		if runtime.GOOS == "windows" {
			exe += ".exe"
		}
		candidates = append(candidates, exe)
		for _, c := range candidates {
			if p, err := exec.LookPath(c); err == nil {
				binPath = p
				break
			}
		}
		if binPath == "" {
			binErr = ErrBinaryNotFound
			return
		}
		_ = checkVersion(binPath)
	})
	return binPath, binErr
}

func envOr(key, def string) string {
	if v, ok := syscall.Getenv(key); ok {
		return v
	}
	return def
}

// checkVersion rejects pre-1.0 builds, which lack stext.json output.
func checkVersion(path string) error {
	cmd := exec.Command(path, "--version")
	b, err := cmd.Output()
	if err != nil {
		return err
	}
	parts := strings.Fields(string(b))
	if len(parts) < 2 {
		return nil
	}
	var major int
	if _, err = fmt.Sscanf(parts[1], "v%d", &major); err == nil && major < 1 {
		binErr = fmt.Errorf("mupdf: version too old (%s)", parts[1])
	}
	return nil
}

// Extractor implementation --------------------------------------------------------

type extractor struct{}

func init() {
	core.Register(Alias, NewExtractor)
}

// NewExtractor returns the pre-grouped line extractor backed by mutool.
func NewExtractor() core.Extractor {
	return &extractor{}
}

func (e *extractor) Extract(ctx context.Context, in io.Reader, opts ...core.Option) ([]core.TextElement, error) {
	if _, err := discover(); err != nil {
		return nil, err
	}
	cfg := core.BuildConfig(opts...)

	path, cleanup, err := localFile(in, cfg.WorkDir)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	args := []string{"draw", "-F", "stext.json", "-o", "-", path}
	if len(cfg.Pages) > 0 {
		args = append(args, intsToPageSpec(cfg.Pages))
	}
	raw, err := run(ctx, cfg.Logger, args...)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	sizes, err := pageSizes(ctx, cfg.Logger, path, cfg.Pages)
	if err != nil {
		return nil, err
	}
	return Paragraphs(ctx, doc, sizes, opts...)
}

// Paragraphs lays out a decoded document. sizes[i] belongs to doc.Pages[i].
// When the options select pages, doc is expected to hold exactly those pages
// in the same order.
func Paragraphs(ctx context.Context, doc *Document, sizes []Size, opts ...core.Option) ([]core.TextElement, error) {
	cfg := core.BuildConfig(opts...)
	if len(sizes) != len(doc.Pages) {
		return nil, fmt.Errorf("%w: %d sizes for %d pages", ErrPageMismatch, len(sizes), len(doc.Pages))
	}
	if len(cfg.Pages) > 0 && len(cfg.Pages) != len(doc.Pages) {
		return nil, fmt.Errorf("%w: %d selected, %d decoded", ErrPageMismatch, len(cfg.Pages), len(doc.Pages))
	}

	pipe := layout.SpanPipeline{
		Merger: layout.NewMerger(cfg),
		Assembler: layout.Assembler{
			FlipY: cfg.Bool(ExtraFlipY, true),
			Join:  layout.JoinHeuristic,
		},
	}
	return core.MapPages(ctx, len(doc.Pages), cfg.Workers, func(_ context.Context, i int) ([]core.TextElement, error) {
		index := i
		if len(cfg.Pages) > 0 {
			index = cfg.Pages[i] - 1
		}
		geo := layout.PageGeometry{Index: index, Width: sizes[i].Width, Height: sizes[i].Height}
		out := pipe.Page(doc.Pages[i].SpanPage(geo, cfg.Logger))
		cfg.Logger.Debug("mupdf: page laid out", "page", index+1, "elements", len(out))
		return out, nil
	})
}

// ExtractFile extracts the paragraphs of the PDF at path.
func ExtractFile(ctx context.Context, path string, opts ...core.Option) ([]core.TextElement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewExtractor().Extract(ctx, f, opts...)
}

// Size is a page's MediaBox extent.
type Size struct {
	Width  float64
	Height float64
}

// PageSizes returns the MediaBox size of every page, or of the given 1-based
// pages in order.
func PageSizes(ctx context.Context, path string, pages ...int) ([]Size, error) {
	if _, err := discover(); err != nil {
		return nil, err
	}
	return pageSizes(ctx, slog.Default(), path, pages)
}

func pageSizes(ctx context.Context, log *slog.Logger, path string, pages []int) ([]Size, error) {
	args := []string{"pages", path}
	if len(pages) > 0 {
		args = append(args, intsToPageSpec(pages))
	}
	out, err := run(ctx, log, args...)
	if err != nil {
		return nil, err
	}
	return parseMediaBoxes(out)
}

var mediaBoxRe = regexp.MustCompile(`<MediaBox l="([-+0-9.eE]+)" b="([-+0-9.eE]+)" r="([-+0-9.eE]+)" t="([-+0-9.eE]+)"`)

func parseMediaBoxes(out []byte) ([]Size, error) {
	var sizes []Size
	for _, m := range mediaBoxRe.FindAllSubmatch(out, -1) {
		var v [4]float64
		for i := range v {
			f, err := strconv.ParseFloat(string(m[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("mupdf: bad MediaBox %q: %w", m[0], err)
			}
			v[i] = f
		}
		sizes = append(sizes, Size{Width: abs(v[2] - v[0]), Height: abs(v[3] - v[1])})
	}
	if len(sizes) == 0 {
		return nil, errors.New("mupdf: no MediaBox in pages output")
	}
	return sizes, nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// Helpers ------------------------------------------------------------------------

func run(ctx context.Context, log *slog.Logger, args ...string) ([]byte, error) {
	log.Debug("mupdf: running", "bin", binPath, "args", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, binPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("mupdf: %w: %s", err, stderr.String())
	}
	return stdout.Bytes(), nil
}

// localFile returns a path mutool can open: the file itself, or a temp copy
// of any other reader under dir.
func localFile(in io.Reader, dir string) (string, func(), error) {
	if f, ok := in.(*os.File); ok {
		return f.Name(), func() {}, nil
	}
	tmp, err := os.CreateTemp(dir, "paragraph-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("mupdf: spool input: %w", err)
	}
	name := tmp.Name()
	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", nil, fmt.Errorf("mupdf: spool input: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", nil, fmt.Errorf("mupdf: spool input: %w", err)
	}
	return name, func() { os.Remove(name) }, nil
}

func intsToPageSpec(pages []int) string {
	if len(pages) == 1 {
		return fmt.Sprint(pages[0])
	}
	ss := make([]string, len(pages))
	for i, p := range pages {
		ss[i] = fmt.Sprint(p)
	}
	return strings.Join(ss, ",")
}
