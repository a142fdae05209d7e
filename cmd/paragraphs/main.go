// Command paragraphs prints the paragraphs of a PDF as JSON lines, one
// TextElement per line.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/SaiNageswarS/paragraph/core"
	"github.com/SaiNageswarS/paragraph/mupdf"
	"github.com/SaiNageswarS/paragraph/pdftext"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "paragraphs: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("paragraphs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	backend := fs.String("backend", mupdf.Alias, "Extraction backend ("+strings.Join(core.Aliases(), ", ")+")")
	pages := fs.String("pages", "", "Comma separated 1-based pages (default all)")
	margin := fs.Float64("margin", 0, "Line merge tolerance in page units")
	cluster := fs.Bool("cluster", false, "Merge connected line groups instead of first match")
	workers := fs.Int("workers", 1, "Pages laid out concurrently")
	noFlip := fs.Bool("no-flip", false, "Keep engine y coordinates [mupdf only]")
	heuristic := fs.Bool("join-heuristic", false, "Join lines with spaces unless they end a sentence [pdftext only]")
	verbose := fs.Bool("v", false, "Debug logging to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: paragraphs [options] <file.pdf>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("expected one input file, got %d", fs.NArg())
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []core.Option{
		core.WithLogger(logger),
		core.WithMergeMargin(*margin),
		core.WithWorkers(*workers),
	}
	if *pages != "" {
		p, err := parsePages(*pages)
		if err != nil {
			return err
		}
		opts = append(opts, core.WithPages(p...))
	}
	if *cluster {
		opts = append(opts, core.WithClusterMerge())
	}
	if *noFlip {
		opts = append(opts, core.WithExtra(mupdf.ExtraFlipY, false))
	}
	if *heuristic {
		opts = append(opts, core.WithExtra(pdftext.ExtraJoinHeuristic, true))
	}

	ex, err := core.Get(*backend)
	if err != nil {
		return err
	}
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	els, err := ex.Extract(ctx, f, opts...)
	if err != nil {
		return err
	}
	logger.Debug("extracted", "backend", *backend, "elements", len(els))

	enc := json.NewEncoder(stdout)
	for _, el := range els {
		if err := enc.Encode(el); err != nil {
			return err
		}
	}
	return nil
}

func parsePages(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}
