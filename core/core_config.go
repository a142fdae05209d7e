// core_config.go
// Package core provides the central abstractions shared by all paragraph
// extractors. It follows Go's idioms: functional‑options, context propagation,
// and slog logging.

package core

import (
	"log/slog"
)

// MergeStrategy selects how duplicate line detections are collapsed.
type MergeStrategy int

const (
	// MergeFirstMatch folds each line into the first accepted line it matches.
	MergeFirstMatch MergeStrategy = iota
	// MergeCluster merges every transitively connected group of lines.
	MergeCluster
)

// Config captures execution parameters that are understood by every extractor.
// Backend‑specific flags live in Extra.
// All fields are optional; zero values fall back to sensible defaults.

type Config struct {
	Pages         []int          // 1‑based page numbers; empty ⇒ all pages
	Extra         map[string]any // backend‑specific key/value bag (string keys)
	WorkDir       string         // override for any temp files the backend needs
	Logger        *slog.Logger   // nil ⇒ slog.Default()
	MergeMargin   float64        // tolerance for treating two line detections as one
	MergeStrategy MergeStrategy
	Workers       int // pages laid out concurrently; < 1 ⇒ 1
}

// Option mutates a Config – classic functional‑options pattern.

type Option func(*Config)

// WithPages restricts processing to the given 1‑based pages.
func WithPages(p ...int) Option {
	cp := append([]int(nil), p...)
	return func(c *Config) { c.Pages = cp }
}

// WithExtra stores arbitrary backend‑specific flags in Config.Extra.
func WithExtra(key string, val any) Option {
	return func(c *Config) {
		if c.Extra == nil {
			c.Extra = make(map[string]any, 1)
		}
		c.Extra[key] = val
	}
}

// WithWorkDir overrides the working directory temp path.
func WithWorkDir(dir string) Option {
	return func(c *Config) { c.WorkDir = dir }
}

// WithLogger injects a slog.Logger (use slog.Default when nil).
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithMergeMargin sets the line merge tolerance in page units.
func WithMergeMargin(m float64) Option {
	return func(c *Config) { c.MergeMargin = m }
}

// WithClusterMerge switches line merging from first‑match to clustering.
func WithClusterMerge() Option {
	return func(c *Config) { c.MergeStrategy = MergeCluster }
}

// WithWorkers bounds how many pages are laid out at once.
func WithWorkers(n int) Option {
	return func(c *Config) { c.Workers = n }
}

// Bool reads a boolean flag from Extra, returning def when absent or mistyped.
func (c *Config) Bool(key string, def bool) bool {
	if v, ok := c.Extra[key].(bool); ok {
		return v
	}
	return def
}

// BuildConfig applies Option setters over defaults and returns the result.
// The returned Config is safe for concurrent read‑only access.
func BuildConfig(opts ...Option) *Config {
	cfg := &Config{
		Extra:   make(map[string]any, 4),
		Logger:  slog.Default(),
		Workers: 1,
	}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	if cfg.Extra == nil {
		cfg.Extra = make(map[string]any)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MergeMargin < 0 {
		cfg.MergeMargin = 0
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg
}
