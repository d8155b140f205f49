package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ruminaider/slicer-guide/internal/config"
	"github.com/ruminaider/slicer-guide/internal/defaults"
	"github.com/ruminaider/slicer-guide/internal/facet"
	"github.com/ruminaider/slicer-guide/internal/guide"
	"github.com/ruminaider/slicer-guide/internal/paths"
)

// newLogger builds the run logger. While the TUI owns the terminal the log
// goes to the configured file; otherwise to stderr. Every record carries a
// short session id.
func newLogger(cfg config.Config, toFile bool) (*slog.Logger, func() error, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }
	if toFile {
		path := cfg.LogFile
		if path == "" {
			path = paths.LogFile()
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w, closeFn = f, f.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("session", uuid.New().String()[:8]), closeFn, nil
}

// guideOptions maps the config, and an optional --mode override, onto the
// filament page options.
func guideOptions(cfg config.Config, mode string, log *slog.Logger) (guide.Options, error) {
	if mode == "" {
		mode = cfg.DefaultMode
	}
	m, err := defaults.ParseMode(mode)
	if err != nil {
		return guide.Options{}, err
	}
	return guide.Options{
		Mode:     m,
		Priority: facet.Priority{Types: cfg.TypePriority, Vendors: cfg.VendorPriority},
		Log:      log,
	}, nil
}
