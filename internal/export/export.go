// Package export writes the footprint state and summary as JSON, CSV and HTML
// reports.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rshade/ecotrack/internal/footprint"
	"github.com/rshade/ecotrack/internal/logging"
	"github.com/rshade/ecotrack/internal/tracker"
)

// Format is an export format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
	// FormatAll writes every format into a directory.
	FormatAll Format = "all"
)

// filePrefix is prepended to generated report file names.
const filePrefix = "ecotrack-"

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

type constError string

func (e constError) Error() string { return string(e) }

// ErrUnknownFormat is returned for an unsupported export format.
const ErrUnknownFormat = constError("unknown export format")

// Formats returns the single-file formats in a stable order.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatHTML}
}

// ParseFormat validates a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatJSON, FormatCSV, FormatHTML, FormatAll:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (valid: json, csv, html, all)", ErrUnknownFormat, s)
	}
}

// FileName returns the report file name for a format and date key.
func FileName(f Format, dateKey string) string {
	return filePrefix + dateKey + "." + string(f)
}

// Write renders one format to w.
func Write(w io.Writer, f Format, summary tracker.Summary, state *footprint.AppState) error {
	switch f {
	case FormatJSON:
		return JSON(w, state)
	case FormatCSV:
		return CSV(w, state)
	case FormatHTML:
		return HTML(w, summary, state)
	case FormatAll:
		return fmt.Errorf("%w: %q writes a directory, not a stream", ErrUnknownFormat, f)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// WriteFile renders one format into path.
func WriteFile(path string, f Format, summary tracker.Summary, state *footprint.AppState) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := Write(file, f, summary, state); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s export: %w", f, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing export file: %w", err)
	}
	return nil
}

// WriteAll writes every single-file format into dir concurrently and returns
// the written paths in Formats order. The inputs are only read.
func WriteAll(ctx context.Context, dir string, summary tracker.Summary, state *footprint.AppState) ([]string, error) {
	logger := logging.FromContext(ctx).With().
		Str("component", "export").
		Str("operation", "WriteAll").
		Logger()

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	formats := Formats()
	paths := make([]string, len(formats))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		path := filepath.Join(dir, FileName(f, summary.Date))
		paths[i] = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := WriteFile(path, f, summary, state); err != nil {
				return err
			}
			logger.Debug().Str("format", string(f)).Str("path", path).Msg("report written")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
