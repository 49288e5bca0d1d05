// Package importer turns broker exports into trade records. Two formats
// are understood: spreadsheet workbooks whose header row is located
// heuristically, and semicolon-delimited text with a fixed field order.
package importer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var ErrUnsupportedFormat = errors.New("unsupported import format")

// Importer holds the settings shared by every import.
type Importer struct {
	// Location interprets zone-less export timestamps. nil means
	// time.Local.
	Location *time.Location
	// Now stamps generated tickets. nil means time.Now.
	Now func() time.Time
	Log zerolog.Logger
}

func New(log zerolog.Logger) *Importer {
	return &Importer{Log: log}
}

func (im *Importer) loc() *time.Location {
	if im.Location == nil {
		return time.Local
	}
	return im.Location
}

func (im *Importer) now() time.Time {
	if im.Now == nil {
		return time.Now()
	}
	return im.Now()
}

// DetectFormat picks the import format from the file extension.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".txt", ".csv":
		return FormatDelimited, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ImportFile imports path using the format implied by its extension.
func (im *Importer) ImportFile(path string) (Report, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Report{Source: path, HeaderRow: -1}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Report{Source: path, Format: format, HeaderRow: -1}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rep Report
	switch format {
	case FormatXLSX:
		rep, err = im.ImportWorkbook(f)
	default:
		rep, err = im.ImportDelimited(f)
	}
	rep.Source = path
	if err != nil {
		return rep, fmt.Errorf("import %s: %w", path, err)
	}

	im.Log.Info().
		Str("source", path).
		Str("format", rep.Format).
		Int("trades", len(rep.Trades)).
		Int("empty", rep.Empty).
		Int("no_ticket", rep.NoTicket).
		Int("failed", rep.Failed).
		Msg("import parsed")
	return rep, nil
}

// Result is the outcome delivered by Start.
type Result struct {
	Report Report
	Err    error
}

// Start runs fn on a background goroutine and delivers its result on the
// returned channel, which receives exactly one value and is then closed.
// A caller that loses interest may simply stop reading.
func (im *Importer) Start(fn func() (Report, error)) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		rep, err := fn()
		ch <- Result{Report: rep, Err: err}
	}()
	return ch
}

// StartFile runs ImportFile in the background.
func (im *Importer) StartFile(path string) <-chan Result {
	return im.Start(func() (Report, error) {
		return im.ImportFile(path)
	})
}
