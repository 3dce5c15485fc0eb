// Package textpdf assembles extracted text into letter-sized PDF files.
//
// Text blocks are joined with a blank line and laid out as left-aligned
// lines, top to bottom, starting a new page whenever the vertical cursor
// crosses the bottom margin. There is no word wrapping: a line longer
// than the page width overflows it. That is a documented limitation of
// the layout, not a bug.
package textpdf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"

	"github.com/eesb99/ocr2pdf/pkg/config"
)

// ErrWriteFailure marks output destinations that cannot be created or
// written: permission denied, or a directory occupying the output path.
var ErrWriteFailure = errors.New("failed to write output PDF")

// Layout holds the fixed page geometry, in points.
type Layout struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	LineHeight float64
	FontFamily string
	FontSize   float64
}

// DefaultLayout returns the letter-sized layout with a 40pt margin and
// 15pt line height.
func DefaultLayout() Layout {
	return Layout{
		PageWidth:  612,
		PageHeight: 792,
		Margin:     40,
		LineHeight: 15,
		FontFamily: "Helvetica",
		FontSize:   12,
	}
}

// Assembler serializes text sequences to PDF files.
type Assembler struct {
	Layout Layout
	// Timestamp fixes the document creation/modification dates. Zero
	// means "now"; tests set it to get byte-identical output.
	Timestamp   time.Time
	compression bool
	logger      zerolog.Logger
}

// NewAssembler builds an assembler honoring the PDF settings.
func NewAssembler(cfg config.PDFSettings, logger zerolog.Logger) *Assembler {
	return &Assembler{
		Layout:      DefaultLayout(),
		compression: cfg.Compression,
		logger:      logger,
	}
}

// Assemble joins texts with a blank line, paginates them, and writes the
// resulting PDF to outputPath, creating parent directories as needed.
func (a *Assembler) Assemble(texts []string, outputPath string) error {
	if info, err := os.Stat(outputPath); err == nil && info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrWriteFailure, outputPath)
	}

	data, err := a.AssembleBytes(texts)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteFailure, err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}

	a.logger.Info().Str("output", outputPath).Int("bytes", len(data)).Msg("PDF created")
	return nil
}

// AssembleBytes renders the joined texts and returns the PDF bytes.
// Output is deterministic for a fixed Timestamp and layout.
func (a *Assembler) AssembleBytes(texts []string) ([]byte, error) {
	layout := a.Layout
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(a.compression)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(layout.FontFamily, "", layout.FontSize)

	tm := a.Timestamp
	if tm.IsZero() {
		tm = time.Now()
	}
	pdf.SetCreationDate(tm)
	pdf.SetModificationDate(tm)

	lines := strings.Split(strings.Join(texts, "\n\n"), "\n")
	for _, page := range paginate(lines, layout) {
		pdf.AddPage()
		y := layout.Margin + layout.LineHeight
		for _, line := range page {
			pdf.Text(layout.Margin, y, toLatin1(line))
			y += layout.LineHeight
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}
	return buf.Bytes(), nil
}

// paginate splits lines into pages so that no baseline crosses the
// bottom margin. Always yields at least one (possibly empty) page.
func paginate(lines []string, layout Layout) [][]string {
	perPage := int((layout.PageHeight - 2*layout.Margin) / layout.LineHeight)
	if perPage < 1 {
		perPage = 1
	}

	pages := [][]string{}
	for start := 0; start < len(lines); start += perPage {
		end := start + perPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, lines[start:end])
	}
	if len(pages) == 0 {
		pages = append(pages, nil)
	}
	return pages
}

// toLatin1 converts text to ISO-8859-1 to avoid PDF encoding issues with
// the core fonts, falling back to the raw text when conversion fails.
func toLatin1(s string) string {
	latin1, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return s
	}
	return latin1
}
