// Package ocr2pdf sequences the conversion and form-processing pipelines.
//
// The conversion path turns scanned documents into searchable PDFs:
// extract page bitmaps, recognize each one, assemble the text into a new
// PDF. The form path inspects parsed PDFs instead: classify them as
// fillable or scanned, run OCR over their embedded images, and copy the
// pages through unchanged.
//
// Processing is strictly sequential. Each input is fully processed and
// its bitmaps released before the next begins, and in batch mode one
// failing file records an error without halting the remaining queue.
package ocr2pdf

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/eesb99/ocr2pdf/pkg/config"
	"github.com/eesb99/ocr2pdf/pkg/ocr"
	"github.com/eesb99/ocr2pdf/pkg/pdfform"
	"github.com/eesb99/ocr2pdf/pkg/pdfimage"
	"github.com/eesb99/ocr2pdf/pkg/textpdf"
)

// ErrNoInputFound signals that a batch scan yielded zero candidates.
var ErrNoInputFound = errors.New("no input files found")

// Converter runs the pipelines with one recognizer and one assembler.
type Converter struct {
	recognizer *ocr.Recognizer
	assembler  *textpdf.Assembler
	settings   config.Settings
	logger     zerolog.Logger
}

// NewConverter wires the pipeline components from settings. It fails
// fast with ocr.ErrEngineUnavailable when the OCR engine is missing.
func NewConverter(settings config.Settings, logger zerolog.Logger) (*Converter, error) {
	recognizer, err := ocr.NewRecognizer(settings.OCR, logger)
	if err != nil {
		return nil, err
	}
	return &Converter{
		recognizer: recognizer,
		assembler:  textpdf.NewAssembler(settings.PDF, logger),
		settings:   settings,
		logger:     logger,
	}, nil
}

// Assembler exposes the output assembler, mainly so callers can pin its
// timestamp for reproducible output.
func (c *Converter) Assembler() *textpdf.Assembler { return c.assembler }

// Convert processes a single file or a directory of supported files into
// one searchable PDF at outputPath.
func (c *Converter) Convert(inputPath, outputPath string) error {
	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", pdfimage.ErrUnreadableDocument, inputPath, err)
	}
	if info.IsDir() {
		return c.ConvertDir(inputPath, outputPath)
	}
	return c.ConvertFile(inputPath, outputPath)
}

// ConvertFile converts one image or PDF input into a searchable PDF.
// A missing .pdf suffix on outputPath is appended; an existing directory
// at outputPath is refused.
func (c *Converter) ConvertFile(inputPath, outputPath string) error {
	outputPath = EnsurePDFSuffix(outputPath)

	c.logger.Info().Str("input", inputPath).Msg("processing single file")
	text, err := c.extractText(inputPath)
	if err != nil {
		return err
	}
	return c.assembler.Assemble([]string{text}, outputPath)
}

// ConvertDir converts every supported file directly under dir (sorted by
// name) into a single searchable PDF. Zero candidates is ErrNoInputFound.
func (c *Converter) ConvertDir(dir, outputPath string) error {
	outputPath = EnsurePDFSuffix(outputPath)

	files, err := collectSupported(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no image or PDF files in %s", ErrNoInputFound, dir)
	}

	var texts []string
	for _, path := range files {
		c.logger.Info().Str("input", path).Msg("processing")
		text, err := c.extractText(path)
		if err != nil {
			return err
		}
		texts = append(texts, text)
	}
	return c.assembler.Assemble([]string{strings.Join(texts, "\n\n")}, outputPath)
}

// extractText renders every page of one input and recognizes each bitmap.
// A page whose recognition fails degrades to empty text with a warning;
// one unreadable page must not abort a multi-page input.
func (c *Converter) extractText(path string) (string, error) {
	pages, err := pdfimage.ExtractPages(path)
	if err != nil {
		return "", err
	}

	texts := make([]string, 0, len(pages))
	for i, page := range pages {
		text := c.recognizePage(path, i+1, page)
		texts = append(texts, text)
	}
	return strings.Join(texts, "\n\n"), nil
}

func (c *Converter) recognizePage(path string, pageNum int, page image.Image) string {
	text, err := c.recognizer.Recognize(page)
	if err != nil {
		c.logger.Warn().Err(err).Str("input", path).Int("page", pageNum).
			Msg("OCR failed for page, continuing with empty text")
		return ""
	}
	return text
}

// EnsurePDFSuffix appends ".pdf" when path lacks the suffix.
func EnsurePDFSuffix(path string) string {
	if strings.ToLower(filepath.Ext(path)) == ".pdf" {
		return path
	}
	return path + ".pdf"
}

// collectSupported lists the supported files directly under dir, sorted.
// The accepted extensions are enumerated explicitly; the historical
// *.{jpg,jpeg,png,tif,tiff,pdf} brace glob never matched anything.
func collectSupported(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pdfimage.ErrUnreadableDocument, dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pdfimage.IsSupported(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// CollectPDFs resolves a batch input: a file yields itself when it is a
// PDF, a directory is walked recursively for *.pdf files, sorted.
func CollectPDFs(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pdfimage.ErrUnreadableDocument, path, err)
	}

	if !info.IsDir() {
		if strings.ToLower(filepath.Ext(path)) == ".pdf" {
			return []string{path}, nil
		}
		return nil, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.ToLower(filepath.Ext(p)) == ".pdf" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}
