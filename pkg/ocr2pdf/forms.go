package ocr2pdf

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/eesb99/ocr2pdf/pkg/pdfform"
)

// ProcessForm runs the form workflow for one PDF: read the document,
// OCR every embedded page image, and write the pages to outputPath
// unchanged. The recognized text is logged, not rendered; the source
// document is never mutated.
func (c *Converter) ProcessForm(inputPath, outputPath string) error {
	doc, err := pdfform.Open(inputPath)
	if err != nil {
		return err
	}
	defer doc.Close()

	images, err := doc.EmbeddedImages()
	if err != nil {
		return err
	}

	for i, img := range images {
		text := c.recognizePage(inputPath, i+1, img)
		if text != "" {
			c.logger.Info().Str("input", inputPath).Int("image", i+1).
				Str("excerpt", excerpt(text, 100)).Msg("extracted text")
		}
	}

	return doc.WriteCopy(outputPath)
}

// ValidateForm reports whether the PDF declares at least one fillable
// form field.
func (c *Converter) ValidateForm(path string) (bool, error) {
	doc, err := pdfform.Open(path)
	if err != nil {
		return false, err
	}
	defer doc.Close()

	fields, err := doc.FormFields()
	if err != nil {
		return false, err
	}
	return len(fields) > 0, nil
}

// FormInfo inspects a PDF's form surface without mutating it.
func (c *Converter) FormInfo(path string) (pdfform.FormInfo, error) {
	doc, err := pdfform.Open(path)
	if err != nil {
		return pdfform.FormInfo{}, err
	}
	defer doc.Close()

	return doc.Inspect()
}

// OutputName derives the batch output path for one input:
// <outDir>/<stem>_digital.pdf.
func OutputName(inputPath, outDir string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, stem+"_digital.pdf")
}

func excerpt(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= n {
		return s
	}
	return fmt.Sprintf("%s...", s[:n])
}
