// Package ocr recognizes text in page bitmaps using the Tesseract engine.
//
// Bitmaps are converted to single-channel grayscale before recognition,
// which improves engine accuracy, and submitted with the "single uniform
// block of text" segmentation mode. The engine binary is verified once at
// construction; recognition itself never re-checks it.
//
// Main Types:
//
// - Recognizer: a configured OCR handler bound to one language
// - WordBlock: a word-level record with confidence and position
package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os/exec"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/rs/zerolog"

	"github.com/eesb99/ocr2pdf/pkg/config"
	"github.com/eesb99/ocr2pdf/pkg/hocr"
)

// ErrEngineUnavailable signals that the Tesseract binary is not installed
// or not callable. Raised at construction time only.
var ErrEngineUnavailable = errors.New("OCR engine unavailable")

// layoutConfidenceThreshold is the fixed cutoff for word-level records.
// Words at or below it are excluded from RecognizeWithLayout output but
// still contribute to the whole-page text string.
const layoutConfidenceThreshold = 60.0

// WordBlock is one recognized word with its confidence (0-100) and
// position in bitmap pixel coordinates.
type WordBlock struct {
	Text       string
	Confidence float64
	X          float64
	Y          float64
	Width      float64
	Height     float64
}

// Recognizer performs OCR on individual bitmaps.
type Recognizer struct {
	lang   string
	logger zerolog.Logger
}

// NewRecognizer builds a recognizer for the configured language and
// verifies that the Tesseract binary is present. A missing binary fails
// fast with ErrEngineUnavailable; this is the only hard dependency check
// in the system and stays a startup-time check.
func NewRecognizer(cfg config.OCRSettings, logger zerolog.Logger) (*Recognizer, error) {
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("%w: tesseract not found in PATH: %v", ErrEngineUnavailable, err)
	}

	lang := cfg.Lang
	if lang == "" {
		lang = config.Default().OCR.Lang
	}

	logger.Debug().Str("lang", lang).Msg("OCR recognizer initialized")
	return &Recognizer{lang: lang, logger: logger}, nil
}

// Lang returns the recognizer's language code.
func (r *Recognizer) Lang() string { return r.lang }

// Recognize extracts the text of one bitmap and returns it trimmed.
// Engine failures surface as errors so callers can distinguish "no text
// found" from "engine crashed"; batch callers degrade per page.
func (r *Recognizer) Recognize(img image.Image) (string, error) {
	client, err := r.prepare(img)
	if err != nil {
		return "", err
	}
	defer client.Close()

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("text recognition failed: %w", err)
	}

	text = strings.TrimSpace(text)
	r.logger.Debug().Int("chars", len(text)).Msg("recognized page text")
	return text, nil
}

// RecognizeWithLayout extracts word-level records with confidence scores
// and bounding boxes, filtered to confidence above 60.
func (r *Recognizer) RecognizeWithLayout(img image.Image) ([]WordBlock, error) {
	client, err := r.prepare(img)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	hocrHTML, err := client.HOCRText()
	if err != nil {
		return nil, fmt.Errorf("layout recognition failed: %w", err)
	}

	words, err := hocr.ParseWords([]byte(hocrHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse recognition layout: %w", err)
	}

	blocks := filterWords(words, layoutConfidenceThreshold)
	r.logger.Debug().Int("words", len(blocks)).Msg("recognized page layout")
	return blocks, nil
}

// prepare builds a gosseract client loaded with the grayscale rendition
// of img. The caller owns the client and must close it.
func (r *Recognizer) prepare(img image.Image) (*gosseract.Client, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, toGrayscale(img)); err != nil {
		return nil, fmt.Errorf("failed to encode bitmap: %w", err)
	}

	client := gosseract.NewClient()
	if err := client.SetLanguage(r.lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language %q: %w", r.lang, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set image: %w", err)
	}
	return client, nil
}

// toGrayscale renders any bitmap into a single-channel grayscale image.
func toGrayscale(img image.Image) *image.Gray {
	if gray, ok := img.(*image.Gray); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// filterWords keeps words above the confidence threshold, dropping empty
// tokens the engine sometimes emits for inter-word gaps.
func filterWords(words []hocr.Word, threshold float64) []WordBlock {
	blocks := make([]WordBlock, 0, len(words))
	for _, w := range words {
		if w.Text == "" || w.Confidence <= threshold {
			continue
		}
		blocks = append(blocks, WordBlock{
			Text:       w.Text,
			Confidence: w.Confidence,
			X:          w.BBox.X1,
			Y:          w.BBox.Y1,
			Width:      w.BBox.Width(),
			Height:     w.BBox.Height(),
		})
	}
	return blocks
}
