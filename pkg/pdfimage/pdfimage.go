// Package pdfimage produces page bitmaps from scanned documents.
//
// This is the whole-document extraction path: a PDF input has every page
// rendered to a bitmap (via MuPDF), a raster input is decoded directly.
// The embedded-image extraction path used for form inspection lives in
// pkg/pdfform and is intentionally a separate operation, since it misses
// pages containing only vector or text content.
//
// Extraction fails closed: a valid input yields at least one bitmap, or
// the whole call reports ErrUnreadableDocument.
package pdfimage

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrUnreadableDocument marks inputs that cannot be turned into page
// bitmaps: missing path, unexpected extension, or decode failure.
var ErrUnreadableDocument = errors.New("unreadable document")

// rasterExtensions enumerates the accepted raster input types. The set is
// explicit rather than glob-based; brace patterns like *.{jpg,png} are not
// expanded by filepath.Glob.
var rasterExtensions = map[string]bool{
	".bmp":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".tif":  true,
	".tiff": true,
}

// SupportedExtensions returns the accepted input extensions (lowercase,
// with leading dot), PDF included, in sorted order.
func SupportedExtensions() []string {
	return []string{".bmp", ".jpeg", ".jpg", ".pdf", ".png", ".tif", ".tiff"}
}

// IsSupported reports whether path carries an accepted input extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".pdf" || rasterExtensions[ext]
}

// ExtractPages opens a PDF or raster image file and returns one bitmap per
// page. PDF pages are rendered at the document's resolution; a raster file
// decodes to exactly one bitmap.
func ExtractPages(path string) ([]image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrUnreadableDocument, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".pdf":
		return renderPDFPages(path)
	case rasterExtensions[ext]:
		img, err := decodeImageFile(path)
		if err != nil {
			return nil, err
		}
		return []image.Image{img}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrUnreadableDocument, ext)
	}
}

// renderPDFPages renders every page of a PDF to a bitmap.
func renderPDFPages(path string) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open PDF %s: %v", ErrUnreadableDocument, path, err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	if numPages == 0 {
		return nil, fmt.Errorf("%w: PDF %s has no pages", ErrUnreadableDocument, path)
	}

	pages := make([]image.Image, 0, numPages)
	for i := 0; i < numPages; i++ {
		img, err := doc.Image(i)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to render page %d of %s: %v",
				ErrUnreadableDocument, i+1, path, err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

// decodeImageFile decodes a standalone raster file into one bitmap.
func decodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableDocument, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image %s: %v", ErrUnreadableDocument, path, err)
	}
	return img, nil
}
