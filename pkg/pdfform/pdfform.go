// Package pdfform inspects parsed PDF documents.
//
// It provides the form-handling side of the system: reading AcroForm field
// dictionaries, counting pages, and pulling the raster images embedded in
// page resources. The embedded-image extraction here is deliberately a
// different operation from pkg/pdfimage's full-page rendering: it only sees
// raster XObjects, so pages holding nothing but vector or text content
// contribute no bitmaps. That narrower coverage is exactly what the
// "does this look like a scanned form" check wants.
//
// All operations are read-only with respect to the source document.
package pdfform

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/eesb99/ocr2pdf/pkg/pdfimage"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// FormType classifies a document by the presence of fillable fields.
const (
	FormTypeFillable = "fillable"
	FormTypeScanned  = "scanned"
)

// FormInfo summarizes a document's interactive-form surface.
type FormInfo struct {
	Fields     map[string]string // field name -> current value (empty string when unset)
	FormType   string            // "fillable" or "scanned"
	PageCount  int
	ImageCount int
}

// Document is a parsed, read-only PDF.
type Document struct {
	path   string
	file   *os.File
	ctx    *model.Context
	images []image.Image // populated lazily by EmbeddedImages
}

// Open parses the PDF at path. Missing files, non-PDF extensions, and
// parse failures report pdfimage.ErrUnreadableDocument.
func Open(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pdfimage.ErrUnreadableDocument, path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", pdfimage.ErrUnreadableDocument, path)
	}
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return nil, fmt.Errorf("%w: %s is not a PDF file", pdfimage.ErrUnreadableDocument, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", pdfimage.ErrUnreadableDocument, path, err)
	}

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: failed to parse %s: %v", pdfimage.ErrUnreadableDocument, path, err)
	}

	return &Document{path: path, file: f, ctx: ctx}, nil
}

// Close releases the underlying file handle.
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Path returns the source file path.
func (d *Document) Path() string { return d.path }

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int { return d.ctx.PageCount }

// FormFields walks the AcroForm field tree and returns a mapping from
// field name to current value. An empty map signals "not a fillable form".
func (d *Document) FormFields() (map[string]string, error) {
	fields := make(map[string]string)

	catalog, err := d.ctx.Catalog()
	if err != nil {
		return nil, fmt.Errorf("failed to read document catalog: %w", err)
	}

	obj, found := catalog.Find("AcroForm")
	if !found {
		return fields, nil
	}
	acroForm, err := d.ctx.DereferenceDict(obj)
	if err != nil || acroForm == nil {
		return fields, nil
	}

	fieldsObj, found := acroForm.Find("Fields")
	if !found {
		return fields, nil
	}
	arr, err := d.ctx.DereferenceArray(fieldsObj)
	if err != nil || arr == nil {
		return fields, nil
	}

	for _, o := range arr {
		d.collectFields(o, "", fields)
	}
	return fields, nil
}

// collectFields descends one field dictionary, recursing into Kids.
// Hierarchical names are joined with dots, matching fully qualified
// AcroForm field names.
func (d *Document) collectFields(o types.Object, prefix string, out map[string]string) {
	dict, err := d.ctx.DereferenceDict(o)
	if err != nil || dict == nil {
		return
	}

	name := prefix
	if t, found := dict.Find("T"); found {
		if partial := d.stringValue(t); partial != "" {
			if name != "" {
				name = name + "." + partial
			} else {
				name = partial
			}
		}
	}

	if kidsObj, found := dict.Find("Kids"); found {
		if kids, err := d.ctx.DereferenceArray(kidsObj); err == nil && len(kids) > 0 {
			// Widget-only kids carry no T entry; terminal fields do.
			for _, kid := range kids {
				d.collectFields(kid, name, out)
			}
		}
	}

	// A field dictionary is terminal when it declares a field type.
	if _, found := dict.Find("FT"); !found {
		return
	}
	if name == "" {
		return
	}

	value := ""
	if v, found := dict.Find("V"); found {
		value = d.stringValue(v)
	}
	out[name] = value
}

// stringValue renders a dereferenced PDF object as display text.
func (d *Document) stringValue(o types.Object) string {
	resolved, err := d.ctx.Dereference(o)
	if err != nil {
		return ""
	}
	switch v := resolved.(type) {
	case types.StringLiteral:
		s, err := types.StringLiteralToString(v)
		if err != nil {
			return v.Value()
		}
		return s
	case types.HexLiteral:
		s, err := types.HexLiteralToString(v)
		if err != nil {
			return ""
		}
		return s
	case types.Name:
		return v.Value()
	case types.Integer:
		return fmt.Sprintf("%d", v.Value())
	case types.Float:
		return fmt.Sprintf("%v", v.Value())
	case types.Boolean:
		return fmt.Sprintf("%t", v.Value())
	default:
		return ""
	}
}

// EmbeddedImages decodes every raster image embedded in the document's
// page resources, page by page in object-number order. A page without
// raster XObjects contributes nothing. Decode failures fail the whole
// call rather than yielding a partial set.
func (d *Document) EmbeddedImages() ([]image.Image, error) {
	if d.images != nil {
		return d.images, nil
	}

	var images []image.Image
	for pageNr := 1; pageNr <= d.ctx.PageCount; pageNr++ {
		pageImages, err := pdfcpu.ExtractPageImages(d.ctx, pageNr, false)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to extract images from page %d of %s: %v",
				pdfimage.ErrUnreadableDocument, pageNr, d.path, err)
		}

		objNrs := make([]int, 0, len(pageImages))
		for objNr := range pageImages {
			objNrs = append(objNrs, objNr)
		}
		sort.Ints(objNrs)

		for _, objNr := range objNrs {
			img, _, err := image.Decode(pageImages[objNr])
			if err != nil {
				return nil, fmt.Errorf("%w: failed to decode embedded image (page %d, obj %d) of %s: %v",
					pdfimage.ErrUnreadableDocument, pageNr, objNr, d.path, err)
			}
			images = append(images, img)
		}
	}

	d.images = images
	return images, nil
}

// Inspect reports the document's form surface: its fields, the binary
// fillable/scanned classification, and page/image counts. A document with
// zero declared fields is always "scanned", even if it is just body text.
func (d *Document) Inspect() (FormInfo, error) {
	fields, err := d.FormFields()
	if err != nil {
		return FormInfo{}, err
	}

	images, err := d.EmbeddedImages()
	if err != nil {
		return FormInfo{}, err
	}

	formType := FormTypeScanned
	if len(fields) > 0 {
		formType = FormTypeFillable
	}

	return FormInfo{
		Fields:     fields,
		FormType:   formType,
		PageCount:  d.ctx.PageCount,
		ImageCount: len(images),
	}, nil
}

// WriteCopy writes the parsed document's pages to outputPath unchanged.
// Used by the form workflow, which never mutates the source.
func (d *Document) WriteCopy(outputPath string) error {
	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := api.WriteContextFile(d.ctx, outputPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	return nil
}
