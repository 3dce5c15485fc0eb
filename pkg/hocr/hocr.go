// Package hocr parses hOCR data, the HTML-based standard format for
// representing OCR results.
//
// Tesseract emits one hOCR document per recognized image. This package
// extracts the word-level records (class 'ocrx_word') together with their
// bounding boxes and confidence values, which is what the layout-aware
// recognition path consumes.
//
// Key Types:
//
// - Word: a single recognized word with position and confidence
// - BoundingBox: a rectangle with coordinates for positioning elements
//
// Main Functions:
//
// - ParseWords: extracts all word records from raw hOCR HTML
// - ParseTitle: breaks an hOCR title attribute into its properties
package hocr
