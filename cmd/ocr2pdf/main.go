// ocr2pdf converts scanned documents into searchable PDFs and inspects
// PDF forms.
//
// Usage:
//
//	ocr2pdf convert <input> <output.pdf>     Convert an image, PDF, or directory
//	ocr2pdf process <input> [flags]          Run the form workflow
//	ocr2pdf info <input.pdf>                 Show form details for a PDF
//	ocr2pdf configure                        Update OCR settings interactively
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env file; absence is not an error.
	_ = godotenv.Load()

	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
