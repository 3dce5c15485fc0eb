package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eesb99/ocr2pdf/pkg/ocr2pdf"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output.pdf>",
	Short: "Convert an image, PDF, or directory into a searchable PDF",
	Long: `Convert runs OCR over the input and writes the recognized text as a
searchable PDF. The input may be a single image (PNG, JPEG, TIFF, BMP),
a PDF whose pages are rendered and recognized, or a directory whose
supported files are merged into one output document.

Examples:
  ocr2pdf convert scan.png scan_searchable.pdf
  ocr2pdf convert legacy.pdf legacy_searchable.pdf
  ocr2pdf convert ./scans combined.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	converter, err := ocr2pdf.NewConverter(settings, logger)
	if err != nil {
		return err
	}

	if err := converter.Convert(input, output); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Created:", ocr2pdf.EnsurePDFSuffix(output))
	return nil
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
