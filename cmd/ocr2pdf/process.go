package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eesb99/ocr2pdf/pkg/ocr2pdf"
)

var (
	processOutDir       string
	processBatch        bool
	processValidateOnly bool
)

var processCmd = &cobra.Command{
	Use:   "process <input>",
	Short: "Run the form workflow over a PDF or a directory of PDFs",
	Long: `Process reads PDF forms, recognizes the text in their embedded page
images, and writes each document into the output directory as
<name>_digital.pdf. With --validate-only no output is written; each
form is only checked for fillable fields.

Examples:
  ocr2pdf process form.pdf
  ocr2pdf process ./forms --batch -o processed
  ocr2pdf process ./forms --batch --validate-only`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	input := args[0]

	inputs, err := ocr2pdf.CollectPDFs(input)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("%w: no PDF files at %s", ocr2pdf.ErrNoInputFound, input)
	}
	if len(inputs) > 1 && !processBatch {
		return fmt.Errorf("%s contains %d PDF files; pass --batch to process a directory",
			input, len(inputs))
	}

	converter, err := ocr2pdf.NewConverter(settings, logger)
	if err != nil {
		return err
	}

	report := converter.ProcessBatch(inputs, processOutDir, processValidateOnly)

	out := cmd.OutOrStdout()
	for _, item := range report.Items {
		switch item.Outcome {
		case ocr2pdf.OutcomeSuccess:
			if processValidateOnly {
				state := "scanned"
				if item.Valid {
					state = "fillable"
				}
				fmt.Fprintf(out, "%s: %s\n", item.Input, state)
			} else {
				fmt.Fprintf(out, "%s -> %s\n", item.Input, item.Output)
			}
		case ocr2pdf.OutcomeSkipped:
			fmt.Fprintf(out, "%s: skipped (not a PDF)\n", item.Input)
		case ocr2pdf.OutcomeFailed:
			fmt.Fprintf(out, "%s: failed: %v\n", item.Input, item.Err)
		}
	}
	fmt.Fprintf(out, "Processed %d file(s): %d succeeded, %d failed, %d skipped\n",
		len(report.Items), report.Succeeded(), report.Failed(), report.Skipped())

	if report.Failed() > 0 {
		return fmt.Errorf("%d file(s) failed", report.Failed())
	}
	return nil
}

func init() {
	processCmd.Flags().StringVarP(&processOutDir, "output", "o", "output",
		"directory for processed PDFs")
	processCmd.Flags().BoolVar(&processBatch, "batch", false,
		"process every PDF under a directory")
	processCmd.Flags().BoolVar(&processValidateOnly, "validate-only", false,
		"only check forms for fillable fields, write nothing")
	rootCmd.AddCommand(processCmd)
}
