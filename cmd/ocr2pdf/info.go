package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/eesb99/ocr2pdf/pkg/pdfform"
)

var infoCmd = &cobra.Command{
	Use:   "info <input.pdf>",
	Short: "Show form details for a PDF",
	Long: `Info inspects a PDF without modifying it: file size, page count,
whether the document is a fillable form or a scanned one, the declared
form fields, and the number of embedded page images.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", path, err)
	}

	doc, err := pdfform.Open(path)
	if err != nil {
		return err
	}
	defer doc.Close()

	info, err := doc.Inspect()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "File:      %s\n", path)
	fmt.Fprintf(out, "Size:      %.1f KB\n", float64(stat.Size())/1024)
	fmt.Fprintf(out, "Pages:     %d\n", info.PageCount)
	fmt.Fprintf(out, "Form type: %s\n", info.FormType)
	fmt.Fprintf(out, "Images:    %d\n", info.ImageCount)

	if len(info.Fields) == 0 {
		fmt.Fprintln(out, "Fields:    none")
		return nil
	}
	names := make([]string, 0, len(info.Fields))
	for name := range info.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(out, "Fields:    %d\n", len(names))
	for _, name := range names {
		value := info.Fields[name]
		if value == "" {
			fmt.Fprintf(out, "  %s\n", name)
		} else {
			fmt.Fprintf(out, "  %s = %s\n", name, value)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
