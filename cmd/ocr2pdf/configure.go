package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eesb99/ocr2pdf/pkg/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Update OCR settings interactively",
	Long: `Configure prompts for the OCR language and confidence threshold and
persists them to the settings file. Press enter to keep the current
value of a setting.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func runConfigure(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintf(out, "OCR language [%s]: ", settings.OCR.Lang)
	lang, err := readLine(reader)
	if err != nil {
		return err
	}
	if lang != "" {
		settings.OCR.Lang = lang
	}

	fmt.Fprintf(out, "Confidence threshold 0-100 [%d]: ", settings.OCR.ConfidenceThreshold)
	raw, err := readLine(reader)
	if err != nil {
		return err
	}
	if raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil || threshold < 0 || threshold > 100 {
			return fmt.Errorf("confidence threshold must be an integer between 0 and 100, got %q", raw)
		}
		settings.OCR.ConfidenceThreshold = threshold
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	if err := config.Save(path, settings); err != nil {
		return err
	}
	fmt.Fprintln(out, "Settings saved to", path)
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", nil
	}
	return strings.TrimSpace(line), nil
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
