package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/eesb99/ocr2pdf/pkg/config"
)

var (
	cfgFile string
	verbose bool

	// Shared across commands, populated by the root PersistentPreRunE.
	settings config.Settings
	logger   zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ocr2pdf",
	Short: "Convert scanned documents into searchable PDFs",
	Long: `ocr2pdf turns scanned images and PDFs into searchable PDF documents
using the Tesseract OCR engine, and inspects PDF forms for fillable
fields and embedded page images.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()

		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		settings, err = config.Load(path)
		if err != nil {
			return err
		}
		logger.Debug().Str("config", path).Str("lang", settings.OCR.Lang).
			Msg("settings loaded")
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"settings file (default is <user config dir>/ocr2pdf/config.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}
