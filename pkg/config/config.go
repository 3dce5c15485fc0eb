// Package config loads and persists the ocr2pdf settings file.
//
// Settings live in a small JSON document (ocr_config and pdf_config
// sections). A missing file is created with defaults on first access;
// a corrupt file falls back to defaults without surfacing an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// OCRSettings controls the text recognizer.
type OCRSettings struct {
	Lang                string `mapstructure:"lang" json:"lang"`
	ConfidenceThreshold int    `mapstructure:"confidence_threshold" json:"confidence_threshold"`
}

// PDFSettings controls output PDF generation.
type PDFSettings struct {
	Compression   bool   `mapstructure:"compression" json:"compression"`
	OutputQuality string `mapstructure:"output_quality" json:"output_quality"`
}

// Settings is the full configuration passed into component constructors.
// There is no package-level settings singleton; callers load once and
// hand the value down.
type Settings struct {
	OCR OCRSettings `mapstructure:"ocr_config" json:"ocr_config"`
	PDF PDFSettings `mapstructure:"pdf_config" json:"pdf_config"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		OCR: OCRSettings{
			Lang:                "eng",
			ConfidenceThreshold: 70,
		},
		PDF: PDFSettings{
			Compression:   true,
			OutputQuality: "high",
		},
	}
}

// DefaultPath returns the settings file location, honoring the
// OCR2PDF_CONFIG environment variable before falling back to the
// user config directory.
func DefaultPath() string {
	if p := os.Getenv("OCR2PDF_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(dir, "ocr2pdf", "config.json")
}

// Load reads settings from path. A missing file is created with defaults
// and the defaults are returned. Unreadable or corrupt files also yield
// defaults; callers never see a parse error for the settings file.
func Load(path string) (Settings, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(path, Default()); err != nil {
			return Default(), err
		}
		return Default(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Default(), nil
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Default(), nil
	}
	return s, nil
}

// Save writes settings to path as JSON, creating parent directories.
func Save(path string, s Settings) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set("ocr_config.lang", s.OCR.Lang)
	v.Set("ocr_config.confidence_threshold", s.OCR.ConfidenceThreshold)
	v.Set("pdf_config.compression", s.PDF.Compression)
	v.Set("pdf_config.output_quality", s.PDF.OutputQuality)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("ocr_config.lang", d.OCR.Lang)
	v.SetDefault("ocr_config.confidence_threshold", d.OCR.ConfidenceThreshold)
	v.SetDefault("pdf_config.compression", d.PDF.Compression)
	v.SetDefault("pdf_config.output_quality", d.PDF.OutputQuality)
}
