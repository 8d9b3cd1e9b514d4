package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config as it appears in a TOML file. Numeric fields are
// pointers so an explicit zero can be told apart from an absent key.
type FileConfig struct {
	DPI         *int     `toml:"dpi"`
	Filter      string   `toml:"filter"`
	JPEGQuality *int     `toml:"jpeg_quality"`
	Background  string   `toml:"background"`
	SheetWidth  *float64 `toml:"sheet_width"`
	SheetHeight *float64 `toml:"sheet_height"`
	LogLevel    string   `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// ApplyFileConfig applies configuration from a file to cfg.
// It respects flags that have been explicitly set (changed map). Returns an
// error if a numeric value is present but not positive.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("filter", fc.Filter, &cfg.Filter)
	s.setString("background", fc.Background, &cfg.Background)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setInt("dpi", fc.DPI, &cfg.DPI); err != nil {
		return err
	}
	if err := s.setInt("quality", fc.JPEGQuality, &cfg.JPEGQuality); err != nil {
		return err
	}
	if err := s.setInches("sheet-width", fc.SheetWidth, &cfg.SheetWidth); err != nil {
		return err
	}
	if err := s.setInches("sheet-height", fc.SheetHeight, &cfg.SheetHeight); err != nil {
		return err
	}

	return nil
}
