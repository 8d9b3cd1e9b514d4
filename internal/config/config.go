// Package config holds print-grid settings and resolves them from defaults,
// a TOML file, PRINT_GRID_* environment variables and command-line flags.
//
// Precedence, highest first: flags, environment, file, defaults. A setting
// only moves down the chain when its flag was not explicitly set.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ironsheep/print-grid-mcp/internal/grid"
	"github.com/ironsheep/print-grid-mcp/internal/imaging"
)

// Config holds print-grid configuration.
type Config struct {
	// DPI is the working resolution for tiles and sheets.
	DPI int

	// Filter names the resampling filter; see grid.Filters.
	Filter string

	// JPEGQuality is the output quality, 1-100.
	JPEGQuality int

	// Background is the sheet color as hex.
	Background string

	// SheetWidth and SheetHeight are the default sheet size in inches.
	SheetWidth  float64
	SheetHeight float64

	// LogLevel is a zerolog level name.
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		DPI:         grid.DefaultDPI,
		Filter:      string(grid.FilterHighQuality),
		JPEGQuality: imaging.DefaultJPEGQuality,
		Background:  imaging.DefaultBackground,
		SheetWidth:  4,
		SheetHeight: 6,
		LogLevel:    zerolog.InfoLevel.String(),
	}
}

// Validate checks the configuration for errors and normalizes names.
func (c *Config) Validate() error {
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive")
	}

	f, err := grid.ParseFilter(c.Filter)
	if err != nil {
		return err
	}
	c.Filter = string(f)

	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality must be between 1 and 100")
	}

	bg, err := imaging.ParseColor(c.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	c.Background = imaging.HexColor(bg)

	if !(c.SheetWidth > 0) {
		return &grid.InvalidDimensionError{Dimension: "sheet width", Inches: c.SheetWidth}
	}
	if !(c.SheetHeight > 0) {
		return &grid.InvalidDimensionError{Dimension: "sheet height", Inches: c.SheetHeight}
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	return nil
}

// Sheet returns the default sheet size.
func (c Config) Sheet() grid.PhysicalSize {
	return grid.PhysicalSize{Width: c.SheetWidth, Height: c.SheetHeight}
}

// ComposeOptions returns the grid options selected by c. c must be valid.
func (c Config) ComposeOptions() []grid.Option {
	opts := []grid.Option{grid.WithFilter(grid.Filter(c.Filter))}
	if bg, err := imaging.ParseColor(c.Background); err == nil {
		opts = append(opts, grid.WithBackground(bg))
	}
	return opts
}

// configSetter applies values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if present and flag not changed. A value that is
// present but not positive is an error.
func (s *configSetter) setInt(flag string, value *int, dst *int) error {
	if value == nil || s.changed[flag] {
		return nil
	}
	if *value <= 0 {
		return fmt.Errorf("%s must be positive, got %d", flag, *value)
	}
	*dst = *value
	return nil
}

// setInches sets a size in inches if present and flag not changed. A value
// that is present but not positive is an *grid.InvalidDimensionError.
func (s *configSetter) setInches(flag string, value *float64, dst *float64) error {
	if value == nil || s.changed[flag] {
		return nil
	}
	if !(*value > 0) {
		return &grid.InvalidDimensionError{Dimension: dimensionName(flag), Inches: *value}
	}
	*dst = *value
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return fmt.Errorf("%s must be positive, got %d", flag, i)
	}
	*dst = i
	return nil
}

// setInchesFromString parses a size in inches and sets the destination.
// Unlike the numeric setters, a non-positive value is an error rather than
// being ignored.
func (s *configSetter) setInchesFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := grid.ParseInches(dimensionName(flag), value)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

// dimensionName turns a flag name such as "sheet-width" into the dimension
// name used by grid errors, "sheet width".
func dimensionName(flag string) string {
	return strings.ReplaceAll(flag, "-", " ")
}

// DefaultConfigPath returns ~/.print-grid/config.toml, or "" when the home
// directory is unknown.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".print-grid", "config.toml")
	}
	return ""
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Resolve layers the file at path (skipped when empty or missing) and the
// environment onto cfg, then validates the result. changed lists the flags the
// user set explicitly; those values are kept.
func Resolve(cfg *Config, path string, changed map[string]bool) error {
	if path != "" && FileExists(path) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := ApplyEnvConfig(cfg, changed); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	return cfg.Validate()
}
