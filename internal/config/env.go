package config

import "os"

// ApplyEnvConfig applies configuration from environment variables
// (PRINT_GRID_*). It respects flags that have been explicitly set (changed
// map). Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("filter", os.Getenv("PRINT_GRID_FILTER"), &cfg.Filter)
	s.setString("background", os.Getenv("PRINT_GRID_BACKGROUND"), &cfg.Background)
	s.setString("log-level", os.Getenv("PRINT_GRID_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setIntFromString("dpi", os.Getenv("PRINT_GRID_DPI"), &cfg.DPI); err != nil {
		return err
	}
	if err := s.setIntFromString("quality", os.Getenv("PRINT_GRID_QUALITY"), &cfg.JPEGQuality); err != nil {
		return err
	}
	if err := s.setInchesFromString("sheet-width", os.Getenv("PRINT_GRID_SHEET_WIDTH"), &cfg.SheetWidth); err != nil {
		return err
	}
	if err := s.setInchesFromString("sheet-height", os.Getenv("PRINT_GRID_SHEET_HEIGHT"), &cfg.SheetHeight); err != nil {
		return err
	}

	return nil
}
