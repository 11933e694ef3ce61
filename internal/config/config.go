package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	FlowFile     string
	RechargeFile string
	ReportFile   string // pre-existing PDF validation report; empty disables /report

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Watershed discretization. The recharge file's per-block row and
	// column counts must match exactly.
	GridRows   int
	GridCols   int
	CellAreaM2 float64

	// StrictParse makes malformed or orphan input lines fatal at load time
	// instead of counted-and-dropped.
	StrictParse bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	gridRows, err := parseIntEnv("GRID_ROWS", 68)
	if err != nil {
		return nil, err
	}
	gridCols, err := parseIntEnv("GRID_COLS", 94)
	if err != nil {
		return nil, err
	}
	cellArea, err := parseFloatEnv("CELL_AREA_M2", 90000)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		FlowFile:        envOrDefault("FLOW_FILE", "data/swatmf_out_MF_gwsw_monthly.txt"),
		RechargeFile:    envOrDefault("RECHARGE_FILE", "data/swatmf_out_MF_recharge_monthly.txt"),
		ReportFile:      os.Getenv("REPORT_FILE"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		GridRows:        gridRows,
		GridCols:        gridCols,
		CellAreaM2:      cellArea,
		StrictParse:     os.Getenv("STRICT_PARSE") == "true",
	}

	if cfg.FlowFile == "" {
		return nil, errors.New("FLOW_FILE is required")
	}
	if cfg.RechargeFile == "" {
		return nil, errors.New("RECHARGE_FILE is required")
	}
	if cfg.GridRows <= 0 || cfg.GridCols <= 0 {
		return nil, errors.New("GRID_ROWS and GRID_COLS must be positive")
	}
	if cfg.CellAreaM2 <= 0 {
		return nil, errors.New("CELL_AREA_M2 must be positive")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseFloatEnv(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return v, nil
}
