package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const DefaultGlamourStyle = "dark"

const DefaultAPIBaseURL = "http://127.0.0.1:8000"

type AppConfig struct {
	APIBaseURL string
	StatePath  string
	ExportDir  string
	DebugLog   string
}

func Parse() (AppConfig, error) {
	var cfg AppConfig

	flag.StringVar(&cfg.APIBaseURL, "api", "", "DocChat backend base URL")
	flag.StringVar(&cfg.StatePath, "state-path", "", "path to local state file")
	flag.StringVar(&cfg.ExportDir, "export-dir", "", "override export output directory")
	flag.StringVar(&cfg.DebugLog, "debug-log", "", "write debug log to this file")
	flag.Parse()

	cfg.APIBaseURL = DetectAPIBaseURL(cfg.APIBaseURL)

	var err error
	cfg.StatePath, err = DetectStatePath(cfg.StatePath)
	if err != nil {
		return cfg, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o755); err != nil {
		return cfg, fmt.Errorf("create state dir: %w", err)
	}

	return cfg, nil
}

func DetectAPIBaseURL(explicit string) string {
	if explicit != "" {
		return strings.TrimRight(explicit, "/")
	}
	if fromEnv := os.Getenv("DOCCHAT_API_URL"); fromEnv != "" {
		return strings.TrimRight(fromEnv, "/")
	}
	return DefaultAPIBaseURL
}

func DetectStatePath(explicit string) (string, error) {
	if explicit != "" {
		return filepath.Clean(explicit), nil
	}
	if fromEnv := os.Getenv("DOCCHAT_STATE_PATH"); fromEnv != "" {
		return filepath.Clean(fromEnv), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "docchat", "state.sqlite"), nil
}
