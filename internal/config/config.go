package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const (
	AppDirName       = ".hunt-tracker"
	DBFileName       = "hunt.sqlite3"
	TemplateFileName = "hunt-template.sqlite3"
	ExportTmplName   = "osd-template.txt"
	ExportOutName    = "osd.txt"
)

// Config holds every runtime setting. Paths default to a per-install
// directory under the user's home, but can be overridden individually
// through the environment.
type Config struct {
	DataDir        string `env:"HUNT_DATA_DIR"`
	ListenAddr     string `env:"HUNT_LISTEN_ADDR" envDefault:":8199"`
	DBPath         string `env:"HUNT_DB_PATH"`
	TemplatePath   string `env:"HUNT_TEMPLATE_PATH"`
	ExportTemplate string `env:"HUNT_EXPORT_TEMPLATE"`
	ExportOutput   string `env:"HUNT_EXPORT_OUTPUT"`
}

// Load parses the environment and fills in derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("could not find user home: %w", err)
		}
		cfg.DataDir = filepath.Join(home, AppDirName)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, DBFileName)
	}
	if cfg.TemplatePath == "" {
		cfg.TemplatePath = filepath.Join(cfg.DataDir, TemplateFileName)
	}
	if cfg.ExportTemplate == "" {
		cfg.ExportTemplate = filepath.Join(cfg.DataDir, ExportTmplName)
	}
	if cfg.ExportOutput == "" {
		cfg.ExportOutput = filepath.Join(cfg.DataDir, ExportOutName)
	}

	// 0755: Owner can read/write/exec, Group/Others can read/exec
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return cfg, fmt.Errorf("failed to init data dir %s: %w", cfg.DataDir, err)
	}

	return cfg, nil
}
