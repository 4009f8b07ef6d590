package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig holds the full application configuration.
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	SLA    SLAConfig    `toml:"sla"`
	Log    LogConfig    `toml:"log"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig data directory settings.
type DataConfig struct {
	DataDir    string `toml:"data_dir"`
	WatchInbox bool   `toml:"watch_inbox"`
}

// SLAConfig business defaults for SLA handling.
type SLAConfig struct {
	// DefaultTarget fills in a blank SLA_Target cell, in hours. Zero disables.
	DefaultTarget float64 `toml:"default_target"`
	// WarnThreshold is the compliance fraction below which the dashboard
	// highlights a department.
	WarnThreshold float64 `toml:"warn_threshold"`
}

// LogConfig logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    18750,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:    "data",
			WatchInbox: false,
		},
		SLA: SLAConfig{
			DefaultTarget: 0,
			WarnThreshold: 0.8,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GetExeDir returns the directory holding the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig loads config.toml from the executable's directory. A missing
// file is not an error; defaults apply. Environment variables override
// the file.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("OPSDASH_DATA_DIR"); v != "" {
		config.Data.DataDir = v
	}
	if v := os.Getenv("OPSDASH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("OPSDASH_LOG_LEVEL"); v != "" {
		config.Log.Level = v
	}
}

// SaveConfig writes config.toml next to the executable.
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir creates the data directory and its subdirectories,
// returning the resolved path. Relative paths are anchored at the
// executable's directory.
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports", "inbox"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
