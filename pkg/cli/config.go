package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvConfig       = "CIF_CONFIG"
	EnvLogLevel     = "CIF_LOG_LEVEL"
	EnvJPEGQuality  = "CIF_JPEG_QUALITY"
	EnvOutputFormat = "CIF_OUTPUT_FORMAT"
)

type configOutput struct {
	JPEGQuality int    `toml:"jpeg_quality"`
	Format      string `toml:"format"`
}

type configLog struct {
	Level string `toml:"level"`
}

type configUpdate struct {
	Repository string `toml:"repository"`
}

// Config is the merged configuration. Precedence, lowest first: defaults,
// TOML file, environment (including .env), command-line flags.
type Config struct {
	Output configOutput `toml:"output"`
	Log    configLog    `toml:"log"`
	Update configUpdate `toml:"update"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Output: configOutput{JPEGQuality: 95, Format: "png"},
		Log:    configLog{Level: "warn"},
		Update: configUpdate{Repository: DefaultRepository},
	}
}

// configPath picks the TOML file: the explicit path, $CIF_CONFIG, or
// $XDG_CONFIG_HOME/cif/config.toml. explicit reports whether the user named
// the file, in which case it must exist.
func configPath(flagPath string, getenv func(string) string) (path string, explicit bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if p := getenv(EnvConfig); p != "" {
		return p, true
	}
	dir := getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "cif", "config.toml"), false
}

// LoadConfig layers the TOML file and the environment over DefaultConfig.
// A .env file in the working directory is loaded first without overriding
// variables that are already set.
func LoadConfig(flagPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return loadConfig(flagPath, os.Getenv)
}

func loadConfig(flagPath string, getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	path, explicit := configPath(flagPath, getenv)
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				return applyEnv(cfg, getenv)
			}
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	return applyEnv(cfg, getenv)
}

func applyEnv(cfg Config, getenv func(string) string) (Config, error) {
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := getenv(EnvOutputFormat); v != "" {
		cfg.Output.Format = v
	}
	if v := getenv(EnvJPEGQuality); v != "" {
		q, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s=%q: %w", EnvJPEGQuality, v, err)
		}
		cfg.Output.JPEGQuality = q
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("jpeg quality %d must be within 1..100", c.Output.JPEGQuality)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
