package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tablegrid/internal/model"
)

// Config holds the tablegrid settings read from config.toml.
type Config struct {
	Grid   Grid
	Log    Log
	Kernel Kernel
	// Defaulted lists the keys that were present but invalid and fell
	// back to their defaults.
	Defaulted []string
}

// Grid holds model defaults applied to records that leave them unset.
type Grid struct {
	DataFontSize       float64
	HeaderFontSize     float64
	RowsToShow         int
	AutoLinkTableLinks bool
	HeadersVertical    bool
	TimeZone           string
}

// Log configures the log file.
type Log struct {
	Level string
	Dir   string
}

// Kernel configures the kernel bridge and the model file watcher.
type Kernel struct {
	URL          string
	ReconnectMax time.Duration
	PollInterval time.Duration
}

const (
	defaultConfigPath   = "~/.config/tablegrid/config.toml"
	defaultLogDir       = "~/.local/share/tablegrid/logs"
	defaultLogLevel     = "info"
	defaultReconnectMax = 30 * time.Second
	defaultPollInterval = 2 * time.Second
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log: Log{Level: defaultLogLevel, Dir: mustExpand(defaultLogDir)},
		Kernel: Kernel{
			ReconnectMax: defaultReconnectMax,
			PollInterval: defaultPollInterval,
		},
	}
}

type rawConfig struct {
	Grid struct {
		DataFontSize       float64 `toml:"data_font_size"`
		HeaderFontSize     float64 `toml:"header_font_size"`
		RowsToShow         int     `toml:"rows_to_show"`
		AutoLinkTableLinks bool    `toml:"auto_link_table_links"`
		HeadersVertical    bool    `toml:"headers_vertical"`
		TimeZone           string  `toml:"time_zone"`
	} `toml:"grid"`
	Log struct {
		Level string `toml:"level"`
		Dir   string `toml:"dir"`
	} `toml:"log"`
	Kernel struct {
		URL          string `toml:"url"`
		ReconnectMax int    `toml:"reconnect_max"`
		PollSeconds  int    `toml:"poll_seconds"`
	} `toml:"kernel"`
}

// Load locates and parses the config, falling back to defaults when the
// file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	g := raw.Grid
	cfg.Grid = Grid{
		AutoLinkTableLinks: g.AutoLinkTableLinks,
		HeadersVertical:    g.HeadersVertical,
		TimeZone:           strings.TrimSpace(g.TimeZone),
	}
	cfg.Grid.DataFontSize = cfg.positive("grid.data_font_size", g.DataFontSize)
	cfg.Grid.HeaderFontSize = cfg.positive("grid.header_font_size", g.HeaderFontSize)
	if g.RowsToShow > 0 || g.RowsToShow == -1 {
		cfg.Grid.RowsToShow = g.RowsToShow
	} else if g.RowsToShow != 0 {
		cfg.Defaulted = append(cfg.Defaulted, "grid.rows_to_show")
	}

	level := strings.ToLower(strings.TrimSpace(raw.Log.Level))
	switch {
	case level == "":
	case logLevels[level]:
		cfg.Log.Level = level
	default:
		cfg.Defaulted = append(cfg.Defaulted, "log.level")
	}
	if dir := strings.TrimSpace(raw.Log.Dir); dir != "" {
		cfg.Log.Dir = mustExpand(dir)
	}

	cfg.Kernel.URL = strings.TrimSpace(raw.Kernel.URL)
	if n := raw.Kernel.ReconnectMax; n > 0 {
		cfg.Kernel.ReconnectMax = time.Duration(n) * time.Second
	} else if n < 0 {
		cfg.Defaulted = append(cfg.Defaulted, "kernel.reconnect_max")
	}
	if n := raw.Kernel.PollSeconds; n > 0 {
		cfg.Kernel.PollInterval = time.Duration(n) * time.Second
	} else if n < 0 {
		cfg.Defaulted = append(cfg.Defaulted, "kernel.poll_seconds")
	}

	return cfg, nil
}

func (c *Config) positive(key string, v float64) float64 {
	if v < 0 {
		c.Defaulted = append(c.Defaulted, key)
		return 0
	}
	return v
}

// LogPath returns the path of the tablegrid log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.Log.Dir) == "" {
		return mustExpand(defaultLogDir + "/tablegrid.log")
	}
	return filepath.Join(c.Log.Dir, "tablegrid.log")
}

// Apply fills the fields r leaves unset from the grid defaults.
func (g Grid) Apply(r model.Record) model.Record {
	if r.DataFontSize == nil && g.DataFontSize > 0 {
		size := g.DataFontSize
		r.DataFontSize = &size
	}
	if r.HeaderFontSize == nil && g.HeaderFontSize > 0 {
		size := g.HeaderFontSize
		r.HeaderFontSize = &size
	}
	if r.RowsToShow == 0 {
		r.RowsToShow = g.RowsToShow
	}
	if r.TimeZone == "" {
		r.TimeZone = g.TimeZone
	}
	r.AutoLinkTableLinks = r.AutoLinkTableLinks || g.AutoLinkTableLinks
	r.HeadersVertical = r.HeadersVertical || g.HeadersVertical
	return r
}

// DefaultPath returns the config path used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
