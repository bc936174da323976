// Package prefs persists tablegrid user preferences in
// ~/.config/tablegrid/prefs.toml.
package prefs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/tablegrid/internal/theme"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme           string `toml:"theme"`
	HeadersVertical bool   `toml:"headers_vertical"`
}

const (
	defaultPrefsPath = "~/.config/tablegrid/prefs.toml"
	defaultTheme     = "Light"
)

// Themes lists the theme names in cycle order.
var Themes = []string{"Light", "Dark"}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Default returns the preferences used when none are stored.
func Default() Prefs {
	return Prefs{Theme: defaultTheme}
}

// Load reads preferences from the given path. Any failure falls back to
// defaults.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default(), nil
	}

	file, err := os.Open(resolved)
	if err != nil {
		return Default(), nil // missing or unreadable
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Default(), nil
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return Default(), nil
	}
	p.Theme = normalizeTheme(p.Theme)
	return p, nil
}

func normalizeTheme(name string) string {
	name = strings.TrimSpace(name)
	for _, t := range Themes {
		if strings.EqualFold(t, name) {
			return t
		}
	}
	return defaultTheme
}

// Palette returns the grid palette for the stored theme.
func (p Prefs) Palette() theme.Palette {
	return theme.ByName(normalizeTheme(p.Theme))
}

// NextTheme returns p with the theme after the current one.
func (p Prefs) NextTheme() Prefs {
	current := normalizeTheme(p.Theme)
	for i, t := range Themes {
		if t == current {
			p.Theme = Themes[(i+1)%len(Themes)]
			return p
		}
	}
	p.Theme = defaultTheme
	return p
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
