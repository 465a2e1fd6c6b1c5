package chatui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const themeKey = "theme"

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme %q (want light or dark)", s)
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// DefaultPrefsPath returns $XDG_CONFIG_HOME/gemchat/prefs.yaml or the
// platform equivalent.
func DefaultPrefsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "gemchat", "prefs.yaml"), nil
}

// ThemeStore persists the theme preference in a YAML file. When nothing is
// stored yet the system preference decides.
type ThemeStore struct {
	v          *viper.Viper
	path       string
	systemDark func() bool
}

func NewThemeStore(path string, systemDark func() bool) *ThemeStore {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	return &ThemeStore{v: v, path: path, systemDark: systemDark}
}

// Load returns the stored theme, or the system preference if none is stored
// or the stored value is unreadable.
func (s *ThemeStore) Load() Theme {
	if err := s.v.ReadInConfig(); err == nil {
		if t, err := ParseTheme(s.v.GetString(themeKey)); err == nil {
			return t
		}
	}

	if s.systemDark != nil && s.systemDark() {
		return ThemeDark
	}
	return ThemeLight
}

func (s *ThemeStore) Set(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	s.v.Set(themeKey, string(t))
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

// Toggle flips the current theme and persists the result.
func (s *ThemeStore) Toggle() (Theme, error) {
	next := s.Load().Toggle()
	if err := s.Set(next); err != nil {
		return "", err
	}
	return next, nil
}
