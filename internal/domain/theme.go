package domain

import (
	"fmt"
	"strings"
)

// ThemeSettingKey is the settings key holding the persisted theme.
const ThemeSettingKey = "theme"

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts "dark"/"light" and the legacy boolean encoding where
// "true" meant dark mode.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark", "true", "1":
		return ThemeDark, nil
	case "light", "false", "0":
		return ThemeLight, nil
	default:
		return "", fmt.Errorf("unknown theme value %q", s)
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) IsDark() bool { return t == ThemeDark }
