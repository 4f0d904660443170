// Package theme manages the light/dark display mode and its persistence.
package theme

import (
	"fmt"
	"strings"
)

// Theme is the display mode.
type Theme string

// Supported themes.
const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// StorageKey is the fixed key the preference is persisted under.
const StorageKey = "theme"

// Parse converts the persisted literal into a Theme.
func Parse(value string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(value))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("theme: unknown value %q", value)
	}
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Icon is the toggle button glyph: a sun while dark, a moon while light.
func (t Theme) Icon() string {
	if t == Dark {
		return "sun"
	}
	return "moon"
}

func (t Theme) String() string { return string(t) }
