package style

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef represents an adaptive color definition in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef represents a style definition in YAML. Foreground and
// Background name a theme colour or hold a literal colour.
type StyleDef struct {
	Bold         bool   `yaml:"bold,omitempty"`
	Italic       bool   `yaml:"italic,omitempty"`
	Underline    bool   `yaml:"underline,omitempty"`
	Foreground   string `yaml:"foreground,omitempty"`
	Background   string `yaml:"background,omitempty"`
	MarginTop    int    `yaml:"marginTop,omitempty"`
	PaddingLeft  int    `yaml:"paddingLeft,omitempty"`
	PaddingRight int    `yaml:"paddingRight,omitempty"`
}

// Theme is the complete styles configuration
type Theme struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

//go:embed theme.yaml
var embeddedTheme []byte

// registry maps semantic names to lipgloss styles
var registry map[string]lipgloss.Style

func init() {
	styles, err := LoadTheme(embeddedTheme)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded theme: %v", err))
	}
	registry = styles
}

// LoadTheme parses a YAML theme into lipgloss styles.
func LoadTheme(data []byte) (map[string]lipgloss.Style, error) {
	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	if len(theme.Styles) == 0 {
		return nil, fmt.Errorf("theme defines no styles")
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(theme.Colors))
	for name, def := range theme.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	resolve := func(ref string) lipgloss.TerminalColor {
		if c, ok := colors[ref]; ok {
			return c
		}
		return lipgloss.Color(ref)
	}

	styles := make(map[string]lipgloss.Style, len(theme.Styles))
	for name, def := range theme.Styles {
		s := lipgloss.NewStyle().
			Bold(def.Bold).
			Italic(def.Italic).
			Underline(def.Underline).
			MarginTop(def.MarginTop).
			PaddingLeft(def.PaddingLeft).
			PaddingRight(def.PaddingRight)
		if def.Foreground != "" {
			s = s.Foreground(resolve(def.Foreground))
		}
		if def.Background != "" {
			s = s.Background(resolve(def.Background))
		}
		styles[name] = s
	}
	return styles, nil
}

// Get returns the named style, or a plain style when unknown.
func Get(name string) lipgloss.Style {
	if s, ok := registry[name]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to text.
func Render(name, text string) string {
	return Get(name).Render(text)
}
