package mindmap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the editor's TOML configuration.
type Config struct {
	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Editor EditorConfig `toml:"editor"`
	Font   FontConfig   `toml:"font"`
	Theme  ThemeConfig  `toml:"theme"`
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	ShowStatus bool   `toml:"show_status"`
}

// CameraConfig controls zoom limits and wheel sensitivity.
type CameraConfig struct {
	MinZoom  float64 `toml:"min_zoom"`
	MaxZoom  float64 `toml:"max_zoom"`
	ZoomStep float64 `toml:"zoom_step"`
}

// EditorConfig controls interaction.
type EditorConfig struct {
	MaxTextLength int     `toml:"max_text_length"`
	EditModifier  string  `toml:"edit_modifier"` // "ctrl", "alt", "shift", "meta"
	EdgeThreshold float64 `toml:"edge_threshold"`
	RootText      string  `toml:"root_text"`
	DefaultText   string  `toml:"default_text"`
	Debug         bool    `toml:"debug"`
}

// FontConfig selects a TTF face. An empty path uses the debug font.
type FontConfig struct {
	Path string  `toml:"path"`
	Size float64 `toml:"size"`
}

// ThemeConfig holds colours as "#rrggbb" or "#rrggbbaa".
type ThemeConfig struct {
	Background string   `toml:"background"`
	Edge       string   `toml:"edge"`
	Highlight  string   `toml:"highlight"`
	Text       string   `toml:"text"`
	Levels     []string `toml:"levels"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Title: "mindmap", Width: 1280, Height: 720, ShowStatus: true},
		Camera: CameraConfig{MinZoom: DefaultMinZoom, MaxZoom: DefaultMaxZoom, ZoomStep: DefaultZoomStep},
		Editor: EditorConfig{
			MaxTextLength: DefaultMaxTextLength,
			EditModifier:  "ctrl",
			EdgeThreshold: DefaultEdgeHoverThreshold,
			RootText:      DefaultRootText,
			DefaultText:   DefaultChildText,
		},
		Font:  FontConfig{Size: 16},
		Theme: ThemeConfig{Background: "#1e1f24", Edge: "#8a8f98", Highlight: "#f2c94c", Text: "#101114", Levels: []string{"#6fcf97", "#56ccf2", "#bb6bd9", "#f2994a"}},
	}
}

// ParseConfig decodes TOML over the defaults, so omitted keys keep their
// default values.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads path. A missing file yields the defaults; a malformed one
// is an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and returns the decoded theme.
func (c *Config) Validate() (*Theme, error) {
	if c.Camera.MinZoom <= 0 || c.Camera.MaxZoom < c.Camera.MinZoom {
		return nil, fmt.Errorf("config: camera zoom range [%g, %g] is invalid", c.Camera.MinZoom, c.Camera.MaxZoom)
	}
	if _, err := parseModifier(c.Editor.EditModifier); err != nil {
		return nil, err
	}
	return c.Theme.decode()
}

// EditorOptions converts the configuration to Options. Font loading
// failures fall back to the debug font.
func (c *Config) EditorOptions() (Options, error) {
	theme, err := c.Validate()
	if err != nil {
		return Options{}, err
	}
	mod, _ := parseModifier(c.Editor.EditModifier)
	opts := Options{
		ViewportWidth:  float64(c.Window.Width),
		ViewportHeight: float64(c.Window.Height),
		RootText:       c.Editor.RootText,
		DefaultText:    c.Editor.DefaultText,
		MaxTextLength:  c.Editor.MaxTextLength,
		EditModifier:   mod,
		EdgeThreshold:  c.Editor.EdgeThreshold,
		ZoomStep:       c.Camera.ZoomStep,
		MinZoom:        c.Camera.MinZoom,
		MaxZoom:        c.Camera.MaxZoom,
		Theme:          theme,
		Debug:          c.Editor.Debug,
		ShowStatus:     c.Window.ShowStatus,
	}
	if c.Font.Path != "" {
		opts.Measurer = LoadFontFile(c.Font.Path, c.Font.Size)
	}
	return opts, nil
}

func parseModifier(s string) (KeyModifiers, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ctrl", "control":
		return ModCtrl, nil
	case "alt", "option":
		return ModAlt, nil
	case "shift":
		return ModShift, nil
	case "meta", "cmd", "super":
		return ModMeta, nil
	}
	return 0, fmt.Errorf("config: unknown edit modifier %q", s)
}

func (t ThemeConfig) decode() (*Theme, error) {
	theme := DefaultTheme()
	fields := []struct {
		name string
		src  string
		dst  *Color
	}{
		{"background", t.Background, &theme.Background},
		{"edge", t.Edge, &theme.Edge},
		{"highlight", t.Highlight, &theme.Highlight},
		{"text", t.Text, &theme.Text},
	}
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		c, err := ParseHexColor(f.src)
		if err != nil {
			return nil, fmt.Errorf("config: theme %s: %w", f.name, err)
		}
		*f.dst = c
	}
	if len(t.Levels) > 0 {
		theme.Levels = theme.Levels[:0]
		for i, s := range t.Levels {
			c, err := ParseHexColor(s)
			if err != nil {
				return nil, fmt.Errorf("config: theme levels[%d]: %w", i, err)
			}
			theme.Levels = append(theme.Levels, c)
		}
	}
	return theme, nil
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("bad hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("bad hex colour %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
