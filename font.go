package mindmap

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// BuiltinFont names the embedded Go Regular face in LoadFontFile and the
// [font] path setting.
const BuiltinFont = "goregular"

// TextMeasurer reports the pixel extents of a label. Nodes are sized from it.
type TextMeasurer interface {
	MeasureString(text string) (width, height float64)
}

// --- DebugFont ---

// Glyph cell of Ebitengine's built-in debug font (ebitenutil.DebugPrint).
const (
	debugGlyphW = 6
	debugGlyphH = 16
)

// DebugFont measures text as rendered by ebitenutil.DebugPrintAt. It needs
// no assets and is the fallback when a TTF font cannot be loaded.
type DebugFont struct{}

// MeasureString returns the width of the longest line and the height of all lines.
func (DebugFont) MeasureString(s string) (width, height float64) {
	if s == "" {
		return 0, 0
	}
	lines := strings.Split(s, "\n")
	longest := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > longest {
			longest = n
		}
	}
	return float64(longest * debugGlyphW), float64(len(lines) * debugGlyphH)
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType label rendering.
type TTFFont struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("mindmap: parse TTF data: %w", err)
	}
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &TTFFont{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}, nil
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// LoadFontFile loads a TTF font from path. An empty path selects DebugFont
// and BuiltinFont selects the embedded Go Regular face. Any read or parse
// failure also degrades to DebugFont with a logged warning rather than an
// error, so a missing asset never stops the editor.
func LoadFontFile(path string, size float64) TextMeasurer {
	var data []byte
	switch path {
	case "":
		return DebugFont{}
	case BuiltinFont:
		data = goregular.TTF
	default:
		var err error
		if data, err = os.ReadFile(path); err != nil {
			logger().Warn("font unavailable, using debug font", "path", path, "err", err)
			return DebugFont{}
		}
	}
	f, err := LoadTTFFont(data, size)
	if err != nil {
		logger().Warn("font unreadable, using debug font", "path", path, "err", err)
		return DebugFont{}
	}
	return f
}
