package actcliterm

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ScreenshotConfig controls how a frame is rendered to an image.
type ScreenshotConfig struct {
	// Font face to use for rendering. If nil, uses basicfont.Face7x13.
	Font font.Face

	// CellWidth and CellHeight override the cell dimensions.
	// If zero, derived from font metrics.
	CellWidth  int
	CellHeight int

	// Palette is the 256-color palette. If nil, uses DefaultPalette.
	Palette *[256]color.RGBA

	// DefaultFG is the default foreground color. If nil, uses DefaultForeground.
	DefaultFG *color.RGBA

	// DefaultBG is the default background color. If nil, uses DefaultBackground.
	DefaultBG *color.RGBA

	// CursorColor fills the caret cell. If nil, the caret inverts the
	// cell underneath.
	CursorColor *color.RGBA

	// ShowCursor controls whether to render the caret. Default true.
	ShowCursor *bool

	// VTCursor draws the VT cursor instead of the resolved visual caret.
	VTCursor bool
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}

	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Screenshot renders the frame to an RGBA image with default settings.
func (t *Terminal) Screenshot() *image.RGBA {
	return t.ScreenshotWithConfig(&ScreenshotConfig{})
}

// WriteScreenshotPNG renders the frame and encodes it as PNG.
func (t *Terminal) WriteScreenshotPNG(w io.Writer) error {
	return png.Encode(w, t.Screenshot())
}

// ScreenshotWithConfig renders the frame to an RGBA image with custom
// font, colors, and caret settings.
func (t *Terminal) ScreenshotWithConfig(cfg *ScreenshotConfig) *image.RGBA {
	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}

	cellWidth := cfg.CellWidth
	cellHeight := cfg.CellHeight
	if cellWidth == 0 {
		adv, _ := face.GlyphAdvance('M')
		cellWidth = adv.Ceil()
		if cellWidth == 0 {
			cellWidth = 7
		}
	}
	if cellHeight == 0 {
		cellHeight = face.Metrics().Height.Ceil()
	}

	palette := cfg.Palette
	if palette == nil {
		palette = &DefaultPalette
	}

	defaultFG := cfg.DefaultFG
	if defaultFG == nil {
		defaultFG = &DefaultForeground
	}

	defaultBG := cfg.DefaultBG
	if defaultBG == nil {
		defaultBG = &DefaultBackground
	}

	showCursor := true
	if cfg.ShowCursor != nil {
		showCursor = *cfg.ShowCursor
	}

	imgWidth := t.cols * cellWidth
	imgHeight := t.rows * cellHeight
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			img.Set(x, y, defaultBG)
		}
	}

	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			cell := t.activeBuffer.Cell(row, col)
			if cell == nil || cell.IsWideSpacer() {
				continue
			}

			x := col * cellWidth
			y := row * cellHeight

			fg := resolveColorWithPalette(cell.Fg, true, palette, defaultFG, defaultBG)
			bg := resolveColorWithPalette(cell.Bg, false, palette, defaultFG, defaultBG)

			if cell.HasFlag(CellFlagReverse) {
				fg, bg = bg, fg
			}

			if cell.HasFlag(CellFlagDim) {
				fg = dimmed(fg)
			}

			for py := 0; py < cellHeight; py++ {
				for px := 0; px < cellWidth; px++ {
					img.Set(x+px, y+py, bg)
				}
			}

			ch := cell.Char
			if ch == 0 || ch == ' ' || cell.HasFlag(CellFlagHidden) {
				continue
			}

			baseline := y + face.Metrics().Ascent.Ceil()
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(fg),
				Face: face,
				Dot:  fixed.P(x, baseline),
			}
			d.DrawString(string(ch))

			if cell.HasFlag(CellFlagUnderline) {
				underlineY := baseline + 2
				for px := 0; px < cellWidth; px++ {
					if underlineY < imgHeight {
						img.Set(x+px, underlineY, fg)
					}
				}
			}

			if cell.HasFlag(CellFlagStrike) {
				strikeY := y + cellHeight/2
				for px := 0; px < cellWidth; px++ {
					img.Set(x+px, strikeY, fg)
				}
			}
		}
	}

	if showCursor && t.cursor.Visible {
		caretRow, caretCol := t.VisualCursor()
		if cfg.VTCursor {
			caretRow, caretCol = t.cursor.Row, t.writeCol()
		}

		cursorX := caretCol * cellWidth
		cursorY := caretRow * cellHeight

		for py := 0; py < cellHeight; py++ {
			for px := 0; px < cellWidth; px++ {
				cx, cy := cursorX+px, cursorY+py
				if cx >= imgWidth || cy >= imgHeight {
					continue
				}
				if cfg.CursorColor != nil {
					img.Set(cx, cy, cfg.CursorColor)
				} else {
					existing := img.RGBAAt(cx, cy)
					img.Set(cx, cy, color.RGBA{
						R: 255 - existing.R,
						G: 255 - existing.G,
						B: 255 - existing.B,
						A: 255,
					})
				}
			}
		}
	}

	return img
}

// dimmed darkens a color for the faint attribute.
func dimmed(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.66),
		G: uint8(float64(c.G) * 0.66),
		B: uint8(float64(c.B) * 0.66),
		A: c.A,
	}
}

// resolveColorWithPalette resolves a color using a custom palette.
func resolveColorWithPalette(c color.Color, fg bool, palette *[256]color.RGBA, defaultFG, defaultBG *color.RGBA) color.RGBA {
	if c == nil {
		if fg {
			return *defaultFG
		}
		return *defaultBG
	}

	switch v := c.(type) {
	case color.RGBA:
		return v
	case *IndexedColor:
		if v.Index >= 0 && v.Index < 256 {
			return palette[v.Index]
		}
		if fg {
			return *defaultFG
		}
		return *defaultBG
	case *NamedColor:
		switch {
		case v.Name >= 0 && v.Name < 256:
			return palette[v.Name]
		case v.Name == NamedColorForeground:
			return *defaultFG
		case v.Name == NamedColorBackground:
			return *defaultBG
		case v.Name == NamedColorCursor:
			return *defaultFG
		default:
			if fg {
				return *defaultFG
			}
			return *defaultBG
		}
	default:
		r, g, b, a := c.RGBA()
		return color.RGBA{
			R: uint8(r >> 8),
			G: uint8(g >> 8),
			B: uint8(b >> 8),
			A: uint8(a >> 8),
		}
	}
}
