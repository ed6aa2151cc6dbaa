package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	redOffset   uint8 = 0x18
	greenOffset uint8 = 0x10
	blueOffset  uint8 = 0x08
	alphaOffset uint8 = 0x0
)

// Color is packed 0xRRGGBBAA, the channel order chart files use.
type Color uint32

const (
	White Color = 0xffffffff
	Black Color = 0x000000ff
)

// DefaultTrackColor is the stock track color for new charts.
const DefaultTrackColor Color = 0xdebb7bff

func RGBA(r, g, b, a uint8) Color {
	var c Color
	c = setcolor(c, r, redOffset)
	c = setcolor(c, g, greenOffset)
	c = setcolor(c, b, blueOffset)
	c = setcolor(c, a, alphaOffset)
	return c
}

func setcolor(c Color, n uint8, off uint8) Color {
	val := Color(n) << off
	mask := Color(0xFF) << off
	return (c & ^mask) | val
}

func getcolor(c Color, off uint8) uint8 {
	mask := Color(0xFF) << off
	return uint8((c & mask) >> off)
}

func (c Color) R() uint8 { return getcolor(c, redOffset) }
func (c Color) G() uint8 { return getcolor(c, greenOffset) }
func (c Color) B() uint8 { return getcolor(c, blueOffset) }
func (c Color) A() uint8 { return getcolor(c, alphaOffset) }

func (c Color) WithA(a uint8) Color { return setcolor(c, a, alphaOffset) }

// ParseColor reads "rrggbb" or "rrggbbaa", with or without a leading '#'.
// Six digit colors are fully opaque.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 6:
		h += "ff"
	case 8:
	default:
		return 0, fmt.Errorf("color %q: %w", s, ErrBadType)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, ErrBadType)
	}
	return Color(v), nil
}

// String renders lowercase hex, dropping the alpha byte when it is ff.
func (c Color) String() string {
	if c.A() == 0xff {
		return fmt.Sprintf("%06x", uint32(c)>>8)
	}
	return fmt.Sprintf("%08x", uint32(c))
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Modulate multiplies channels pairwise, each scaled back into 0..255.
func (c Color) Modulate(o Color) Color {
	m := func(a, b uint8) uint8 { return uint8(uint16(a) * uint16(b) / 255) }
	return RGBA(m(c.R(), o.R()), m(c.G(), o.G()), m(c.B(), o.B()), m(c.A(), o.A()))
}

// Plus adds channels pairwise, saturating at 255.
func (c Color) Plus(o Color) Color {
	s := func(a, b uint8) uint8 {
		v := uint16(a) + uint16(b)
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}
	return RGBA(s(c.R(), o.R()), s(c.G(), o.G()), s(c.B(), o.B()), s(c.A(), o.A()))
}

// Mix weights c by w/255 and o by (255-w)/255.
func (c Color) Mix(o Color, w uint8) Color {
	a := RGBA(w, w, w, 255)
	b := RGBA(255-w, 255-w, 255-w, 255)
	return c.Modulate(a).Plus(o.Modulate(b))
}

// HueShift rotates the hue by deg degrees in HSV space, keeping alpha.
func (c Color) HueShift(deg float64) Color {
	cf := colorful.Color{R: float64(c.R()) / 255, G: float64(c.G()) / 255, B: float64(c.B()) / 255}
	h, s, v := cf.Hsv()
	h = math.Mod(h+deg, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return RGBA(r, g, b, c.A())
}
