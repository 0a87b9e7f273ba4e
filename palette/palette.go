// Package palette holds the fixed pastel palette shared by the engine and the renderer
package palette

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an index into the fixed palette
type Color uint8

// Size is the number of palette entries
const Size = 10

// hexValues is the ordered pastel palette
var hexValues = [Size]string{
	"#FFB3BA", // Pink
	"#FFDFBA", // Peach
	"#FFFFBA", // Lemon
	"#BAFFC9", // Mint
	"#BAE1FF", // Sky
	"#E1BAFF", // Lilac
	"#FFBAE1", // Rose
	"#C9FFBA", // Lime
	"#FFCBA4", // Apricot
	"#B4E7CE", // Sage
}

// EmptyHex is the display color of a cell that was never painted
const EmptyHex = "#F5F5F5"

var (
	swatches [Size]colorful.Color
	empty    colorful.Color
)

func init() {
	for i, h := range hexValues {
		swatches[i] = mustHex(h)
	}
	empty = mustHex(EmptyHex)
}

func mustHex(h string) colorful.Color {
	c, err := colorful.Hex(h)
	if err != nil {
		panic(fmt.Sprintf("palette: bad hex %q: %v", h, err))
	}
	return c
}

// All returns every palette color in order
func All() []Color {
	out := make([]Color, Size)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}

// Valid reports whether c indexes the palette
func (c Color) Valid() bool {
	return c < Size
}

// Hex returns the #RRGGBB form of c
func (c Color) Hex() string {
	if !c.Valid() {
		panic(fmt.Sprintf("palette: color %d out of range", c))
	}
	return hexValues[c]
}

// Swatch returns c as a colorful color for blending
func (c Color) Swatch() colorful.Color {
	if !c.Valid() {
		panic(fmt.Sprintf("palette: color %d out of range", c))
	}
	return swatches[c]
}

// RGB returns the 8-bit channels of c
func (c Color) RGB() (r, g, b uint8) {
	return c.Swatch().RGB255()
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return hexValues[c]
}

// Empty returns the swatch used for unpainted cells
func Empty() colorful.Color {
	return empty
}

// Random draws a uniformly distributed palette color from rng
func Random(rng *rand.Rand) Color {
	return Color(rng.Intn(Size))
}

// Parse resolves a palette color from its hex form or its index
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	for i, h := range hexValues {
		if strings.EqualFold(h, s) || strings.EqualFold(h[1:], s) {
			return Color(i), nil
		}
	}
	if idx, err := strconv.Atoi(s); err == nil && idx >= 0 && idx < Size {
		return Color(idx), nil
	}
	return 0, fmt.Errorf("palette: unknown color %q", s)
}
