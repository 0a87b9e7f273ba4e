package render

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode selects how RGB colors reach the terminal
type ColorMode uint8

const (
	ColorMode256       ColorMode = iota // xterm-256 palette
	ColorModeTrueColor                  // 24-bit RGB
)

func (m ColorMode) String() string {
	if m == ColorModeTrueColor {
		return "truecolor"
	}
	return "256"
}

// ParseColorMode resolves a mode name, "auto" or empty detects from the environment
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorMode(), nil
	case "256":
		return ColorMode256, nil
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor, nil
	default:
		return 0, fmt.Errorf("render: unknown color mode %q", s)
	}
}

// DetectColorMode determines terminal color capability from environment
func DetectColorMode() ColorMode {
	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" ||
		os.Getenv("WEZTERM_PANE") != "" {
		return ColorModeTrueColor
	}

	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}

// Color cube levels for the 6x6x6 palette (indices 16-231)
var cubeValues = [6]int{0, 95, 135, 175, 215, 255}

// cubeIndex returns the nearest cube level for an 8-bit channel
func cubeIndex(v int) int {
	best, bestDist := 0, abs(v-cubeValues[0])
	for j := 1; j < len(cubeValues); j++ {
		if d := abs(v - cubeValues[j]); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// RGBTo256 finds the nearest xterm-256 palette index for an RGB value
// Near-gray values are matched against the grayscale ramp 232-255 as well
func RGBTo256(r, g, b uint8) uint8 {
	ri, gi, bi := int(r), int(g), int(b)
	cr, cg, cb := cubeIndex(ri), cubeIndex(gi), cubeIndex(bi)
	cube := uint8(16 + 36*cr + 6*cg + cb)

	gray := (ri + gi + bi) / 3
	if max(abs(ri-gray), abs(gi-gray), abs(bi-gray)) >= 10 {
		return cube
	}
	if gray < 4 {
		return 16
	}
	if gray > 243 {
		return 231
	}

	grayIdx := min(232+(gray-8)/10, 255)
	level := 8 + (grayIdx-232)*10
	grayDist := abs(ri-level) + abs(gi-level) + abs(bi-level)
	cubeDist := abs(ri-cubeValues[cr]) + abs(gi-cubeValues[cg]) + abs(bi-cubeValues[cb])
	if grayDist < cubeDist {
		return uint8(grayIdx)
	}
	return cube
}

// ToTcell converts c for the given mode
func ToTcell(c colorful.Color, mode ColorMode) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	if mode == ColorModeTrueColor {
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(RGBTo256(r, g, b)))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
