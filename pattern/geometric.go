package pattern

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lixenwraith/pixelweave/palette"
)

// Shape is a geometric tiling
type Shape uint8

const (
	Stripes Shape = iota
	Checkerboard
	Circles
	Diamonds
	shapeCount
)

var shapeNames = [shapeCount]string{"stripes", "checkerboard", "circles", "diamonds"}

func (s Shape) String() string {
	if s >= shapeCount {
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
	return shapeNames[s]
}

// Tiling dimensions
const (
	StripeWidth = 3
	CheckSize   = 4
	RingWidth   = 3
	DiamondSize = 6
)

// RandomGeometric draws a shape and primary, secondary, tertiary colors
func RandomGeometric(n int, rng *rand.Rand) Plan {
	shape := Shape(rng.Intn(int(shapeCount)))
	var colors [3]palette.Color
	for i := range colors {
		colors[i] = palette.Random(rng)
	}
	return BuildGeometric(n, shape, colors)
}

// BuildGeometric overwrites every cell with the color of its band
func BuildGeometric(n int, shape Shape, colors [3]palette.Color) Plan {
	p := Plan{Kind: Geometric, Size: n, Shape: shape, Colors: colors, Ops: make([]Op, 0, n*n)}
	for i := 0; i < n*n; i++ {
		x, y := pos(i, n)
		p.Ops = append(p.Ops, Op{
			Index: i,
			Color: colors[Band(shape, x, y, n)],
			Mode:  Overwrite,
			Delay: time.Duration(i) * sweepStep,
		})
	}
	return p
}

// Band returns the color slot for (x, y): 0 primary, 1 secondary, 2 tertiary
// Only circles use the tertiary slot
func Band(shape Shape, x, y, n int) int {
	switch shape {
	case Stripes:
		return ((x + y) / StripeWidth) % 2
	case Checkerboard:
		return ((x/CheckSize)%2 + (y/CheckSize)%2) % 2
	case Circles:
		c := float64(n) / 2
		dist := math.Hypot(float64(x)-c, float64(y)-c)
		return int(math.Floor(dist/RingWidth)) % 3
	case Diamonds:
		dx := abs(x%(DiamondSize*2) - DiamondSize)
		dy := abs(y%(DiamondSize*2) - DiamondSize)
		return ((dx + dy) / DiamondSize) % 2
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
