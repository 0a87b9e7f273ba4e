package pattern

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/lixenwraith/pixelweave/palette"
)

// Direction is the axis a gradient ramps along
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
	DiagonalDown // NW to SE
	DiagonalUp   // NE to SW
	Radial
	Spiral
	directionCount
)

var directionNames = [directionCount]string{"horizontal", "vertical", "diagonal1", "diagonal2", "radial", "spiral"}

func (d Direction) String() string {
	if d >= directionCount {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Ramp length bounds, inclusive
const (
	MinRampLength = 2
	MaxRampLength = 4
)

// spiralTwist is the angular offset added per unit of distance from center
const spiralTwist = 0.1

// rampSpread keeps floor(progress*(len-1)*rampSpread) below len-1
const rampSpread = 0.99

// RandomGradient draws a direction and a ramp of 2 to 4 palette colors
func RandomGradient(n int, rng *rand.Rand) Plan {
	dir := Direction(rng.Intn(int(directionCount)))
	ramp := make([]palette.Color, MinRampLength+rng.Intn(MaxRampLength-MinRampLength+1))
	for i := range ramp {
		ramp[i] = palette.Random(rng)
	}
	return BuildGradient(n, dir, ramp)
}

// BuildGradient paints every empty cell with the ramp color at its progress
func BuildGradient(n int, dir Direction, ramp []palette.Color) Plan {
	if len(ramp) == 0 {
		panic("pattern: empty gradient ramp")
	}
	p := Plan{Kind: Gradient, Size: n, Direction: dir, Ramp: ramp, Ops: make([]Op, 0, n*n)}
	for i := 0; i < n*n; i++ {
		x, y := pos(i, n)
		p.Ops = append(p.Ops, Op{
			Index: i,
			Color: ramp[RampIndex(Progress(dir, x, y, n), len(ramp))],
			Mode:  FillEmpty,
			Delay: time.Duration(i) * sweepStep,
		})
	}
	return p
}

// Progress returns the position of (x, y) along dir in an n×n grid
func Progress(dir Direction, x, y, n int) float64 {
	fx, fy, fn := float64(x), float64(y), float64(n)
	switch dir {
	case Horizontal:
		return fx / fn
	case Vertical:
		return fy / fn
	case DiagonalDown:
		return (fx + fy) / (fn * 2)
	case DiagonalUp:
		return (fx - fy + fn) / (fn * 2)
	case Radial:
		c := fn / 2
		return math.Hypot(fx-c, fy-c) / math.Hypot(c, c)
	case Spiral:
		c := fn / 2
		angle := math.Atan2(fy-c, fx-c)
		dist := math.Hypot(fx-c, fy-c)
		return math.Mod(angle+math.Pi+dist*spiralTwist, 2*math.Pi) / (2 * math.Pi)
	default:
		return (fx + fy) / (fn * 2)
	}
}

// RampIndex maps progress to a ramp slot, clamped to the last slot
func RampIndex(progress float64, length int) int {
	idx := int(math.Floor(progress * float64(length-1) * rampSpread))
	if idx > length-1 {
		idx = length - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
