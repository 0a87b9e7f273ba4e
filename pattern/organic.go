package pattern

import (
	"math"
	"math/rand"
	"time"

	"github.com/lixenwraith/pixelweave/palette"
)

// Seed influence bounds, half-open
const (
	MinSeedInfluence = 8.0
	MaxSeedInfluence = 16.0
)

// seedDensity divides the grid size to get the seed count
const seedDensity = 2.5

// closenessThreshold is the normalized closeness above which a cell joins its seed region
const closenessThreshold = 0.3

// Seed is a region origin for the organic pattern
type Seed struct {
	X, Y      float64
	Color     palette.Color
	Influence float64
}

// SeedCount returns floor(n/2.5)
func SeedCount(n int) int {
	return int(math.Floor(float64(n) / seedDensity))
}

// RandomOrganic scatters seeds and grows regions around them
func RandomOrganic(n int, rng *rand.Rand) Plan {
	seeds := make([]Seed, SeedCount(n))
	for i := range seeds {
		seeds[i] = Seed{
			X:         rng.Float64() * float64(n),
			Y:         rng.Float64() * float64(n),
			Color:     palette.Random(rng),
			Influence: rng.Float64()*(MaxSeedInfluence-MinSeedInfluence) + MinSeedInfluence,
		}
	}
	return BuildOrganic(n, seeds, rng)
}

// BuildOrganic overwrites every cell with its nearest seed color, or with noise
// from rng when the cell falls outside the seed influence
func BuildOrganic(n int, seeds []Seed, rng *rand.Rand) Plan {
	p := Plan{Kind: Organic, Size: n, Seeds: seeds, Ops: make([]Op, 0, n*n)}
	if len(seeds) == 0 {
		return p
	}
	for i := 0; i < n*n; i++ {
		x, y := pos(i, n)
		si, dist := Nearest(seeds, float64(x), float64(y))
		seed := seeds[si]

		color := seed.Color
		closeness := math.Max(0, 1-dist/seed.Influence)
		if !(closeness > closenessThreshold || dist < seed.Influence) {
			color = palette.Random(rng)
		}
		p.Ops = append(p.Ops, Op{
			Index: i,
			Color: color,
			Mode:  Overwrite,
			Delay: time.Duration(i) * sweepStep,
		})
	}
	return p
}

// Nearest returns the index of the seed closest to (x, y) and its distance
// Ties go to the first seed in list order, returns -1 for no seeds
func Nearest(seeds []Seed, x, y float64) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, s := range seeds {
		d := math.Hypot(x-s.X, y-s.Y)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}
