// Package pattern computes paint plans for the generative grid patterns
// Generators are pure: a grid size and a random source in, a Plan out
package pattern

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/lixenwraith/pixelweave/palette"
)

// Kind selects a pattern generator
type Kind uint8

const (
	Random Kind = iota
	Clusters
	Gradient
	Geometric
	Organic
	kindCount
)

var kindNames = [kindCount]string{"random", "clusters", "gradient", "geometric", "organic"}

func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Valid reports whether k names a generator
func (k Kind) Valid() bool {
	return k < kindCount
}

// Kinds returns every generator in selector order
func Kinds() []Kind {
	return []Kind{Random, Clusters, Gradient, Geometric, Organic}
}

// ParseKind resolves a generator by name
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("pattern: unknown kind %q", s)
}

// Mode controls whether an op respects already painted cells
type Mode uint8

const (
	// FillEmpty paints only if the cell is empty when the op is applied
	FillEmpty Mode = iota
	// Overwrite paints regardless of the cell state
	Overwrite
)

// Op paints one cell after Delay from the start of the reveal
type Op struct {
	Index int
	Color palette.Color
	Mode  Mode
	Delay time.Duration
}

// Plan is the output of any generator
// Ops are in generation order; the reveal applies them ordered by Delay, ties in generation order
type Plan struct {
	Kind Kind
	Size int
	Ops  []Op

	// Gradient parameters
	Direction Direction
	Ramp      []palette.Color

	// Geometric parameters
	Shape  Shape
	Colors [3]palette.Color

	// Cluster and organic parameters
	Clusters []Cluster
	Seeds    []Seed
}

// Per-cell stagger steps
const (
	randomStep    = 3 * time.Millisecond
	clusterStep   = 1 * time.Millisecond
	sweepStep     = 2 * time.Millisecond
	clusterWave   = 200 * time.Millisecond
	clusterRipple = 10 * time.Millisecond
)

// Generate draws the parameters for k and builds its plan, panics on an invalid kind
func Generate(k Kind, n int, rng *rand.Rand) Plan {
	switch k {
	case Random:
		return RandomFill(n, rng)
	case Clusters:
		return RandomClusters(n, rng)
	case Gradient:
		return RandomGradient(n, rng)
	case Geometric:
		return RandomGeometric(n, rng)
	case Organic:
		return RandomOrganic(n, rng)
	default:
		panic(fmt.Sprintf("pattern: invalid kind %d", k))
	}
}

// RandomFill paints every empty cell with an independent palette color
func RandomFill(n int, rng *rand.Rand) Plan {
	p := Plan{Kind: Random, Size: n, Ops: make([]Op, 0, n*n)}
	for i := 0; i < n*n; i++ {
		p.Ops = append(p.Ops, Op{
			Index: i,
			Color: palette.Random(rng),
			Mode:  FillEmpty,
			Delay: time.Duration(i) * randomStep,
		})
	}
	return p
}

// pos converts an index to grid coordinates
func pos(i, n int) (x, y int) {
	return i % n, i / n
}
