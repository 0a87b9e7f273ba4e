package pattern

import (
	"math"
	"math/rand"
	"time"

	"github.com/lixenwraith/pixelweave/palette"
)

// Cluster radius bounds, inclusive
const (
	MinClusterRadius = 4
	MaxClusterRadius = 9
)

// Cluster is a solid disc painted over the base noise
type Cluster struct {
	X, Y   int
	Radius int
	Color  palette.Color
}

// Contains reports whether (x, y) lies within the cluster disc
func (c Cluster) Contains(x, y int) bool {
	dx, dy := float64(x-c.X), float64(y-c.Y)
	return math.Sqrt(dx*dx+dy*dy) <= float64(c.Radius)
}

// RandomClusters draws base noise and floor(n/2) clusters
func RandomClusters(n int, rng *rand.Rand) Plan {
	base := make([]palette.Color, n*n)
	for i := range base {
		base[i] = palette.Random(rng)
	}

	clusters := make([]Cluster, n/2)
	for i := range clusters {
		clusters[i] = Cluster{
			X:      rng.Intn(n),
			Y:      rng.Intn(n),
			Color:  palette.Random(rng),
			Radius: MinClusterRadius + rng.Intn(MaxClusterRadius-MinClusterRadius+1),
		}
	}
	return BuildClusters(n, base, clusters)
}

// BuildClusters fills empty cells from base, then overwrites each cluster disc in order
// Later clusters land later in the reveal and win overlaps
func BuildClusters(n int, base []palette.Color, clusters []Cluster) Plan {
	p := Plan{
		Kind:     Clusters,
		Size:     n,
		Clusters: clusters,
		Ops:      make([]Op, 0, n*n+len(clusters)*4*MaxClusterRadius*MaxClusterRadius),
	}

	for i, c := range base {
		p.Ops = append(p.Ops, Op{
			Index: i,
			Color: c,
			Mode:  FillEmpty,
			Delay: time.Duration(i) * clusterStep,
		})
	}

	for ci, c := range clusters {
		wave := time.Duration(ci+1) * clusterWave
		for dx := -c.Radius; dx <= c.Radius; dx++ {
			for dy := -c.Radius; dy <= c.Radius; dy++ {
				x, y := c.X+dx, c.Y+dy
				if x < 0 || x >= n || y < 0 || y >= n {
					continue
				}
				dist := math.Sqrt(float64(dx*dx + dy*dy))
				if dist > float64(c.Radius) {
					continue
				}
				p.Ops = append(p.Ops, Op{
					Index: y*n + x,
					Color: c.Color,
					Mode:  Overwrite,
					Delay: wave + time.Duration(math.Floor(dist))*clusterRipple,
				})
			}
		}
	}
	return p
}
