package coverage

import (
	"math"
	"math/rand"
	"sort"

	"github.com/ctessum/geom"
	"github.com/fogleman/poissondisc"

	"constituency-bubbles/pkg/geometry"
)

// Generator proposes candidate circles against the current residual region.
// It is a pure function of its inputs: sampling uses an rng seeded from the
// configured seed, the step number and the component index, so identical
// runs propose identical candidates.
type Generator struct {
	p        Params
	maxUnits int
}

// NewGenerator sizes the radius ladder for a boundary. The global cap
// follows the boundary's narrowest extent: floor(minWidth / 2 / unit) units.
// A boundary narrower than two unit distances therefore fits no circle at
// all, and Candidates will always return an empty set for it.
func NewGenerator(boundary geom.Polygonal, p Params) *Generator {
	maxUnits := 0
	if boundary != nil {
		width := geometry.MinimumWidth(geometry.PolygonalPoints(boundary))
		maxUnits = int(width / (2 * p.UnitDistance))
	}
	return &Generator{p: p, maxUnits: maxUnits}
}

// MaxUnits returns the global radius ladder cap in unit distances.
func (g *Generator) MaxUnits() int { return g.maxUnits }

type candidateKey struct {
	x, y  int64 // center quantized to 0.1 m
	units int
}

// Candidates proposes circles for one selection step. Centers are the
// centroid of each residual component plus a poisson-disc spread over the
// component's bounds filtered to points inside it; each center carries the
// radius ladder from one unit up to the smaller of the global cap and the
// component's own extent. Output is deduplicated and sorted by
// (x, y, units) so downstream iteration order is reproducible.
func (g *Generator) Candidates(residual geom.Polygonal, step int) []Circle {
	if g.maxUnits < 1 || residual == nil {
		return nil
	}

	seen := make(map[candidateKey]bool)
	var out []Circle

	for ci, comp := range residual.Polygons() {
		if comp.Area() <= 0 {
			continue
		}
		b := comp.Bounds()
		bw := b.Max.X - b.Min.X
		bh := b.Max.Y - b.Min.Y
		if bw <= 0 || bh <= 0 {
			continue
		}

		// Ladder cap local to this component: a circle much wider than the
		// component only spends budget outside the boundary.
		localUnits := int(math.Ceil(math.Max(bw, bh) / (2 * g.p.UnitDistance)))
		if localUnits < 1 {
			localUnits = 1
		}
		if localUnits > g.maxUnits {
			localUnits = g.maxUnits
		}

		var centers []geom.Point
		if centroid := comp.Centroid(); centroid.Within(comp) == geom.Inside {
			centers = append(centers, centroid)
		}

		spacing := math.Max(g.p.UnitDistance, math.Max(bw, bh)/float64(g.p.SampleDivisor))
		rng := rand.New(rand.NewSource(g.p.Seed + int64(step)*1000003 + int64(ci)*7919))
		for _, s := range poissondisc.Sample(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y, spacing, g.p.SampleK, rng) {
			pt := geom.Point{X: s.X, Y: s.Y}
			if pt.Within(comp) == geom.Inside {
				centers = append(centers, pt)
			}
		}

		for _, c := range centers {
			for units := 1; units <= localUnits; units++ {
				key := candidateKey{
					x:     int64(math.Round(c.X * 10)),
					y:     int64(math.Round(c.Y * 10)),
					units: units,
				}
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, Circle{
					X:      c.X,
					Y:      c.Y,
					Units:  units,
					Radius: float64(units) * g.p.UnitDistance,
				})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].Units < out[j].Units
	})
	return out
}
