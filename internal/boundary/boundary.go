// Package boundary loads constituency boundaries from local vector files and
// prepares them for circle placement: identifier extraction, geometry
// validation and reprojection into a meter-unit working coordinate system.
package boundary

import (
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/geom"
)

// ErrInvalidGeometry marks a boundary whose geometry is missing,
// non-polygonal or has zero area. It applies to that single boundary; a
// batch continues past it.
var ErrInvalidGeometry = errors.New("invalid geometry")

// ErrUnsupportedUnits marks a coordinate system whose linear units cannot be
// expressed in meters, making the kilometre radius quantum meaningless.
var ErrUnsupportedUnits = errors.New("coordinate system units are not meters")

// Boundary is one constituency: a stable textual identifier and its raw
// geometry as decoded from the source file. Geometry is read-only after
// loading.
type Boundary struct {
	ID   string
	Geom geom.Geom
}

// Polygonal returns the boundary's geometry as a polygonal type with
// positive area, or an error wrapping ErrInvalidGeometry that names the
// boundary.
func (b Boundary) Polygonal() (geom.Polygonal, error) {
	if b.Geom == nil {
		return nil, fmt.Errorf("boundary %q: no geometry: %w", b.ID, ErrInvalidGeometry)
	}
	p, ok := b.Geom.(geom.Polygonal)
	if !ok {
		return nil, fmt.Errorf("boundary %q: %T is not polygonal: %w", b.ID, b.Geom, ErrInvalidGeometry)
	}
	if area := p.Area(); area <= 0 || math.IsNaN(area) {
		return nil, fmt.Errorf("boundary %q: zero or negative area: %w", b.ID, ErrInvalidGeometry)
	}
	return p, nil
}

// FilterByID keeps only the boundary whose identifier matches exactly.
// An empty id keeps everything.
func FilterByID(bs []Boundary, id string) []Boundary {
	if id == "" {
		return bs
	}
	var out []Boundary
	for _, b := range bs {
		if b.ID == id {
			out = append(out, b)
		}
	}
	return out
}
