package boundary

import (
	"fmt"
	"os"

	"github.com/ctessum/geom"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadGeoJSON reads polygonal features from a GeoJSON feature collection,
// taking identifiers from the named property. Non-polygonal features are
// kept with nil geometry so they surface as InvalidGeometry for that one
// feature instead of failing the whole file.
func LoadGeoJSON(path, idProperty string) ([]Boundary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open geojson %s: %w", path, err)
	}
	return ParseGeoJSON(data, idProperty)
}

// ParseGeoJSON is LoadGeoJSON over in-memory bytes.
func ParseGeoJSON(data []byte, idProperty string) ([]Boundary, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse geojson: %w", err)
	}
	out := make([]Boundary, 0, len(fc.Features))
	for i, f := range fc.Features {
		id := f.Properties.MustString(idProperty, "")
		if id == "" {
			id = fmt.Sprintf("feature-%d", i)
		}
		out = append(out, Boundary{ID: id, Geom: orbToGeom(f.Geometry)})
	}
	return out, nil
}

// orbToGeom converts orb polygon types to their ctessum/geom equivalents.
// Anything else maps to nil and fails validation downstream.
func orbToGeom(g orb.Geometry) geom.Geom {
	switch t := g.(type) {
	case orb.Polygon:
		return orbPolygon(t)
	case orb.MultiPolygon:
		mp := make(geom.MultiPolygon, len(t))
		for i, p := range t {
			mp[i] = orbPolygon(p)
		}
		return mp
	default:
		return nil
	}
}

func orbPolygon(p orb.Polygon) geom.Polygon {
	gp := make(geom.Polygon, len(p))
	for i, ring := range p {
		r := make([]geom.Point, len(ring))
		for j, pt := range ring {
			r[j] = geom.Point{X: pt.X(), Y: pt.Y()}
		}
		gp[i] = r
	}
	return gp
}
