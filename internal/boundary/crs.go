package boundary

import (
	"fmt"
	"strings"

	"github.com/ctessum/geom/proj"
)

// WGS84 is the tag for geographic latitude/longitude output coordinates.
const WGS84 = "EPSG:4326"

// BritishNationalGrid is the projected system the UK boundary commissions
// publish in, and the default working CRS.
const BritishNationalGrid = "EPSG:27700"

// crsRegistry maps the CRS tags the pipeline knows about to proj4
// definitions. Unknown tags are accepted only as raw proj4 strings.
var crsRegistry = map[string]string{
	BritishNationalGrid: "+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 " +
		"+x_0=400000 +y_0=-100000 +ellps=airy " +
		"+towgs84=446.448,-125.157,542.06,0.15,0.247,0.842,-20.489 +units=m +no_defs",
	WGS84: "+proj=longlat +datum=WGS84 +no_defs",
}

func proj4For(tag string) (string, error) {
	if p4, ok := crsRegistry[strings.ToUpper(tag)]; ok {
		return p4, nil
	}
	if strings.HasPrefix(tag, "+") {
		return tag, nil
	}
	return "", fmt.Errorf("unknown coordinate system %q", tag)
}

// Resolve turns a CRS tag (registry key or raw proj4 string) into a spatial
// reference.
func Resolve(tag string) (*proj.SR, error) {
	p4, err := proj4For(tag)
	if err != nil {
		return nil, err
	}
	sr, err := proj.Parse(p4)
	if err != nil {
		return nil, fmt.Errorf("parse coordinate system %q: %w", tag, err)
	}
	return sr, nil
}

// CheckWorkingCRS verifies the tag describes a projected system with meter
// units. Projected proj4 definitions default to meters when +units is
// absent; geographic (longlat) systems can never serve as the working CRS.
func CheckWorkingCRS(tag string) error {
	p4, err := proj4For(tag)
	if err != nil {
		return err
	}
	if strings.Contains(p4, "+proj=longlat") {
		return fmt.Errorf("%q is a geographic (degree) system: %w", tag, ErrUnsupportedUnits)
	}
	if strings.Contains(p4, "+units=") && !strings.Contains(p4, "+units=m") {
		return fmt.Errorf("%q: %w", tag, ErrUnsupportedUnits)
	}
	return nil
}

// Transformer returns a coordinate transform between two CRS tags.
func Transformer(from, to string) (proj.Transformer, error) {
	src, err := Resolve(from)
	if err != nil {
		return nil, err
	}
	dst, err := Resolve(to)
	if err != nil {
		return nil, err
	}
	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("transform %s -> %s: %w", from, to, err)
	}
	return t, nil
}

// Reproject transforms every boundary's geometry from one CRS to another.
// Boundaries without geometry pass through untouched so their validation
// error surfaces later, attached to the right constituency.
func Reproject(bs []Boundary, from, to string) ([]Boundary, error) {
	if strings.EqualFold(from, to) {
		return bs, nil
	}
	t, err := Transformer(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]Boundary, len(bs))
	for i, b := range bs {
		out[i] = b
		if b.Geom == nil {
			continue
		}
		g, err := b.Geom.Transform(t)
		if err != nil {
			return nil, fmt.Errorf("reproject boundary %q: %w", b.ID, err)
		}
		out[i].Geom = g
	}
	return out, nil
}
