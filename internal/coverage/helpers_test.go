package coverage

import "github.com/ctessum/geom"

// rectPoly builds a counter-clockwise rectangle centered on the origin.
func rectPoly(width, height float64) geom.Polygon {
	w, h := width/2, height/2
	return geom.Polygon{{
		{X: -w, Y: -h},
		{X: w, Y: -h},
		{X: w, Y: h},
		{X: -w, Y: h},
	}}
}

// squarePoly builds a counter-clockwise square centered on the origin.
func squarePoly(side float64) geom.Polygon {
	return rectPoly(side, side)
}
