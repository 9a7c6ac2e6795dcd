package boundary

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundary_PolygonalValid(t *testing.T) {
	b := Boundary{ID: "Test North", Geom: geom.Polygon{{
		{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000},
	}}}

	p, err := b.Polygonal()
	require.NoError(t, err)
	assert.InDelta(t, 1e6, p.Area(), 1.0)
}

func TestBoundary_PolygonalInvalidCases(t *testing.T) {
	cases := []struct {
		name string
		b    Boundary
	}{
		{"nil geometry", Boundary{ID: "a"}},
		{"non-polygonal", Boundary{ID: "b", Geom: geom.Point{X: 1, Y: 2}}},
		{"zero area", Boundary{ID: "c", Geom: geom.Polygon{}}},
		{"degenerate ring", Boundary{ID: "d", Geom: geom.Polygon{{
			{X: 0, Y: 0}, {X: 1000, Y: 1000}, {X: 2000, Y: 2000},
		}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.b.Polygonal()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
			assert.Contains(t, err.Error(), tc.b.ID, "error names the boundary")
		})
	}
}

func TestFilterByID(t *testing.T) {
	bs := []Boundary{{ID: "Aberdeen North"}, {ID: "Aberdeen South"}, {ID: "Angus"}}

	assert.Len(t, FilterByID(bs, ""), 3)

	got := FilterByID(bs, "Aberdeen South")
	require.Len(t, got, 1)
	assert.Equal(t, "Aberdeen South", got[0].ID)

	assert.Empty(t, FilterByID(bs, "Nowhere"))
}

func TestParseGeoJSON(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"properties": {"name": "Square Ward"},
				"geometry": {
					"type": "Polygon",
					"coordinates": [[[0,0],[1000,0],[1000,1000],[0,1000],[0,0]]]
				}
			},
			{
				"type": "Feature",
				"properties": {"name": "Broken Ward"},
				"geometry": {
					"type": "LineString",
					"coordinates": [[0,0],[1,1]]
				}
			}
		]
	}`)

	bs, err := ParseGeoJSON(data, "name")
	require.NoError(t, err)
	require.Len(t, bs, 2)

	p, err := bs[0].Polygonal()
	require.NoError(t, err)
	assert.Equal(t, "Square Ward", bs[0].ID)
	assert.InDelta(t, 1e6, p.Area(), 1.0)

	// The line feature is kept so its failure reports against its own name.
	_, err = bs[1].Polygonal()
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestParseGeoJSON_MultiPolygonAndMissingID(t *testing.T) {
	data := []byte(`{
		"type": "FeatureCollection",
		"features": [{
			"type": "Feature",
			"properties": {},
			"geometry": {
				"type": "MultiPolygon",
				"coordinates": [
					[[[0,0],[1000,0],[1000,1000],[0,1000],[0,0]]],
					[[[5000,0],[6000,0],[6000,1000],[5000,1000],[5000,0]]]
				]
			}
		}]
	}`)

	bs, err := ParseGeoJSON(data, "name")
	require.NoError(t, err)
	require.Len(t, bs, 1)
	assert.Equal(t, "feature-0", bs[0].ID)

	p, err := bs[0].Polygonal()
	require.NoError(t, err)
	assert.InDelta(t, 2e6, p.Area(), 1.0)
}

func TestCheckWorkingCRS(t *testing.T) {
	assert.NoError(t, CheckWorkingCRS(BritishNationalGrid))
	assert.NoError(t, CheckWorkingCRS("epsg:27700"), "tags are case-insensitive")

	err := CheckWorkingCRS(WGS84)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedUnits)

	assert.Error(t, CheckWorkingCRS("EPSG:999999"))
}

func TestTransformer_BNGOriginRoundsToWGS84(t *testing.T) {
	// The British National Grid false origin (E 400000, N -100000) sits at
	// 49°N 2°W by construction.
	tr, err := Transformer(BritishNationalGrid, WGS84)
	require.NoError(t, err)

	lon, lat, err := tr(400000, -100000)
	require.NoError(t, err)
	assert.InDelta(t, -2.0, lon, 0.05)
	assert.InDelta(t, 49.0, lat, 0.05)
}

func TestReproject_SameCRSIsNoop(t *testing.T) {
	bs := []Boundary{{ID: "x", Geom: geom.Polygon{{
		{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000},
	}}}}

	got, err := Reproject(bs, BritishNationalGrid, "epsg:27700")
	require.NoError(t, err)
	assert.Equal(t, bs, got)
}

func TestReproject_KeepsNilGeometry(t *testing.T) {
	bs := []Boundary{{ID: "empty"}}

	got, err := Reproject(bs, WGS84, BritishNationalGrid)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Geom)

	_, err = got[0].Polygonal()
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}
