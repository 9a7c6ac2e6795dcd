package boundary

import (
	"fmt"
	"strings"

	"github.com/ctessum/geom/encoding/shp"
)

// LoadShapefile reads every feature of a local shapefile. The identifier is
// drawn from the named attribute fields, joined with a space when more than
// one is given (the ward files key on code plus name).
//
// Geometry is not validated here; malformed features are carried through so
// the failure is reported against the right constituency during the run.
func LoadShapefile(path string, idFields []string) ([]Boundary, error) {
	if len(idFields) == 0 {
		return nil, fmt.Errorf("shapefile %s: at least one identifier field is required", path)
	}
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile %s: %w", path, err)
	}
	defer d.Close()

	var out []Boundary
	for {
		g, fields, more := d.DecodeRowFields(idFields...)
		if !more {
			break
		}
		out = append(out, Boundary{ID: joinFields(fields, idFields), Geom: g})
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("read shapefile %s: %w", path, err)
	}
	return out, nil
}

func joinFields(fields map[string]string, order []string) string {
	parts := make([]string, 0, len(order))
	for _, name := range order {
		if v := strings.TrimSpace(fields[name]); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
