package cell

import (
	"regexp"
	"strconv"
)

const doublePattern = `[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?`

var (
	valid2Doubles = regexp.MustCompile(`^\s*(` + doublePattern + `)\s*[,\s]\s*(` + doublePattern + `)\s*$`)
	valid3Doubles = regexp.MustCompile(`^\s*(` + doublePattern + `)\s*[,\s]\s*(` + doublePattern + `)\s*[,\s]\s*(` + doublePattern + `)\s*$`)
)

// Point2D is a point on a plane.
type Point2D struct {
	X, Y float64
}

// Point3D is a point in space.
type Point3D struct {
	X, Y, Z float64
}

// LatLon is a geographic coordinate in degrees.
type LatLon struct {
	Lat, Lon float64
}

func (p Point2D) String() string { return joinDoubles(p.X, p.Y) }
func (p Point3D) String() string { return joinDoubles(p.X, p.Y, p.Z) }
func (l LatLon) String() string  { return joinDoubles(l.Lat, l.Lon) }

// ParsePoint2D parses "x, y" (comma or whitespace separated).
func ParsePoint2D(s string) (Point2D, error) {
	v, err := parseDoubles(s, valid2Doubles, TagPoint2D)
	if err != nil {
		return Point2D{}, err
	}
	return Point2D{X: v[0], Y: v[1]}, nil
}

// ParsePoint3D parses "x, y, z".
func ParsePoint3D(s string) (Point3D, error) {
	v, err := parseDoubles(s, valid3Doubles, TagPoint3D)
	if err != nil {
		return Point3D{}, err
	}
	return Point3D{X: v[0], Y: v[1], Z: v[2]}, nil
}

// ParseLatLon parses "lat, lon".
func ParseLatLon(s string) (LatLon, error) {
	v, err := parseDoubles(s, valid2Doubles, TagLatLon)
	if err != nil {
		return LatLon{}, err
	}
	return LatLon{Lat: v[0], Lon: v[1]}, nil
}

// parseDoubles validates s against re before converting any component.
func parseDoubles(s string, re *regexp.Regexp, tag Tag) ([]float64, error) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, newError(ErrMalformedGeoLiteral, tag, s, nil)
	}
	out := make([]float64, 0, len(m)-1)
	for _, g := range m[1:] {
		f, err := strconv.ParseFloat(g, 64)
		if err != nil {
			return nil, newError(ErrMalformedGeoLiteral, tag, s, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func joinDoubles(vals ...float64) string {
	b := make([]byte, 0, 16*len(vals))
	for i, v := range vals {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	return string(b)
}
