// Package geometry holds the small amount of planar geometry needed to place a
// tree: WGS84 points, polygon containment and an in-memory boundary index.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SRIDWGS84 is the EPSG code of the geodetic frame all points are expressed in.
const SRIDWGS84 = 4326

// Common errors for point construction.
var (
	ErrInvalidPoint    = errors.New("invalid point")
	ErrInvalidLocation = errors.New("location must have the form \"<lat>,<lon>\"")
)

// Point is a longitude/latitude pair in a given spatial reference frame.
type Point struct {
	Lon  float64
	Lat  float64
	SRID int
}

// NewPoint builds a WGS84 point. Coordinates must be finite; values outside
// the geodetic range are accepted and simply lie outside every boundary.
func NewPoint(lon, lat float64) (Point, error) {
	if !finite(lon) || !finite(lat) {
		return Point{}, fmt.Errorf("%w: non-finite coordinate (%v, %v)", ErrInvalidPoint, lon, lat)
	}

	return Point{Lon: lon, Lat: lat, SRID: SRIDWGS84}, nil
}

// Geodetic reports whether p lies within the longitude and latitude ranges.
func (p Point) Geodetic() bool {
	return p.Lon >= -180 && p.Lon <= 180 && p.Lat >= -90 && p.Lat <= 90
}

// ParseLatLon parses a "lat,lon" string, the format map widgets use for their
// initial marker position.
func ParseLatLon(s string) (Point, error) {
	const partsCount = 2

	parts := strings.Split(s, ",")
	if len(parts) != partsCount {
		return Point{}, ErrInvalidLocation
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: invalid latitude: %s", ErrInvalidLocation, parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: invalid longitude: %s", ErrInvalidLocation, parts[1])
	}

	return NewPoint(lon, lat)
}

// FormatLatLon renders p in the "lat,lon" form accepted by ParseLatLon. The
// shortest round-trip representation is used, so parsing the result yields a
// point Equal to p.
func FormatLatLon(p Point) string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}

// Equal reports whether both points share a frame and have bit-identical
// coordinates.
func (p Point) Equal(o Point) bool {
	return p.SRID == o.SRID && p.Lon == o.Lon && p.Lat == o.Lat
}

func (p Point) String() string {
	return fmt.Sprintf("SRID=%d;POINT(%v %v)", p.SRID, p.Lon, p.Lat)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
