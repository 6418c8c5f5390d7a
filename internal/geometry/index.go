package geometry

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	// minExtent keeps degenerate (zero-width) boundaries insertable into the tree.
	minExtent = 1e-9
	// pointTolerance widens a query point so boundaries touching it are still candidates.
	pointTolerance = 1e-9
)

// ErrEmptyBoundaries is returned when a boundary file contains no usable polygons.
var ErrEmptyBoundaries = errors.New("no polygon boundaries found")

// Boundary is a named service sub-region.
type Boundary struct {
	Name    string
	Polygon orb.MultiPolygon
	rect    rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (b *Boundary) Bounds() rtreego.Rect {
	return b.rect
}

// Contains reports whether p lies inside the boundary, holes excluded.
func (b *Boundary) Contains(p Point) bool {
	return planar.MultiPolygonContains(b.Polygon, orb.Point{p.Lon, p.Lat})
}

// Index answers point-in-boundary queries from memory. An R-tree over the
// boundary envelopes narrows the candidates before the exact polygon test.
type Index struct {
	tree *rtreego.Rtree
}

// NewIndex builds an index over the given boundaries. Boundaries without any
// vertices are skipped.
func NewIndex(boundaries []Boundary) (*Index, error) {
	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren)
	for i := range boundaries {
		b := boundaries[i]
		if !hasVertices(b.Polygon) {
			continue
		}
		bound := b.Polygon.Bound()
		rect, err := rtreego.NewRect(
			rtreego.Point{bound.Min.Lon(), bound.Min.Lat()},
			[]float64{max(bound.Right()-bound.Left(), minExtent), max(bound.Top()-bound.Bottom(), minExtent)},
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build envelope for boundary %q: %w", b.Name, err)
		}
		b.rect = rect
		tree.Insert(&b)
	}

	if tree.Size() == 0 {
		return nil, ErrEmptyBoundaries
	}

	return &Index{tree: tree}, nil
}

// Size returns the number of indexed boundaries.
func (idx *Index) Size() int {
	return idx.tree.Size()
}

// Lookup returns the boundaries containing p.
func (idx *Index) Lookup(p Point) []*Boundary {
	var found []*Boundary
	for _, item := range idx.tree.SearchIntersect(rtreego.Point{p.Lon, p.Lat}.ToRect(pointTolerance)) {
		b, ok := item.(*Boundary)
		if ok && b.Contains(p) {
			found = append(found, b)
		}
	}

	return found
}

// Contains reports whether any boundary contains p. It never fails; the error
// return lets Index stand in for a database-backed lookup.
func (idx *Index) Contains(_ context.Context, p Point) (bool, error) {
	return len(idx.Lookup(p)) > 0, nil
}

// LoadGeoJSON reads a FeatureCollection of Polygon and MultiPolygon features
// and indexes them. The feature name is taken from properties.name.
func LoadGeoJSON(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read boundary file: %w", err)
	}

	boundaries, err := DecodeGeoJSON(data)
	if err != nil {
		return nil, err
	}

	return NewIndex(boundaries)
}

// DecodeGeoJSON parses a FeatureCollection into boundaries. Features with other
// geometry types are ignored.
func DecodeGeoJSON(data []byte) ([]Boundary, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode boundary file: %w", err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("failed to decode boundary file: not a feature collection: type=%s", fc.Type)
	}

	boundaries := make([]Boundary, 0, len(fc.Features))
	for _, f := range fc.Features {
		var mp orb.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			mp = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			mp = g
		default:
			continue
		}

		boundaries = append(boundaries, Boundary{Name: f.Properties.MustString("name", ""), Polygon: mp})
	}

	if len(boundaries) == 0 {
		return nil, ErrEmptyBoundaries
	}

	return boundaries, nil
}

func hasVertices(mp orb.MultiPolygon) bool {
	for _, pg := range mp {
		if len(pg) > 0 && len(pg[0]) > 0 {
			return true
		}
	}
	return false
}
