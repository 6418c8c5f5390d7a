package treeform

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/treemap/internal/geometry"
)

// MaxHeight is the tallest plausible tree or canopy height, in feet.
const MaxHeight = 300

// Validation messages shown to the submitter.
const (
	msgMissingLocation = "This tree is missing a location. Enter an address in Step 1 and update the map " +
		"to add a location for this tree."
	msgOutOfServiceArea     = "The selected location is outside our area. Please specify a location within the %s region."
	msgHeightTooLarge       = "Height is too large."
	msgCanopyHeightTooLarge = "Canopy height is too large."
	msgCanopyExceedsHeight  = "Canopy height cannot be larger than tree height."
	msgImpreciseLocation    = "We need a more precise location for the tree. Please move the tree marker from " +
		"the default location for this address to the specific location of the tree planting site."
)

// ServiceArea answers whether a point falls within any served neighborhood.
type ServiceArea interface {
	Contains(ctx context.Context, p geometry.Point) (bool, error)
}

// Validator applies the location and measurement rules to cleaned submissions.
type Validator struct {
	area       ServiceArea
	regionName string
}

// NewValidator returns a Validator that checks containment against area and
// names regionName in out-of-area messages.
func NewValidator(area ServiceArea, regionName string) *Validator {
	return &Validator{area: area, regionName: regionName}
}

// Validate checks c rule by rule and stops at the first failure, which is
// returned as a *ValidationError. On success it returns the tree's location.
// Errors from the service-area lookup are returned as they are.
func (v *Validator) Validate(ctx context.Context, c *Cleaned) (geometry.Point, error) {
	if c.Lat == nil || c.Lon == nil {
		return geometry.Point{}, v.fail(KindMissingLocation, msgMissingLocation)
	}
	point, err := geometry.NewPoint(*c.Lon, *c.Lat)
	if err != nil {
		return geometry.Point{}, v.fail(KindMissingLocation, msgMissingLocation)
	}

	inside, err := v.area.Contains(ctx, point)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("failed to check service area: %w", err)
	}
	if !inside {
		return geometry.Point{}, v.fail(KindOutOfServiceArea, fmt.Sprintf(msgOutOfServiceArea, v.regionName))
	}

	if c.Height != nil && *c.Height > MaxHeight {
		return geometry.Point{}, v.fail(KindImplausibleHeight, msgHeightTooLarge)
	}
	if c.CanopyHeight != nil && *c.CanopyHeight > MaxHeight {
		return geometry.Point{}, v.fail(KindImplausibleHeight, msgCanopyHeightTooLarge)
	}

	// Zero reads as "not measured", so it never triggers the comparison.
	if present(c.Height) && c.CanopyHeight != nil && *c.CanopyHeight != 0 && float64(*c.CanopyHeight) > *c.Height {
		return geometry.Point{}, v.fail(KindCanopyExceedsHeight, msgCanopyExceedsHeight)
	}

	if c.InitialMapLocation != "" {
		initial, err := geometry.ParseLatLon(c.InitialMapLocation)
		if err == nil && point.Equal(initial) {
			return geometry.Point{}, v.fail(KindImpreciseLocation, msgImpreciseLocation)
		}
	}

	return point, nil
}

func (v *Validator) fail(kind Kind, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Message: msg}
}

func present(f *float64) bool {
	return f != nil && *f != 0
}
