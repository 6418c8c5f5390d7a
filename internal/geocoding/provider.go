package geocoding

import (
	"context"
	"errors"

	"github.com/UnknownOlympus/treemap/internal/models"
)

// ErrNoMatch is returned when a provider finds nothing for the address.
var ErrNoMatch = errors.New("address not found")

// Provider geocodes a free-form address to a single WGS84 coordinate pair.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}
