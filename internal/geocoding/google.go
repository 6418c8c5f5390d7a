package geocoding

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/treemap/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider geocodes through the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient
	region string
	log    *slog.Logger
}

type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// NewGoogleProvider returns a provider that biases results towards region.
func NewGoogleProvider(client GoogleAPIClient, region string, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, region: region, log: log}
}

// Geocode returns the location of the best match for address. Partial matches
// are accepted but logged, since the user still confirms the point on the map.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address)

	req := maps.GeocodingRequest{Address: address, Region: gp.region}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	best := results[0]
	if best.PartialMatch {
		gp.log.WarnContext(ctx, "Google Maps returned a partial match",
			"address", address, "formatted", best.FormattedAddress)
	}
	loc := best.Geometry.Location

	return &models.Coordinates{Longitude: loc.Lng, Latitude: loc.Lat}, nil
}
