package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/treemap/internal/geocoding"
	"github.com/UnknownOlympus/treemap/internal/geometry"
	"github.com/UnknownOlympus/treemap/internal/metrics"
	"github.com/jonboulle/clockwork"
)

// ErrEmptyAddress is returned by Locate for a blank address.
var ErrEmptyAddress = errors.New("address is required")

// Location is a geocoded address. InitialMapLocation is the "lat,lon" string
// the entry form sends back as initial_map_location.
type Location struct {
	Latitude           float64
	Longitude          float64
	InitialMapLocation string
}

// LocatorService geocodes the address typed into the entry form to place the
// initial map marker.
type LocatorService struct {
	log           *slog.Logger
	provider      geocoding.Provider
	providerName  string
	metrics       *metrics.Metrics
	addressPrefix string // Prefix for more accurate geocoding (city, state, etc.)
	clock         clockwork.Clock
}

func NewLocatorService(
	log *slog.Logger,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	addressPrefix string,
	clock clockwork.Clock,
) *LocatorService {
	return &LocatorService{
		log:           log,
		provider:      provider,
		providerName:  providerName,
		metrics:       metrics,
		addressPrefix: addressPrefix,
		clock:         clock,
	}
}

// Locate geocodes address with the configured prefix prepended.
func (ls *LocatorService) Locate(ctx context.Context, address string) (*Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrEmptyAddress
	}
	query := ls.addressPrefix + address

	start := ls.clock.Now()
	coords, err := ls.provider.Geocode(ctx, query)
	ls.metrics.GeocodeSeconds.WithLabelValues(ls.providerName).Observe(ls.clock.Since(start).Seconds())
	if err != nil {
		if !errors.Is(err, geocoding.ErrNoMatch) {
			ls.metrics.GeocodeAPIErrors.WithLabelValues(ls.providerName).Inc()
		}
		ls.log.ErrorContext(ctx, "Failed to geocode", "address", query, "error", err)
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}

	point, err := geometry.NewPoint(coords.Longitude, coords.Latitude)
	if err != nil {
		return nil, fmt.Errorf("provider returned unusable coordinates: %w", err)
	}
	if !point.Geodetic() {
		return nil, fmt.Errorf("provider returned unusable coordinates: %w: %s", geometry.ErrInvalidPoint, point)
	}

	return &Location{
		Latitude:           point.Lat,
		Longitude:          point.Lon,
		InitialMapLocation: geometry.FormatLatLon(point),
	}, nil
}
