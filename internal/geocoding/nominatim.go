package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/treemap/internal/models"
	"golang.org/x/time/rate"
)

// NominatimBaseURL is the public OpenStreetMap search endpoint.
const NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// nominatimUserAgent must carry contact info per the Nominatim usage policy:
// https://operations.osmfoundation.org/policies/nominatim/
const nominatimUserAgent = "Treemap/1.0 (https://github.com/UnknownOlympus/treemap)"

// NominatimProvider implements Provider on OpenStreetMap's Nominatim API.
type NominatimProvider struct {
	client       HTTPClient
	baseURL      string
	countryCodes string
	log          *slog.Logger
	limiter      *rate.Limiter
}

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type nominatimResponse struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// ErrNominatimInvalidCoords is returned when a result carries unparsable coordinates.
var ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")

var (
	houseNumberRe  = regexp.MustCompile(`^\d+[A-Za-z]?(?:-\d+)?\s+(.+)$`)
	intersectionRe = regexp.MustCompile(`(?i)\s+(?:&|and|at)\s+|\s*/\s*`)
)

// NewNominatimProvider creates a provider against the public Nominatim API,
// limited to rateLimit requests per second. countryCodes restricts results
// (comma-separated ISO 3166-1 alpha-2 codes); empty means worldwide.
func NewNominatimProvider(countryCodes string, rateLimit int, log *slog.Logger) *NominatimProvider {
	const timeout = 10 * time.Second

	return NewNominatimProviderWithClient(
		&http.Client{Timeout: timeout},
		countryCodes,
		rate.NewLimiter(rate.Limit(rateLimit), 1),
		log,
	)
}

// NewNominatimProviderWithClient allows injecting a custom HTTP client and limiter.
func NewNominatimProviderWithClient(
	client HTTPClient,
	countryCodes string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *NominatimProvider {
	return &NominatimProvider{
		client:       client,
		baseURL:      NominatimBaseURL,
		countryCodes: countryCodes,
		log:          log,
		limiter:      limiter,
	}
}

// Geocode converts an address to coordinates. Nominatim resolves neither
// intersections nor unknown house numbers, so when the full address finds
// nothing the street without its house number, and then the first street of
// an intersection, are tried in turn.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, ErrNoMatch
	}

	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	variations := addressFallbacks(address)
	for idx, variation := range variations {
		coords, err := np.search(ctx, variation)
		if err == nil {
			if idx > 0 {
				np.log.InfoContext(ctx, "Geocoded using fallback address",
					"original", address,
					"fallback", variation,
					"fallback_level", idx)
			}
			return coords, nil
		}
		if !errors.Is(err, ErrNoMatch) {
			return nil, err
		}

		np.log.DebugContext(ctx, "Address variation returned no results", "variation", variation)
	}

	np.log.WarnContext(ctx, "All address fallbacks exhausted",
		"address", address, "variations_tried", len(variations))
	return nil, ErrNoMatch
}

// addressFallbacks lists address followed by progressively looser variants,
// without duplicates.
func addressFallbacks(address string) []string {
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	locality := parts[1:]

	seen := make(map[string]bool)
	var variations []string
	add := func(street string) {
		v := strings.Join(append([]string{street}, locality...), ", ")
		if street != "" && !seen[v] {
			seen[v] = true
			variations = append(variations, v)
		}
	}

	street := parts[0]
	add(street)
	if m := houseNumberRe.FindStringSubmatch(street); m != nil {
		street = m[1]
		add(street)
	}
	if streets := intersectionRe.Split(street, 2); len(streets) == 2 {
		add(strings.TrimSpace(streets[0]))
	}

	return variations
}

func (np *NominatimProvider) search(ctx context.Context, address string) (*models.Coordinates, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	if np.countryCodes != "" {
		query.Set("countrycodes", np.countryCodes)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", nominatimUserAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
