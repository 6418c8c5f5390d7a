package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/UnknownOlympus/treemap/internal/geometry"
	"github.com/UnknownOlympus/treemap/internal/models"
	"github.com/jackc/pgx/v5"
)

// FindUserByUsername returns the user with the given username, or nil when no
// such user exists.
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username
		FROM users
		WHERE username = $1;
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// FindSpeciesBySymbol returns the first species carrying symbol, or nil when
// none does. A missing species is not an error.
func (r *Repository) FindSpeciesBySymbol(ctx context.Context, symbol string) (*models.Species, error) {
	query := `
		SELECT id, symbol, scientific_name, common_name
		FROM species
		WHERE symbol = $1
		ORDER BY id ASC
		LIMIT 1;
	`

	var spp models.Species
	err := r.db.QueryRow(ctx, query, symbol).Scan(&spp.ID, &spp.Symbol, &spp.ScientificName, &spp.CommonName)
	if errors.Is(err, pgx.ErrNoRows) {
		r.log.DebugContext(ctx, "No species found for symbol", "symbol", symbol)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get species: %w", err)
	}

	return &spp, nil
}

// NeighborhoodContains reports whether any neighborhood boundary contains point.
func (r *Repository) NeighborhoodContains(ctx context.Context, point geometry.Point) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM neighborhoods
			WHERE ST_Contains(geometry, ST_SetSRID(ST_MakePoint($1, $2), $3))
		);
	`

	var inside bool
	if err := r.db.QueryRow(ctx, query, point.Lon, point.Lat, point.SRID).Scan(&inside); err != nil {
		return false, fmt.Errorf("failed to check neighborhood containment: %w", err)
	}

	return inside, nil
}
