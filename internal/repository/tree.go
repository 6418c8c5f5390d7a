package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/UnknownOlympus/treemap/internal/models"
)

// GetOrCreateImportEvent returns the import event named fileName, creating it
// on first use. The unique constraint on file_name settles concurrent first
// submissions; the no-op update makes RETURNING yield the existing row.
func (r *Repository) GetOrCreateImportEvent(
	ctx context.Context,
	fileName string,
	now time.Time,
) (*models.ImportEvent, error) {
	query := `
		INSERT INTO import_events (file_name, imported_on)
		VALUES ($1, $2)
		ON CONFLICT (file_name) DO UPDATE SET file_name = EXCLUDED.file_name
		RETURNING id, file_name, imported_on;
	`

	var event models.ImportEvent
	err := r.db.QueryRow(ctx, query, fileName, now).Scan(&event.ID, &event.FileName, &event.ImportedOn)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create import event: %w", err)
	}

	return &event, nil
}

// CreateTree inserts tree and returns its new ID.
func (r *Repository) CreateTree(ctx context.Context, tree *models.Tree) (int64, error) {
	query := `
		INSERT INTO trees (
			geometry, address_street, address_city, address_zip, geocoded_address,
			species_id, plot_width, plot_length, plot_type, powerline_conflict_potential,
			height, canopy_height, dbh, sidewalk_damage, condition, canopy_condition,
			import_event_id, last_updated_by, date_created, last_updated
		) VALUES (
			ST_SetSRID(ST_MakePoint($1, $2), $3), $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22
		)
		RETURNING id;
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		tree.Geometry.Lon, tree.Geometry.Lat, tree.Geometry.SRID,
		tree.AddressStreet, tree.AddressCity, tree.AddressZip, tree.GeocodedAddress,
		tree.SpeciesID(), tree.PlotWidth, tree.PlotLength, tree.PlotType, tree.PowerlineConflictPotential,
		tree.Height, tree.CanopyHeight, tree.DBH, tree.SidewalkDamage, tree.Condition, tree.CanopyCondition,
		tree.ImportEventID, tree.LastUpdatedBy, tree.DateCreated, tree.LastUpdated,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create tree: %w", err)
	}

	r.log.DebugContext(ctx, "Tree record inserted", "id", id, "import_event", tree.ImportEventID)

	return id, nil
}
