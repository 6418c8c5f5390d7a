package models

import (
	"time"

	"github.com/UnknownOlympus/treemap/internal/geometry"
)

// Tree is a single street-tree record. Optional attributes are pointers so that
// an unset value stays distinguishable from a zero measurement.
type Tree struct {
	ID              int64          // ID is assigned by the database on insert.
	Geometry        geometry.Point // Geometry is the planting site in WGS84.
	AddressStreet   string         // AddressStreet is the street address or intersection.
	GeocodedAddress string         // GeocodedAddress is the string the map location was geocoded from.
	AddressCity     *string
	AddressZip      *string
	Species         *Species // Species is nil when the submission named no known species.

	PlotWidth                  *float64 // PlotWidth is in decimal feet.
	PlotLength                 *float64 // PlotLength is in decimal feet.
	PlotType                   *string
	PowerlineConflictPotential *string
	Height                     *float64
	CanopyHeight               *int
	DBH                        *float64 // DBH is the trunk diameter at breast height.
	SidewalkDamage             *string
	Condition                  *string
	CanopyCondition            *string

	ImportEventID int64 // ImportEventID groups records created through the same entry path.
	LastUpdatedBy int64 // LastUpdatedBy is the ID of the user who last edited the record.
	DateCreated   time.Time
	LastUpdated   time.Time
}

// NewTree returns the default record that submitted attributes are merged onto.
func NewTree() *Tree {
	return &Tree{}
}

// SpeciesID returns the linked species ID, or nil for a speciesless tree.
func (t *Tree) SpeciesID() *int64 {
	if t.Species == nil {
		return nil
	}
	id := t.Species.ID
	return &id
}
