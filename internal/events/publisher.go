// Package events announces saved tree records to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/UnknownOlympus/treemap/internal/models"
)

// TypeTreeCreated identifies a newly saved tree record.
const TypeTreeCreated = "tree.created"

// Publisher announces saved trees.
type Publisher interface {
	PublishTreeCreated(ctx context.Context, tree *models.Tree) error
}

// TreeCreated is the payload of a tree.created message.
type TreeCreated struct {
	EventType     string    `json:"event_type"`
	TreeID        int64     `json:"tree_id"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	AddressStreet string    `json:"address_street"`
	SpeciesID     *int64    `json:"species_id,omitempty"`
	ImportEventID int64     `json:"import_event_id"`
	EditorID      int64     `json:"last_updated_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewTreeCreated builds the event for tree.
func NewTreeCreated(tree *models.Tree) TreeCreated {
	return TreeCreated{
		EventType:     TypeTreeCreated,
		TreeID:        tree.ID,
		Latitude:      tree.Geometry.Lat,
		Longitude:     tree.Geometry.Lon,
		AddressStreet: tree.AddressStreet,
		SpeciesID:     tree.SpeciesID(),
		ImportEventID: tree.ImportEventID,
		EditorID:      tree.LastUpdatedBy,
		CreatedAt:     tree.DateCreated,
	}
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishTreeCreated(context.Context, *models.Tree) error { return nil }
