package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/treemap/internal/geometry"
	"github.com/UnknownOlympus/treemap/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repository uses. pgxmock pools
// satisfy it as well.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindSpeciesBySymbol(ctx context.Context, symbol string) (*models.Species, error)
	GetOrCreateImportEvent(ctx context.Context, fileName string, now time.Time) (*models.ImportEvent, error)
	CreateTree(ctx context.Context, tree *models.Tree) (int64, error)
	NeighborhoodContains(ctx context.Context, point geometry.Point) (bool, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// ServiceArea adapts the repository's neighborhood lookup to the validator's
// containment interface.
type ServiceArea struct {
	repo Interface
}

// NewServiceArea wraps repo as a treeform.ServiceArea.
func NewServiceArea(repo Interface) *ServiceArea {
	return &ServiceArea{repo: repo}
}

// Contains reports whether any stored neighborhood contains point.
func (sa *ServiceArea) Contains(ctx context.Context, point geometry.Point) (bool, error) {
	return sa.repo.NeighborhoodContains(ctx, point)
}
