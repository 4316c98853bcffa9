package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Dosada05/teamfinder/models"
)

var (
	ErrCatalogEntryNotFound = errors.New("catalog entry not found")
	ErrUnknownCatalog       = errors.New("unknown catalog")
)

type CatalogRepository interface {
	List(ctx context.Context, catalog models.Catalog) ([]models.CatalogEntry, error)
	GetByID(ctx context.Context, catalog models.Catalog, id int) (*models.CatalogEntry, error)
}

// catalogTables is the whitelist of tables that may be interpolated into queries.
var catalogTables = map[models.Catalog]string{
	models.CatalogRegions:   "regions",
	models.CatalogPositions: "positions",
	models.CatalogInterests: "interests",
	models.CatalogLanguages: "languages",
}

type postgresCatalogRepository struct {
	db *sqlx.DB
}

func NewPostgresCatalogRepository(db *sqlx.DB) CatalogRepository {
	return &postgresCatalogRepository{db: db}
}

func (r *postgresCatalogRepository) List(ctx context.Context, catalog models.Catalog) ([]models.CatalogEntry, error) {
	table, ok := catalogTables[catalog]
	if !ok {
		return nil, ErrUnknownCatalog
	}

	query, args, err := selectColumns("id", "name").From(table).OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", table, err)
	}

	entries := []models.CatalogEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return entries, nil
}

func (r *postgresCatalogRepository) GetByID(ctx context.Context, catalog models.Catalog, id int) (*models.CatalogEntry, error) {
	table, ok := catalogTables[catalog]
	if !ok {
		return nil, ErrUnknownCatalog
	}

	query, args, err := selectColumns("id", "name").From(table).Where(eq("id", id)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", table, err)
	}

	var entry models.CatalogEntry
	if err := r.db.GetContext(ctx, &entry, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCatalogEntryNotFound
		}
		return nil, fmt.Errorf("select %s %d: %w", table, id, err)
	}
	return &entry, nil
}
