package models

// Catalog names one of the static lookup tables.
type Catalog string

const (
	CatalogRegions   Catalog = "regions"
	CatalogPositions Catalog = "positions"
	CatalogInterests Catalog = "interests"
	CatalogLanguages Catalog = "languages"
)

// CatalogEntry is a row of a read-only catalog (Region, Position, Interest, Language).
type CatalogEntry struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
