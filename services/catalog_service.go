package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/repositories"
)

type CatalogService interface {
	List(ctx context.Context, catalog models.Catalog) ([]models.CatalogEntry, error)
	Get(ctx context.Context, catalog models.Catalog, id int) (*models.CatalogEntry, error)
}

type catalogService struct {
	catalogRepo repositories.CatalogRepository
}

func NewCatalogService(catalogRepo repositories.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) List(ctx context.Context, catalog models.Catalog) ([]models.CatalogEntry, error) {
	entries, err := s.catalogRepo.List(ctx, catalog)
	if err != nil {
		if errors.Is(err, repositories.ErrUnknownCatalog) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to list %s: %w", catalog, err)
	}
	return entries, nil
}

func (s *catalogService) Get(ctx context.Context, catalog models.Catalog, id int) (*models.CatalogEntry, error) {
	entry, err := s.catalogRepo.GetByID(ctx, catalog, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCatalogEntryNotFound) || errors.Is(err, repositories.ErrUnknownCatalog) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", catalog, id, err)
	}
	return entry, nil
}
