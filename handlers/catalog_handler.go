package handlers

import (
	"net/http"
	"strings"

	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/services"
)

// CatalogHandler serves one read-only catalog (regions, positions, ...).
type CatalogHandler struct {
	service services.CatalogService
	catalog models.Catalog
}

func NewCatalogHandler(service services.CatalogService, catalog models.Catalog) *CatalogHandler {
	return &CatalogHandler{service: service, catalog: catalog}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context(), h.catalog)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{string(h.catalog): entries}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	entry, err := h.service.Get(r.Context(), h.catalog, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// regions -> region
	key := strings.TrimSuffix(string(h.catalog), "s")
	if err := writeJSON(w, http.StatusOK, jsonResponse{key: entry}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
