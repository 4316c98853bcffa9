package handlers

import (
	"net/http"

	"github.com/Dosada05/teamfinder/middleware"
	"github.com/Dosada05/teamfinder/services"
)

type UploadHandler struct {
	service services.UploadService
}

func NewUploadHandler(service services.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// SignTeamLogo отдаёт pre-signed URL для загрузки логотипа команды напрямую в бакет.
func (h *UploadHandler) SignTeamLogo(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	url, err := h.service.SignTeamLogoUpload(r.Context(), actor, r.URL.Query().Get("objectName"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"signedUrl": url}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
