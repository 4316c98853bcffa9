package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/teamfinder/middleware"
	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/services"
)

// JoinableHandler serves /applications and /invitations. The two differ only
// in the service behind them and in the envelope keys.
type JoinableHandler struct {
	service    services.JoinableService
	kind       models.JoinableKind
	collection string
	item       string
}

func NewApplicationHandler(service services.JoinableService) *JoinableHandler {
	return &JoinableHandler{service: service, kind: models.KindApplication, collection: "applications", item: "application"}
}

func NewInvitationHandler(service services.JoinableService) *JoinableHandler {
	return &JoinableHandler{service: service, kind: models.KindInvitation, collection: "invitations", item: "invitation"}
}

type joinableView struct {
	ID       int                   `json:"id"`
	Player   models.PlayerSummary  `json:"player"`
	Team     models.TeamSummary    `json:"team"`
	Status   models.JoinableStatus `json:"status"`
	Created  time.Time             `json:"created"`
	Modified time.Time             `json:"modified"`
}

type invitationView struct {
	joinableView
	CreatedBy *int `json:"created_by"`
}

func (h *JoinableHandler) view(e *models.JoinableEvent) interface{} {
	v := joinableView{
		ID:       e.ID,
		Player:   models.PlayerSummary{ID: e.PlayerID},
		Team:     models.TeamSummary{ID: e.TeamID},
		Status:   e.Status,
		Created:  e.CreatedAt,
		Modified: e.UpdatedAt,
	}
	if e.Player != nil {
		v.Player = *e.Player
	}
	if e.Team != nil {
		v.Team = *e.Team
	}
	if h.kind == models.KindInvitation {
		return invitationView{joinableView: v, CreatedBy: e.CreatedByID}
	}
	return v
}

type joinableEditInput struct {
	Status *models.JoinableStatus `json:"status" validate:"omitempty,oneof=pending accepted declined"`
}

// Collection handles GET and POST on the collection route.
func (h *JoinableHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch services.JoinableShapeFor(r.Method) {
	case services.ShapeCreate:
		h.create(w, r)
	case services.ShapeRead:
		h.list(w, r)
	default:
		methodNotAllowedResponse(w, r)
	}
}

// Item handles GET, PUT and PATCH on /{id}.
func (h *JoinableHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	switch services.JoinableShapeFor(r.Method) {
	case services.ShapeEdit:
		h.update(w, r, id)
	case services.ShapeRead:
		h.get(w, r, id)
	default:
		methodNotAllowedResponse(w, r)
	}
}

func (h *JoinableHandler) list(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	events, err := h.service.List(r.Context(), actor, listParams(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	views := make([]interface{}, 0, len(events))
	for i := range events {
		views = append(views, h.view(&events[i]))
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{h.collection: views}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JoinableHandler) get(w http.ResponseWriter, r *http.Request, id int) {
	actor := middleware.ActorFromContext(r.Context())

	event, err := h.service.Get(r.Context(), actor, id, listParams(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{h.item: h.view(event)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JoinableHandler) create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var input services.CreateJoinableInput
	if !readValidJSON(w, r, &input) {
		return
	}

	event, err := h.service.Create(r.Context(), actor, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{h.item: h.view(event)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JoinableHandler) update(w http.ResponseWriter, r *http.Request, id int) {
	actor := middleware.ActorFromContext(r.Context())

	var input joinableEditInput
	if !readValidJSON(w, r, &input) {
		return
	}

	if input.Status == nil {
		if r.Method == http.MethodPut {
			failedValidationResponse(w, r, map[string]string{"status": "this field is required"})
			return
		}
		// PATCH без полей: просто возвращаем текущее состояние
		h.get(w, r, id)
		return
	}

	event, err := h.service.UpdateStatus(r.Context(), actor, id, listParams(r), *input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{h.item: h.view(event)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
