package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/Dosada05/teamfinder/middleware"
	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/services"
)

type MembershipHandler struct {
	service services.MembershipService
}

func NewMembershipHandler(service services.MembershipService) *MembershipHandler {
	return &MembershipHandler{service: service}
}

// optionalID distinguishes an absent key from an explicit null.
type optionalID struct {
	Set   bool
	Value *int
}

func (o *optionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

type captainMemberInput struct {
	Position optionalID `json:"position"`
}

func (h *MembershipHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.List(r.Context(), listParams(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"memberships": members}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MembershipHandler) resolve(w http.ResponseWriter, r *http.Request) (*models.TeamMember, bool) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return nil, false
	}

	member, err := h.service.Get(r.Context(), id, listParams(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return nil, false
	}
	return member, true
}

func (h *MembershipHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"membership": member}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update handles PUT and PATCH. Only the team captain gets a writable
// position; for everyone else the payload has no writable fields.
func (h *MembershipHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	member, ok := h.resolve(w, r)
	if !ok {
		return
	}
	if err := h.service.Authorize(actor, member); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	switch services.MembershipShapeFor(r.Method, actor.Captains(member.Team)) {
	case services.ShapeCaptainMember:
		var input captainMemberInput
		if !readOptionalJSON(w, r, &input) {
			return
		}
		if input.Position.Set {
			if input.Position.Value != nil && *input.Position.Value <= 0 {
				failedValidationResponse(w, r, map[string]string{"position": "must be a positive id"})
				return
			}
			updated, err := h.service.UpdatePosition(r.Context(), actor, member,
				services.UpdateMembershipInput{PositionID: input.Position.Value})
			if err != nil {
				mapServiceErrorToHTTP(w, r, err)
				return
			}
			member = updated
		}
	default:
		var input struct{}
		if !readOptionalJSON(w, r, &input) {
			return
		}
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"membership": member}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MembershipHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	member, ok := h.resolve(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), actor, member); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readOptionalJSON is readJSON that treats an empty body as an empty object.
func readOptionalJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
		return true
	}
	if err := readJSON(w, r, dst); err != nil {
		badRequestResponse(w, r, err)
		return false
	}
	return true
}
