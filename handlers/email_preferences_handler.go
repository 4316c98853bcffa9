package handlers

import (
	"net/http"

	"github.com/Dosada05/teamfinder/middleware"
	"github.com/Dosada05/teamfinder/models"
	"github.com/Dosada05/teamfinder/services"
)

type EmailPreferencesHandler struct {
	service services.EmailPreferencesService
}

func NewEmailPreferencesHandler(service services.EmailPreferencesService) *EmailPreferencesHandler {
	return &EmailPreferencesHandler{service: service}
}

// emailPreferencesPutInput is the full-replacement payload: every flag is required.
type emailPreferencesPutInput struct {
	ReceiveApplicationEmails *bool                   `json:"receive_application_emails" validate:"required"`
	ReceiveInvitationEmails  *bool                   `json:"receive_invitation_emails" validate:"required"`
	ReceiveMembershipEmails  *bool                   `json:"receive_membership_emails" validate:"required"`
	DigestFrequency          *models.DigestFrequency `json:"digest_frequency" validate:"required,oneof=never daily weekly"`
}

func (h *EmailPreferencesHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	prefs, err := h.service.List(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"email_preferences": prefs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EmailPreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	prefs, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"email_preferences": prefs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *EmailPreferencesHandler) Self(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	prefs, err := h.service.Self(r.Context(), actor)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"email_preferences": prefs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Update handles PUT (all flags required) and PATCH (only supplied flags).
func (h *EmailPreferencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	id, err := getIDFromURL(r, "id")
	if err != nil {
		notFoundResponse(w, r)
		return
	}

	var input services.EmailPreferencesInput
	if r.Method == http.MethodPut {
		var full emailPreferencesPutInput
		if !readValidJSON(w, r, &full) {
			return
		}
		input = services.EmailPreferencesInput(full)
	} else if !readValidJSON(w, r, &input) {
		return
	}

	prefs, err := h.service.Update(r.Context(), actor, id, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"email_preferences": prefs}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
