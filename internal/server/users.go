package server

import (
	"net/http"
	"net/mail"
	"strings"

	"quillworks/pkg/types"

	"github.com/alexedwards/flow"
)

type userLookupInput struct {
	Email string `json:"email" form:"email"`
}

// handleUserLookupByEmail resolves an identity-provider account for the admin
// deliverable workflow. Malformed input is rejected before any provider call.
func (s *Service) handleUserLookupByEmail(w http.ResponseWriter, r *http.Request) {
	var input userLookupInput
	if err := decodeRequest(r, &input); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid request payload", err))
		return
	}

	email := strings.TrimSpace(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		s.respondError(w, r, types.NewError(types.KindValidation, "a valid email address is required"))
		return
	}

	user, err := s.directory.FindByEmail(r.Context(), email)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Service) handleUserLookupByID(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	user, err := s.directory.FindByID(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"user": user})
}
