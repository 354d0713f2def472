package server

import (
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"quillworks/pkg/types"
)

type roleAssignInput struct {
	Email string     `json:"email" form:"email"`
	Role  types.Role `json:"role" form:"role"`
}

// handleRoleAssign reassigns the target user's single role. The store upsert
// is atomic, so concurrent assignments can never leave zero or two rows.
func (s *Service) handleRoleAssign(w http.ResponseWriter, r *http.Request) {
	var input roleAssignInput
	if err := decodeRequest(r, &input); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid request payload", err))
		return
	}

	email := strings.TrimSpace(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		s.respondError(w, r, types.NewError(types.KindValidation, "a valid email address is required"))
		return
	}

	if !types.ValidRole(input.Role) {
		s.respondError(w, r, types.NewError(types.KindValidation, "role must be one of admin, moderator, user"))
		return
	}

	target, err := s.directory.FindByEmail(r.Context(), email)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.roles.AssignRole(r.Context(), target.ID, input.Role); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Role %s assigned to %s", input.Role, email),
	})
}
