package server

import (
	"net/http"
	"strings"

	"quillworks/pkg/types"
)

func (s *Service) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	profile, err := s.profiles.Profile(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}

type profileUpdateInput struct {
	DisplayName string  `json:"displayName" form:"display_name"`
	AvatarURL   *string `json:"avatarUrl" form:"avatar_url"`
	Bio         *string `json:"bio" form:"bio"`
}

func (s *Service) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var input profileUpdateInput
	if err := decodeRequest(r, &input); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid request payload", err))
		return
	}

	if strings.TrimSpace(input.DisplayName) == "" {
		s.respondFieldErrors(w, map[string]string{"displayName": "display name is required"})
		return
	}

	profile := &types.Profile{
		UserID:      userID,
		DisplayName: strings.TrimSpace(input.DisplayName),
		AvatarURL:   input.AvatarURL,
		Bio:         input.Bio,
	}

	if err := s.profiles.UpsertProfile(r.Context(), profile); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, profile)
}
