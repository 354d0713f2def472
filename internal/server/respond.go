package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"quillworks/pkg/types"
)

func (s *Service) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}

// respondError maps the error's kind to a status code. Tagged messages are
// safe for clients; untagged errors stay in the logs and the body gets a
// generic message.
func (s *Service) respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := types.KindOf(err)
	status := statusForKind(kind)

	message := "internal server error"
	var appErr *types.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError {
		s.logger.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	}

	s.respondJSON(w, status, map[string]any{
		"error": message,
		"kind":  kind,
	})
}

func statusForKind(kind types.ErrorKind) int {
	switch kind {
	case types.KindValidation:
		return http.StatusBadRequest
	case types.KindAuthentication:
		return http.StatusUnauthorized
	case types.KindAuthorization:
		return http.StatusForbidden
	case types.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondFieldErrors reports per-field validation failures as a 400.
func (s *Service) respondFieldErrors(w http.ResponseWriter, fields map[string]string) {
	s.respondJSON(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"kind":   types.KindValidation,
		"fields": fields,
	})
}
