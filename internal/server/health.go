package server

import (
	"net/http"

	"quillworks/pkg/types"
)

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.respondError(w, r, types.WrapError(types.KindDependency, "database unreachable", err))
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
