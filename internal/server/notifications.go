package server

import (
	"net/http"

	"github.com/alexedwards/flow"
)

func (s *Service) handleMyNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	notifications, err := s.notifications.NotificationsByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, notifications)
}

func (s *Service) handleNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	id := flow.Param(r.Context(), "id")

	if err := s.notifications.MarkRead(r.Context(), id, userID); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Service) handleNotificationsReadAll(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.notifications.MarkAllRead(r.Context(), userID); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
