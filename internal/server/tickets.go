package server

import (
	"net/http"
	"strings"

	"quillworks/pkg/types"

	"github.com/alexedwards/flow"
)

type ticketSubmitInput struct {
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
}

func (s *Service) handleTicketSubmit(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var input ticketSubmitInput
	if err := decodeRequest(r, &input); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid request payload", err))
		return
	}

	fields := make(map[string]string)
	if strings.TrimSpace(input.Subject) == "" {
		fields["subject"] = "subject is required"
	}
	if strings.TrimSpace(input.Message) == "" {
		fields["message"] = "message is required"
	}
	if len(fields) > 0 {
		s.respondFieldErrors(w, fields)
		return
	}

	ticket := &types.SupportTicket{
		UserID:  userID,
		Subject: strings.TrimSpace(input.Subject),
		Message: strings.TrimSpace(input.Message),
	}

	if err := s.tickets.CreateTicket(r.Context(), ticket); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"reference": ticket.Reference,
		"ticket":    ticket,
	})
}

func (s *Service) handleMyTickets(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	tickets, err := s.tickets.TicketsByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, tickets)
}

func (s *Service) handleAdminTicketsList(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.tickets.AllTickets(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, tickets)
}

type ticketUpdateInput struct {
	Status     types.TicketStatus `json:"status" form:"status"`
	AssignedTo *string            `json:"assignedTo" form:"assigned_to"`
}

func (s *Service) handleAdminTicketUpdate(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	var input ticketUpdateInput
	if err := decodeRequest(r, &input); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid request payload", err))
		return
	}

	if !types.ValidTicketStatus(input.Status) {
		s.respondError(w, r, types.NewError(types.KindValidation, "status must be one of open, in_progress, resolved, closed"))
		return
	}

	if err := s.tickets.UpdateTicket(r.Context(), id, input.Status, input.AssignedTo); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
