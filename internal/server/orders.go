package server

import (
	"net/http"

	"quillworks/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	orders, err := s.orders.OrdersByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, orders)
}

func (s *Service) handleAdminOrdersList(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.AllOrders(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, orders)
}

type orderUpdateInput struct {
	Status types.OrderStatus `json:"status" form:"status"`
}

func (s *Service) handleAdminOrderUpdate(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	var input orderUpdateInput
	if err := decodeRequest(r, &input); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid request payload", err))
		return
	}

	if !types.ValidOrderStatus(input.Status) {
		s.respondError(w, r, types.NewError(types.KindValidation, "status must be one of pending, in_progress, completed, cancelled"))
		return
	}

	if err := s.orders.UpdateOrderStatus(r.Context(), id, input.Status); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
