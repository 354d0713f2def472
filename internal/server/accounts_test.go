package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quillworks/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationRead(t *testing.T) {
	seed := func(env *testEnv, userID string) *types.Notification {
		n := &types.Notification{UserID: userID, Title: "Work Completed", Type: "info"}
		require.NoError(t, env.notifications.CreateNotification(t.Context(), n))
		return n
	}

	t.Run("owner can mark their notification read", func(t *testing.T) {
		env := newTestEnv(t)
		n := seed(env, "user-1")

		req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/notifications/"+n.ID+"/read", nil), "user-1")
		rec := doRoute("/api/notifications/:id/read", http.MethodPost, env.svc.handleNotificationRead, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, n.Read)
	})

	t.Run("another user's notification is 404", func(t *testing.T) {
		env := newTestEnv(t)
		n := seed(env, "user-1")

		req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/notifications/"+n.ID+"/read", nil), "user-2")
		rec := doRoute("/api/notifications/:id/read", http.MethodPost, env.svc.handleNotificationRead, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.False(t, n.Read)
	})
}

func TestTicketSubmit(t *testing.T) {
	t.Run("returns the generated reference code", func(t *testing.T) {
		env := newTestEnv(t)

		req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/tickets",
			strings.NewReader(`{"subject":"Missing file","message":"The download link is broken"}`)), "user-1")
		rec := doHandler(env.svc.handleTicketSubmit, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		require.Len(t, env.tickets.tickets, 1)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, env.tickets.tickets[0].Reference, resp["reference"])
		assert.Equal(t, types.TicketStatusOpen, env.tickets.tickets[0].Status)
	})

	t.Run("empty subject or message is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		req := authedRequest(httptest.NewRequest(http.MethodPost, "/api/tickets",
			strings.NewReader(`{"subject":"  ","message":""}`)), "user-1")
		rec := doHandler(env.svc.handleTicketSubmit, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, env.tickets.tickets)
	})
}

func TestAdminOrderUpdate(t *testing.T) {
	t.Run("invalid status is rejected without touching the row", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.orders["order-1"] = &types.Order{ID: "order-1", Status: types.OrderStatusPending}

		req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/order-1",
			strings.NewReader(`{"status":"shipped"}`))
		rec := doRoute("/api/admin/orders/:id", http.MethodPatch, env.svc.handleAdminOrderUpdate, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, types.OrderStatusPending, env.orders.orders["order-1"].Status)
	})

	t.Run("valid status transition is applied", func(t *testing.T) {
		env := newTestEnv(t)
		env.orders.orders["order-1"] = &types.Order{ID: "order-1", Status: types.OrderStatusPending}

		req := httptest.NewRequest(http.MethodPatch, "/api/admin/orders/order-1",
			strings.NewReader(`{"status":"completed"}`))
		rec := doRoute("/api/admin/orders/:id", http.MethodPatch, env.svc.handleAdminOrderUpdate, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, types.OrderStatusCompleted, env.orders.orders["order-1"].Status)
	})
}

func TestProfile(t *testing.T) {
	t.Run("missing profile is 404", func(t *testing.T) {
		env := newTestEnv(t)

		req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/profile", nil), "user-1")
		rec := doHandler(env.svc.handleGetProfile, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("put upserts and get returns it", func(t *testing.T) {
		env := newTestEnv(t)

		put := authedRequest(httptest.NewRequest(http.MethodPut, "/api/profile",
			strings.NewReader(`{"displayName":"Jane","bio":"MA candidate"}`)), "user-1")
		rec := doHandler(env.svc.handlePutProfile, put)
		require.Equal(t, http.StatusOK, rec.Code)

		get := authedRequest(httptest.NewRequest(http.MethodGet, "/api/profile", nil), "user-1")
		rec = doHandler(env.svc.handleGetProfile, get)
		require.Equal(t, http.StatusOK, rec.Code)

		var profile types.Profile
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
		assert.Equal(t, "Jane", profile.DisplayName)
	})
}

func TestSamplesList(t *testing.T) {
	env := newTestEnv(t)
	env.samples.samples = []*types.SamplePaper{
		{ID: "s1", Title: "Published one", Published: true},
		{ID: "s2", Title: "Draft", Published: false},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/samples", nil)
	rec := doHandler(env.svc.handleSamplesList, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var samples []types.SamplePaper
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &samples))
	require.Len(t, samples, 1)
	assert.Equal(t, "Published one", samples[0].Title)
}
