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

func TestUserLookupByEmail(t *testing.T) {
	t.Run("returns the directory user", func(t *testing.T) {
		env := newTestEnv(t)
		env.directory.add(&types.DirectoryUser{ID: "user-1", Email: "jane@example.com", GivenName: "Jane"})

		req := httptest.NewRequest(http.MethodPost, "/api/admin/users/lookup",
			strings.NewReader(`{"email":"jane@example.com"}`))
		rec := doHandler(env.svc.handleUserLookupByEmail, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			User types.DirectoryUser `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "user-1", resp.User.ID)
		assert.Equal(t, "jane@example.com", resp.User.Email)
	})

	t.Run("malformed email never reaches the directory", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/users/lookup",
			strings.NewReader(`{"email":"not-an-email"}`))
		rec := doHandler(env.svc.handleUserLookupByEmail, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, env.directory.calls)
	})

	t.Run("unknown email is 404", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/api/admin/users/lookup",
			strings.NewReader(`{"email":"nobody@example.com"}`))
		rec := doHandler(env.svc.handleUserLookupByEmail, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUserLookupByID(t *testing.T) {
	t.Run("returns the directory user", func(t *testing.T) {
		env := newTestEnv(t)
		env.directory.add(&types.DirectoryUser{ID: "user-1", Email: "jane@example.com"})

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users/user-1", nil)
		rec := doRoute("/api/admin/users/:id", http.MethodGet, env.svc.handleUserLookupByID, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			User types.DirectoryUser `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "user-1", resp.User.ID)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users/ghost", nil)
		rec := doRoute("/api/admin/users/:id", http.MethodGet, env.svc.handleUserLookupByID, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
