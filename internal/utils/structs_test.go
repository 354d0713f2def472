package utils

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taggedRow struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Internal  string `db:"-"`
	Untagged  string
	CreatedAt string `db:"created_at"`
}

func TestStructTagValues(t *testing.T) {
	cols := StructTagValues(&taggedRow{})
	assert.Equal(t, []string{"id", "name", "created_at"}, cols)
}

func TestStructToMap(t *testing.T) {
	row := taggedRow{ID: "1", Name: "jane", Internal: "x", Untagged: "y", CreatedAt: "now"}

	t.Run("maps tagged fields only", func(t *testing.T) {
		m := StructToMap(row)
		assert.Equal(t, map[string]any{"id": "1", "name": "jane", "created_at": "now"}, m)
	})

	t.Run("omit drops named columns", func(t *testing.T) {
		m := StructToMap(&row, "id", "created_at")
		assert.Equal(t, map[string]any{"name": "jane"}, m)
	})
}

func TestTicketReference(t *testing.T) {
	ref := TicketReference()
	require.True(t, strings.HasPrefix(ref, "QW-"))
	assert.Len(t, ref, len("QW-")+10)
	assert.NotEqual(t, ref, TicketReference())
}

func TestErrorWrapOrNil(t *testing.T) {
	assert.NoError(t, ErrorWrapOrNil(nil, "context"))

	base := errors.New("boom")
	wrapped := ErrorWrapOrNil(base, "query users")
	require.Error(t, wrapped)
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "query users: boom", wrapped.Error())

	assert.Equal(t, base, ErrorWrapOrNil(base, ""))
}
