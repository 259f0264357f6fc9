package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rihla/globals"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithError(rec, http.StatusNotFound, "no data for destination")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"no data for destination"}`, rec.Body.String())
}

func TestRespondWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithJSON(rec, http.StatusCreated, M{"ok": true})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestGetUserIDFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetUserIDFromRequest(r))

	r = r.WithContext(context.WithValue(r.Context(), globals.UserIDKey, "u1"))
	assert.Equal(t, "u1", GetUserIDFromRequest(r))
}

func TestGetUUID(t *testing.T) {
	a, b := GetUUID(), GetUUID()
	assert.NotEqual(t, a, b)
	_, err := uuid.Parse(a)
	require.NoError(t, err)
}
