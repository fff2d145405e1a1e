package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"fenced", "```json\n{\"location\":\"Rome\"}\n```", `{"location":"Rome"}`},
		{"chatter", `Sure! Here you go: {"a":{"b":1}} hope that helps`, `{"a":{"b":1}}`},
		{"brace in string", `{"name":"a } b","n":2} trailing`, `{"name":"a } b","n":2}`},
		{"no object", "  nothing here ", "nothing here"},
		{"unbalanced", `{"a":1`, `{"a":1`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractJSONObject(tc.in))
		})
	}
}

func TestParseTripDate(t *testing.T) {
	t.Parallel()
	got, err := ParseTripDate("2026-10-20", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseTripDate("  ", time.UTC)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = ParseTripDate("20/10/2026", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidStartDate)
}

func TestLoadLocationOrFallsBackToUTC(t *testing.T) {
	t.Parallel()
	assert.Equal(t, time.UTC, LoadLocationOr(""))
	assert.Equal(t, time.UTC, LoadLocationOr("Not/AZone"))
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	id := uuid.New()

	token, err := CreateToken(id, "user")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
	assert.Equal(t, "user", claims.Role)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestHandleServiceErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	testCases := []struct {
		err  error
		code int
	}{
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrInvalidStartDate, http.StatusBadRequest},
		{ErrJourneyNotFound, http.StatusNotFound},
		{ErrForbidden, http.StatusForbidden},
		{ErrNoVenuesAvailable, http.StatusUnprocessableEntity},
		{errors.Join(ErrPlacesProvider, errors.New("timeout")), http.StatusBadGateway},
		{ErrDatabaseError, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("trace_id", "trace-1")

		HandleServiceError(c, tc.err)

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		var body APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "error", body.Status)
		assert.Equal(t, "trace-1", body.TraceID)
	}
}
