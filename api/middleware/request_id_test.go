package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestIDHonorsValidUUID(t *testing.T) {
	supplied := uuid.NewString()

	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", supplied)
	handler.ServeHTTP(rec, req)

	require.Equal(t, supplied, rec.Header().Get("X-Request-Id"))
}

func TestRequestIDReplacesMalformedID(t *testing.T) {
	handler := RequestID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for _, supplied := range []string{"", "   ", "not-a-uuid", "12345"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if supplied != "" {
			req.Header.Set("X-Request-Id", supplied)
		}
		handler.ServeHTTP(rec, req)

		got := rec.Header().Get("X-Request-Id")
		require.NotEqual(t, supplied, got)
		_, err := uuid.Parse(got)
		require.NoError(t, err, "replacement id must be a well-formed uuid")
	}
}
