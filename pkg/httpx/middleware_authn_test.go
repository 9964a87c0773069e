package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/jwtx"
)

const gateSecret = "gate-test-secret"

func gateHandler(t *testing.T) http.Handler {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]int64{
			"user_id": httpx.UserIDFromCtx(r.Context()),
		})
	})
	return httpx.Chain(next, httpx.AuthnMiddleware(jwtx.NewHS256Verifier(gateSecret)))
}

func gateResponse(t *testing.T, h http.Handler, authorization string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestAuthnMiddleware_MissingToken(t *testing.T) {
	h := gateHandler(t)

	for name, header := range map[string]string{
		"no header":      "",
		"not bearer":     "Basic dXNlcjpwYXNz",
		"lowercase word": "bearer abc",
	} {
		t.Run(name, func(t *testing.T) {
			rec, body := gateResponse(t, h, header)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Equal(t, "unauthorized", body["kind"])
			require.Equal(t, "Token not found", body["detail"])
		})
	}
}

func TestAuthnMiddleware_InvalidToken(t *testing.T) {
	h := gateHandler(t)

	// Garbage.
	rec, body := gateResponse(t, h, "Bearer not.a.jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid token", body["detail"])

	// Wrong secret.
	signed, err := jwtx.NewHS256Signer("some-other-secret").Sign(
		jwtx.NewClaims(7, "a@example.com", "a", "1", time.Hour, time.Now()))
	require.NoError(t, err)
	rec, body = gateResponse(t, h, "Bearer "+signed)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid token", body["detail"])

	// Expired.
	expired, err := jwtx.NewHS256Signer(gateSecret).Sign(
		jwtx.NewClaims(7, "a@example.com", "a", "1", -time.Minute, time.Now()))
	require.NoError(t, err)
	rec, body = gateResponse(t, h, "Bearer "+expired)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid token", body["detail"])
}

func TestAuthnMiddleware_ValidToken(t *testing.T) {
	h := gateHandler(t)

	signed, err := jwtx.NewHS256Signer(gateSecret).Sign(
		jwtx.NewClaims(42, "john@example.com", "john", "987654321", time.Hour, time.Now()))
	require.NoError(t, err)

	rec, body := gateResponse(t, h, "Bearer "+signed)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 42, body["user_id"])
}
