package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	httpapi "github.com/taskdeck/taskdeck/internal/api/http"
	"github.com/taskdeck/taskdeck/internal/api/registry"
	"github.com/taskdeck/taskdeck/internal/api/service"
	"github.com/taskdeck/taskdeck/internal/api/store/drivers/sqlite"
	"github.com/taskdeck/taskdeck/pkg/apisdk"
	"github.com/taskdeck/taskdeck/pkg/jwtx"
)

const (
	testAccessSecret  = "handler-access-secret"
	testRefreshSecret = "handler-refresh-secret"
)

func newAuthHandler(t *testing.T) *httpapi.AuthHandler {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	return &httpapi.AuthHandler{
		AuthService: &service.AuthService{
			Store:              st,
			Registry:           registry.NewMemory(),
			AccessSigner:       jwtx.NewHS256Signer(testAccessSecret),
			RefreshSigner:      jwtx.NewHS256Signer(testRefreshSecret),
			RefreshVerifier:    jwtx.NewHS256Verifier(testRefreshSecret),
			AccessTTL:          jwtx.DefaultAccessTokenTTL,
			RefreshTTL:         jwtx.DefaultRefreshTokenTTL,
			RefreshedAccessTTL: jwtx.DefaultRefreshedAccessTTL,
		},
	}
}

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	buf, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func registerBody() apisdk.RegisterRequest {
	return apisdk.RegisterRequest{
		Name:        "john",
		Email:       "john@example.com",
		PhoneNumber: "987654321",
		Password:    "johnspassword",
	}
}

func TestHandleRegister(t *testing.T) {
	h := newAuthHandler(t)

	rec := postJSON(t, h.HandleRegister, "/api/register", registerBody())
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	tokens := decodeBody[apisdk.TokenResponse](t, rec)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	// Second registration with the same email.
	rec = postJSON(t, h.HandleRegister, "/api/register", registerBody())
	require.Equal(t, http.StatusBadRequest, rec.Code)

	apiErr := decodeBody[apisdk.APIError](t, rec)
	require.Equal(t, apisdk.KindConflict, apiErr.Kind)
	require.Equal(t, "Email already there, No need to register again.", apiErr.Detail)
}

func TestHandleRegister_MissingFields(t *testing.T) {
	h := newAuthHandler(t)

	rec := postJSON(t, h.HandleRegister, "/api/register", apisdk.RegisterRequest{Name: "john"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	apiErr := decodeBody[apisdk.APIError](t, rec)
	require.Equal(t, apisdk.KindValidation, apiErr.Kind)
	require.Len(t, apiErr.Fields, 3)
}

func TestHandleLogin(t *testing.T) {
	h := newAuthHandler(t)
	postJSON(t, h.HandleRegister, "/api/register", registerBody())

	rec := postJSON(t, h.HandleLogin, "/api/login", apisdk.LoginRequest{
		Email: "ghost@example.com", Password: "x",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "User is not registered, Sign Up first", decodeBody[apisdk.APIError](t, rec).Detail)

	rec = postJSON(t, h.HandleLogin, "/api/login", apisdk.LoginRequest{
		Email: "john@example.com", Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Email or password is invalid", decodeBody[apisdk.APIError](t, rec).Detail)

	rec = postJSON(t, h.HandleLogin, "/api/login", apisdk.LoginRequest{
		Email: "john@example.com", Password: "johnspassword",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	tokens := decodeBody[apisdk.TokenResponse](t, rec)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
}

func TestHandleRefresh(t *testing.T) {
	h := newAuthHandler(t)

	rec := postJSON(t, h.HandleRegister, "/api/register", registerBody())
	tokens := decodeBody[apisdk.TokenResponse](t, rec)

	// Empty body token.
	rec = postJSON(t, h.HandleRefresh, "/api/refresh", apisdk.TokenRequest{})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Token not found", decodeBody[apisdk.APIError](t, rec).Detail)

	// Unregistered token.
	rec = postJSON(t, h.HandleRefresh, "/api/refresh", apisdk.TokenRequest{Token: "bogus"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid refresh token", decodeBody[apisdk.APIError](t, rec).Detail)

	// Live token mints a new access token only.
	rec = postJSON(t, h.HandleRefresh, "/api/refresh", apisdk.TokenRequest{Token: tokens.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)
	refreshed := decodeBody[apisdk.TokenResponse](t, rec)
	require.NotEmpty(t, refreshed.AccessToken)
	require.Empty(t, refreshed.RefreshToken)
}

func TestHandleLogout(t *testing.T) {
	h := newAuthHandler(t)

	rec := postJSON(t, h.HandleRegister, "/api/register", registerBody())
	tokens := decodeBody[apisdk.TokenResponse](t, rec)

	// Logout never fails on a missing token; an empty body is a no-op 200.
	rec = postJSON(t, h.HandleLogout, "/api/logout", apisdk.TokenRequest{})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "You logged out successfully.", decodeBody[apisdk.MessageResponse](t, rec).Message)

	rec = postJSON(t, h.HandleLogout, "/api/logout", apisdk.TokenRequest{Token: tokens.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "You logged out successfully.", decodeBody[apisdk.MessageResponse](t, rec).Message)

	rec = postJSON(t, h.HandleRefresh, "/api/refresh", apisdk.TokenRequest{Token: tokens.RefreshToken})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid refresh token", decodeBody[apisdk.APIError](t, rec).Detail)
}
