package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/api/service"
	"github.com/taskdeck/taskdeck/pkg/apisdk"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// AuthHandler serves the registration, login and token lifecycle endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister godoc
//
//	@Summary		Register a new account
//	@Description	Creates a user and signs it in, returning an access and refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		apisdk.RegisterRequest	true	"Registration details"
//	@Success		200		{object}	apisdk.TokenResponse
//	@Failure		400		{object}	apisdk.APIError	"validation or conflict"
//	@Failure		500		{object}	apisdk.APIError
//	@Router			/api/register [post]
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		apisdk.NewValidationError().WriteError(w)
		return
	}

	if fields := requiredFields(map[string]string{
		"name":        req.Name,
		"email":       req.Email,
		"phonenumber": req.PhoneNumber,
		"password":    req.Password,
	}); len(fields) > 0 {
		apisdk.NewValidationError(fields...).WriteError(w)
		return
	}

	pair, err := h.AuthService.Register(ctx, req.Name, req.Email, req.PhoneNumber, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			apisdk.NewValidationError(apisdk.FieldError{Field: "email", Msg: "must be a valid email address"}).WriteError(w)
		case errors.Is(err, service.ErrWeakPassword):
			apisdk.NewValidationError(apisdk.FieldError{Field: "password", Msg: "must be at least 6 characters"}).WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			apisdk.ErrEmailTaken.WriteError(w)
		default:
			log.Error("register failed", "err", err)
			apisdk.ErrStoreFailure.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, apisdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Verifies credentials and returns an access and refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		apisdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	apisdk.TokenResponse
//	@Failure		400		{object}	apisdk.APIError	"unknown email"
//	@Failure		401		{object}	apisdk.APIError	"wrong password"
//	@Failure		500		{object}	apisdk.APIError
//	@Router			/api/login [post]
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		apisdk.NewValidationError().WriteError(w)
		return
	}

	if fields := requiredFields(map[string]string{
		"email":    req.Email,
		"password": req.Password,
	}); len(fields) > 0 {
		apisdk.NewValidationError(fields...).WriteError(w)
		return
	}

	pair, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownEmail):
			apisdk.ErrUnknownEmail.WriteError(w)
		case errors.Is(err, service.ErrBadCredentials):
			apisdk.ErrBadCredentials.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			apisdk.ErrStoreFailure.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, apisdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// HandleRefresh godoc
//
//	@Summary		Refresh the access token
//	@Description	Exchanges a live refresh token for a new short-lived access token. The refresh token itself is not rotated.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		apisdk.TokenRequest	true	"Refresh token"
//	@Success		200		{object}	apisdk.TokenResponse
//	@Failure		401		{object}	apisdk.APIError
//	@Failure		500		{object}	apisdk.APIError
//	@Router			/api/refresh [post]
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.TokenRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		apisdk.ErrTokenNotFound.WriteError(w)
		return
	}

	pair, err := h.AuthService.Refresh(ctx, strings.TrimSpace(req.Token))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTokenMissing):
			apisdk.ErrTokenNotFound.WriteError(w)
		case errors.Is(err, service.ErrInvalidRefresh):
			apisdk.ErrInvalidRefreshToken.WriteError(w)
		case errors.Is(err, service.ErrInvalidToken):
			apisdk.ErrInvalidToken.WriteError(w)
		default:
			log.Error("refresh failed", "err", err)
			apisdk.ErrStoreFailure.WriteError(w)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, apisdk.TokenResponse{AccessToken: pair.AccessToken})
}

// HandleLogout godoc
//
//	@Summary		Log out
//	@Description	Revokes the refresh token. Succeeds even if the token was never issued or the body is empty.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		apisdk.TokenRequest	true	"Refresh token"
//	@Success		200		{object}	apisdk.MessageResponse
//	@Failure		500		{object}	apisdk.APIError
//	@Router			/api/logout [post]
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// An absent or unreadable body revokes nothing; the answer is 200 either
	// way, so decode failures are not worth an error.
	var req apisdk.TokenRequest
	_ = httpx.DecodeJSON(r, &req)

	if err := h.AuthService.Logout(ctx, strings.TrimSpace(req.Token)); err != nil {
		log.Error("logout failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "You logged out successfully."})
}

// requiredFields reports a FieldError for every blank value.
func requiredFields(values map[string]string) []apisdk.FieldError {
	var fields []apisdk.FieldError
	for name, value := range values {
		if strings.TrimSpace(value) == "" {
			fields = append(fields, apisdk.FieldError{Field: name, Msg: "is required"})
		}
	}
	return fields
}
