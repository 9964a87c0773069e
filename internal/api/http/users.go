package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskdeck/taskdeck/internal/api/domain"
	"github.com/taskdeck/taskdeck/internal/api/service"
	"github.com/taskdeck/taskdeck/internal/api/store"
	"github.com/taskdeck/taskdeck/pkg/apisdk"
	"github.com/taskdeck/taskdeck/pkg/httpx"
	"github.com/taskdeck/taskdeck/pkg/slogx"
)

// UserHandler serves the user admin endpoints. All routes sit behind the
// bearer token gate.
type UserHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Success	200	{array}		apisdk.User
//	@Failure	401	{object}	apisdk.APIError
//	@Failure	500	{object}	apisdk.APIError
//	@Security	BearerAuth
//	@Router		/api/users [get]
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("list users failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
		return
	}

	out := make([]apisdk.User, 0, len(users))
	for _, u := range users {
		out = append(out, userView(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary	Get a user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		int	true	"User id"
//	@Success	200	{object}	apisdk.User
//	@Failure	401	{object}	apisdk.APIError
//	@Failure	404	{object}	apisdk.APIError
//	@Failure	500	{object}	apisdk.APIError
//	@Security	BearerAuth
//	@Router		/api/users/{id} [get]
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.UserService.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apisdk.NewNotFound("User not found").WriteError(w)
			return
		}
		log.Error("get user failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, userView(user))
}

// HandleCreate godoc
//
//	@Summary		Create a user
//	@Description	Creates a user without credentials. Attach a password via the password endpoint to enable login.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		apisdk.UserRequest	true	"User fields"
//	@Success		201		{object}	apisdk.UserCreatedResponse
//	@Failure		400		{object}	apisdk.APIError
//	@Failure		401		{object}	apisdk.APIError
//	@Failure		500		{object}	apisdk.APIError
//	@Security		BearerAuth
//	@Router			/api/users [post]
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.UserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		apisdk.NewValidationError().WriteError(w)
		return
	}
	if fields := requiredFields(map[string]string{
		"name":        req.Name,
		"email":       req.Email,
		"phonenumber": req.PhoneNumber,
	}); len(fields) > 0 {
		apisdk.NewValidationError(fields...).WriteError(w)
		return
	}

	user, err := h.UserService.CreateUser(ctx, req.Name, req.Email, req.PhoneNumber)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			apisdk.NewValidationError(apisdk.FieldError{Field: "email", Msg: "must be a valid email address"}).WriteError(w)
		case errors.Is(err, service.ErrEmailTaken):
			apisdk.ErrEmailTaken.WriteError(w)
		default:
			log.Error("create user failed", "err", err)
			apisdk.ErrStoreFailure.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, apisdk.UserCreatedResponse{
		Message: "User added",
		User:    userView(user),
	})
}

// HandleUpdate godoc
//
//	@Summary		Update a user
//	@Description	Changes name and phone number. Email is immutable.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"User id"
//	@Param			body	body		apisdk.UserRequest	true	"User fields"
//	@Success		200		{object}	apisdk.MessageResponse
//	@Failure		400		{object}	apisdk.APIError
//	@Failure		401		{object}	apisdk.APIError
//	@Failure		404		{object}	apisdk.APIError
//	@Failure		500		{object}	apisdk.APIError
//	@Security		BearerAuth
//	@Router			/api/users/{id} [put]
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req apisdk.UserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		apisdk.NewValidationError().WriteError(w)
		return
	}
	if fields := requiredFields(map[string]string{
		"name":        req.Name,
		"phonenumber": req.PhoneNumber,
	}); len(fields) > 0 {
		apisdk.NewValidationError(fields...).WriteError(w)
		return
	}

	if _, err := h.UserService.UpdateUser(ctx, id, req.Name, req.PhoneNumber); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apisdk.NewNotFound("User not found").WriteError(w)
			return
		}
		log.Error("update user failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "User updated successfully."})
}

// HandleDelete godoc
//
//	@Summary	Delete a user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		int	true	"User id"
//	@Success	200	{object}	apisdk.MessageResponse
//	@Failure	401	{object}	apisdk.APIError
//	@Failure	404	{object}	apisdk.APIError
//	@Failure	500	{object}	apisdk.APIError
//	@Security	BearerAuth
//	@Router		/api/users/{id} [delete]
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.UserService.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			apisdk.NewNotFound("User not found").WriteError(w)
			return
		}
		log.Error("delete user failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "User deleted successfully."})
}

// HandleSetPassword godoc
//
//	@Summary		Set a user's password
//	@Description	Attaches a password to an account that does not have one yet.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		apisdk.SetPasswordRequest	true	"User id and new password"
//	@Success		200		{object}	apisdk.MessageResponse
//	@Failure		400		{object}	apisdk.APIError
//	@Failure		401		{object}	apisdk.APIError
//	@Failure		404		{object}	apisdk.APIError
//	@Failure		500		{object}	apisdk.APIError
//	@Security		BearerAuth
//	@Router			/api/users/password [post]
func (h *UserHandler) HandleSetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req apisdk.SetPasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		apisdk.NewValidationError().WriteError(w)
		return
	}
	if req.ID <= 0 {
		apisdk.NewValidationError(apisdk.FieldError{Field: "id", Msg: "must be a positive integer"}).WriteError(w)
		return
	}

	if err := h.UserService.SetPassword(ctx, req.ID, req.Password, req.ConfirmPassword); err != nil {
		writePasswordError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "Password set successfully."})
}

// HandleChangePassword godoc
//
//	@Summary		Change a user's password
//	@Description	Replaces the password after verifying the old one.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"User id"
//	@Param			body	body		apisdk.ChangePasswordRequest	true	"Old and new password"
//	@Success		200		{object}	apisdk.MessageResponse
//	@Failure		400		{object}	apisdk.APIError
//	@Failure		401		{object}	apisdk.APIError
//	@Failure		404		{object}	apisdk.APIError
//	@Failure		500		{object}	apisdk.APIError
//	@Security		BearerAuth
//	@Router			/api/users/password/{id} [put]
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req apisdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		apisdk.NewValidationError().WriteError(w)
		return
	}

	if err := h.UserService.ChangePassword(ctx, id, req.OldPassword, req.Password, req.ConfirmPassword); err != nil {
		writePasswordError(w, log, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, apisdk.MessageResponse{Message: "Password changed successfully."})
}

func writePasswordError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrPasswordConfirm):
		apisdk.NewValidationError(apisdk.FieldError{Field: "confirmPassword", Msg: "must match password"}).WriteError(w)
	case errors.Is(err, service.ErrWeakPassword):
		apisdk.NewValidationError(apisdk.FieldError{Field: "password", Msg: "must be at least 6 characters"}).WriteError(w)
	case errors.Is(err, service.ErrWrongOldPassword):
		apisdk.ErrWrongOldPassword.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		apisdk.NewNotFound("User not found").WriteError(w)
	default:
		log.Error("password update failed", "err", err)
		apisdk.ErrStoreFailure.WriteError(w)
	}
}

func userView(u domain.User) apisdk.User {
	return apisdk.User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}
}
