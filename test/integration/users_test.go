package integration_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/pkg/apisdk"
)

func TestUserLifecycle(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	tokens := registerJohn(t, client)
	client.SetAccessToken(tokens.AccessToken)

	created, err := client.CreateUser(ctx, apisdk.UserRequest{
		Name:        "ann",
		Email:       "ann@example.com",
		PhoneNumber: "123456",
	})
	require.NoError(t, err)
	require.Equal(t, "User added", created.Message)
	require.Positive(t, created.User.ID)

	// The register account plus the new one.
	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	got, err := client.GetUser(ctx, created.User.ID)
	require.NoError(t, err)
	require.Equal(t, "ann@example.com", got.Email)

	_, err = client.UpdateUser(ctx, created.User.ID, apisdk.UserRequest{
		Name:        "anne",
		PhoneNumber: "654321",
	})
	require.NoError(t, err)

	got, err = client.GetUser(ctx, created.User.ID)
	require.NoError(t, err)
	require.Equal(t, "anne", got.Name)
	require.Equal(t, "654321", got.PhoneNumber)

	_, err = client.DeleteUser(ctx, created.User.ID)
	require.NoError(t, err)

	_, err = client.GetUser(ctx, created.User.ID)
	requireAPIError(t, err, http.StatusNotFound, "User not found")
}

func TestUserPasswordEndpoints(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	tokens := registerJohn(t, client)
	client.SetAccessToken(tokens.AccessToken)

	created, err := client.CreateUser(ctx, apisdk.UserRequest{
		Name:        "ann",
		Email:       "ann@example.com",
		PhoneNumber: "1",
	})
	require.NoError(t, err)

	// Admin-created accounts cannot log in before a password is set.
	_, err = client.Login(ctx, "ann@example.com", "anything")
	requireAPIError(t, err, http.StatusUnauthorized, "Email or password is invalid")

	_, err = client.SetUserPassword(ctx, apisdk.SetPasswordRequest{
		ID:              created.User.ID,
		Password:        "annspassword",
		ConfirmPassword: "annspassword",
	})
	require.NoError(t, err)

	_, err = client.Login(ctx, "ann@example.com", "annspassword")
	require.NoError(t, err)

	// Change it, checking the old one first. A mismatch is a 400, not a 401;
	// the caller is already authenticated, the input is just wrong.
	_, err = client.ChangeUserPassword(ctx, created.User.ID, apisdk.ChangePasswordRequest{
		OldPassword:     "wrong",
		Password:        "newpassword",
		ConfirmPassword: "newpassword",
	})
	requireAPIError(t, err, http.StatusBadRequest, "Enter correct old password password!")

	_, err = client.ChangeUserPassword(ctx, created.User.ID, apisdk.ChangePasswordRequest{
		OldPassword:     "annspassword",
		Password:        "newpassword",
		ConfirmPassword: "newpassword",
	})
	require.NoError(t, err)

	_, err = client.Login(ctx, "ann@example.com", "annspassword")
	requireAPIError(t, err, http.StatusUnauthorized, "Email or password is invalid")
	_, err = client.Login(ctx, "ann@example.com", "newpassword")
	require.NoError(t, err)
}

func TestHealthEndpoints(t *testing.T) {
	client := newTestServer(t)

	// Health endpoints are unauthenticated; hit them with plain HTTP.
	resp, err := http.Get(client.BaseURL() + "/livez")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(client.BaseURL() + "/readyz")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
}
