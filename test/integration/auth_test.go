package integration_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/pkg/apisdk"
)

func TestRegisterAndLogin(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	tokens := registerJohn(t, client)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)

	// Registering the same email again is a conflict.
	_, err := client.Register(ctx, apisdk.RegisterRequest{
		Name:        "john again",
		Email:       "john@example.com",
		PhoneNumber: "111",
		Password:    "otherpassword",
	})
	requireAPIError(t, err, http.StatusBadRequest, "Email already there, No need to register again.")

	// Unknown email at login.
	_, err = client.Login(ctx, "ghost@example.com", "whatever")
	requireAPIError(t, err, http.StatusBadRequest, "User is not registered, Sign Up first")

	// Wrong password.
	_, err = client.Login(ctx, "john@example.com", "wrongpassword")
	requireAPIError(t, err, http.StatusUnauthorized, "Email or password is invalid")

	// Correct credentials yield a fresh pair.
	fresh, err := client.Login(ctx, "john@example.com", "johnspassword")
	require.NoError(t, err)
	require.NotEmpty(t, fresh.AccessToken)
	require.NotEmpty(t, fresh.RefreshToken)
}

func TestRegisterValidation(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	_, err := client.Register(ctx, apisdk.RegisterRequest{
		Name:        "john",
		Email:       "not-an-email",
		PhoneNumber: "1",
		Password:    "johnspassword",
	})
	var apiErr *apisdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, apisdk.KindValidation, apiErr.Kind)

	_, err = client.Register(ctx, apisdk.RegisterRequest{
		Name:        "john",
		Email:       "john@example.com",
		PhoneNumber: "1",
		Password:    "tiny",
	})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apisdk.KindValidation, apiErr.Kind)

	_, err = client.Register(ctx, apisdk.RegisterRequest{})
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, apisdk.KindValidation, apiErr.Kind)
	require.NotEmpty(t, apiErr.Fields)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	// No token at all.
	_, err := client.ListTodos(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "Token not found")

	_, err = client.ListUsers(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "Token not found")

	// Garbage token.
	client.SetAccessToken("not.a.jwt")
	_, err = client.ListTodos(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid token")

	// Refresh tokens are not access tokens; the gate must reject them.
	tokens := registerJohn(t, client)
	client.SetAccessToken(tokens.RefreshToken)
	_, err = client.ListTodos(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid token")

	// The real access token gets through.
	client.SetAccessToken(tokens.AccessToken)
	todos, err := client.ListTodos(ctx)
	require.NoError(t, err)
	require.Empty(t, todos)
}

func TestRefreshFlow(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	tokens := registerJohn(t, client)

	// Missing token in the body.
	_, err := client.Refresh(ctx, "")
	requireAPIError(t, err, http.StatusUnauthorized, "Token not found")

	// A token the server never issued.
	_, err = client.Refresh(ctx, "never-issued-token")
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid refresh token")

	// A live refresh token yields a new access token only.
	refreshed, err := client.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, refreshed.AccessToken)
	require.Empty(t, refreshed.RefreshToken)

	// The new access token works against protected routes.
	client.SetAccessToken(refreshed.AccessToken)
	_, err = client.ListTodos(ctx)
	require.NoError(t, err)

	// The refresh token is not rotated; it can be used again.
	_, err = client.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
}

func TestLogoutFlow(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	tokens := registerJohn(t, client)

	// Logout is unconditional; a missing token still gets the 200.
	msg, err := client.Logout(ctx, "")
	require.NoError(t, err)
	require.Equal(t, "You logged out successfully.", msg.Message)

	msg, err = client.Logout(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "You logged out successfully.", msg.Message)

	// The refresh token is now revoked.
	_, err = client.Refresh(ctx, tokens.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid refresh token")

	// Logging out an already revoked token still succeeds.
	msg, err = client.Logout(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, "You logged out successfully.", msg.Message)

	// The access token keeps working until it expires on its own; logout
	// only revokes the refresh token.
	client.SetAccessToken(tokens.AccessToken)
	_, err = client.ListTodos(ctx)
	require.NoError(t, err)
}

func TestLogoutOnlyRevokesGivenSession(t *testing.T) {
	client := newTestServer(t)
	ctx := context.Background()

	first := registerJohn(t, client)
	second, err := client.Login(ctx, "john@example.com", "johnspassword")
	require.NoError(t, err)

	_, err = client.Logout(ctx, first.RefreshToken)
	require.NoError(t, err)

	_, err = client.Refresh(ctx, first.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized, "Invalid refresh token")

	_, err = client.Refresh(ctx, second.RefreshToken)
	require.NoError(t, err)
}
