package handler_test

import (
	"net/http"
	"testing"

	"github.com/formlytic/formlytic-api/internal/domain"
	"github.com/formlytic/formlytic-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthHandler_RegisterLoginMe(t *testing.T) {
	env := newTestEnv(t, 0)

	rr := serve(env.auth.Register, newRequest(t, nil, http.MethodPost, "/", domain.RegisterRequest{
		Email:    "Ada@Example.com",
		Password: "correct-horse",
		Name:     "Ada",
	}, nil))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	registered := decode[domain.AuthResponse](t, rr)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, "ada@example.com", registered.User.Email)

	t.Run("duplicate email", func(t *testing.T) {
		rr := serve(env.auth.Register, newRequest(t, nil, http.MethodPost, "/", domain.RegisterRequest{
			Email:    "ada@example.com",
			Password: "another-password",
		}, nil))
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		rr := serve(env.auth.Register, newRequest(t, nil, http.MethodPost, "/", domain.RegisterRequest{
			Email:    "bob@example.com",
			Password: "short",
		}, nil))
		require.Equal(t, http.StatusBadRequest, rr.Code)
		problem := decode[domain.APIError](t, rr)
		assert.Contains(t, problem.Errors, "password")
	})

	t.Run("login", func(t *testing.T) {
		rr := serve(env.auth.Login, newRequest(t, nil, http.MethodPost, "/", domain.LoginRequest{
			Email:    "ada@example.com",
			Password: "correct-horse",
		}, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, registered.User.ID, decode[domain.AuthResponse](t, rr).User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := serve(env.auth.Login, newRequest(t, nil, http.MethodPost, "/", domain.LoginRequest{
			Email:    "ada@example.com",
			Password: "wrong-password",
		}, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("me", func(t *testing.T) {
		var user domain.User
		require.NoError(t, env.db.First(&user, "id = ?", registered.User.ID).Error)

		rr := serve(env.auth.Me, newRequest(t, testutil.ContextFor(&user), http.MethodGet, "/", nil, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Ada", decode[domain.UserDTO](t, rr).Name)

		rr = serve(env.auth.Me, newRequest(t, nil, http.MethodGet, "/", nil, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
