package controllers_test

import (
	"context"
	"testing"
	"time"

	"carteira/src/api/controllers"
	"carteira/src/schemas"
	"carteira/src/utils"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsersController() (*controllers.UsersController, *jwtauth.JWTAuth) {
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	return controllers.NewUsersController(newMemoryUserRepo(), auth, time.Hour), auth
}

func TestRegisterUser(t *testing.T) {
	ctrl, _ := newUsersController()

	response, err := ctrl.RegisterUser(context.Background(), &schemas.RegisterUserRequest{
		Email:    "ana@example.com",
		Password: "um-segredo",
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", response.Email)
	assert.NotEmpty(t, response.ID)
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	ctrl, _ := newUsersController()
	ctx := context.Background()

	_, err := ctrl.RegisterUser(ctx, &schemas.RegisterUserRequest{
		Email:    "ana@example.com",
		Password: "um-segredo",
	})
	require.NoError(t, err)

	_, err = ctrl.RegisterUser(ctx, &schemas.RegisterUserRequest{
		Email:    "ana@example.com",
		Password: "outro-segredo",
	})

	var validationErr *utils.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Email já cadastrado", validationErr.Fields["email"])
}

func TestPostTokenIssuesVerifiableToken(t *testing.T) {
	ctrl, auth := newUsersController()
	ctx := context.Background()

	registered, err := ctrl.RegisterUser(ctx, &schemas.RegisterUserRequest{
		Email:    "ana@example.com",
		Password: "um-segredo",
	})
	require.NoError(t, err)

	response, err := ctrl.PostToken(ctx, "ana@example.com", "um-segredo")

	require.NoError(t, err)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, 3600, response.ExpiresIn)

	token, err := auth.Decode(response.AccessToken)
	require.NoError(t, err)
	claims, err := token.AsMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims["user_id"])
	assert.Equal(t, "ana@example.com", claims["email"])
}

func TestPostTokenWrongPassword(t *testing.T) {
	ctrl, _ := newUsersController()
	ctx := context.Background()

	_, err := ctrl.RegisterUser(ctx, &schemas.RegisterUserRequest{
		Email:    "ana@example.com",
		Password: "um-segredo",
	})
	require.NoError(t, err)

	_, err = ctrl.PostToken(ctx, "ana@example.com", "senha-errada")

	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.Code)
}

func TestPostTokenUnknownUser(t *testing.T) {
	ctrl, _ := newUsersController()

	_, err := ctrl.PostToken(context.Background(), "ghost@example.com", "um-segredo")

	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 401, httpErr.Code)
}
