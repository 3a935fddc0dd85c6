package services

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyakd/todo-challenge/internal/storage"
)

func newAuthService(t *testing.T) (AuthService, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return NewAuthService(zerolog.Nop(), mem, mem), mem
}

func TestRegisterIssuesToken(t *testing.T) {
	auth, _ := newAuthService(t)

	result, err := auth.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.NotEmpty(t, result.UserID)

	user, err := auth.ResolveToken(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.UserID, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.Email)
}

func TestRegisterHashesPassword(t *testing.T) {
	auth, mem := newAuthService(t)

	_, err := auth.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	user, err := mem.GetUserByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", user.Password)
	assert.True(t, strings.HasPrefix(user.Password, "$argon2id$"))
}

func TestRegisterMissingCredentials(t *testing.T) {
	auth, _ := newAuthService(t)

	cases := []RegisterParams{
		{Username: "", Password: "Secret123!"},
		{Username: "alice", Password: ""},
		{},
	}
	for _, params := range cases {
		_, err := auth.Register(context.Background(), params)
		assert.ErrorIs(t, err, ErrMissingCredentials)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: "Another456?",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginReturnsExistingToken(t *testing.T) {
	auth, _ := newAuthService(t)

	registered, err := auth.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	loggedIn, err := auth.Login(context.Background(), LoginParams{
		Username: "alice",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.Token, loggedIn.Token, "login must retrieve, not rotate")

	again, err := auth.Login(context.Background(), LoginParams{
		Username: "alice",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.Equal(t, loggedIn.Token, again.Token)
}

func TestLoginMissingCredentials(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Login(context.Background(), LoginParams{Username: "alice"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = auth.Login(context.Background(), LoginParams{Password: "Secret123!"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLoginInvalidCredentialsIndistinguishable(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	_, wrongPassword := auth.Login(context.Background(), LoginParams{
		Username: "alice",
		Password: "wrong",
	})
	_, unknownUser := auth.Login(context.Background(), LoginParams{
		Username: "nobody",
		Password: "Secret123!",
	})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownUser)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	auth, _ := newAuthService(t)

	result, err := auth.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	err = auth.Logout(context.Background(), result.UserID)
	require.NoError(t, err)

	_, err = auth.ResolveToken(context.Background(), result.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoginAfterLogoutIssuesFreshToken(t *testing.T) {
	auth, _ := newAuthService(t)

	registered, err := auth.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: "Secret123!",
	})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(context.Background(), registered.UserID))

	loggedIn, err := auth.Login(context.Background(), LoginParams{
		Username: "alice",
		Password: "Secret123!",
	})
	require.NoError(t, err)
	assert.NotEqual(t, registered.Token, loggedIn.Token)

	user, err := auth.ResolveToken(context.Background(), loggedIn.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, user.ID)
}

func TestResolveUnknownToken(t *testing.T) {
	auth, _ := newAuthService(t)

	_, err := auth.ResolveToken(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
