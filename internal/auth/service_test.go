package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsearch/chainsearch/internal/apperr"
	"github.com/chainsearch/chainsearch/internal/config"
	"github.com/chainsearch/chainsearch/internal/identity"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:       "access-secret",
		RefreshSecret:   "refresh-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}
}

func setup(t *testing.T) (*Service, *identity.Service, identity.User) {
	t.Helper()
	repo := identity.NewMemoryRepository()
	ids := identity.NewService(repo)
	user, err := ids.Register(context.Background(), identity.Credentials{Username: "my-address", Password: "password1"})
	require.NoError(t, err)
	return NewService(testConfig(), repo), ids, user
}

func TestLoginAndVerify(t *testing.T) {
	svc, _, user := setup(t)

	pair, err := svc.Login(user)
	require.NoError(t, err)
	got, err := svc.Verify(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Verify(context.Background(), pair.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized, "refresh token must not pass as access token")
}

func TestLogoutRevokesTokens(t *testing.T) {
	svc, _, user := setup(t)
	ctx := context.Background()

	pair, err := svc.Login(user)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.Verify(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestRefreshIssuesAccessToken(t *testing.T) {
	svc, _, user := setup(t)
	ctx := context.Background()

	pair, err := svc.Login(user)
	require.NoError(t, err)
	token, exp, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.EqualValues(t, 60, exp)

	_, err = svc.Verify(ctx, token)
	assert.NoError(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc, _, user := setup(t)
	issued := time.Now().Add(-2 * time.Minute)
	svc.now = func() time.Time { return issued }

	pair, err := svc.Login(user)
	require.NoError(t, err)
	svc.now = time.Now

	_, err = svc.Verify(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc, _, user := setup(t)
	pair, err := svc.Login(user)
	require.NoError(t, err)

	_, err = ParseAndVerifyHS256(pair.AccessToken, []byte("other-secret"), time.Now())
	assert.ErrorIs(t, err, errTokenSignature)
	_, err = ParseAndVerifyHS256("not-a-token", []byte("access-secret"), time.Now())
	assert.ErrorIs(t, err, errTokenFormat)
}

func TestMiddleware(t *testing.T) {
	svc, _, user := setup(t)
	pair, err := svc.Login(user)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/required", RequireAuth(svc), func(c *fiber.Ctx) error {
		u, _ := UserFrom(c)
		return c.SendString(u.Username)
	})
	app.Get("/optional", OptionalAuth(svc), func(c *fiber.Ctx) error {
		if _, ok := UserFrom(c); ok {
			return c.SendString("user")
		}
		return c.SendString("anonymous")
	})

	cases := []struct {
		path, header string
		status       int
	}{
		{"/required", "", http.StatusUnauthorized},
		{"/required", "Bearer " + pair.AccessToken, http.StatusOK},
		{"/required", "Token " + pair.AccessToken, http.StatusOK},
		{"/required", "Bearer garbage", http.StatusUnauthorized},
		{"/optional", "", http.StatusOK},
		{"/optional", "Bearer " + pair.AccessToken, http.StatusOK},
		{"/optional", "Bearer garbage", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.header != "" {
			req.Header.Set(fiber.HeaderAuthorization, tc.header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "%s with %q", tc.path, tc.header)
	}
}
