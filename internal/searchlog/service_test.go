package searchlog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsearch/chainsearch/internal/apperr"
	"github.com/chainsearch/chainsearch/internal/auth"
	"github.com/chainsearch/chainsearch/internal/config"
	"github.com/chainsearch/chainsearch/internal/identity"
	"github.com/chainsearch/chainsearch/internal/logging"
	"github.com/chainsearch/chainsearch/internal/notification"
)

type captureNotifier struct {
	events []notification.Event
	err    error
}

func (n *captureNotifier) Send(_ context.Context, event notification.Event) error {
	n.events = append(n.events, event)
	return n.err
}

func newTestService(notifier notification.Notifier) *Service {
	svc := NewService(NewMemoryRepository(), notifier, logging.Discard())
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return svc
}

func TestAddressSearchesNewestFirstAndScoped(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	alice, bob := uuid.NewString(), uuid.NewString()

	for i := 0; i < 3; i++ {
		_, err := svc.LogAddressSearch(ctx, alice, "btc", "1abc", i, PageSize)
		require.NoError(t, err)
	}
	_, err := svc.LogAddressSearch(ctx, bob, "eth", "0xdef", 0, PageSize)
	require.NoError(t, err)

	got, err := svc.ListAddressSearches(ctx, alice, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Page)
	assert.Equal(t, PageSize, got.Size)
	require.Len(t, got.Results, 3)
	assert.Equal(t, 2, got.Results[0].Page)
	assert.Equal(t, 0, got.Results[2].Page)
	assert.True(t, got.Results[0].Created.After(got.Results[1].Created))
	for _, row := range got.Results {
		assert.Equal(t, alice, row.CreatorID)
	}
}

func TestListPagination(t *testing.T) {
	svc := newTestService(nil)
	ctx := context.Background()
	user := uuid.NewString()

	for i := 0; i < PageSize+5; i++ {
		_, err := svc.LogTransactionSearch(ctx, user, "eth", uuid.NewString())
		require.NoError(t, err)
	}

	first, err := svc.ListTransactionSearches(ctx, user, 0)
	require.NoError(t, err)
	assert.Len(t, first.Results, PageSize)

	second, err := svc.ListTransactionSearches(ctx, user, 1)
	require.NoError(t, err)
	assert.Len(t, second.Results, 5)

	empty, err := svc.ListTransactionSearches(ctx, user, 9)
	require.NoError(t, err)
	assert.NotNil(t, empty.Results)
	assert.Empty(t, empty.Results)

	_, err = svc.ListTransactionSearches(ctx, user, -1)
	assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
}

func TestLogPublishesEvents(t *testing.T) {
	notifier := &captureNotifier{}
	svc := newTestService(notifier)
	ctx := context.Background()
	user := uuid.NewString()

	addr, err := svc.LogAddressSearch(ctx, user, "bch", "qpm2q", 3, PageSize)
	require.NoError(t, err)
	tx, err := svc.LogTransactionSearch(ctx, user, "btc", "f4184fc5")
	require.NoError(t, err)

	require.Len(t, notifier.events, 2)
	assert.Equal(t, notification.KindAddressSearch, notifier.events[0].Kind)
	assert.Equal(t, addr.ID, notifier.events[0].ID)
	require.NotNil(t, notifier.events[0].Page)
	assert.Equal(t, 3, *notifier.events[0].Page)
	assert.Equal(t, notification.KindTransactionSearch, notifier.events[1].Kind)
	assert.Equal(t, tx.Transaction, notifier.events[1].Transaction)
}

func TestNotifierFailureKeepsRow(t *testing.T) {
	svc := newTestService(&captureNotifier{err: errors.New("broker down")})
	ctx := context.Background()
	user := uuid.NewString()

	_, err := svc.LogTransactionSearch(ctx, user, "btc", "abc")
	require.NoError(t, err)

	got, err := svc.ListTransactionSearches(ctx, user, 0)
	require.NoError(t, err)
	assert.Len(t, got.Results, 1)
}

func TestHandlerListsCallerHistory(t *testing.T) {
	repo := identity.NewMemoryRepository()
	ids := identity.NewService(repo)
	user, err := ids.Register(context.Background(), identity.Credentials{Username: "history", Password: "password1"})
	require.NoError(t, err)
	authSvc := auth.NewService(config.Config{
		JWTSecret:       "access",
		RefreshSecret:   "refresh",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}, repo)
	pair, err := authSvc.Login(user)
	require.NoError(t, err)

	svc := newTestService(nil)
	_, err = svc.LogAddressSearch(context.Background(), user.ID, "btc", "1abc", 0, PageSize)
	require.NoError(t, err)
	_, err = svc.LogAddressSearch(context.Background(), uuid.NewString(), "btc", "1other", 0, PageSize)
	require.NoError(t, err)

	h := NewHandler(svc)
	app := fiber.New()
	group := app.Group("/searches", auth.RequireAuth(authSvc))
	group.Get("/addresses/", h.AddressSearches)
	group.Get("/transactions/", h.TransactionSearches)

	req := httptest.NewRequest(http.MethodGet, "/searches/addresses/?page=0", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Page    int             `json:"page"`
		Size    int             `json:"size"`
		Results []AddressSearch `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, PageSize, body.Size)
	require.Len(t, body.Results, 1)
	assert.Equal(t, "1abc", body.Results[0].Address)

	req = httptest.NewRequest(http.MethodGet, "/searches/transactions/?page=abc", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/searches/transactions/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
