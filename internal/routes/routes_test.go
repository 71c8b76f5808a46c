package routes_test

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsearch/chainsearch/internal/blockchain"
	"github.com/chainsearch/chainsearch/internal/config"
	"github.com/chainsearch/chainsearch/internal/logging"
	"github.com/chainsearch/chainsearch/internal/routes"
	"github.com/chainsearch/chainsearch/internal/server"
)

func newExplorer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/haskoin-store/btc/transaction/tx1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"inputs": [{"address": "1src", "value": 1000}], "outputs": [{"address": "1abc", "value": 900}], "time": 1620561517}`)
	})
	mux.HandleFunc("/haskoin-store/btc/address/1abc/balance", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"address": "1abc", "confirmed": 452481, "unconfirmed": 0}`)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type api struct {
	t     *testing.T
	srv   *server.Server
	token string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	return newAPIWithCache(t, nil)
}

func newAPIWithCache(t *testing.T, cache *redis.Client) *api {
	t.Helper()
	explorer := newExplorer(t)
	srv, err := server.New(routes.Deps{
		Cache: cache,
		Cfg: config.Config{
			AppName:         "chainsearch-test",
			Env:             "test",
			JWTSecret:       "access",
			RefreshSecret:   "refresh",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
			UpstreamTimeout: 2 * time.Second,
		},
		Logger:     logging.Discard(),
		Blockchain: blockchain.NewClientWithBaseURL(&http.Client{Timeout: 2 * time.Second}, explorer.URL),
	})
	require.NoError(t, err)
	return &api{t: t, srv: srv}
}

func (a *api) do(method, path, body string) (int, []byte) {
	a.t.Helper()
	return a.doWithKey(method, path, body, "")
}

func (a *api) doWithKey(method, path, body, idempotencyKey string) (int, []byte) {
	a.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	resp, err := a.srv.App().Test(req, 5000)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, payload
}

func (a *api) login(username string) {
	a.t.Helper()
	creds := `{"username": "` + username + `", "password": "correct-horse"}`
	status, body := a.do(http.MethodPost, "/auth/register/", creds)
	require.Equal(a.t, http.StatusCreated, status, string(body))
	status, body = a.do(http.MethodPost, "/auth/login/", creds)
	require.Equal(a.t, http.StatusOK, status, string(body))
	var pair struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(body, &pair))
	a.token = pair.Token
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newAPI(t)
	for _, path := range []string{"/my/addresses/", "/my/balance/", "/searches/addresses/", "/searches/transactions/"} {
		status, body := a.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Contains(t, string(body), `"detail"`)
	}
}

func TestAnonymousLookup(t *testing.T) {
	a := newAPI(t)

	status, body := a.do(http.MethodGet, "/btc/transactions/tx1/", "")
	require.Equal(t, http.StatusOK, status, string(body))
	assert.JSONEq(t, `{
		"inputs": [{"address": "1src", "value": 1000}],
		"outputs": [{"address": "1abc", "value": 900}],
		"timestamp": "2021-05-09T11:58:37Z"
	}`, string(body))

	status, body = a.do(http.MethodGet, "/btc/transactions/nope/", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"detail": "Transaction 'nope' does not exist."}`, string(body))

	status, _ = a.do(http.MethodGet, "/doge/transactions/tx1/", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRegistryBalanceAndHistory(t *testing.T) {
	a := newAPI(t)
	a.login("alice")

	status, body := a.do(http.MethodPost, "/my/addresses/", `{"crypto": "btc", "address": "1abc"}`)
	require.Equal(t, http.StatusCreated, status, string(body))

	status, body = a.do(http.MethodPost, "/my/addresses/", `{"crypto": "btc", "address": "1abc"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "must make a unique set")

	status, body = a.do(http.MethodGet, "/my/addresses/", "")
	require.Equal(t, http.StatusOK, status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "1abc", list[0]["address"])

	status, body = a.do(http.MethodGet, "/my/balance/", "")
	require.Equal(t, http.StatusOK, status, string(body))
	assert.JSONEq(t, `[{"crypto": "btc", "address": "1abc", "balance": 452481}]`, string(body))

	status, _ = a.do(http.MethodGet, "/btc/transactions/tx1/", "")
	require.Equal(t, http.StatusOK, status)
	status, _ = a.do(http.MethodGet, "/btc/transactions/nope/", "")
	require.Equal(t, http.StatusNotFound, status)

	status, body = a.do(http.MethodGet, "/searches/transactions/", "")
	require.Equal(t, http.StatusOK, status)
	var history struct {
		Page    int              `json:"page"`
		Size    int              `json:"size"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(body, &history))
	assert.Equal(t, 50, history.Size)
	require.Len(t, history.Results, 1)
	assert.Equal(t, "tx1", history.Results[0]["transaction"])

	status, _ = a.do(http.MethodDelete, "/my/addresses/1abc/?crypto=btc", "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = a.do(http.MethodDelete, "/my/addresses/1abc/?crypto=btc", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLogoutRevokesAccess(t *testing.T) {
	a := newAPI(t)
	a.login("bob")

	status, _ := a.do(http.MethodPost, "/auth/logout/", "")
	require.Equal(t, http.StatusNoContent, status)

	status, _ = a.do(http.MethodGet, "/my/addresses/", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestHealthWithoutStores(t *testing.T) {
	a := newAPI(t)
	status, body := a.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"postgres":"disabled"`)
}

func TestSetupRequiresStoresOutsideDev(t *testing.T) {
	_, err := server.New(routes.Deps{Cfg: config.Config{Env: "production"}, Logger: logging.Discard()})
	assert.Error(t, err)
}

func tokenUsername(t *testing.T, token string) string {
	t.Helper()
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var claims struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(payload, &claims))
	return claims.Username
}

func TestLoginWithSharedIdempotencyKeyReturnsOwnToken(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.Close()
		mr.Close()
	})
	a := newAPIWithCache(t, cache)

	tokens := map[string]string{}
	for _, name := range []string{"alice", "bob"} {
		creds := `{"username": "` + name + `", "password": "correct-horse"}`
		status, body := a.doWithKey(http.MethodPost, "/auth/register/", creds, "k1")
		require.Equal(t, http.StatusCreated, status, string(body))
		status, body = a.doWithKey(http.MethodPost, "/auth/login/", creds, "k1")
		require.Equal(t, http.StatusOK, status, string(body))
		var pair struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(body, &pair))
		tokens[name] = pair.Token
	}

	assert.Equal(t, "alice", tokenUsername(t, tokens["alice"]))
	assert.Equal(t, "bob", tokenUsername(t, tokens["bob"]))
	assert.NotEqual(t, tokens["alice"], tokens["bob"])
}

func TestRegistryCreateReplaysWithIdempotencyKey(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.Close()
		mr.Close()
	})
	a := newAPIWithCache(t, cache)
	a.login("carol")

	body := `{"crypto": "eth", "address": "0xabc"}`
	status, first := a.doWithKey(http.MethodPost, "/my/addresses/", body, "create-1")
	require.Equal(t, http.StatusCreated, status, string(first))
	status, replay := a.doWithKey(http.MethodPost, "/my/addresses/", body, "create-1")
	assert.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, string(first), string(replay))

	status, _ = a.doWithKey(http.MethodPost, "/my/addresses/", `{"crypto": "eth", "address": "0xdef"}`, "create-1")
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestServerCopiesRequestValues(t *testing.T) {
	a := newAPI(t)
	assert.True(t, a.srv.App().Config().Immutable)
}
