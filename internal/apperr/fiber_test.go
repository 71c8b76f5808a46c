package apperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerRendersDetail(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: Handler(nil)})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return Fiber(New(ErrNotFound, "Transaction '%s' does not exist.", "abc"))
	})
	app.Get("/upstream", func(c *fiber.Ctx) error {
		return New(ErrUpstreamFailure, "Failed to retrieve data for address 'x'")
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return Fiber(errors.New("pq: connection refused"))
	})

	cases := []struct {
		path   string
		status int
		detail string
	}{
		{"/missing", http.StatusNotFound, "Transaction 'abc' does not exist."},
		{"/upstream", http.StatusBadGateway, "Failed to retrieve data for address 'x'"},
		{"/internal", http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body), tc.path)
		assert.Equal(t, tc.detail, body["detail"], tc.path)
	}
}
