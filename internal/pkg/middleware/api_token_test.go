package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAPITokenFromHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "no headers", headers: nil, want: ""},
		{name: "x-api-key", headers: map[string]string{"X-API-Key": "nh_secret"}, want: "nh_secret"},
		{name: "x-api-key trimmed", headers: map[string]string{"X-API-Key": "  nh_secret  "}, want: "nh_secret"},
		{name: "bearer token", headers: map[string]string{"Authorization": "Bearer nh_secret"}, want: "nh_secret"},
		{name: "bearer case insensitive", headers: map[string]string{"Authorization": "bearer nh_secret"}, want: "nh_secret"},
		{name: "basic auth ignored", headers: map[string]string{"Authorization": "Basic dXNlcg=="}, want: ""},
		{name: "x-api-key wins over bearer", headers: map[string]string{"X-API-Key": "nh_key", "Authorization": "Bearer nh_other"}, want: "nh_key"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New()
			app.Get("/token", func(c *fiber.Ctx) error {
				assert.Equal(t, tc.want, extractAPITokenFromHeader(c))
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/token", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		})
	}
}

func TestAPITokenAuthMiddlewareRejectsMissingToken(t *testing.T) {
	app := fiber.New()
	app.Use(APITokenAuthMiddleware())
	app.Get("/v1/ping", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
