package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressquill/newshub/internal/pkg/usercontext"
)

func TestPageOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantPage   int
	}{
		{name: "default page", query: "", wantOffset: 0, wantPage: 1},
		{name: "second page", query: "?page=2", wantOffset: 10, wantPage: 2},
		{name: "deep page", query: "?page=7", wantOffset: 60, wantPage: 7},
		{name: "zero resets to first", query: "?page=0", wantOffset: 0, wantPage: 1},
		{name: "negative resets to first", query: "?page=-3", wantOffset: 0, wantPage: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New()
			app.Get("/list", func(c *fiber.Ctx) error {
				offset, limit, page := pageOffset(c)
				assert.Equal(t, tc.wantOffset, offset)
				assert.Equal(t, defaultPageSize, limit)
				assert.Equal(t, tc.wantPage, page)
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/list"+tc.query, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		})
	}
}

func TestParseIDParam(t *testing.T) {
	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := parseIDParam(c, "id")
		require.NoError(t, err)
		assert.Equal(t, uint(42), id)
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/bad/:id", func(c *fiber.Ctx) error {
		_, err := parseIDParam(c, "id")
		require.Error(t, err)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/items/42", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/bad/abc", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestExtractUsername(t *testing.T) {
	app := fiber.New()
	app.Get("/anon", func(c *fiber.Ctx) error {
		assert.Equal(t, "", ExtractUsername(c))
		return c.SendStatus(fiber.StatusNoContent)
	})
	app.Get("/named", func(c *fiber.Ctx) error {
		c.Locals(usercontext.KeyUsername, "lois")
		assert.Equal(t, "lois", ExtractUsername(c))
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, path := range []string{"/anon", "/named"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
}
