package apiv1

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressquill/newshub/internal/pkg/editorial"
)

func TestListOffsets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
	}{
		{name: "defaults", query: "", wantOffset: 0, wantLimit: 10},
		{name: "explicit values", query: "?limit=25&offset=50", wantOffset: 50, wantLimit: 25},
		{name: "limit capped", query: "?limit=500", wantOffset: 0, wantLimit: 10},
		{name: "negative values reset", query: "?limit=-1&offset=-5", wantOffset: 0, wantLimit: 10},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New()
			app.Get("/list", func(c *fiber.Ctx) error {
				offset, limit := listOffsets(c)
				assert.Equal(t, tc.wantOffset, offset)
				assert.Equal(t, tc.wantLimit, limit)
				return c.SendStatus(fiber.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/list"+tc.query, nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		})
	}
}

func TestEditorialErrorResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "re-approve is a no-op", err: editorial.ErrAlreadyApproved, wantStatus: fiber.StatusOK},
		{name: "re-reject is a no-op", err: editorial.ErrAlreadyRejected, wantStatus: fiber.StatusOK},
		{name: "rejected article cannot be approved", err: editorial.ErrArticleRejected, wantStatus: fiber.StatusBadRequest},
		{name: "approved article cannot be rejected", err: editorial.ErrArticleApproved, wantStatus: fiber.StatusBadRequest},
		{name: "rejection needs a reason", err: editorial.ErrReasonRequired, wantStatus: fiber.StatusBadRequest},
		{name: "non-editor is forbidden", err: editorial.ErrNotEditor, wantStatus: fiber.StatusForbidden},
		{name: "non-author is forbidden", err: editorial.ErrNotAuthor, wantStatus: fiber.StatusForbidden},
		{name: "unknown errors are internal", err: errors.New("db gone"), wantStatus: fiber.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			app := fiber.New()
			app.Post("/op", func(c *fiber.Ctx) error {
				return editorialErrorResponse(c, tc.err)
			})

			req := httptest.NewRequest(http.MethodPost, "/op", nil)
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}

func TestGetPing(t *testing.T) {
	app := fiber.New()
	s := NewAPIServer(nil)
	app.Get("/ping", s.GetPing)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
