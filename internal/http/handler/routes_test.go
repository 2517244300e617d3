package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocsApp() *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, Deps{})
	return app
}

func TestOpenAPIDocument(t *testing.T) {
	// The package directory has no openapi.yaml, so this only passes when the document is embedded.
	app := newDocsApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/openapi.yaml", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "openapi: 3.0.3")
	assert.Contains(t, string(body), "/api/query:")
}

func TestSwaggerRoutes(t *testing.T) {
	app := newDocsApp()

	t.Run("doc.json follows the request scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/swagger/doc.json", nil)
		req.Header.Set("X-Forwarded-Proto", "https, http")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var doc struct {
			Swagger string         `json:"swagger"`
			Schemes []string       `json:"schemes"`
			Info    map[string]any `json:"info"`
			Paths   map[string]any `json:"paths"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
		assert.Equal(t, "2.0", doc.Swagger)
		assert.Equal(t, []string{"https"}, doc.Schemes)
		assert.Equal(t, "querybridge API", doc.Info["title"])
		assert.Contains(t, doc.Paths, "/api/query")
		assert.Contains(t, doc.Paths, "/api/backups/{id}/manifest")
	})

	t.Run("index page", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/swagger/index.html", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	})

	t.Run("docs redirects to the UI", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/docs", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusMovedPermanently, resp.StatusCode)
		assert.Equal(t, "/swagger/index.html", resp.Header.Get("Location"))
	})
}
