package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"querybridge/internal/model"
	"querybridge/internal/service"
	serviceMocks "querybridge/internal/service/mocks"
	"querybridge/internal/storage"
)

func TestListBackups(t *testing.T) {
	mockSvc := new(serviceMocks.MockBackupService)
	app := fiber.New()
	app.Get("/api/backups", ListBackups(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &service.BackupListResult{
			Items: []model.Backup{{ID: uuid.New().String(), Status: model.BackupStatusSuccess}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, 10, 0).Return(expected, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/backups?limit=10&offset=0", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result service.BackupListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid offset", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/backups?offset=abc", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_OFFSET", body.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, 10, 0).Return(nil, errors.New("service error")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/backups", nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestGetBackup(t *testing.T) {
	mockSvc := new(serviceMocks.MockBackupService)
	app := fiber.New()
	app.Get("/api/backups/:id", GetBackup(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).
			Return(&service.BackupDetail{Backup: model.Backup{ID: id}, ManifestURL: "http://minio/x"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/backups/"+id, nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result service.BackupDetail
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, id, result.ID)
		assert.Equal(t, "http://minio/x", result.ManifestURL)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/backups/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/backups/invalid-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetBackupManifest(t *testing.T) {
	mockSvc := new(serviceMocks.MockBackupService)
	app := fiber.New()
	app.Get("/api/backups/:id/manifest", GetBackupManifest(mockSvc))

	id := uuid.New().String()
	content := `{"id":"` + id + `"}`
	mockSvc.On("Manifest", mock.Anything, id).
		Return(io.NopCloser(strings.NewReader(content)), storage.ObjectInfo{Size: int64(len(content))}, nil).Once()

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/backups/"+id+"/manifest", nil))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, content, string(body))
}

func TestDeleteBackup(t *testing.T) {
	mockSvc := new(serviceMocks.MockBackupService)
	app := fiber.New()
	app.Delete("/api/backups/:id", DeleteBackup(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/backups/"+id, nil))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(errors.New("s3 down")).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/backups/"+id, nil))

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}
