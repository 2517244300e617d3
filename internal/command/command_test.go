package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"querybridge/internal/model"
	"querybridge/internal/service"
	"querybridge/internal/service/mocks"
)

func TestInterpreter_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		in := New(new(mocks.MockBackupService), new(mocks.MockCatalog))

		res, err := in.Run(ctx, "  ")

		assert.ErrorIs(t, err, ErrEmptyCommand)
		assert.False(t, res.Success)
	})

	t.Run("backup runs the flow", func(t *testing.T) {
		backups := new(mocks.MockBackupService)
		backups.On("Run", ctx).Return(&model.BackupManifest{ID: "b1", Status: model.BackupStatusSuccess}, nil)
		in := New(backups, new(mocks.MockCatalog))

		res, err := in.Run(ctx, "Backup postgres to mongodb")

		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Contains(t, res.Message, "b1")
		assert.Contains(t, res.Data, "backup")
		backups.AssertExpectations(t)
	})

	t.Run("sync failure", func(t *testing.T) {
		backups := new(mocks.MockBackupService)
		backups.On("Run", ctx).Return(nil, errors.New("bucket missing"))
		in := New(backups, new(mocks.MockCatalog))

		res, err := in.Run(ctx, "sync databases")

		assert.Error(t, err)
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "bucket missing")
	})

	t.Run("analyze echoes", func(t *testing.T) {
		backups := new(mocks.MockBackupService)
		in := New(backups, new(mocks.MockCatalog))

		res, err := in.Run(ctx, "check everything")

		require.NoError(t, err)
		assert.Equal(t, "check everything", res.Data["command"])
		backups.AssertNotCalled(t, "Run", mock.Anything)
	})

	t.Run("tool listing", func(t *testing.T) {
		catalog := new(mocks.MockCatalog)
		catalog.On("Tools").Return(service.ToolCatalog{Operations: model.Operations})
		in := New(new(mocks.MockBackupService), catalog)

		res, err := in.Run(ctx, "list mcp tools")

		require.NoError(t, err)
		assert.Equal(t, service.ToolCatalog{Operations: model.Operations}, res.Data["tools"])
	})

	t.Run("unknown lists available commands", func(t *testing.T) {
		in := New(new(mocks.MockBackupService), new(mocks.MockCatalog))

		res, err := in.Run(ctx, "drop everything")

		assert.ErrorIs(t, err, ErrUnknownCommand)
		assert.False(t, res.Success)
		assert.Equal(t, AvailableCommands, res.Data["availableCommands"])
	})

	t.Run("backup wins over analyze", func(t *testing.T) {
		backups := new(mocks.MockBackupService)
		backups.On("Run", ctx).Return(&model.BackupManifest{ID: "b2", Status: model.BackupStatusPartialSuccess}, nil)
		in := New(backups, new(mocks.MockCatalog))

		_, err := in.Run(ctx, "analyze then backup")

		require.NoError(t, err)
		backups.AssertExpectations(t)
	})
}
