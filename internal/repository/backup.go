package repository

import (
	"context"

	"querybridge/internal/model"
)

// BackupRepository is the ledger of completed backup runs.
// No business logic here, strictly persistence operations.
type BackupRepository interface {
	// Create inserts a backup record and returns the stored row.
	Create(ctx context.Context, b *model.Backup) (*model.Backup, error)

	// FindByID returns a backup by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Backup, error)

	// List returns a page of backups, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Backup], error)

	// Delete removes a backup by ID. It returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}
