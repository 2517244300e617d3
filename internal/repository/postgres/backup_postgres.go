package postgres

import (
	"context"
	"database/sql"

	"querybridge/internal/model"
	"querybridge/internal/repository"
)

// BackupPostgres is a PostgreSQL implementation of repository.BackupRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type BackupPostgres struct {
	db *sql.DB
}

// NewBackupPostgres creates a new BackupPostgres repository.
func NewBackupPostgres(db *sql.DB) *BackupPostgres {
	return &BackupPostgres{db: db}
}

var _ repository.BackupRepository = (*BackupPostgres)(nil)

const backupColumns = `id, status, manifest_key, table_count, row_estimate, created_at`

func scanBackup(s interface{ Scan(...any) error }, b *model.Backup) error {
	return s.Scan(
		&b.ID,
		&b.Status,
		&b.ManifestKey,
		&b.TableCount,
		&b.RowEstimate,
		&b.CreatedAt,
	)
}

// Create inserts a new backup row and returns the stored record.
func (r *BackupPostgres) Create(ctx context.Context, b *model.Backup) (*model.Backup, error) {
	const q = `
		INSERT INTO backups (` + backupColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + backupColumns
	row := r.db.QueryRowContext(ctx, q,
		b.ID,
		b.Status,
		b.ManifestKey,
		b.TableCount,
		b.RowEstimate,
		b.CreatedAt,
	)
	var out model.Backup
	if err := scanBackup(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single backup by its ID.
func (r *BackupPostgres) FindByID(ctx context.Context, id string) (*model.Backup, error) {
	const q = `SELECT ` + backupColumns + ` FROM backups WHERE id = $1`
	var b model.Backup
	if err := scanBackup(r.db.QueryRowContext(ctx, q, id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns backups using LIMIT/OFFSET pagination and a total count.
func (r *BackupPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Backup], error) {
	const qCount = `SELECT COUNT(*) FROM backups`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + backupColumns + `
		FROM backups
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Backup, 0)
	for rows.Next() {
		var b model.Backup
		if err := scanBackup(rows, &b); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Backup]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes a backup by ID. It does not return an error if the row does not exist.
func (r *BackupPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM backups WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
