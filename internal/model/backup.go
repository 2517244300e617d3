package model

import "time"

// Backup statuses.
const (
	BackupStatusSuccess        = "success"
	BackupStatusPartialSuccess = "partial_success"
)

// Backup is one recorded run of the backup flow.
// The manifest with export descriptors and the table plan lives in object storage under ManifestKey.
type Backup struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	ManifestKey string    `json:"manifest_key"`
	TableCount  int       `json:"table_count"`
	RowEstimate int64     `json:"row_estimate"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableStat describes one relational table for backup planning.
type TableStat struct {
	Name        string `json:"name"`
	RowEstimate int64  `json:"row_estimate"`
}

// TablePlan is one step of a backup plan.
type TablePlan struct {
	Table       string `json:"table"`
	Priority    int    `json:"priority"`
	RowEstimate int64  `json:"row_estimate"`
	BatchSize   int    `json:"batch_size"`
	Batches     int    `json:"batches"`
}

// BackupManifest is the JSON document written to object storage for each backup run.
type BackupManifest struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	// Exports holds the per-backend export descriptors returned by the dual dispatch.
	Exports        map[string]any `json:"exports"`
	Plan           []TablePlan    `json:"plan"`
	InventoryError string         `json:"inventory_error,omitempty"`
}
