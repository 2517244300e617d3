package repository

import (
	"context"

	"querybridge/internal/model"
)

// CatalogRepository reads the relational schema inventory used to plan backups.
type CatalogRepository interface {
	// Tables lists base tables in the configured schema with their estimated row counts.
	Tables(ctx context.Context) ([]model.TableStat, error)

	// Dependencies maps each table to the tables its foreign keys reference.
	// Self references are omitted.
	Dependencies(ctx context.Context) (map[string][]string, error)
}
