// Package docstore contains the document-store client abstraction used by the document adapter.
// Implementations live next to the interface (mongo.go); tests use mocks.
package docstore

import (
	"context"
	"errors"
)

// ErrCollectionNotFound is returned when a named collection does not exist in the configured database.
var ErrCollectionNotFound = errors.New("collection not found")

// DatabaseInfo describes one database on the cluster.
type DatabaseInfo struct {
	Name       string `json:"name"`
	SizeOnDisk int64  `json:"size_on_disk"`
	Empty      bool   `json:"empty"`
}

// Stats is the dbStats summary for the configured database.
type Stats struct {
	Database    string  `json:"database"`
	Collections int64   `json:"collections"`
	Objects     int64   `json:"objects"`
	DataSize    float64 `json:"data_size"`
	StorageSize float64 `json:"storage_size"`
	Indexes     int64   `json:"indexes"`
}

// Store is the small fixed set of document-store operations the adapter needs.
// All methods operate on the configured database.
type Store interface {
	// Database returns the configured database name.
	Database() string
	// Ping checks connectivity.
	Ping(ctx context.Context) error
	// ListDatabases enumerates databases on the cluster.
	ListDatabases(ctx context.Context) ([]DatabaseInfo, error)
	// ListCollections enumerates collections in the configured database.
	ListCollections(ctx context.Context) ([]string, error)
	// Stats returns dbStats for the configured database.
	Stats(ctx context.Context) (Stats, error)
	// CountDocuments returns an estimated document count for a collection.
	CountDocuments(ctx context.Context, collection string) (int64, error)
	// Sample returns up to limit documents from a collection.
	Sample(ctx context.Context, collection string, limit int64) ([]map[string]any, error)
	// FieldTypes infers top-level field types from up to sampleSize documents.
	FieldTypes(ctx context.Context, collection string, sampleSize int64) (map[string][]string, error)
}
