package adapter

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"querybridge/internal/docstore"
	"querybridge/internal/docstore/mocks"
	"querybridge/internal/model"
)

func newDocument() (*Document, *mocks.MockStore) {
	store := new(mocks.MockStore)
	d := NewDocument(store, DocumentOptions{SampleLimit: 3, FieldSampleSize: 50})
	d.now = func() time.Time { return time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC) }
	return d, store
}

func TestDocument_Status(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		d, store := newDocument()
		store.On("Ping", mock.Anything).Return(nil)
		store.On("Stats", mock.Anything).Return(docstore.Stats{Database: "dvdrental", Collections: 4, Objects: 120}, nil)

		p, err := d.Execute(context.Background(), model.OpStatus, "")

		require.NoError(t, err)
		assert.True(t, p.Success)
		assert.False(t, p.Degraded)
		assert.Equal(t, int64(4), p.Data["collections"])
		store.AssertExpectations(t)
	})

	t.Run("placeholder when unreachable", func(t *testing.T) {
		d, store := newDocument()
		store.On("Ping", mock.Anything).Return(errors.New("server selection timeout"))
		store.On("Database").Return("dvdrental")

		p, err := d.Execute(context.Background(), model.OpStatus, "")

		require.NoError(t, err)
		assert.True(t, p.Degraded)
		assert.Equal(t, "unknown", p.Data["status"])
		assert.Equal(t, "dvdrental", p.Data["database"])
		store.AssertExpectations(t)
	})
}

func TestDocument_ListCollections(t *testing.T) {
	d, store := newDocument()
	store.On("ListCollections", mock.Anything).Return([]string{"users", "orders"}, nil)
	store.On("Database").Return("dvdrental")

	p, err := d.Execute(context.Background(), model.OpListCollections, "")

	require.NoError(t, err)
	assert.Equal(t, "document collections listed", p.Message)
	assert.Equal(t, 2, p.Data["total_collections"])
	store.AssertExpectations(t)
}

func TestDocument_ListDatabases(t *testing.T) {
	d, store := newDocument()
	store.On("ListDatabases", mock.Anything).Return([]docstore.DatabaseInfo{{Name: "admin"}, {Name: "dvdrental"}}, nil)

	p, err := d.Execute(context.Background(), model.OpListDatabases, "")

	require.NoError(t, err)
	assert.Equal(t, 2, p.Data["total_databases"])
}

func TestDocument_Query(t *testing.T) {
	t.Run("requires target", func(t *testing.T) {
		d, store := newDocument()

		p, err := d.Execute(context.Background(), model.OpQuery, "")

		assert.ErrorIs(t, err, ErrTargetRequired)
		assert.False(t, p.Success)
		store.AssertNotCalled(t, "Sample", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing collection", func(t *testing.T) {
		d, store := newDocument()
		store.On("Sample", mock.Anything, "ghost", int64(3)).
			Return(nil, fmt.Errorf("%w: ghost", docstore.ErrCollectionNotFound))

		p, err := d.Execute(context.Background(), model.OpQuery, "ghost")

		assert.ErrorIs(t, err, ErrTargetNotFound)
		assert.ErrorIs(t, err, docstore.ErrCollectionNotFound)
		assert.False(t, p.Success)
	})

	t.Run("bounded sample", func(t *testing.T) {
		d, store := newDocument()
		docs := []map[string]any{{"name": "a"}, {"name": "b"}}
		store.On("Sample", mock.Anything, "users", int64(3)).Return(docs, nil)

		p, err := d.Execute(context.Background(), model.OpQuery, "users")

		require.NoError(t, err)
		assert.Equal(t, docs, p.Data["documents"])
		assert.Equal(t, 2, p.Data["document_count"])
		store.AssertExpectations(t)
	})
}

func TestDocument_Analysis(t *testing.T) {
	t.Run("named collection", func(t *testing.T) {
		d, store := newDocument()
		store.On("CountDocuments", mock.Anything, "users").Return(int64(42), nil)
		store.On("FieldTypes", mock.Anything, "users", int64(50)).
			Return(map[string][]string{"_id": {"objectId"}, "name": {"string"}}, nil)

		p, err := d.Execute(context.Background(), model.OpAnalysis, "users")

		require.NoError(t, err)
		assert.Equal(t, int64(42), p.Data["document_count"])
		assert.Equal(t, 2, p.Data["field_count"])
		store.AssertExpectations(t)
	})

	t.Run("whole database", func(t *testing.T) {
		d, store := newDocument()
		store.On("Stats", mock.Anything).Return(docstore.Stats{Database: "dvdrental", Objects: 9}, nil)
		store.On("ListCollections", mock.Anything).Return([]string{"users"}, nil)

		p, err := d.Execute(context.Background(), model.OpAnalysis, "")

		require.NoError(t, err)
		assert.Equal(t, "document database analysis completed", p.Message)
		assert.Equal(t, []string{"users"}, p.Data["collections"])
	})
}

func TestDocument_Backup(t *testing.T) {
	d, store := newDocument()
	store.On("Database").Return("dvdrental")

	p, err := d.Execute(context.Background(), model.OpBackup, "")

	require.NoError(t, err)
	assert.Equal(t, "dvdrental", p.Data["target"])
	assert.Equal(t, "json", p.Data["format"])
	assert.Equal(t, "dvdrental_20240301_103000.json", p.Data["filename"])
	assert.Equal(t, "ready", p.Data["status"])
}

func TestDocument_ListDefaultsToDatabases(t *testing.T) {
	d, store := newDocument()
	store.On("ListDatabases", mock.Anything).Return([]docstore.DatabaseInfo{{Name: "dvdrental"}}, nil)

	p, err := d.Execute(context.Background(), model.OpList, "")

	require.NoError(t, err)
	assert.Equal(t, model.OpList, p.Operation)
	assert.Equal(t, "document databases listed", p.Message)
	store.AssertNotCalled(t, "ListCollections", mock.Anything)
}
