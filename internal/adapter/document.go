package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"querybridge/internal/docstore"
	"querybridge/internal/model"
)

// DocumentOptions configures the document adapter.
type DocumentOptions struct {
	Timeout     time.Duration
	SampleLimit int
	// FieldSampleSize is how many documents are read to infer field types during analysis.
	FieldSampleSize int
}

// Document fronts a document store.
type Document struct {
	store docstore.Store
	opts  DocumentOptions
	now   func() time.Time
}

// NewDocument creates a document adapter over store.
func NewDocument(store docstore.Store, opts DocumentOptions) *Document {
	if opts.SampleLimit <= 0 {
		opts.SampleLimit = 10
	}
	if opts.FieldSampleSize <= 0 {
		opts.FieldSampleSize = 100
	}
	return &Document{store: store, opts: opts, now: time.Now}
}

var _ Adapter = (*Document)(nil)

func (d *Document) Backend() model.Backend {
	return model.BackendDocument
}

func (d *Document) Capability() Capability {
	return Capability{
		Backend: model.BackendDocument,
		Name:    "MongoDB",
		Operations: []model.Operation{
			model.OpStatus, model.OpList, model.OpListCollections, model.OpListTables, model.OpListDatabases,
			model.OpAnalysis, model.OpQuery, model.OpBackup, model.OpGeneral,
		},
		Capabilities: []string{
			"Cluster and database statistics",
			"List databases and collections",
			"Bounded document sampling",
			"Field type inference",
			"Export descriptors for backup",
		},
	}
}

func (d *Document) Execute(ctx context.Context, op model.Operation, target string) (*Payload, error) {
	ctx, cancel := withTimeout(ctx, d.opts.Timeout)
	defer cancel()

	switch op {
	case model.OpStatus:
		return d.status(ctx), nil
	case model.OpListCollections, model.OpListTables:
		return d.listCollections(ctx, op)
	case model.OpList, model.OpListDatabases:
		// Databases are the natural top-level listing of a cluster.
		return d.listDatabases(ctx, op)
	case model.OpAnalysis:
		if target == "" {
			return d.aggregate(ctx)
		}
		return d.describe(ctx, target)
	case model.OpQuery:
		if target == "" {
			p := Failure(model.BackendDocument, op, "document query requires a collection name", ErrTargetRequired)
			p.Data["hint"] = "name a collection, for example: users collection data"
			return p, ErrTargetRequired
		}
		return d.sample(ctx, target)
	case model.OpBackup:
		return d.backup(target), nil
	default:
		return success(model.BackendDocument, op, "document operation executed", map[string]any{
			"operation": op,
			"backend":   model.BackendDocument,
		}), nil
	}
}

func (d *Document) status(ctx context.Context) *Payload {
	if err := d.store.Ping(ctx); err != nil {
		return degraded(model.BackendDocument, model.OpStatus, "document status unavailable, returning placeholder", map[string]any{
			"database": d.store.Database(),
		}, err)
	}
	st, err := d.store.Stats(ctx)
	if err != nil {
		return degraded(model.BackendDocument, model.OpStatus, "document status unavailable, returning placeholder", map[string]any{
			"database": d.store.Database(),
		}, err)
	}
	return success(model.BackendDocument, model.OpStatus, "document status retrieved", map[string]any{
		"status":       "connected",
		"database":     st.Database,
		"collections":  st.Collections,
		"objects":      st.Objects,
		"data_size":    st.DataSize,
		"storage_size": st.StorageSize,
		"indexes":      st.Indexes,
	})
}

func (d *Document) aggregate(ctx context.Context) (*Payload, error) {
	st, err := d.store.Stats(ctx)
	if err != nil {
		return Failure(model.BackendDocument, model.OpAnalysis, "document analysis failed", err), err
	}
	names, err := d.store.ListCollections(ctx)
	if err != nil {
		return Failure(model.BackendDocument, model.OpAnalysis, "document analysis failed", err), err
	}
	return success(model.BackendDocument, model.OpAnalysis, "document database analysis completed", map[string]any{
		"database":     st.Database,
		"collections":  names,
		"objects":      st.Objects,
		"data_size":    st.DataSize,
		"storage_size": st.StorageSize,
		"indexes":      st.Indexes,
	}), nil
}

func (d *Document) listCollections(ctx context.Context, op model.Operation) (*Payload, error) {
	names, err := d.store.ListCollections(ctx)
	if err != nil {
		return Failure(model.BackendDocument, op, "listing document collections failed", err), err
	}
	return success(model.BackendDocument, op, "document collections listed", map[string]any{
		"database":          d.store.Database(),
		"collections":       names,
		"total_collections": len(names),
	}), nil
}

func (d *Document) listDatabases(ctx context.Context, op model.Operation) (*Payload, error) {
	dbs, err := d.store.ListDatabases(ctx)
	if err != nil {
		return Failure(model.BackendDocument, op, "listing document databases failed", err), err
	}
	return success(model.BackendDocument, op, "document databases listed", map[string]any{
		"databases":       dbs,
		"total_databases": len(dbs),
	}), nil
}

func (d *Document) describe(ctx context.Context, collection string) (*Payload, error) {
	fail := func(err error) (*Payload, error) {
		err = notFound(err)
		return Failure(model.BackendDocument, model.OpAnalysis, fmt.Sprintf("analysis of collection %s failed", collection), err), err
	}

	count, err := d.store.CountDocuments(ctx, collection)
	if err != nil {
		return fail(err)
	}
	fields, err := d.store.FieldTypes(ctx, collection, int64(d.opts.FieldSampleSize))
	if err != nil {
		return fail(err)
	}
	return success(model.BackendDocument, model.OpAnalysis, fmt.Sprintf("document collection %s analyzed", collection), map[string]any{
		"collection":     collection,
		"document_count": count,
		"fields":         fields,
		"field_count":    len(fields),
	}), nil
}

func (d *Document) sample(ctx context.Context, collection string) (*Payload, error) {
	docs, err := d.store.Sample(ctx, collection, int64(d.opts.SampleLimit))
	if err != nil {
		err = notFound(err)
		return Failure(model.BackendDocument, model.OpQuery, fmt.Sprintf("query of collection %s failed", collection), err), err
	}
	return success(model.BackendDocument, model.OpQuery, fmt.Sprintf("documents sampled from %s", collection), map[string]any{
		"collection":     collection,
		"documents":      docs,
		"document_count": len(docs),
		"limit":          d.opts.SampleLimit,
	}), nil
}

func (d *Document) backup(target string) *Payload {
	if target == "" {
		target = d.store.Database()
	}
	return success(model.BackendDocument, model.OpBackup, fmt.Sprintf("document export of %s prepared", target), map[string]any{
		"target":   target,
		"format":   "json",
		"filename": exportFilename(target, "json", d.now()),
		"status":   "ready",
	})
}

func notFound(err error) error {
	if errors.Is(err, docstore.ErrCollectionNotFound) && !errors.Is(err, ErrTargetNotFound) {
		return fmt.Errorf("%w: %w", ErrTargetNotFound, err)
	}
	return err
}
