package docstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"querybridge/internal/config"
)

// mongoStore implements Store on top of the official MongoDB driver.
// It is safe for concurrent use by multiple goroutines.
type mongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects to the cluster and verifies connectivity.
// The returned close function disconnects the client.
func NewMongo(cfg config.MongoConfig) (Store, func(context.Context) error, error) {
	if cfg.URI == "" {
		return nil, nil, fmt.Errorf("mongo uri is required")
	}
	if cfg.Database == "" {
		return nil, nil, fmt.Errorf("mongo database is required")
	}

	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout).
		SetTimeout(timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cli, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	s := &mongoStore{client: cli, db: cli.Database(cfg.Database)}
	return s, cli.Disconnect, nil
}

func (s *mongoStore) Database() string {
	return s.db.Name()
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *mongoStore) ListDatabases(ctx context.Context) ([]DatabaseInfo, error) {
	res, err := s.client.ListDatabases(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	out := make([]DatabaseInfo, 0, len(res.Databases))
	for _, d := range res.Databases {
		out = append(out, DatabaseInfo{Name: d.Name, SizeOnDisk: d.SizeOnDisk, Empty: d.Empty})
	}
	return out, nil
}

func (s *mongoStore) ListCollections(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.D{})
}

func (s *mongoStore) Stats(ctx context.Context) (Stats, error) {
	var raw struct {
		DB          string  `bson:"db"`
		Collections int64   `bson:"collections"`
		Objects     int64   `bson:"objects"`
		DataSize    float64 `bson:"dataSize"`
		StorageSize float64 `bson:"storageSize"`
		Indexes     int64   `bson:"indexes"`
	}
	if err := s.db.RunCommand(ctx, bson.D{{Key: "dbStats", Value: 1}}).Decode(&raw); err != nil {
		return Stats{}, err
	}
	return Stats{
		Database:    raw.DB,
		Collections: raw.Collections,
		Objects:     raw.Objects,
		DataSize:    raw.DataSize,
		StorageSize: raw.StorageSize,
		Indexes:     raw.Indexes,
	}, nil
}

func (s *mongoStore) CountDocuments(ctx context.Context, collection string) (int64, error) {
	if err := s.ensureCollection(ctx, collection); err != nil {
		return 0, err
	}
	return s.db.Collection(collection).EstimatedDocumentCount(ctx)
}

func (s *mongoStore) Sample(ctx context.Context, collection string, limit int64) ([]map[string]any, error) {
	if err := s.ensureCollection(ctx, collection); err != nil {
		return nil, err
	}
	cur, err := s.db.Collection(collection).Find(ctx, bson.D{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		out = append(out, map[string]any(d))
	}
	return out, nil
}

func (s *mongoStore) FieldTypes(ctx context.Context, collection string, sampleSize int64) (map[string][]string, error) {
	docs, err := s.Sample(ctx, collection, sampleSize)
	if err != nil {
		return nil, err
	}
	return fieldTypes(docs), nil
}

// fieldTypes collects the distinct value kinds seen per top-level field, sorted.
func fieldTypes(docs []map[string]any) map[string][]string {
	seen := make(map[string]map[string]struct{})
	for _, d := range docs {
		for k, v := range d {
			if seen[k] == nil {
				seen[k] = make(map[string]struct{})
			}
			seen[k][kindOf(v)] = struct{}{}
		}
	}
	out := make(map[string][]string, len(seen))
	for field, kinds := range seen {
		list := make([]string, 0, len(kinds))
		for k := range kinds {
			list = append(list, k)
		}
		sort.Strings(list)
		out[field] = list
	}
	return out
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int32, int64, float64, primitive.Decimal128:
		return "number"
	case primitive.ObjectID:
		return "objectId"
	case primitive.DateTime, time.Time:
		return "date"
	case primitive.M, primitive.D, map[string]any:
		return "object"
	case primitive.A, []any:
		return "array"
	case primitive.Binary:
		return "binary"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// ensureCollection turns a silent empty result for a missing collection into ErrCollectionNotFound.
func (s *mongoStore) ensureCollection(ctx context.Context, collection string) error {
	names, err := s.db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: collection}})
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
	}
	return nil
}
