package docstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"querybridge/internal/config"
)

func TestFieldTypes(t *testing.T) {
	docs := []map[string]any{
		{"_id": primitive.NewObjectID(), "name": "ACADEMY DINOSAUR", "length": int32(86), "tags": primitive.A{"a"}},
		{"_id": primitive.NewObjectID(), "name": nil, "length": 86.5, "meta": primitive.M{"k": 1}},
		{"created": primitive.NewDateTimeFromTime(time.Now()), "active": true},
	}

	got := fieldTypes(docs)

	assert.Equal(t, []string{"objectId"}, got["_id"])
	assert.Equal(t, []string{"null", "string"}, got["name"])
	assert.Equal(t, []string{"number"}, got["length"])
	assert.Equal(t, []string{"array"}, got["tags"])
	assert.Equal(t, []string{"object"}, got["meta"])
	assert.Equal(t, []string{"date"}, got["created"])
	assert.Equal(t, []string{"bool"}, got["active"])
}

func TestFieldTypes_Empty(t *testing.T) {
	assert.Empty(t, fieldTypes(nil))
}

func TestNewMongo_Validation(t *testing.T) {
	_, _, err := NewMongo(config.MongoConfig{Database: "dvdrental"})
	assert.EqualError(t, err, "mongo uri is required")

	_, _, err = NewMongo(config.MongoConfig{URI: "mongodb://localhost:27017"})
	assert.EqualError(t, err, "mongo database is required")
}
