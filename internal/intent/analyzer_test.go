package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"querybridge/internal/model"
)

func TestAnalyze(t *testing.T) {
	a := NewAnalyzer("dvdrental")

	tests := []struct {
		name    string
		text    string
		backend model.Backend
		op      model.Operation
		target  string
	}{
		{
			name:    "status of postgres",
			text:    "what is the current state of postgres",
			backend: model.BackendRelational,
			op:      model.OpStatus,
		},
		{
			name:    "collections force document",
			text:    "list mongo collections",
			backend: model.BackendDocument,
			op:      model.OpListCollections,
		},
		{
			name:    "schema of named table",
			text:    "show me the schema of customer table",
			backend: model.BackendBoth,
			op:      model.OpAnalysis,
			target:  "customer",
		},
		{
			name:    "backup probe overrides",
			text:    "backup the payment table",
			backend: model.BackendBoth,
			op:      model.OpBackup,
			target:  "payment",
		},
		{
			name:    "ambiguous defaults to both",
			text:    "show me all data",
			backend: model.BackendBoth,
			op:      model.OpList,
		},
		{
			name:    "tables force relational even with mongo keyword",
			text:    "how many tables does mongo have",
			backend: model.BackendRelational,
			op:      model.OpListTables,
		},
		{
			name:    "databases force document even with postgres keyword",
			text:    "postgres databases",
			backend: model.BackendDocument,
			op:      model.OpListDatabases,
		},
		{
			name:    "earlier operation rule wins over forcing rule",
			text:    "status of all mongo databases",
			backend: model.BackendDocument,
			op:      model.OpStatus,
		},
		{
			name:    "schema name is a relational keyword",
			text:    "analyze the dvdrental database structure",
			backend: model.BackendRelational,
			op:      model.OpAnalysis,
		},
		{
			name:    "document keyword",
			text:    "check the atlas cluster",
			backend: model.BackendDocument,
			op:      model.OpGeneral,
		},
		{
			name:    "values from target",
			text:    "give me values from film",
			backend: model.BackendBoth,
			op:      model.OpQuery,
			target:  "film",
		},
		{
			name:    "rows in target",
			text:    "rows in rental please",
			backend: model.BackendBoth,
			op:      model.OpQuery,
			target:  "rental",
		},
		{
			name:    "what are the values present in",
			text:    "what are the values present in inventory",
			backend: model.BackendBoth,
			op:      model.OpQuery,
			target:  "inventory",
		},
		{
			name:    "x collection data",
			text:    "users collection data",
			backend: model.BackendDocument,
			op:      model.OpQuery,
			target:  "users",
		},
		{
			name:    "later probe overwrites earlier capture",
			text:    "table actor data from film",
			backend: model.BackendBoth,
			op:      model.OpQuery,
			target:  "film",
		},
		{
			name:    "empty text is total",
			text:    "",
			backend: model.BackendBoth,
			op:      model.OpGeneral,
		},
		{
			name:    "case insensitive keywords keep target case",
			text:    "FIND rows FROM Customer",
			backend: model.BackendBoth,
			op:      model.OpQuery,
			target:  "Customer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.Analyze(tt.text)
			assert.Equal(t, tt.text, got.OriginalText)
			assert.Equal(t, tt.backend, got.TargetBackend)
			assert.Equal(t, tt.op, got.Operation)
			assert.Equal(t, tt.target, got.SpecificTarget)
		})
	}
}

func TestAnalyze_TargetComesFromText(t *testing.T) {
	a := NewAnalyzer("dvdrental")
	inputs := []string{
		"show me the schema of customer table",
		"what values are in payment",
		"backup the store collection",
		"export staff table rows",
	}
	for _, in := range inputs {
		got := a.Analyze(in)
		if got.HasTarget() {
			assert.Contains(t, in, got.SpecificTarget)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := NewAnalyzer("dvdrental")
	text := "backup the payment table from postgres"

	first := a.Analyze(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, a.Analyze(text))
	}
}

func TestAnalyze_BackupWithoutPattern(t *testing.T) {
	a := NewAnalyzer("")
	got := a.Analyze("export everything")

	assert.Equal(t, model.OpBackup, got.Operation)
	assert.Equal(t, model.BackendBoth, got.TargetBackend)
	assert.False(t, got.HasTarget())
}
