package service

import (
	"querybridge/internal/adapter"
	"querybridge/internal/model"
)

// ToolCatalog is the capability listing served to clients.
type ToolCatalog struct {
	Operations []model.Operation    `json:"operations"`
	Backends   []adapter.Capability `json:"backends"`
}

// Catalog serves static descriptive data. It performs no I/O.
type Catalog interface {
	Tools() ToolCatalog
	Examples() map[string][]string
}

type catalog struct {
	tools ToolCatalog
}

// NewCatalog snapshots the capabilities of the dispatcher's adapters.
func NewCatalog(d Dispatcher) Catalog {
	tc := ToolCatalog{Operations: model.Operations}
	for _, a := range d.Adapters() {
		tc.Backends = append(tc.Backends, a.Capability())
	}
	return &catalog{tools: tc}
}

func (c *catalog) Tools() ToolCatalog {
	return c.tools
}

func (c *catalog) Examples() map[string][]string {
	return map[string][]string{
		"backup": {
			"backup my database",
			"backup the customer table",
			"export all data from postgres",
			"create a backup of mongo collections",
		},
		"status": {
			"what is the current state of postgres",
			"show me mongo cluster health",
			"database status check",
			"what's the health of my databases",
		},
		"analysis": {
			"analyze the dvdrental database structure",
			"show me the schema of customer table",
			"what collections exist in mongo",
			"analyze database relationships",
		},
		"query": {
			"show me all films in the database",
			"find customers with more than 10 rentals",
			"list all tables in postgres",
			"show mongo collections",
		},
	}
}
