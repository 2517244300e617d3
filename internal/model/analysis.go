package model

// Backend identifies which data store a request targets.
type Backend string

const (
	BackendRelational Backend = "relational"
	BackendDocument   Backend = "document"
	BackendBoth       Backend = "both"
)

// Operation is the kind of work a free-text instruction asks for.
type Operation string

const (
	OpBackup          Operation = "backup"
	OpStatus          Operation = "status"
	OpAnalysis        Operation = "analysis"
	OpList            Operation = "list"
	OpListTables      Operation = "list_tables"
	OpListCollections Operation = "list_collections"
	OpListDatabases   Operation = "list_databases"
	OpQuery           Operation = "query"
	OpGeneral         Operation = "general"
)

// Operations lists the full operation vocabulary in classification order.
var Operations = []Operation{
	OpBackup,
	OpStatus,
	OpAnalysis,
	OpListDatabases,
	OpListCollections,
	OpListTables,
	OpList,
	OpQuery,
	OpGeneral,
}

// QueryAnalysis is the classification of one free-text request.
// TargetBackend and Operation are always set; SpecificTarget is empty when no probe matched.
type QueryAnalysis struct {
	OriginalText   string    `json:"original_text"`
	TargetBackend  Backend   `json:"target_backend"`
	Operation      Operation `json:"operation"`
	SpecificTarget string    `json:"specific_target,omitempty"`
}

// HasTarget reports whether a table or collection name was extracted.
func (a QueryAnalysis) HasTarget() bool {
	return a.SpecificTarget != ""
}
