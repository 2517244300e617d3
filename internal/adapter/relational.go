package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"querybridge/internal/model"
)

// RelationalOptions configures the relational adapter.
type RelationalOptions struct {
	// Schema is the PostgreSQL schema that holds the application tables (usually "public").
	Schema string
	// DefaultTarget names the export when a backup request does not name a table.
	DefaultTarget string
	// StatementTimeout bounds every call in addition to the server-side statement_timeout.
	StatementTimeout time.Duration
	SampleLimit      int
}

// Relational fronts a PostgreSQL database through database/sql.
type Relational struct {
	db   *sql.DB
	opts RelationalOptions
	now  func() time.Time
}

// NewRelational creates a relational adapter over an open pool.
func NewRelational(db *sql.DB, opts RelationalOptions) *Relational {
	if opts.Schema == "" {
		opts.Schema = "public"
	}
	if opts.SampleLimit <= 0 {
		opts.SampleLimit = 10
	}
	if opts.DefaultTarget == "" {
		opts.DefaultTarget = opts.Schema
	}
	return &Relational{db: db, opts: opts, now: time.Now}
}

var _ Adapter = (*Relational)(nil)

func (r *Relational) Backend() model.Backend {
	return model.BackendRelational
}

func (r *Relational) Capability() Capability {
	return Capability{
		Backend: model.BackendRelational,
		Name:    "PostgreSQL",
		Operations: []model.Operation{
			model.OpStatus, model.OpList, model.OpListTables, model.OpListDatabases,
			model.OpAnalysis, model.OpQuery, model.OpBackup, model.OpGeneral,
		},
		Capabilities: []string{
			"Database statistics",
			"List and describe tables",
			"Bounded row sampling",
			"Export descriptors for backup",
			"Schema analysis",
		},
	}
}

func (r *Relational) Execute(ctx context.Context, op model.Operation, target string) (*Payload, error) {
	ctx, cancel := withTimeout(ctx, r.opts.StatementTimeout)
	defer cancel()

	switch op {
	case model.OpStatus:
		return r.status(ctx), nil
	case model.OpList, model.OpListTables, model.OpListCollections:
		return r.listTables(ctx, op)
	case model.OpListDatabases:
		return r.listDatabases(ctx)
	case model.OpAnalysis:
		if target == "" {
			return r.aggregate(ctx)
		}
		return r.describe(ctx, target)
	case model.OpQuery:
		if target == "" {
			p := Failure(model.BackendRelational, op, "relational query requires a table name", ErrTargetRequired)
			p.Data["hint"] = "name a table, for example: rows from customer"
			return p, ErrTargetRequired
		}
		return r.sample(ctx, target)
	case model.OpBackup:
		return r.backup(target), nil
	default:
		return success(model.BackendRelational, op, "relational operation executed", map[string]any{
			"operation": op,
			"backend":   model.BackendRelational,
		}), nil
	}
}

type relationalStats struct {
	sizeBytes  int64
	tableCount int64
	rowCount   int64
}

func (r *Relational) stats(ctx context.Context) (relationalStats, error) {
	var st relationalStats
	if err := r.db.QueryRowContext(ctx, `SELECT pg_database_size(current_database())`).Scan(&st.sizeBytes); err != nil {
		return st, fmt.Errorf("database size: %w", err)
	}
	const qTables = `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
	`
	if err := r.db.QueryRowContext(ctx, qTables, r.opts.Schema).Scan(&st.tableCount); err != nil {
		return st, fmt.Errorf("table count: %w", err)
	}
	const qRows = `SELECT COALESCE(SUM(n_live_tup), 0)::bigint FROM pg_stat_user_tables WHERE schemaname = $1`
	if err := r.db.QueryRowContext(ctx, qRows, r.opts.Schema).Scan(&st.rowCount); err != nil {
		return st, fmt.Errorf("row count: %w", err)
	}
	return st, nil
}

func (r *Relational) status(ctx context.Context) *Payload {
	st, err := r.stats(ctx)
	if err != nil {
		return degraded(model.BackendRelational, model.OpStatus, "relational status unavailable, returning placeholder", map[string]any{
			"schema": r.opts.Schema,
		}, err)
	}
	return success(model.BackendRelational, model.OpStatus, "relational status retrieved", map[string]any{
		"status":      "connected",
		"schema":      r.opts.Schema,
		"size_bytes":  st.sizeBytes,
		"table_count": st.tableCount,
		"row_count":   st.rowCount,
	})
}

func (r *Relational) aggregate(ctx context.Context) (*Payload, error) {
	st, err := r.stats(ctx)
	if err != nil {
		return Failure(model.BackendRelational, model.OpAnalysis, "relational analysis failed", err), err
	}
	return success(model.BackendRelational, model.OpAnalysis, "relational database analysis completed", map[string]any{
		"schema":      r.opts.Schema,
		"table_count": st.tableCount,
		"row_count":   st.rowCount,
		"size_bytes":  st.sizeBytes,
	}), nil
}

func (r *Relational) listTables(ctx context.Context, op model.Operation) (*Payload, error) {
	const q = `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`
	names, err := r.strings(ctx, q, r.opts.Schema)
	if err != nil {
		return Failure(model.BackendRelational, op, "listing relational tables failed", err), err
	}
	return success(model.BackendRelational, op, "relational tables listed", map[string]any{
		"schema":       r.opts.Schema,
		"tables":       names,
		"total_tables": len(names),
	}), nil
}

func (r *Relational) listDatabases(ctx context.Context) (*Payload, error) {
	const q = `SELECT datname FROM pg_database WHERE NOT datistemplate ORDER BY datname`
	names, err := r.strings(ctx, q)
	if err != nil {
		return Failure(model.BackendRelational, model.OpListDatabases, "listing relational databases failed", err), err
	}
	return success(model.BackendRelational, model.OpListDatabases, "relational databases listed", map[string]any{
		"databases":       names,
		"total_databases": len(names),
	}), nil
}

type column struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Nullable bool    `json:"nullable"`
	Default  *string `json:"default,omitempty"`
}

func (r *Relational) columns(ctx context.Context, table string) ([]column, error) {
	const q = `
		SELECT column_name, data_type, is_nullable = 'YES', column_default
		FROM information_schema.columns
		WHERE table_schema = $1 AND table_name = $2
		ORDER BY ordinal_position
	`
	rows, err := r.db.QueryContext(ctx, q, r.opts.Schema, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols := make([]column, 0)
	for rows.Next() {
		var c column
		var def sql.NullString
		if err := rows.Scan(&c.Name, &c.Type, &c.Nullable, &def); err != nil {
			return nil, err
		}
		if def.Valid {
			c.Default = &def.String
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: table %s.%s", ErrTargetNotFound, r.opts.Schema, table)
	}
	return cols, nil
}

func (r *Relational) describe(ctx context.Context, table string) (*Payload, error) {
	cols, err := r.columns(ctx, table)
	if err != nil {
		return Failure(model.BackendRelational, model.OpAnalysis, fmt.Sprintf("analysis of table %s failed", table), err), err
	}

	const q = `
		SELECT GREATEST(c.reltuples, 0)::bigint
		FROM pg_class c JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = $1 AND c.relname = $2
	`
	var approx int64
	if err := r.db.QueryRowContext(ctx, q, r.opts.Schema, table).Scan(&approx); err != nil {
		return Failure(model.BackendRelational, model.OpAnalysis, fmt.Sprintf("analysis of table %s failed", table), err), err
	}

	return success(model.BackendRelational, model.OpAnalysis, fmt.Sprintf("relational table %s analyzed", table), map[string]any{
		"table":        table,
		"columns":      cols,
		"column_count": len(cols),
		"approx_rows":  approx,
	}), nil
}

func (r *Relational) sample(ctx context.Context, table string) (*Payload, error) {
	fail := func(err error) (*Payload, error) {
		return Failure(model.BackendRelational, model.OpQuery, fmt.Sprintf("query of table %s failed", table), err), err
	}

	const qExists = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, qExists, r.opts.Schema, table).Scan(&exists); err != nil {
		return fail(err)
	}
	if !exists {
		return fail(fmt.Errorf("%w: table %s.%s", ErrTargetNotFound, r.opts.Schema, table))
	}

	q := fmt.Sprintf("SELECT * FROM %s LIMIT $1", pgx.Identifier{r.opts.Schema, table}.Sanitize())
	rows, err := r.db.QueryContext(ctx, q, r.opts.SampleLimit)
	if err != nil {
		return fail(err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fail(err)
	}

	out := make([]map[string]any, 0, r.opts.SampleLimit)
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return fail(err)
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return fail(err)
	}

	return success(model.BackendRelational, model.OpQuery, fmt.Sprintf("relational rows sampled from %s", table), map[string]any{
		"table":     table,
		"columns":   cols,
		"rows":      out,
		"row_count": len(out),
		"limit":     r.opts.SampleLimit,
	}), nil
}

func (r *Relational) backup(target string) *Payload {
	if target == "" {
		target = r.opts.DefaultTarget
	}
	return success(model.BackendRelational, model.OpBackup, fmt.Sprintf("relational export of %s prepared", target), map[string]any{
		"target":   target,
		"format":   "csv",
		"filename": exportFilename(target, "csv", r.now()),
		"status":   "ready",
	})
}

func (r *Relational) strings(ctx context.Context, q string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
