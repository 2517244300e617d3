package postgres

import (
	"context"
	"database/sql"
	"sort"

	"querybridge/internal/model"
	"querybridge/internal/repository"
)

// CatalogPostgres reads table inventory and foreign keys from pg_catalog and information_schema.
type CatalogPostgres struct {
	db     *sql.DB
	schema string
}

// NewCatalogPostgres creates a catalog reader scoped to schema.
func NewCatalogPostgres(db *sql.DB, schema string) *CatalogPostgres {
	if schema == "" {
		schema = "public"
	}
	return &CatalogPostgres{db: db, schema: schema}
}

var _ repository.CatalogRepository = (*CatalogPostgres)(nil)

func (r *CatalogPostgres) Tables(ctx context.Context) ([]model.TableStat, error) {
	const q = `
		SELECT t.table_name, COALESCE(s.n_live_tup, 0)::bigint
		FROM information_schema.tables t
		LEFT JOIN pg_stat_user_tables s
			ON s.schemaname = t.table_schema AND s.relname = t.table_name
		WHERE t.table_schema = $1 AND t.table_type = 'BASE TABLE'
		ORDER BY t.table_name
	`
	rows, err := r.db.QueryContext(ctx, q, r.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TableStat, 0)
	for rows.Next() {
		var ts model.TableStat
		if err := rows.Scan(&ts.Name, &ts.RowEstimate); err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}

func (r *CatalogPostgres) Dependencies(ctx context.Context) (map[string][]string, error) {
	const q = `
		SELECT DISTINCT tc.table_name, ccu.table_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.constraint_column_usage ccu
			ON ccu.constraint_name = tc.constraint_name
			AND ccu.constraint_schema = tc.constraint_schema
		WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = $1
	`
	rows, err := r.db.QueryContext(ctx, q, r.schema)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deps := make(map[string][]string)
	for rows.Next() {
		var table, ref string
		if err := rows.Scan(&table, &ref); err != nil {
			return nil, err
		}
		if table == ref {
			continue
		}
		deps[table] = append(deps[table], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, refs := range deps {
		sort.Strings(refs)
	}
	return deps, nil
}
