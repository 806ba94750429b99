package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Queryer is the slice of *sql.DB the reflection core needs.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// QueryRows runs a statement expected to return rows and maps each row
// through mapRow.
func QueryRows[T any](ctx context.Context, q Queryer, stmt string, mapRow func(*sql.Rows) (T, error), args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", stmt, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := mapRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row of %q: %w", stmt, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows of %q: %w", stmt, err)
	}
	return out, nil
}

// Exec runs a statement with no result rows expected.
func Exec(ctx context.Context, q Queryer, stmt string) error {
	if _, err := q.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("exec %q: %w", stmt, err)
	}
	return nil
}
