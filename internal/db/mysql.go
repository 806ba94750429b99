package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"db-reflect/internal/schema"
)

const errNoSuchTable = 1146 // ER_NO_SUCH_TABLE

// Source reads MySQL metadata views and implements schema.MetadataSource.
// The definition text of each table is cached, so reflecting a table with
// several foreign keys issues SHOW CREATE TABLE once.
type Source struct {
	q    Queryer
	defs map[string]string
}

var _ schema.MetadataSource = (*Source)(nil)

func NewSource(q Queryer) *Source {
	return &Source{q: q, defs: make(map[string]string)}
}

// Tables lists the base tables of the given database schema, sorted by name.
func (s *Source) Tables(ctx context.Context, schemaName string) ([]string, error) {
	return QueryRows(ctx, s.q,
		`SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`,
		func(rows *sql.Rows) (string, error) {
			var name string
			err := rows.Scan(&name)
			return name, err
		}, schemaName)
}

// Columns lists the SHOW FULL COLUMNS rows of a table.
func (s *Source) Columns(ctx context.Context, table string) ([]schema.ColumnRow, error) {
	rows, err := QueryRows(ctx, s.q, fmt.Sprintf("SHOW FULL COLUMNS FROM `%s`", table), scanColumnRow)
	if err != nil {
		if isNoSuchTable(err) {
			return nil, fmt.Errorf("%s: %w", table, schema.ErrTableNotFound)
		}
		return nil, err
	}
	return rows, nil
}

// Definition returns the definition text of SHOW CREATE TABLE.
func (s *Source) Definition(ctx context.Context, table string) (string, error) {
	if def, ok := s.defs[table]; ok {
		return def, nil
	}

	defs, err := QueryRows(ctx, s.q, fmt.Sprintf("SHOW CREATE TABLE `%s`", table),
		func(rows *sql.Rows) (string, error) {
			var name, def string
			err := rows.Scan(&name, &def)
			return def, err
		})
	if err != nil {
		if isNoSuchTable(err) {
			return "", fmt.Errorf("%s: %w", table, schema.ErrTableNotFound)
		}
		return "", err
	}
	if len(defs) == 0 {
		return "", fmt.Errorf("no definition returned for %s", table)
	}

	s.defs[table] = defs[0]
	return defs[0], nil
}

// SHOW FULL COLUMNS: Field, Type, Collation, Null, Key, Default, Extra,
// Privileges, Comment. Everything past Type may be NULL.
func scanColumnRow(rows *sql.Rows) (schema.ColumnRow, error) {
	var field, typ string
	var collation, nullable, key, def, extra, privileges, comment sql.NullString
	if err := rows.Scan(&field, &typ, &collation, &nullable, &key, &def, &extra, &privileges, &comment); err != nil {
		return schema.ColumnRow{}, err
	}
	return schema.ColumnRow{
		Field:     field,
		Type:      typ,
		Collation: collation.String,
		Nullable:  nullable.String,
		Key:       key.String,
		Default:   def.String,
		Extra:     extra.String,
	}, nil
}

func isNoSuchTable(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == errNoSuchTable
}
