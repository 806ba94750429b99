package schema

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
)

// ErrTableNotFound reports that a metadata query targeted a table the
// database does not have. Reflect treats it as an absent table, not a
// failure.
var ErrTableNotFound = errors.New("table not found")

// ColumnRow is one row of SHOW FULL COLUMNS output.
type ColumnRow struct {
	Field     string
	Type      string
	Collation string
	Nullable  string // "YES" / "NO"
	Key       string // "", "PRI", "UNI", "MUL"
	Default   string
	Extra     string // e.g. "auto_increment"
}

// MetadataSource supplies the two metadata views the reflector reads. The
// MySQL implementation lives in internal/db; tests use an in-memory fake.
type MetadataSource interface {
	// Columns lists the column rows of a table in declaration order.
	// Returns an error wrapping ErrTableNotFound for an absent table.
	Columns(ctx context.Context, table string) ([]ColumnRow, error)
	// Definition returns the SHOW CREATE TABLE text of a table.
	Definition(ctx context.Context, table string) (string, error)
}

// ForeignKeyError reports a column whose key classification claims a
// foreign key that the table definition text does not confirm.
type ForeignKeyError struct {
	Table  string
	Column string
}

func (e *ForeignKeyError) Error() string {
	return fmt.Sprintf("column %s.%s is classified MUL but the table definition has no matching FOREIGN KEY clause", e.Table, e.Column)
}

// Reflect builds the schema model of one table from live metadata. It
// returns (nil, nil) when the table does not exist. Columns whose type
// declaration is not recognized are dropped from the model with a logged
// warning; any other failure aborts the whole reflection, so a returned
// Table is never partial.
func Reflect(ctx context.Context, src MetadataSource, name string) (*Table, error) {
	rows, err := src.Columns(ctx, name)
	if err != nil {
		if errors.Is(err, ErrTableNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("list columns of %s: %w", name, err)
	}

	// One reflection fetches the definition text at most once, no matter
	// how many foreign keys the table has.
	cached := &cachedSource{MetadataSource: src}

	t := &Table{Name: name, PrimaryKey: NoPrimaryKey}
	for _, row := range rows {
		attr, err := buildAttribute(ctx, cached, name, row)
		if err != nil {
			return nil, err
		}
		if attr == nil {
			continue
		}
		// The index refers to the surviving attribute sequence, so a
		// dropped column never leaves the primary key out of range.
		if row.Key == "PRI" {
			t.PrimaryKey = len(t.Attributes)
		}
		t.Attributes = append(t.Attributes, *attr)
	}
	return t, nil
}

// cachedSource memoizes Definition for the single table one Reflect call
// works on.
type cachedSource struct {
	MetadataSource
	def    string
	cached bool
}

func (c *cachedSource) Definition(ctx context.Context, table string) (string, error) {
	if c.cached {
		return c.def, nil
	}
	def, err := c.MetadataSource.Definition(ctx, table)
	if err != nil {
		return "", err
	}
	c.def, c.cached = def, true
	return def, nil
}

// buildAttribute turns one column row into an Attribute. A nil attribute
// with a nil error means the column's type was not recognized and the
// column is dropped.
func buildAttribute(ctx context.Context, src MetadataSource, table string, row ColumnRow) (*Attribute, error) {
	typ, err := ParseType(strings.ToUpper(row.Type))
	if err != nil {
		if errors.Is(err, ErrUnknownType) {
			log.Printf("[WARN] %s.%s: unrecognized type %q, dropping column from the model", table, row.Field, row.Type)
			return nil, nil
		}
		return nil, fmt.Errorf("column %s.%s: %w", table, row.Field, err)
	}

	attr := &Attribute{Name: row.Field, DataType: typ}
	if row.Nullable == "NO" {
		attr.Constraints.NotNull = true
	}
	if strings.Contains(row.Extra, "auto_increment") {
		attr.Constraints.AutoIncrement = true
	}

	switch row.Key {
	case "UNI":
		attr.Constraints.Unique = true
	case "MUL":
		ref, err := resolveForeignKey(ctx, src, table, row.Field)
		if err != nil {
			return nil, err
		}
		attr.Constraints.ForeignKey = ref
	}
	return attr, nil
}

// resolveForeignKey extracts the referenced table and column of a
// MUL-classified column from the table's definition text.
func resolveForeignKey(ctx context.Context, src MetadataSource, table, column string) (*ForeignKeyRef, error) {
	def, err := src.Definition(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("fetch definition of %s: %w", table, err)
	}

	clause := regexp.MustCompile(
		fmt.Sprintf("FOREIGN KEY \\(`%s`\\) REFERENCES `([a-zA-Z0-9_]+)` \\(`([a-zA-Z0-9_]+)`\\)", regexp.QuoteMeta(column)))
	m := clause.FindStringSubmatch(def)
	if m == nil {
		return nil, &ForeignKeyError{Table: table, Column: column}
	}
	return &ForeignKeyRef{Table: m[1], Attribute: m[2]}, nil
}
