package schema

import (
	"fmt"
	"strings"
)

// definition renders the attribute's CREATE TABLE fragment:
// "<name> <type>[ <constraint words>][, FOREIGN KEY(<name>) REFERENCES <table>(<attr>)]".
func (a *Attribute) definition() string {
	s := fmt.Sprintf("%s %s", a.Name, a.DataType)
	if words := a.Constraints.Words(); len(words) > 0 {
		s += " " + strings.Join(words, " ")
	}
	if fk := a.Constraints.ForeignKey; fk != nil {
		s += fmt.Sprintf(", FOREIGN KEY(%s) REFERENCES %s(%s)", a.Name, fk.Table, fk.Attribute)
	}
	return s
}

// CreateStatement renders the CREATE TABLE statement for the table.
func (t *Table) CreateStatement() string {
	defs := make([]string, len(t.Attributes))
	for i := range t.Attributes {
		defs[i] = t.Attributes[i].definition()
	}
	body := strings.Join(defs, ",")

	if t.PrimaryKey >= 0 && t.PrimaryKey < len(t.Attributes) {
		return fmt.Sprintf("CREATE TABLE %s (%s, PRIMARY KEY(%s))", t.Name, body, t.Attributes[t.PrimaryKey].Name)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", t.Name, body)
}

// DropStatement renders the DROP TABLE statement for the table.
func (t *Table) DropStatement() string {
	return fmt.Sprintf("DROP TABLE %s", t.Name)
}

// SelectAllStatement renders a SELECT of every column of the table.
func (t *Table) SelectAllStatement() string {
	return fmt.Sprintf("SELECT * FROM %s", t.Name)
}

// InsertStatement renders an INSERT for the attributes present as keys in
// values, keeping the table's declaration order regardless of map order.
// Values are spliced in verbatim; the caller is responsible for quoting and
// escaping string literals. ok is false when no attribute matches.
func (t *Table) InsertStatement(values map[string]string) (stmt string, ok bool) {
	var cols, vals []string
	for i := range t.Attributes {
		name := t.Attributes[i].Name
		v, present := values[name]
		if !present {
			continue
		}
		cols = append(cols, name)
		vals = append(vals, v)
	}
	if len(cols) == 0 {
		return "", false
	}
	return fmt.Sprintf("INSERT INTO %s(%s) VALUES (%s)",
		t.Name, strings.Join(cols, ","), strings.Join(vals, ",")), true
}
