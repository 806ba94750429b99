package schema_test

import (
	"testing"

	"db-reflect/internal/schema"
)

func tableWithRefs(name string, refs ...schema.ForeignKeyRef) *schema.Table {
	t := &schema.Table{Name: name, PrimaryKey: schema.NoPrimaryKey}
	for _, ref := range refs {
		r := ref
		t.Attributes = append(t.Attributes, schema.Attribute{
			Name:        ref.Table + "_id",
			DataType:    schema.AttributeType{Kind: schema.TypeInt, Size: 11},
			Constraints: schema.ConstraintSet{ForeignKey: &r},
		})
	}
	return t
}

func TestSortByDependencySimpleChain(t *testing.T) {
	tables := []*schema.Table{
		tableWithRefs("order_items", schema.ForeignKeyRef{Table: "orders", Attribute: "id"}),
		tableWithRefs("orders", schema.ForeignKeyRef{Table: "users", Attribute: "id"}),
		tableWithRefs("users"),
	}

	sorted := schema.SortByDependency(tables)

	if len(sorted) != 3 {
		t.Fatalf("got %d tables, want 3", len(sorted))
	}
	if sorted[0].Name != "users" || sorted[1].Name != "orders" || sorted[2].Name != "order_items" {
		t.Errorf("order = %s, %s, %s; want users, orders, order_items",
			sorted[0].Name, sorted[1].Name, sorted[2].Name)
	}
}

func TestSortByDependencyCycle(t *testing.T) {
	// a <-> b cycle plus an independent table c. Every table must still
	// come out, independent ones first, and the result is deterministic.
	tables := []*schema.Table{
		tableWithRefs("a", schema.ForeignKeyRef{Table: "b", Attribute: "id"}),
		tableWithRefs("b", schema.ForeignKeyRef{Table: "a", Attribute: "id"}),
		tableWithRefs("c"),
	}

	first := schema.SortByDependency(tables)
	if len(first) != 3 {
		t.Fatalf("got %d tables, want 3", len(first))
	}
	if first[0].Name != "c" {
		t.Errorf("independent table should come first, got %s", first[0].Name)
	}

	seen := map[string]bool{}
	for _, tbl := range first {
		seen[tbl.Name] = true
	}
	if !seen["a"] || !seen["b"] || !seen["c"] {
		t.Error("not every table survived the sort")
	}

	second := schema.SortByDependency(tables)
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatalf("sort is not deterministic: %s vs %s at %d", first[i].Name, second[i].Name, i)
		}
	}
}

func TestSortByDependencyIgnoresExternalRefs(t *testing.T) {
	// A reference to a table outside the set must not block anything.
	tables := []*schema.Table{
		tableWithRefs("logs", schema.ForeignKeyRef{Table: "archive", Attribute: "id"}),
	}

	sorted := schema.SortByDependency(tables)
	if len(sorted) != 1 || sorted[0].Name != "logs" {
		t.Errorf("got %+v, want just logs", sorted)
	}
}
