package schema_test

import (
	"testing"

	"db-reflect/internal/schema"
)

func personTable() *schema.Table {
	return &schema.Table{
		Name: "table_1",
		Attributes: []schema.Attribute{
			{Name: "PersonID", DataType: schema.AttributeType{Kind: schema.TypeInt, Size: 16}},
			{Name: "LastName", DataType: schema.AttributeType{Kind: schema.TypeVarChar, Size: 255}},
			{Name: "FirstName", DataType: schema.AttributeType{Kind: schema.TypeVarChar, Size: 255}},
			{Name: "Address", DataType: schema.AttributeType{Kind: schema.TypeVarChar, Size: 255}},
			{Name: "City", DataType: schema.AttributeType{Kind: schema.TypeVarChar, Size: 255}},
		},
		PrimaryKey: schema.NoPrimaryKey,
	}
}

func TestCreateStatementWithConstraints(t *testing.T) {
	table := &schema.Table{
		Name: "table_1",
		Attributes: []schema.Attribute{
			{
				Name:     "attr_1",
				DataType: schema.AttributeType{Kind: schema.TypeText},
				Constraints: schema.ConstraintSet{
					NotNull: true,
					Unique:  true,
				},
			},
		},
		PrimaryKey: 0,
	}

	want := "CREATE TABLE table_1 (attr_1 text Unique Not Null, PRIMARY KEY(attr_1))"
	if got := table.CreateStatement(); got != want {
		t.Errorf("CreateStatement() = %q, want %q", got, want)
	}
}

func TestCreateStatementNoConstraints(t *testing.T) {
	table := &schema.Table{
		Name: "table_1",
		Attributes: []schema.Attribute{
			{Name: "attr_1", DataType: schema.AttributeType{Kind: schema.TypeText}},
		},
		PrimaryKey: 0,
	}

	want := "CREATE TABLE table_1 (attr_1 text, PRIMARY KEY(attr_1))"
	if got := table.CreateStatement(); got != want {
		t.Errorf("CreateStatement() = %q, want %q", got, want)
	}
}

func TestCreateStatementForeignKey(t *testing.T) {
	table := &schema.Table{
		Name: "orders",
		Attributes: []schema.Attribute{
			{
				Name:        "id",
				DataType:    schema.AttributeType{Kind: schema.TypeInt, Size: 11},
				Constraints: schema.ConstraintSet{NotNull: true, AutoIncrement: true},
			},
			{
				Name:     "customer_id",
				DataType: schema.AttributeType{Kind: schema.TypeInt, Size: 11},
				Constraints: schema.ConstraintSet{
					NotNull:    true,
					ForeignKey: &schema.ForeignKeyRef{Table: "customers", Attribute: "id"},
				},
			},
		},
		PrimaryKey: 0,
	}

	want := "CREATE TABLE orders (id int(11) Not Null Auto_increment," +
		"customer_id int(11) Not Null, FOREIGN KEY(customer_id) REFERENCES customers(id), PRIMARY KEY(id))"
	if got := table.CreateStatement(); got != want {
		t.Errorf("CreateStatement() = %q, want %q", got, want)
	}
}

func TestCreateStatementNoPrimaryKey(t *testing.T) {
	table := personTable()
	want := "CREATE TABLE table_1 (PersonID int(16),LastName varchar(255),FirstName varchar(255),Address varchar(255),City varchar(255))"
	if got := table.CreateStatement(); got != want {
		t.Errorf("CreateStatement() = %q, want %q", got, want)
	}
}

func TestDropStatement(t *testing.T) {
	if got := personTable().DropStatement(); got != "DROP TABLE table_1" {
		t.Errorf("DropStatement() = %q", got)
	}
}

func TestSelectAllStatement(t *testing.T) {
	if got := personTable().SelectAllStatement(); got != "SELECT * FROM table_1" {
		t.Errorf("SelectAllStatement() = %q", got)
	}
}

func TestInsertStatementAllColumns(t *testing.T) {
	values := map[string]string{
		"PersonID":  "23",
		"LastName":  "'Doe'",
		"FirstName": "'John'",
		"Address":   "'1st Street'",
		"City":      "'Night City'",
	}

	got, ok := personTable().InsertStatement(values)
	if !ok {
		t.Fatal("InsertStatement() returned ok=false")
	}
	want := "INSERT INTO table_1(PersonID,LastName,FirstName,Address,City) VALUES (23,'Doe','John','1st Street','Night City')"
	if got != want {
		t.Errorf("InsertStatement() = %q, want %q", got, want)
	}
}

func TestInsertStatementSubsetKeepsDeclarationOrder(t *testing.T) {
	values := map[string]string{
		"FirstName": "'John'",
		"PersonID":  "23",
		"LastName":  "'Doe'",
	}

	table := personTable()
	want := "INSERT INTO table_1(PersonID,LastName,FirstName) VALUES (23,'Doe','John')"

	// The map's iteration order must never leak into the statement.
	for i := 0; i < 20; i++ {
		got, ok := table.InsertStatement(values)
		if !ok {
			t.Fatal("InsertStatement() returned ok=false")
		}
		if got != want {
			t.Fatalf("InsertStatement() = %q, want %q", got, want)
		}
	}
}

func TestInsertStatementEmptyValues(t *testing.T) {
	if stmt, ok := personTable().InsertStatement(map[string]string{}); ok {
		t.Errorf("InsertStatement() with no values returned %q, want ok=false", stmt)
	}
}

func TestInsertStatementUnknownColumnsOnly(t *testing.T) {
	values := map[string]string{"NoSuchColumn": "1"}
	if stmt, ok := personTable().InsertStatement(values); ok {
		t.Errorf("InsertStatement() with unknown columns returned %q, want ok=false", stmt)
	}
}
