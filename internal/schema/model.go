package schema

// NoPrimaryKey marks a table without a reflected primary key column.
const NoPrimaryKey = -1

// ForeignKeyRef names the attribute a foreign key points at. The reference
// is by name only; resolving it against another reflected Table is the
// caller's responsibility.
type ForeignKeyRef struct {
	Table     string
	Attribute string
}

// ConstraintSet holds the constraints of one attribute, at most one entry
// per kind. A column records at most one foreign key target here even
// though the engine allows several per column in principle.
type ConstraintSet struct {
	NotNull       bool
	Unique        bool
	AutoIncrement bool
	ForeignKey    *ForeignKeyRef
}

// Words returns the inline constraint words in their fixed rendering order.
// The foreign key is not a word; it renders as a trailing clause.
func (c ConstraintSet) Words() []string {
	var words []string
	if c.Unique {
		words = append(words, "Unique")
	}
	if c.NotNull {
		words = append(words, "Not Null")
	}
	if c.AutoIncrement {
		words = append(words, "Auto_increment")
	}
	return words
}

// Attribute is one reflected table column.
type Attribute struct {
	Name        string
	DataType    AttributeType
	Constraints ConstraintSet
}

// Table is a reflected database table. It is a point-in-time value object
// used for statement synthesis; it does not track the live table and may
// go stale if the underlying schema changes.
type Table struct {
	Name       string
	Attributes []Attribute
	// PrimaryKey indexes into Attributes, or NoPrimaryKey.
	PrimaryKey int
}

// ForeignKeys returns the references held by this table's foreign key
// constraints, in attribute order. Nil when the table has none.
func (t *Table) ForeignKeys() []ForeignKeyRef {
	var refs []ForeignKeyRef
	for i := range t.Attributes {
		if fk := t.Attributes[i].Constraints.ForeignKey; fk != nil {
			refs = append(refs, *fk)
		}
	}
	return refs
}
