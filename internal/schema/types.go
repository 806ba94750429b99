package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrUnknownType is returned by ParseType when a raw declaration matches no
// known MySQL type pattern. Callers drop the column from the model.
var ErrUnknownType = errors.New("unknown column type")

// TypeKind enumerates the MySQL column types the reflector understands.
type TypeKind int

const (
	TypeChar TypeKind = iota
	TypeVarChar
	TypeBinary
	TypeVarBinary
	TypeTinyBlob
	TypeTinyText
	TypeText
	TypeBlob
	TypeMediumText
	TypeMediumBlob
	TypeLongText
	TypeLongBlob
	TypeBit
	TypeTinyInt
	TypeBool
	TypeBoolean
	TypeSmallInt
	TypeMediumInt
	TypeInt
	TypeBigInt
	TypeFloat
	TypeDecimal
	TypeDate
	TypeDateTime
	TypeTimestamp
	TypeTime
	TypeYear
)

// AttributeType is a parsed column type declaration. Size carries the
// declared length, display width or decimal precision where the type has
// one; Scale is only used by TypeDecimal.
type AttributeType struct {
	Kind  TypeKind
	Size  int
	Scale int
}

// typePatterns is tried top to bottom against the upper-cased raw
// declaration. Every pattern is anchored at offset 0, so ordering only
// matters for true prefix overlaps: INTEGER before INT, BOOLEAN before
// BOOL, DATETIME before DATE and TIMESTAMP before TIME.
var typePatterns = []struct {
	re     *regexp.Regexp
	kind   TypeKind
	params int
}{
	{regexp.MustCompile(`^VARCHAR\((\d+)\)`), TypeVarChar, 1},
	{regexp.MustCompile(`^CHAR\((\d+)\)`), TypeChar, 1},
	{regexp.MustCompile(`^VARBINARY\((\d+)\)`), TypeVarBinary, 1},
	{regexp.MustCompile(`^BINARY\((\d+)\)`), TypeBinary, 1},
	{regexp.MustCompile(`^TINYBLOB`), TypeTinyBlob, 0},
	{regexp.MustCompile(`^TINYTEXT`), TypeTinyText, 0},
	{regexp.MustCompile(`^MEDIUMBLOB`), TypeMediumBlob, 0},
	{regexp.MustCompile(`^MEDIUMTEXT`), TypeMediumText, 0},
	{regexp.MustCompile(`^LONGBLOB`), TypeLongBlob, 0},
	{regexp.MustCompile(`^LONGTEXT`), TypeLongText, 0},
	{regexp.MustCompile(`^BLOB\((\d+)\)`), TypeBlob, 1},
	{regexp.MustCompile(`^TEXT`), TypeText, 0},
	{regexp.MustCompile(`^BIT\((\d+)\)`), TypeBit, 1},
	{regexp.MustCompile(`^TINYINT\((\d+)\)`), TypeTinyInt, 1},
	{regexp.MustCompile(`^SMALLINT\((\d+)\)`), TypeSmallInt, 1},
	{regexp.MustCompile(`^MEDIUMINT\((\d+)\)`), TypeMediumInt, 1},
	{regexp.MustCompile(`^BIGINT\((\d+)\)`), TypeBigInt, 1},
	{regexp.MustCompile(`^INTEGER\((\d+)\)`), TypeInt, 1},
	{regexp.MustCompile(`^INT\((\d+)\)`), TypeInt, 1},
	{regexp.MustCompile(`^FLOAT\((\d+)\)`), TypeFloat, 1},
	{regexp.MustCompile(`^DECIMAL\((\d+),(\d+)\)`), TypeDecimal, 2},
	{regexp.MustCompile(`^BOOLEAN`), TypeBoolean, 0},
	{regexp.MustCompile(`^BOOL`), TypeBool, 0},
	{regexp.MustCompile(`^DATETIME`), TypeDateTime, 0},
	{regexp.MustCompile(`^DATE`), TypeDate, 0},
	{regexp.MustCompile(`^TIMESTAMP`), TypeTimestamp, 0},
	{regexp.MustCompile(`^TIME`), TypeTime, 0},
	{regexp.MustCompile(`^YEAR`), TypeYear, 0},
}

// ParseType parses a raw type declaration as reported by SHOW FULL COLUMNS
// (upper-cased, e.g. "VARCHAR(255)", "INT(11)", "TEXT") into its
// AttributeType. An unrecognized declaration returns ErrUnknownType; a
// recognized declaration whose size parameter cannot be parsed returns a
// descriptive error.
func ParseType(raw string) (AttributeType, error) {
	for _, p := range typePatterns {
		m := p.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		t := AttributeType{Kind: p.kind}
		if p.params >= 1 {
			size, err := strconv.Atoi(m[1])
			if err != nil {
				return AttributeType{}, fmt.Errorf("type %q: bad size %q: %w", raw, m[1], err)
			}
			t.Size = size
		}
		if p.params >= 2 {
			scale, err := strconv.Atoi(m[2])
			if err != nil {
				return AttributeType{}, fmt.Errorf("type %q: bad scale %q: %w", raw, m[2], err)
			}
			t.Scale = scale
		}
		return t, nil
	}
	return AttributeType{}, fmt.Errorf("%w: %q", ErrUnknownType, raw)
}

// String renders the declaration form used in generated CREATE TABLE text.
func (t AttributeType) String() string {
	switch t.Kind {
	case TypeChar:
		return fmt.Sprintf("char(%d)", t.Size)
	case TypeVarChar:
		return fmt.Sprintf("varchar(%d)", t.Size)
	case TypeBinary:
		return fmt.Sprintf("binary(%d)", t.Size)
	case TypeVarBinary:
		return fmt.Sprintf("varbinary(%d)", t.Size)
	case TypeTinyBlob:
		return "tinyblob"
	case TypeTinyText:
		return "tinytext"
	case TypeText:
		return "text"
	case TypeBlob:
		return fmt.Sprintf("blob(%d)", t.Size)
	case TypeMediumText:
		return "mediumtext"
	case TypeMediumBlob:
		return "mediumblob"
	case TypeLongText:
		return "longtext"
	case TypeLongBlob:
		return "longblob"
	case TypeBit:
		return fmt.Sprintf("bit(%d)", t.Size)
	case TypeTinyInt:
		return fmt.Sprintf("tinyint(%d)", t.Size)
	case TypeBool:
		return "bool"
	case TypeBoolean:
		return "boolean"
	case TypeSmallInt:
		return fmt.Sprintf("smallint(%d)", t.Size)
	case TypeMediumInt:
		return fmt.Sprintf("mediumint(%d)", t.Size)
	case TypeInt:
		return fmt.Sprintf("int(%d)", t.Size)
	case TypeBigInt:
		return fmt.Sprintf("bigint(%d)", t.Size)
	case TypeFloat:
		return fmt.Sprintf("float(%d)", t.Size)
	case TypeDecimal:
		return fmt.Sprintf("decimal(%d,%d)", t.Size, t.Scale)
	case TypeDate:
		return "date"
	case TypeDateTime:
		return "datetime"
	case TypeTimestamp:
		return "timestamp"
	case TypeTime:
		return "time"
	case TypeYear:
		return "year"
	default:
		return "unknown"
	}
}
