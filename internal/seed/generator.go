package seed

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"db-reflect/internal/schema"
)

// getTypeMaxValue returns the largest value a column of the given integer
// kind can hold (signed range).
func getTypeMaxValue(kind schema.TypeKind) int {
	switch kind {
	case schema.TypeTinyInt:
		return 127
	case schema.TypeSmallInt:
		return 32767
	case schema.TypeMediumInt:
		return 8388607
	default:
		return 2147483647
	}
}

// Values produces one row of random SQL literals for a table, keyed by
// attribute name, ready for Table.InsertStatement. Auto increment columns
// are skipped so the engine assigns them.
func Values(t *schema.Table) map[string]string {
	vals := make(map[string]string, len(t.Attributes))
	for i := range t.Attributes {
		a := &t.Attributes[i]
		if a.Constraints.AutoIncrement {
			continue
		}
		vals[a.Name] = Literal(a.DataType)
	}
	return vals
}

// Literal renders a random SQL literal matching the given type. String and
// date literals come back quoted and escaped, numeric literals bare.
func Literal(t schema.AttributeType) string {
	switch t.Kind {
	case schema.TypeChar, schema.TypeVarChar, schema.TypeBinary, schema.TypeVarBinary:
		n := t.Size
		if n > 24 {
			n = 24
		}
		if n < 1 {
			n = 1
		}
		return quote(gofakeit.LetterN(uint(n)))
	case schema.TypeTinyText, schema.TypeText, schema.TypeMediumText, schema.TypeLongText:
		return quote(gofakeit.Sentence(5))
	case schema.TypeTinyBlob, schema.TypeBlob, schema.TypeMediumBlob, schema.TypeLongBlob:
		return quote(gofakeit.LetterN(16))
	case schema.TypeBit:
		return fmt.Sprintf("%d", gofakeit.Number(0, 1))
	case schema.TypeBool, schema.TypeBoolean:
		if gofakeit.Bool() {
			return "1"
		}
		return "0"
	case schema.TypeTinyInt, schema.TypeSmallInt, schema.TypeMediumInt, schema.TypeInt, schema.TypeBigInt:
		return fmt.Sprintf("%d", gofakeit.Number(0, getTypeMaxValue(t.Kind)))
	case schema.TypeFloat:
		return fmt.Sprintf("%.2f", gofakeit.Float64Range(0, 10000))
	case schema.TypeDecimal:
		return decimalLiteral(t.Size, t.Scale)
	case schema.TypeDate:
		return quote(gofakeit.Date().Format("2006-01-02"))
	case schema.TypeDateTime, schema.TypeTimestamp:
		return quote(gofakeit.Date().Format("2006-01-02 15:04:05"))
	case schema.TypeTime:
		return quote(gofakeit.Date().Format("15:04:05"))
	case schema.TypeYear:
		return fmt.Sprintf("%d", gofakeit.Number(1970, 2025))
	default:
		return "NULL"
	}
}

// decimalLiteral builds a value that fits DECIMAL(precision,scale): at most
// precision digits total, scale of them after the point.
func decimalLiteral(precision, scale int) string {
	if scale > precision {
		scale = precision
	}
	intDigits := precision - scale
	maxInt := 1
	for i := 0; i < intDigits && i < 9; i++ {
		maxInt *= 10
	}
	whole := gofakeit.Number(0, maxInt-1)
	if scale == 0 {
		return fmt.Sprintf("%d", whole)
	}
	maxFrac := 1
	for i := 0; i < scale && i < 9; i++ {
		maxFrac *= 10
	}
	return fmt.Sprintf("%d.%0*d", whole, scale, gofakeit.Number(0, maxFrac-1))
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
