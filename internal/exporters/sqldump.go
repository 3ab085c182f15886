package exporters

import (
	"fmt"
	"strings"
	"time"
)

// SQLDump renders every non-empty table as one INSERT block with inlined,
// single-quote-escaped values. The output is a content blob; persisting it
// anywhere is the caller's concern.
func SQLDump(tables []Table, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("-- hostpanel backup\n")
	b.WriteString("-- generated at " + generatedAt.UTC().Format(time.RFC3339) + "\n\n")

	for _, t := range tables {
		if len(t.Rows) == 0 {
			continue
		}
		cols := t.Columns
		if len(cols) == 0 {
			cols = ColumnsOf(t.Rows)
		}

		b.WriteString(fmt.Sprintf("-- %s (%d rows)\n", t.Name, len(t.Rows)))
		b.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES\n", t.Name, strings.Join(cols, ", ")))
		for i, row := range t.Rows {
			vals := make([]string, len(cols))
			for j, col := range cols {
				vals[j] = sqlValue(row[col])
			}
			sep := ",\n"
			if i == len(t.Rows)-1 {
				sep = ";\n\n"
			}
			b.WriteString("  (" + strings.Join(vals, ", ") + ")" + sep)
		}
	}
	return b.String()
}

func sqlValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int, int32, int64:
		return fmt.Sprint(x)
	case float32, float64:
		return fmt.Sprint(x)
	case time.Time:
		return "'" + x.UTC().Format("2006-01-02 15:04:05") + "'"
	case *time.Time:
		if x == nil {
			return "NULL"
		}
		return sqlValue(*x)
	case []byte:
		return quoteSQL(string(x))
	case string:
		return quoteSQL(x)
	default:
		return quoteSQL(fmt.Sprint(x))
	}
}

func quoteSQL(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
