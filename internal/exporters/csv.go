package exporters

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"
)

// CSV renders a table snapshot as RFC 4180 CSV with a header row.
func CSV(t Table) (string, error) {
	cols := t.Columns
	if len(cols) == 0 {
		cols = ColumnsOf(t.Rows)
	}

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(cols); err != nil {
		return "", fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range t.Rows {
		record := make([]string, len(cols))
		for i, col := range cols {
			record[i] = csvValue(row[col])
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

func csvValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case *time.Time:
		if x == nil {
			return ""
		}
		return x.UTC().Format(time.RFC3339)
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
