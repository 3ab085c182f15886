// Package exporters renders table snapshots into portable formats: the SQL
// INSERT dump used by backups, and CSV/JSON downloads for single tables.
package exporters

import (
	"sort"
)

// Table is one table's snapshot handed to an exporter. Rows map column
// name -> value; Columns fixes the column order for textual output.
type Table struct {
	Name    string
	Columns []string
	Rows    []map[string]any
}

// ColumnsOf returns the sorted union of column names across rows, with id
// first when present.
func ColumnsOf(rows []map[string]any) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		if k != "id" {
			cols = append(cols, k)
		}
	}
	sort.Strings(cols)
	if seen["id"] {
		cols = append([]string{"id"}, cols...)
	}
	return cols
}
