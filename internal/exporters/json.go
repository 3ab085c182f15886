package exporters

import (
	"encoding/json"
	"fmt"
)

// JSON renders a table snapshot as an indented JSON array of row objects.
func JSON(t Table) (string, error) {
	rows := t.Rows
	if rows == nil {
		rows = []map[string]any{}
	}
	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s as json: %w", t.Name, err)
	}
	return string(out), nil
}
