package database

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewID generates a prefixed unique identifier, e.g. "CL_1714736400000_a3f29c".
// Ids are generated application-side rather than by backend auto-increment so
// they stay stable across backend swaps.
func NewID(prefix string) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// a timestamp-only id still keeps creates working.
		return fmt.Sprintf("%s_%d", prefix, time.Now().UnixMilli())
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), hex.EncodeToString(buf))
}

// QueryOptions is the contract every GetAll accepts: equality filters, a
// single sort key, and page-based pagination. Zero values mean "no filter",
// "default order" and "no pagination".
type QueryOptions struct {
	Filters   map[string]any
	SortBy    string
	SortOrder string // "asc" or "desc"
	Page      int
	Limit     int
}

// BuildQuery assembles backend criteria from caller options. columns is the
// repository's whitelist of known column names; unknown filter keys are
// dropped and an unknown SortBy falls back to created_at, so caller input
// never reaches a backend as a raw column name.
func BuildQuery(table string, opts QueryOptions, join *Join, columns map[string]bool) Query {
	q := Query{Table: table, Join: join}

	if len(opts.Filters) > 0 {
		q.Filters = make(map[string]any, len(opts.Filters))
		for k, v := range opts.Filters {
			if v == nil || !columns[k] {
				continue
			}
			q.Filters[k] = v
		}
	}

	q.OrderBy = "created_at"
	if opts.SortBy != "" && columns[opts.SortBy] {
		q.OrderBy = opts.SortBy
	}
	q.Descending = opts.SortOrder == "desc"

	if opts.Limit > 0 {
		q.Limit = opts.Limit
		page := opts.Page
		if page <= 0 {
			page = 1
		}
		q.Offset = (page - 1) * opts.Limit
	}
	return q
}

// SanitizePatch prepares a partial-merge update: only fields present in the
// patch and known to the repository survive; id and created_at are never
// updatable; updated_at is always stamped. An empty result is a
// ValidationError.
func SanitizePatch(patch map[string]any, updatable map[string]bool, now time.Time) (Row, error) {
	out := Row{}
	for k, v := range patch {
		if k == "id" || k == "created_at" || k == "updated_at" {
			continue
		}
		if !updatable[k] || v == nil {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil, &ValidationError{Message: "no fields to update"}
	}
	out["updated_at"] = now
	return out, nil
}
