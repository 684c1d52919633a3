package sqlite

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/fwojciec/festin"
)

// whereEqual narrows a query to rows where column equals *value. A nil
// value leaves the query unchanged.
func whereEqual(query *strings.Builder, args *[]any, column string, value *string) {
	if value == nil {
		return
	}
	query.WriteString(" AND " + column + " = ?")
	*args = append(*args, *value)
}

// appendPagination appends LIMIT and OFFSET clauses when they are set.
// SQLite only accepts OFFSET after a LIMIT, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// parseTime reads a stored RFC3339 timestamp. An empty value is the zero
// time, used for runs that have not finished.
func parseTime(value, column string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, festin.Errorf(festin.EINTERNAL, "corrupt %s %q: %v", column, value, err)
	}
	return t, nil
}

// decodeList reads a JSON-encoded string list column.
func decodeList(value, column string) ([]string, error) {
	var list []string
	if err := json.Unmarshal([]byte(value), &list); err != nil {
		return nil, festin.Errorf(festin.EINTERNAL, "corrupt %s: %v", column, err)
	}
	return list, nil
}
