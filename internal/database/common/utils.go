package common

import (
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
)

// validIdentifier matches SQL identifiers we are willing to interpolate
// into generated statements.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

// QueryResult is a fully materialized result set. Columns preserves the
// select-list order, which maps lose.
type QueryResult struct {
	Columns []string
	Rows    []map[string]interface{}
}

func (r *QueryResult) IsEmpty() bool {
	return r == nil || len(r.Rows) == 0
}

// CollectRows materializes a database/sql result set into a
// QueryResult, decoding []byte cells to strings.
func CollectRows(rows *sql.Rows) (*QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var results []map[string]interface{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return &QueryResult{Columns: columns, Rows: results}, nil
}

// DisplayValue renders a scanned cell for terminal output. Drivers
// disagree on concrete types (sqlite returns int64 and []byte, pgx
// returns pgtype wrappers already unwrapped to Go values), so this is
// the one place the differences get flattened.
func DisplayValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}
