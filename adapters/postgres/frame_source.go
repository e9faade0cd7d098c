package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"edakit/domain/dataset"
	"edakit/internal/errors"
	"edakit/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

var _ ports.FrameSource = (*FrameSource)(nil)

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	return db, nil
}

// FrameSource loads a Frame from the result of a read-only query. Column
// names come from the result set; NULLs become missing cells.
type FrameSource struct {
	db    *sqlx.DB
	query string
	args  []interface{}
}

// NewFrameSource creates a source for query on db.
func NewFrameSource(db *sqlx.DB, query string, args ...interface{}) *FrameSource {
	return &FrameSource{db: db, query: query, args: args}
}

// Load runs the query and converts every row.
func (s *FrameSource) Load(ctx context.Context) (*dataset.Frame, error) {
	rows, err := s.db.QueryxContext(ctx, s.query, s.args...)
	if err != nil {
		return nil, errors.DatabaseError("failed to run frame query", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.DatabaseError("failed to read result columns", err)
	}

	var records [][]string
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, errors.DatabaseError("failed to scan row", err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatCell(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("failed to iterate rows", err)
	}

	return dataset.NewFrame(columns, records)
}

// formatCell renders a driver value as frame text. NULL is the empty cell.
func formatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}
