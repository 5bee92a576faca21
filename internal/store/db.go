package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ecommerce-dashboard/internal/model"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// driverFor maps a source type to its database/sql driver name
func driverFor(sourceType string) (string, error) {
	switch strings.ToLower(sourceType) {
	case model.SourceSQLite:
		return "sqlite3", nil
	case model.SourcePostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported sql source type: %s", sourceType)
	}
}

// Open connects to a SQL order source and verifies the connection.
func Open(ctx context.Context, src model.Source) (*sql.DB, error) {
	driver, err := driverFor(src.Type)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, src.URL)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", driver)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "ping %s database", driver)
	}
	return db, nil
}

// Rows is a text-typed table: column names plus one string slice per row.
// Absent values are empty strings.
type Rows struct {
	Columns []string
	Values  [][]string
}

// QueryOrders reads every row of the order table as text cells.
func QueryOrders(ctx context.Context, db *sql.DB, table string) (*Rows, error) {
	if table == "" {
		table = model.DefaultTable
	}
	if !identPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+table)
	if err != nil {
		return nil, errors.Wrapf(err, "query table %s", table)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "read columns")
	}

	out := &Rows{Columns: columns}
	cells := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "scan row %d", len(out.Values)+1)
		}
		record := make([]string, len(columns))
		for i, c := range cells {
			if c.Valid {
				record[i] = c.String
			}
		}
		out.Values = append(out.Values, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate rows")
	}
	return out, nil
}
