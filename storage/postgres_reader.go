package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/lib/pq"

	"realestate-bot/utils"
)

// PostgresSource reads the listing table from PostgreSQL, for deployments
// where the project sheet is mirrored into a database table.
type PostgresSource struct {
	dsn   string
	table string
	retry *utils.RetryConfig
}

// NewPostgresSource creates a source that reads every row of table.
func NewPostgresSource(dsn, table string, retry *utils.RetryConfig) *PostgresSource {
	return &PostgresSource{dsn: dsn, table: table, retry: retry}
}

// Describe returns the DSN with the password removed, plus the table name.
func (p *PostgresSource) Describe() string {
	return redactDSN(p.dsn) + "/" + p.table
}

// Load opens a connection, waits for the server to answer, and reads the
// table in the order the server returns it. NULL cells become empty strings.
func (p *PostgresSource) Load(ctx context.Context) ([]string, [][]string, error) {
	db, err := sql.Open("postgres", p.dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: open: %w", err)
	}
	defer db.Close()

	ping := func() error { return db.PingContext(ctx) }
	if p.retry != nil {
		err = p.retry.Do(ctx, "postgres ping", ping)
	} else {
		err = ping()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: ping: %w", err)
	}

	rows, err := db.QueryContext(ctx, p.selectQuery())
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: select %s: %w", p.table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: columns: %w", err)
	}

	var data [][]string
	for rows.Next() {
		cells := make([]sql.NullString, len(header))
		dest := make([]interface{}, len(header))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("postgres: scan row: %w", err)
		}

		row := make([]string, len(header))
		for i, c := range cells {
			if c.Valid {
				row[i] = c.String
			}
		}
		data = append(data, row)
	}
	return header, data, rows.Err()
}

func (p *PostgresSource) selectQuery() string {
	return "SELECT * FROM " + pq.QuoteIdentifier(p.table)
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "postgres"
	}
	return u.Redacted()
}
