package model

// Source types understood by the loader
const (
	SourceCSV      = "csv"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// DefaultTable is the SQL table read when Source.Table is empty.
const DefaultTable = "orders"

// Source describes where the order dataset lives.
type Source struct {
	Type  string `json:"type"`            // csv, sqlite, postgres
	URL   string `json:"url"`             // file path or DSN
	Table string `json:"table,omitempty"` // SQL sources only
}

// ServerConfig holds the HTTP presentation settings.
type ServerConfig struct {
	Addr   string `json:"addr"`
	Source Source `json:"source"`
}
