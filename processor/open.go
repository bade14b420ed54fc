package processor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/SAP/go-hdb/driver" // SAP HANA
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/microsoft/go-mssqldb" // SQL Server
	_ "github.com/snowflakedb/gosnowflake"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// ErrNoDriver is returned by Open for dialects without a bundled driver.
// Those dialects can still be previewed.
var ErrNoDriver = errors.New("no bundled driver for dialect")

// driver opens one dialect.
type driver struct {
	name string
	open func(ctx context.Context, dsn string) (Conn, error)
}

var drivers = map[string]driver{
	"postgres":  {name: "PostgreSQL", open: openPgx},
	"redshift":  {name: "Redshift", open: openPgx},
	"mysql":     {name: "MySQL", open: openMySQL},
	"sqlite":    {name: "SQLite", open: openSQLite},
	"sqlserver": {name: "SQL Server", open: openSQL("sqlserver")},
	"hana":      {name: "SAP HANA", open: openSQL("hdb")},
	"snowflake": {name: "Snowflake", open: openSQL("snowflake")},
}

// HasDriver reports whether Open can connect to dialect.
func HasDriver(dialect string) bool {
	_, ok := drivers[strings.ToLower(dialect)]
	return ok
}

// Open connects to dsn with the driver for dialect and pings it.
func Open(ctx context.Context, dialect, dsn string) (Conn, error) {
	d, ok := drivers[strings.ToLower(dialect)]
	if !ok {
		return nil, fmt.Errorf("%w %q (run with preview enabled)", ErrNoDriver, dialect)
	}
	conn, err := d.open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", d.name, err)
	}
	return conn, nil
}

func openPgx(ctx context.Context, dsn string) (Conn, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return NewPgxConn(pool), nil
}

func openMySQL(ctx context.Context, dsn string) (Conn, error) {
	normalized, err := mysqlDSNWithMigrationOptions(dsn)
	if err != nil {
		return nil, err
	}
	return openSQL("mysql")(ctx, normalized)
}

func openSQLite(ctx context.Context, dsn string) (Conn, error) {
	uri, err := sqliteURI(dsn)
	if err != nil {
		return nil, err
	}
	db, err := openDB(ctx, "sqlite", uri)
	if err != nil {
		return nil, err
	}
	// One connection: an in-memory database lives and dies with it, and
	// SQLite allows a single writer anyway.
	db.SetMaxOpenConns(1)
	return NewSQLConn(db), nil
}

func openSQL(driverName string) func(ctx context.Context, dsn string) (Conn, error) {
	return func(ctx context.Context, dsn string) (Conn, error) {
		db, err := openDB(ctx, driverName, dsn)
		if err != nil {
			return nil, err
		}
		return NewSQLConn(db), nil
	}
}

func openDB(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}
	return db, nil
}

// mysqlDSNWithMigrationOptions enables what generated scripts rely on:
// several statements per Exec and UTC time values.
func mysqlDSNWithMigrationOptions(baseDSN string) (string, error) {
	cfg, err := mysql.ParseDSN(baseDSN)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.MultiStatements = true
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// sqliteURI turns a path or file: URI into a URI with foreign key
// enforcement on. ":memory:" stays in memory.
func sqliteURI(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("sqlite dsn is empty")
	}
	if dsn == ":memory:" {
		dsn = "file::memory:"
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("parse sqlite URI: %w", err)
	}
	q := u.Query()
	if !strings.Contains(q.Get("_pragma"), "foreign_keys") {
		q.Add("_pragma", "foreign_keys(1)")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
