package processor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestMySQLDSNWithMigrationOptions(t *testing.T) {
	out, err := mysqlDSNWithMigrationOptions("user:pass@tcp(localhost:3306)/app?charset=utf8mb4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := mysql.ParseDSN(out)
	if err != nil {
		t.Fatalf("parse normalized dsn: %v", err)
	}
	if !cfg.MultiStatements {
		t.Error("MultiStatements = false, want true")
	}
	if !cfg.ParseTime {
		t.Error("ParseTime = false, want true")
	}
	if cfg.Loc == nil || cfg.Loc.String() != "UTC" {
		t.Errorf("Loc = %v, want UTC", cfg.Loc)
	}
	if cfg.DBName != "app" {
		t.Errorf("DBName = %q, want app", cfg.DBName)
	}
}

func TestMySQLDSNWithMigrationOptionsInvalid(t *testing.T) {
	if _, err := mysqlDSNWithMigrationOptions("not a dsn"); err == nil {
		t.Fatal("expected error for invalid DSN")
	}
}

func TestSQLiteURI(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{":memory:", "file::memory:?_pragma=foreign_keys%281%29"},
		{"app.db", "file:app.db?_pragma=foreign_keys%281%29"},
		{"file:app.db?cache=shared", "file:app.db?_pragma=foreign_keys%281%29&cache=shared"},
		{"file:app.db?_pragma=foreign_keys(0)", "file:app.db?_pragma=foreign_keys%280%29"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			got, err := sqliteURI(tt.dsn)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("sqliteURI(%q) = %q, want %q", tt.dsn, got, tt.want)
			}
		})
	}

	if _, err := sqliteURI(""); err == nil {
		t.Error("sqliteURI(\"\") = nil error")
	}
}

func TestOpenWithoutDriver(t *testing.T) {
	for _, d := range []string{"db2", "oracle", "firebird", "generic"} {
		if HasDriver(d) {
			t.Errorf("HasDriver(%s) = true", d)
		}
		_, err := Open(context.Background(), d, "whatever")
		if !errors.Is(err, ErrNoDriver) {
			t.Errorf("Open(%s) error = %v, want ErrNoDriver", d, err)
		}
		if err != nil && !strings.Contains(err.Error(), "preview") {
			t.Errorf("Open(%s) error %q does not mention preview", d, err)
		}
	}
	if !HasDriver("Postgres") {
		t.Error("HasDriver(postgres) = false")
	}
}
