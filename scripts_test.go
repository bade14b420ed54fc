package main

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Limetric/schemaferry/conventions"
	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/generator"
	"github.com/Limetric/schemaferry/migration"
	"github.com/Limetric/schemaferry/processor"
	"github.com/Limetric/schemaferry/runner"
)

func writeScripts(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadScriptMigrations(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"0002_add_teams.up.sql":   "CREATE TABLE teams (id INTEGER);",
		"0001_init.up.sql":        "CREATE TABLE users (id INTEGER);",
		"0001_init.down.sql":      "DROP TABLE users;",
		"README.md":               "not a migration",
		"0003_notes.sql":          "ignored, no direction",
		"0010_big_jump.up.sql":    "SELECT 1;",
		"0010_big_jump.down.sql":  "SELECT 1;",
		"0002_add_teams.down.sql": "DROP TABLE teams;",
	})

	ms, err := loadScriptMigrations(dir, nil)
	if err != nil {
		t.Fatalf("loadScriptMigrations() error: %v", err)
	}
	var got []string
	for _, m := range ms {
		got = append(got, m.Info().String())
	}
	if diff := cmp.Diff([]string{"1_init", "2_add_teams", "10_big_jump"}, got); diff != "" {
		t.Errorf("migrations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadScriptMigrations_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "down without up",
			files:   map[string]string{"0001_init.down.sql": "DROP TABLE t;"},
			wantErr: "has a down script but no up script",
		},
		{
			name: "same version two names",
			files: map[string]string{
				"0001_init.up.sql":  "SELECT 1;",
				"0001_other.up.sql": "SELECT 2;",
			},
			wantErr: "has two names",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadScriptMigrations(writeScripts(t, tt.files), nil)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("loadScriptMigrations() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}

	if _, err := loadScriptMigrations(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Error("loadScriptMigrations() = nil error for missing dir")
	}
}

func TestScriptMigrationEmitsScripts(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"0001_init.up.sql": "SELECT '$(owner)';",
	})
	ms, err := loadScriptMigrations(dir, map[string]string{"owner": "app"})
	if err != nil {
		t.Fatal(err)
	}

	c := migration.NewContext(context.Background(), nil)
	ms[0].Up(c)
	exprs := c.Expressions()
	if len(exprs) != 1 {
		t.Fatalf("Up() emitted %d expressions, want 1", len(exprs))
	}
	script, ok := exprs[0].(*expressions.ExecuteSQLScript)
	if !ok {
		t.Fatalf("Up() emitted %T, want *expressions.ExecuteSQLScript", exprs[0])
	}
	if script.Path != filepath.Join(dir, "0001_init.up.sql") {
		t.Errorf("Path = %q", script.Path)
	}
	if script.Parameters["owner"] != "app" {
		t.Errorf("Parameters = %v", script.Parameters)
	}

	// Without a down script the rollback must fail validation.
	down := migration.NewContext(context.Background(), nil)
	ms[0].Down(down)
	if err := migration.Validate(ms[0], down.Expressions(), conventions.NewSet(conventions.Options{})); err == nil {
		t.Error("Down() without a script passed validation")
	}
}

func TestScriptMigrationsRunAgainstSQLite(t *testing.T) {
	dir := writeScripts(t, map[string]string{
		"0001_users.up.sql":   "CREATE TABLE users (id INTEGER PRIMARY KEY, role TEXT);\nINSERT INTO users (id, role) VALUES (1, '$(role)');",
		"0001_users.down.sql": "DROP TABLE users;",
	})
	ms, err := loadScriptMigrations(dir, map[string]string{"role": "admin"})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	conn, err := processor.Open(ctx, "sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	gen, err := generator.New("sqlite", generator.Options{})
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(&bytes.Buffer{}, "", 0)
	p, err := processor.New(gen, conn, processor.Options{Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()

	r, err := runner.New(p, ms, runner.Options{
		Conventions: conventions.NewSet(conventions.Options{RootPath: dir}),
		Logger:      logger,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("MigrateUp() error: %v", err)
	}

	rows, err := p.Query(ctx, "SELECT role FROM users WHERE id = 1")
	if err != nil {
		t.Fatal(err)
	}
	var role string
	if !rows.Next() {
		t.Fatal("seeded row missing")
	}
	if err := rows.Scan(&role); err != nil {
		t.Fatal(err)
	}
	rows.Close()
	if role != "admin" {
		t.Errorf("role = %q, want %q", role, "admin")
	}

	if err := r.Rollback(ctx, 1); err != nil {
		t.Fatalf("Rollback() error: %v", err)
	}
	if ok, _ := p.TableExists(ctx, "", "users"); ok {
		t.Error("users table survived rollback")
	}
}
