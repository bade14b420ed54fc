package runner

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Limetric/schemaferry/conventions"
	"github.com/Limetric/schemaferry/generator"
	"github.com/Limetric/schemaferry/migration"
	"github.com/Limetric/schemaferry/model"
	"github.com/Limetric/schemaferry/processor"
)

func newSQLiteRunner(t *testing.T, ms []migration.Migration, preview bool) (*Runner, *processor.Processor) {
	t.Helper()
	ctx := context.Background()
	conn, err := processor.Open(ctx, "sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	gen, err := generator.New("sqlite", generator.Options{})
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(&bytes.Buffer{}, "", 0)
	p, err := processor.New(gen, conn, processor.Options{PreviewOnly: preview, Logger: logger})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { p.Close() })

	r, err := New(p, ms, Options{Conventions: conventions.NewSet(conventions.Options{}), Logger: logger})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return r, p
}

func createTable(version int64, table string) migration.Migration {
	return &migration.Func{
		Meta: migration.Info{Version: version, Description: "create_" + table},
		UpFunc: func(c *migration.Context) {
			c.Create().Table(table).
				WithColumn("id").AsInt64().NotNullable().
				WithColumn("name").AsString(100).Nullable().Indexed("")
		},
		DownFunc: func(c *migration.Context) {
			c.Delete().Table(table)
		},
	}
}

func tableExists(t *testing.T, p *processor.Processor, table string) bool {
	t.Helper()
	ok, err := p.TableExists(context.Background(), "", table)
	if err != nil {
		t.Fatalf("TableExists(%s) error: %v", table, err)
	}
	return ok
}

func appliedVersions(t *testing.T, r *Runner) []int64 {
	t.Helper()
	list, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	var out []int64
	for _, s := range list {
		if s.Applied {
			out = append(out, s.Info.Version)
		}
	}
	return out
}

func TestMigrateUpAppliesInVersionOrder(t *testing.T) {
	seed := &migration.Func{
		Meta: migration.Info{Version: 3, Description: "seed"},
		UpFunc: func(c *migration.Context) {
			c.Insert("teams").Row(map[string]any{"id": 1, "name": "core"})
		},
		DownFunc: func(c *migration.Context) {
			c.Delete().FromTable("teams").AllRows()
		},
	}
	// Deliberately out of order: the seed needs the table from version 1.
	r, p := newSQLiteRunner(t, []migration.Migration{seed, createTable(2, "users"), createTable(1, "teams")}, false)
	ctx := context.Background()

	if err := r.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("MigrateUp() error: %v", err)
	}
	if !tableExists(t, p, "teams") || !tableExists(t, p, "users") || !tableExists(t, p, DefaultVersionTable) {
		t.Fatal("tables missing after MigrateUp")
	}
	if diff := cmp.Diff([]int64{1, 2, 3}, appliedVersions(t, r)); diff != "" {
		t.Errorf("applied versions mismatch (-want +got):\n%s", diff)
	}

	// A second run finds nothing pending.
	if err := r.MigrateUp(ctx, 0); err != nil {
		t.Fatalf("second MigrateUp() error: %v", err)
	}
}

func TestMigrateUpStopsAtTarget(t *testing.T) {
	r, p := newSQLiteRunner(t, []migration.Migration{createTable(1, "a"), createTable(2, "b")}, false)
	if err := r.MigrateUp(context.Background(), 1); err != nil {
		t.Fatal(err)
	}
	if !tableExists(t, p, "a") || tableExists(t, p, "b") {
		t.Error("MigrateUp(1) applied the wrong migrations")
	}
}

func TestRollback(t *testing.T) {
	ms := []migration.Migration{createTable(1, "a"), createTable(2, "b"), createTable(3, "c")}
	r, p := newSQLiteRunner(t, ms, false)
	ctx := context.Background()
	if err := r.MigrateUp(ctx, 0); err != nil {
		t.Fatal(err)
	}

	if err := r.Rollback(ctx, 1); err != nil {
		t.Fatalf("Rollback(1) error: %v", err)
	}
	if tableExists(t, p, "c") {
		t.Error("table c still exists after Rollback(1)")
	}
	if diff := cmp.Diff([]int64{1, 2}, appliedVersions(t, r)); diff != "" {
		t.Errorf("applied versions mismatch (-want +got):\n%s", diff)
	}

	if err := r.RollbackTo(ctx, 0); err != nil {
		t.Fatalf("RollbackTo(0) error: %v", err)
	}
	if tableExists(t, p, "a") || tableExists(t, p, "b") {
		t.Error("tables remain after RollbackTo(0)")
	}
	if got := appliedVersions(t, r); len(got) != 0 {
		t.Errorf("applied versions = %v, want none", got)
	}

	if err := r.Rollback(ctx, 0); err == nil {
		t.Error("Rollback(0) = nil, want error")
	}
}

func TestInvalidMigrationTouchesNothing(t *testing.T) {
	broken := &migration.Func{
		Meta: migration.Info{Version: 2, Description: "broken"},
		UpFunc: func(c *migration.Context) {
			c.Create().Table("half").WithColumn("id").AsInt32()
			c.Update("half").Set(map[string]any{"id": 1})
		},
	}
	r, p := newSQLiteRunner(t, []migration.Migration{createTable(1, "ok"), broken}, false)

	err := r.MigrateUp(context.Background(), 0)
	var invalid *migration.InvalidMigrationError
	if !errors.As(err, &invalid) {
		t.Fatalf("MigrateUp() error = %v, want *InvalidMigrationError", err)
	}
	if tableExists(t, p, "half") {
		t.Error("table from rejected migration was created")
	}
	if diff := cmp.Diff([]int64{1}, appliedVersions(t, r)); diff != "" {
		t.Errorf("applied versions mismatch (-want +got):\n%s", diff)
	}
}

func TestFailedMigrationRollsBack(t *testing.T) {
	failing := &migration.Func{
		Meta: migration.Info{Version: 1, Description: "fails"},
		UpFunc: func(c *migration.Context) {
			c.Create().Table("partial").WithColumn("id").AsInt32()
			c.Execute().SQL("INSERT INTO no_such_table VALUES (1)")
		},
	}
	r, p := newSQLiteRunner(t, []migration.Migration{failing}, false)

	if err := r.MigrateUp(context.Background(), 0); err == nil {
		t.Fatal("MigrateUp() = nil, want execution error")
	}
	if tableExists(t, p, "partial") {
		t.Error("table from failed migration survived the rollback")
	}
	if got := appliedVersions(t, r); len(got) != 0 {
		t.Errorf("applied versions = %v, want none", got)
	}
}

func TestBuilderErrorsStopMigration(t *testing.T) {
	bad := &migration.Func{
		Meta: migration.Info{Version: 1},
		UpFunc: func(c *migration.Context) {
			c.Create().Table("t").WithColumn("id").AsInt32().WithFeature(model.Feature("Nope"), model.BoolValue(true))
		},
	}
	r, p := newSQLiteRunner(t, []migration.Migration{bad}, false)
	err := r.MigrateUp(context.Background(), 0)
	if !errors.Is(err, model.ErrUnknownFeature) {
		t.Fatalf("MigrateUp() error = %v, want ErrUnknownFeature", err)
	}
	if tableExists(t, p, "t") {
		t.Error("table created despite builder error")
	}
}

func TestPreviewAppliesNothing(t *testing.T) {
	r, p := newSQLiteRunner(t, []migration.Migration{createTable(1, "a")}, true)
	if err := r.MigrateUp(context.Background(), 0); err != nil {
		t.Fatalf("MigrateUp() error: %v", err)
	}
	if tableExists(t, p, "a") || tableExists(t, p, DefaultVersionTable) {
		t.Error("preview created tables")
	}
	list, err := r.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Applied {
		t.Errorf("List() = %+v, want one pending migration", list)
	}
}

func TestNewRejectsDuplicateVersions(t *testing.T) {
	gen, err := generator.New("sqlite", generator.Options{})
	if err != nil {
		t.Fatal(err)
	}
	p, err := processor.New(gen, nil, processor.Options{PreviewOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := New(p, []migration.Migration{createTable(1, "a"), createTable(1, "b")}, Options{}); err == nil {
		t.Error("New() = nil error, want duplicate version error")
	}
}

func TestSchemaQueriesSeeDatabase(t *testing.T) {
	sawTable := false
	conditional := &migration.Func{
		Meta: migration.Info{Version: 2, Description: "conditional"},
		UpFunc: func(c *migration.Context) {
			if c.Schema("").Table("a").Exists() {
				sawTable = true
				c.Alter().Table("a").AddColumn("extra").AsString(10).Nullable()
			}
		},
	}
	r, p := newSQLiteRunner(t, []migration.Migration{createTable(1, "a"), conditional}, false)
	if err := r.MigrateUp(context.Background(), 0); err != nil {
		t.Fatalf("MigrateUp() error: %v", err)
	}
	if !sawTable {
		t.Error("schema query did not see table a")
	}
	rows, err := p.Query(context.Background(), "SELECT extra FROM a")
	if err != nil {
		t.Fatalf("added column missing: %v", err)
	}
	rows.Close()
}
