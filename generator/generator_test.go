package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

func mustNew(t *testing.T, dialect string, opts Options) *Generator {
	t.Helper()
	g, err := New(dialect, opts)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dialect, err)
	}
	return g
}

func generate(t *testing.T, g *Generator, e expressions.Expression) string {
	t.Helper()
	sql, err := g.Generate(e)
	if err != nil {
		t.Fatalf("%s: Generate(%s) error: %v", g.Dialect(), e.Describe(), err)
	}
	return sql
}

func hanaTestTable() *expressions.CreateTable {
	return &expressions.CreateTable{
		SchemaName: model.Schema("TestSchema"),
		TableName:  "TestTable1",
		Columns: []*model.ColumnDefinition{
			{Name: "TestColumn1", Type: model.String, PrimaryKey: true, PrimaryKeyName: "PK_TestTable1"},
			{Name: "TestColumn2", Type: model.Int32},
		},
	}
}

func TestHanaCreateTable(t *testing.T) {
	g := mustNew(t, "hana", Options{})

	got := generate(t, g, hanaTestTable())
	want := `CREATE COLUMN TABLE "TestTable1" ("TestColumn1" NVARCHAR(255), "TestColumn2" INTEGER, PRIMARY KEY ("TestColumn1"));`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestHanaColumnClauses(t *testing.T) {
	g := mustNew(t, "hana", Options{})

	tests := []struct {
		name   string
		column *model.ColumnDefinition
		want   string
	}{
		{
			name:   "nullable",
			column: &model.ColumnDefinition{Name: "TestColumn1", Type: model.String, Nullable: model.Nullable},
			want:   `"TestColumn1" NVARCHAR(255) NULL`,
		},
		{
			name:   "default null",
			column: &model.ColumnDefinition{Name: "TestColumn1", Type: model.String, Default: model.NullDefault()},
			want:   `"TestColumn1" NVARCHAR(255) DEFAULT NULL`,
		},
		{
			name:   "string default",
			column: &model.ColumnDefinition{Name: "TestColumn1", Type: model.String, Default: model.Default("Default")},
			want:   `"TestColumn1" NVARCHAR(255) DEFAULT N'Default'`,
		},
		{
			name:   "identity",
			column: &model.ColumnDefinition{Name: "TestColumn1", Type: model.Int32, Identity: true},
			want:   `"TestColumn1" INTEGER GENERATED ALWAYS AS IDENTITY`,
		},
		{
			name:   "custom type",
			column: &model.ColumnDefinition{Name: "TestColumn1", CustomType: "ST_POINT"},
			want:   `"TestColumn1" ST_POINT`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := g.d.column.Render(tt.column)
			if err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHanaMultiColumnPrimaryKey(t *testing.T) {
	g := mustNew(t, "hana", Options{})
	e := hanaTestTable()
	e.Columns[1].PrimaryKey = true

	got := generate(t, g, e)
	if !strings.HasSuffix(got, `PRIMARY KEY ("TestColumn1", "TestColumn2"));`) {
		t.Errorf("composite primary key missing:\n%s", got)
	}
	if strings.Contains(got, "CONSTRAINT") {
		t.Errorf("HANA should not name the primary key:\n%s", got)
	}
}

func TestHanaTableStatements(t *testing.T) {
	g := mustNew(t, "hana", Options{})

	tests := []struct {
		expr expressions.Expression
		want string
	}{
		{&expressions.DeleteTable{SchemaName: model.Schema("TestSchema"), TableName: "TestTable1"}, `DROP TABLE "TestTable1";`},
		{&expressions.RenameTable{OldName: "TestTable1", NewName: "TestTable2"}, `RENAME TABLE "TestTable1" TO "TestTable2";`},
		{&expressions.RenameColumn{TableName: "TestTable1", OldName: "a", NewName: "b"}, `RENAME COLUMN "TestTable1"."a" TO "b";`},
		{&expressions.DeleteColumn{TableName: "TestTable1", ColumnNames: []string{"a", "b"}}, `ALTER TABLE "TestTable1" DROP ("a");ALTER TABLE "TestTable1" DROP ("b");`},
	}
	for _, tt := range tests {
		if got := generate(t, g, tt.expr); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.expr.Describe(), got, tt.want)
		}
	}
}

func TestPostgresStatements(t *testing.T) {
	g := mustNew(t, "postgres", Options{})

	index := &expressions.CreateIndex{Index: model.IndexDefinition{
		Name:       "IX_users_tags",
		SchemaName: model.Schema(""),
		TableName:  "users",
		Columns:    []model.IndexColumnDefinition{{Name: "tags"}},
	}}
	if err := index.Index.Features.Set(model.PostgresIndexMethod, model.StringValue("gin")); err != nil {
		t.Fatal(err)
	}
	if err := index.Index.Features.Set(model.PostgresIndexIncludes, model.ListValue{"name"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		expr expressions.Expression
		want string
	}{
		{
			&expressions.DeleteConstraint{Constraint: model.ConstraintDefinition{
				ConstraintName: "ThaConstraint",
				SchemaName:     model.Schema("ThaSchema"),
				TableName:      "ThaTable",
			}},
			`ALTER TABLE "ThaSchema"."ThaTable" DROP CONSTRAINT "ThaConstraint";`,
		},
		{
			&expressions.CreateTable{
				SchemaName: model.Schema(""),
				TableName:  "users",
				Columns: []*model.ColumnDefinition{
					{Name: "id", Type: model.Int32, Identity: true, PrimaryKey: true, PrimaryKeyName: "PK_users"},
					{Name: "name", Type: model.String, Size: 100, Nullable: model.Nullable},
				},
			},
			`CREATE TABLE "public"."users" ("id" serial NOT NULL, "name" varchar(100), CONSTRAINT "PK_users" PRIMARY KEY ("id"));`,
		},
		{index, `CREATE INDEX "IX_users_tags" ON "public"."users" USING gin ("tags" ASC) INCLUDE ("name");`},
		{
			&expressions.AlterDefaultConstraint{TableName: "users", ColumnName: "name", DefaultValue: "x"},
			`ALTER TABLE "users" ALTER "name" DROP DEFAULT, ALTER "name" SET DEFAULT 'x';`,
		},
		{
			&expressions.AlterSchema{SourceSchemaName: model.Schema("a"), TableName: "users", DestinationSchemaName: "b"},
			`ALTER TABLE "a"."users" SET SCHEMA "b";`,
		},
		{
			&expressions.DeleteColumn{TableName: "users", ColumnNames: []string{"a", "b"}},
			"ALTER TABLE \"users\" DROP COLUMN \"a\";\nALTER TABLE \"users\" DROP COLUMN \"b\";",
		},
		{
			&expressions.DeleteData{TableName: "users", Rows: []model.Row{{{Column: "id", Value: 1}, {Column: "name", Value: nil}}}},
			`DELETE FROM "users" WHERE "id" = 1 AND "name" IS NULL;`,
		},
		{
			&expressions.UpdateData{TableName: "users", Set: model.Row{{Column: "name", Value: model.DBNull}}, AllRows: true},
			`UPDATE "users" SET "name" = NULL WHERE 1 = 1;`,
		},
	}
	for _, tt := range tests {
		if got := generate(t, g, tt.expr); got != tt.want {
			t.Errorf("%s:\ngot  %s\nwant %s", tt.expr.Describe(), got, tt.want)
		}
	}
}

func TestPostgresUnquotedIdentifiers(t *testing.T) {
	g := mustNew(t, "postgres", Options{UnquotedIdentifiers: true})

	got := generate(t, g, &expressions.DeleteTable{TableName: "users"})
	if got != "DROP TABLE users;" {
		t.Errorf("got %q", got)
	}
	got = generate(t, g, &expressions.DeleteTable{TableName: "user"})
	if got != `DROP TABLE "user";` {
		t.Errorf("reserved word should stay quoted, got %q", got)
	}
}

func TestSQLServerStatements(t *testing.T) {
	g := mustNew(t, "sqlserver", Options{})

	insert := &expressions.InsertData{
		TableName: "users",
		Rows:      []model.Row{{{Column: "id", Value: 1}, {Column: "name", Value: "a'b"}}},
	}
	if err := insert.Features.Set(model.SqlServerIdentityInsert, model.BoolValue(true)); err != nil {
		t.Fatal(err)
	}
	index := &expressions.CreateIndex{Index: model.IndexDefinition{
		Name:      "IX_users",
		TableName: "users",
		Unique:    true,
		Columns:   []model.IndexColumnDefinition{{Name: "a"}, {Name: "b", Direction: model.Descending}},
	}}
	if err := index.Index.Features.Set(model.SqlServerIncludes, model.ListValue{"c"}); err != nil {
		t.Fatal(err)
	}
	if err := index.Index.Features.Set(model.SqlServerOnlineIndex, model.BoolValue(true)); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		expr expressions.Expression
		want string
	}{
		{&expressions.RenameTable{SchemaName: model.Schema("dbo"), OldName: "Old", NewName: "New"}, `sp_rename N'[dbo].[Old]', N'New'`},
		{&expressions.RenameColumn{SchemaName: model.Schema("dbo"), TableName: "T", OldName: "A", NewName: "B"}, `sp_rename N'[dbo].[T].[A]', N'B'`},
		{insert, `SET IDENTITY_INSERT [users] ON; INSERT INTO [users] ([id], [name]) VALUES (1, N'a''b'); SET IDENTITY_INSERT [users] OFF`},
		{index, `CREATE UNIQUE INDEX [IX_users] ON [users] ([a] ASC, [b] DESC) INCLUDE ([c]) WITH (ONLINE=ON)`},
		{&expressions.AlterSchema{SourceSchemaName: model.Schema("old"), TableName: "T", DestinationSchemaName: "new"}, `ALTER SCHEMA [new] TRANSFER [old].[T]`},
	}
	for _, tt := range tests {
		if got := generate(t, g, tt.expr); got != tt.want {
			t.Errorf("%s:\ngot  %s\nwant %s", tt.expr.Describe(), got, tt.want)
		}
	}
}

func TestSQLServerCreateTableWithDescription(t *testing.T) {
	g := mustNew(t, "sqlserver", Options{})
	e := &expressions.CreateTable{
		SchemaName:  model.Schema(""),
		TableName:   "users",
		Description: "People",
		Columns: []*model.ColumnDefinition{
			{Name: "id", Type: model.Int32, Identity: true, PrimaryKey: true, TableName: "users"},
			{Name: "name", Type: model.String, Size: 100, Default: model.Default("x"), TableName: "users"},
		},
	}

	got := generate(t, g, e)
	want := "CREATE TABLE [dbo].[users] ([id] INT NOT NULL IDENTITY(1,1), " +
		"[name] NVARCHAR(100) NOT NULL CONSTRAINT [DF_users_name] DEFAULT N'x', PRIMARY KEY ([id]))" +
		"\nGO\n" +
		"EXEC sys.sp_addextendedproperty @name = N'MS_Description', @value = N'People', " +
		"@level0type = N'SCHEMA', @level0name = 'dbo', @level1type = N'Table', @level1name = 'users'\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CreateTable mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLServerDeleteColumnDropsDefaultFirst(t *testing.T) {
	g := mustNew(t, "sqlserver", Options{})

	got := generate(t, g, &expressions.DeleteColumn{TableName: "users", ColumnNames: []string{"a", "b"}})
	batches := strings.Split(got, "\nGO\n")
	if len(batches) != 2 {
		t.Fatalf("got %d batches, want 2:\n%s", len(batches), got)
	}
	for i, col := range []string{"a", "b"} {
		if !strings.Contains(batches[i], "FROM sys.default_constraints") {
			t.Errorf("batch %d does not drop the default constraint", i)
		}
		if !strings.HasSuffix(batches[i], "ALTER TABLE [users] DROP COLUMN ["+col+"];") {
			t.Errorf("batch %d does not end with the DROP COLUMN:\n%s", i, batches[i])
		}
	}

	_, err := g.Generate(&expressions.DeleteColumn{TableName: "users"})
	var malformed *MalformedInputError
	if !errors.As(err, &malformed) {
		t.Errorf("empty DeleteColumn error = %v, want MalformedInputError", err)
	}
}

func TestMySQLStatements(t *testing.T) {
	g := mustNew(t, "mysql", Options{})

	table := &expressions.CreateTable{
		SchemaName: model.Schema("ignored"),
		TableName:  "users",
		Columns:    []*model.ColumnDefinition{{Name: "id", Type: model.Int32, Identity: true, PrimaryKey: true}},
	}
	if got := generate(t, g, table); got != "CREATE TABLE `users` (`id` INTEGER NOT NULL AUTO_INCREMENT, PRIMARY KEY (`id`)) ENGINE = INNODB" {
		t.Errorf("CreateTable got %q", got)
	}
	if err := table.Features.Set(model.MySQLTableEngine, model.StringValue("MyISAM")); err != nil {
		t.Fatal(err)
	}
	if got := generate(t, g, table); !strings.HasSuffix(got, "ENGINE = MyISAM") {
		t.Errorf("engine override ignored: %q", got)
	}

	pk := &expressions.DeleteConstraint{Constraint: model.ConstraintDefinition{Type: model.PrimaryKeyConstraint, TableName: "users"}}
	if got := generate(t, g, pk); got != "ALTER TABLE `users` DROP PRIMARY KEY" {
		t.Errorf("DeleteConstraint got %q", got)
	}
}

func TestSQLiteIdentityCarriesPrimaryKey(t *testing.T) {
	g := mustNew(t, "sqlite", Options{})

	got := generate(t, g, &expressions.CreateTable{
		TableName: "users",
		Columns: []*model.ColumnDefinition{
			{Name: "id", Type: model.Int64, Identity: true, PrimaryKey: true},
			{Name: "name", Type: model.String},
		},
	})
	want := `CREATE TABLE "users" ("id" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT, "name" TEXT NOT NULL)`
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDB2DeleteColumn(t *testing.T) {
	g := mustNew(t, "db2", Options{})

	tests := []struct {
		columns []string
		want    string
	}{
		{nil, ""},
		{[]string{""}, ""},
		{[]string{"A", "B"}, "ALTER TABLE TestTable DROP COLUMN A DROP COLUMN B"},
	}
	for _, tt := range tests {
		got := generate(t, g, &expressions.DeleteColumn{TableName: "TestTable", ColumnNames: tt.columns})
		if got != tt.want {
			t.Errorf("DeleteColumn(%q) = %q, want %q", tt.columns, got, tt.want)
		}
	}
}

func TestDB2RenameColumnUnsupported(t *testing.T) {
	e := &expressions.RenameColumn{TableName: "T", OldName: "a", NewName: "b"}

	_, err := mustNew(t, "db2", Options{}).Generate(e)
	var unsupported *UnsupportedFeatureError
	if !errors.As(err, &unsupported) {
		t.Fatalf("strict error = %v, want UnsupportedFeatureError", err)
	}
	if unsupported.Message != db2Unsupported {
		t.Errorf("message = %q", unsupported.Message)
	}

	got := generate(t, mustNew(t, "db2", Options{Compatibility: Loose}), e)
	if got != CompatibilityPrefix+db2Unsupported || !IsCompatibilityWarning(got) {
		t.Errorf("loose output = %q", got)
	}
}

func TestForeignKeyColumnCountMismatch(t *testing.T) {
	e := &expressions.CreateForeignKey{ForeignKey: model.ForeignKeyDefinition{
		Name:           "FK_orders_users",
		ForeignTable:   "orders",
		ForeignColumns: []string{"user_id", "tenant_id"},
		PrimaryTable:   "users",
		PrimaryColumns: []string{"id"},
	}}
	for _, name := range Dialects() {
		for _, mode := range []CompatibilityMode{Strict, Loose} {
			g := mustNew(t, name, Options{Compatibility: mode})
			_, err := g.Generate(e)
			var malformed *MalformedInputError
			if !errors.As(err, &malformed) {
				t.Errorf("%s/%s: error = %v, want MalformedInputError", name, mode, err)
				continue
			}
			if malformed.Message != "Number of primary columns and secondary columns must be equal" {
				t.Errorf("%s: message = %q", name, malformed.Message)
			}
		}
	}
}

func TestForeignKeyRules(t *testing.T) {
	e := &expressions.CreateForeignKey{ForeignKey: model.ForeignKeyDefinition{
		Name:           "FK_orders_users",
		ForeignTable:   "orders",
		ForeignColumns: []string{"user_id"},
		PrimaryTable:   "users",
		PrimaryColumns: []string{"id"},
		OnDelete:       model.Cascade,
		OnUpdate:       model.SetNull,
	}}

	got := generate(t, mustNew(t, "generic", Options{}), e)
	want := `ALTER TABLE "orders" ADD CONSTRAINT "FK_orders_users" FOREIGN KEY ("user_id") REFERENCES "users" ("id") ON DELETE CASCADE ON UPDATE SET NULL`
	if got != want {
		t.Errorf("generic:\ngot  %s\nwant %s", got, want)
	}

	got = generate(t, mustNew(t, "oracle", Options{}), e)
	if strings.Contains(got, "ON UPDATE") || !strings.Contains(got, "ON DELETE CASCADE") {
		t.Errorf("oracle should keep ON DELETE and drop ON UPDATE: %s", got)
	}
}

func TestPerformDBOperationGeneratesNothing(t *testing.T) {
	for _, name := range Dialects() {
		g := mustNew(t, name, Options{})
		for _, e := range []expressions.Expression{
			&expressions.PerformDBOperation{Description: "noop"},
			&expressions.ExecuteSQLScript{Path: "seed.sql"},
		} {
			if got := generate(t, g, e); got != "" {
				t.Errorf("%s: %s generated %q", name, e.Describe(), got)
			}
		}
	}
}

func TestExecuteSQLPassesThrough(t *testing.T) {
	for _, name := range Dialects() {
		got := generate(t, mustNew(t, name, Options{}), &expressions.ExecuteSQL{SQL: "SELECT 1"})
		if got != "SELECT 1" {
			t.Errorf("%s: got %q", name, got)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	e := &expressions.CreateTable{
		SchemaName:  model.Schema("app"),
		TableName:   "users",
		Description: "People",
		Columns: []*model.ColumnDefinition{
			{Name: "id", Type: model.Int64, PrimaryKey: true, Description: "key"},
			{Name: "name", Type: model.String, Size: 50, Nullable: model.Nullable, Default: model.Default("anon")},
			{Name: "created", Type: model.DateTime, Default: model.Default(model.CurrentDateTime)},
		},
	}
	for _, name := range Dialects() {
		g := mustNew(t, name, Options{Compatibility: Loose})
		first, err := g.Generate(e)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		for i := 0; i < 5; i++ {
			if again, _ := g.Generate(e); again != first {
				t.Errorf("%s: output changed between runs:\n%s\n%s", name, first, again)
				break
			}
		}
	}
}

func TestStrictFeatures(t *testing.T) {
	index := &expressions.CreateIndex{Index: model.IndexDefinition{
		Name:      "IX",
		TableName: "users",
		Columns:   []model.IndexColumnDefinition{{Name: "a"}},
	}}
	if err := index.Index.Features.Set(model.SqlServerOnlineIndex, model.BoolValue(true)); err != nil {
		t.Fatal(err)
	}
	index.Index.Features.SetUnchecked("VendorSpecific", model.BoolValue(true))

	if _, err := mustNew(t, "postgres", Options{}).Generate(index); err != nil {
		t.Errorf("features are ignored by default, got %v", err)
	}
	_, err := mustNew(t, "postgres", Options{StrictFeatures: true}).Generate(index)
	var unsupported *UnsupportedFeatureError
	if !errors.As(err, &unsupported) {
		t.Errorf("strict features error = %v, want UnsupportedFeatureError", err)
	}
	if _, err := mustNew(t, "sqlserver", Options{StrictFeatures: true}).Generate(index); err != nil {
		t.Errorf("sqlserver supports the feature, got %v", err)
	}
}

func TestStrictFeaturesOnColumns(t *testing.T) {
	rowGuid := func() *model.ColumnDefinition {
		c := &model.ColumnDefinition{Name: "rg", Type: model.Guid, Nullable: model.NotNullable}
		c.Features.SetUnchecked(model.SqlServerRowGuidColumn, model.BoolValue(true))
		return c
	}
	tests := []struct {
		name string
		expr expressions.Expression
	}{
		{"create table", &expressions.CreateTable{TableName: "t", Columns: []*model.ColumnDefinition{
			{Name: "id", Type: model.Int32},
			rowGuid(),
		}}},
		{"create column", &expressions.CreateColumn{TableName: "t", Column: rowGuid()}},
		{"alter column", &expressions.AlterColumn{TableName: "t", Column: rowGuid()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := mustNew(t, "postgres", Options{}).Generate(tt.expr); err != nil {
				t.Errorf("features are ignored by default, got %v", err)
			}
			_, err := mustNew(t, "postgres", Options{StrictFeatures: true}).Generate(tt.expr)
			var unsupported *UnsupportedFeatureError
			if !errors.As(err, &unsupported) {
				t.Errorf("strict features error = %v, want UnsupportedFeatureError", err)
			}
			if _, err := mustNew(t, "sqlserver", Options{StrictFeatures: true}).Generate(tt.expr); err != nil {
				t.Errorf("sqlserver supports the feature, got %v", err)
			}
		})
	}
}

func TestNullPredicatesUseIsAcrossDialects(t *testing.T) {
	for _, dialect := range Dialects() {
		for _, null := range []any{nil, model.DBNull} {
			g := mustNew(t, dialect, Options{})
			q := g.Quoter()
			want := q.QuoteColumnName("name") + " IS NULL"
			bad := q.QuoteColumnName("name") + " = NULL"

			del := generate(t, g, &expressions.DeleteData{TableName: "users", Rows: []model.Row{{
				{Column: "id", Value: 1},
				{Column: "name", Value: null},
			}}})
			upd := generate(t, g, &expressions.UpdateData{
				TableName: "users",
				Set:       model.Row{{Column: "id", Value: 2}},
				Where:     model.Row{{Column: "name", Value: null}},
			})
			for kind, sql := range map[string]string{"delete": del, "update": upd} {
				if !strings.Contains(sql, want) || strings.Contains(sql, bad) {
					t.Errorf("%s %s with %T null:\n%s\nwant %q", dialect, kind, null, sql, want)
				}
			}
		}
	}
}

func TestUnsupportedOperationsPerDialect(t *testing.T) {
	tests := []struct {
		dialect string
		expr    expressions.Expression
	}{
		{"sqlite", &expressions.AlterColumn{TableName: "t", Column: &model.ColumnDefinition{Name: "c", Type: model.Int32}}},
		{"sqlite", &expressions.CreateSchema{SchemaName: "s"}},
		{"mysql", &expressions.CreateSequence{Sequence: model.SequenceDefinition{Name: "seq"}}},
		{"redshift", &expressions.CreateIndex{Index: model.IndexDefinition{Name: "i", TableName: "t", Columns: []model.IndexColumnDefinition{{Name: "c"}}}}},
		{"snowflake", &expressions.DeleteIndex{Index: model.IndexDefinition{Name: "i", TableName: "t"}}},
		{"firebird", &expressions.RenameTable{OldName: "a", NewName: "b"}},
		{"oracle", &expressions.CreateSchema{SchemaName: "s"}},
		{"hana", &expressions.AlterDefaultConstraint{TableName: "t", ColumnName: "c", DefaultValue: 1}},
		{"generic", &expressions.AlterSchema{TableName: "t", DestinationSchemaName: "s"}},
	}
	for _, tt := range tests {
		_, err := mustNew(t, tt.dialect, Options{}).Generate(tt.expr)
		var unsupported *UnsupportedFeatureError
		if !errors.As(err, &unsupported) {
			t.Errorf("%s %s: error = %v, want UnsupportedFeatureError", tt.dialect, tt.expr.Describe(), err)
		}
		got, err := mustNew(t, tt.dialect, Options{Compatibility: Loose}).Generate(tt.expr)
		if err != nil || !IsCompatibilityWarning(got) {
			t.Errorf("%s %s loose: got %q, %v", tt.dialect, tt.expr.Describe(), got, err)
		}
	}
}

func TestCreateSequence(t *testing.T) {
	e := &expressions.CreateSequence{Sequence: model.SequenceDefinition{
		Name:       "seq",
		SchemaName: model.Schema("app"),
		Increment:  model.Int64Ptr(2),
		StartWith:  model.Int64Ptr(100),
		Cycle:      true,
	}}
	got := generate(t, mustNew(t, "postgres", Options{}), e)
	want := `CREATE SEQUENCE "app"."seq" INCREMENT BY 2 START WITH 100 CYCLE;`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNew(t *testing.T) {
	if _, err := New("Postgres", Options{}); err != nil {
		t.Errorf("dialect names are case-insensitive: %v", err)
	}
	_, err := New("access", Options{})
	if err == nil || !strings.Contains(err.Error(), "must be one of: db2, firebird") {
		t.Errorf("unknown dialect error = %v", err)
	}
	want := []string{"db2", "firebird", "generic", "hana", "mysql", "oracle", "postgres", "redshift", "snowflake", "sqlite", "sqlserver"}
	if diff := cmp.Diff(want, Dialects()); diff != "" {
		t.Errorf("Dialects() mismatch (-want +got):\n%s", diff)
	}
}
