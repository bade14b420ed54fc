package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

var sqlServerTypes = mustTypeMap("sqlserver", []typeRow{
	{model.AnsiStringFixedLength, 0, "CHAR(255)"},
	{model.AnsiStringFixedLength, 8000, "CHAR($size)"},
	{model.AnsiString, 0, "VARCHAR(255)"},
	{model.AnsiString, 8000, "VARCHAR($size)"},
	{model.AnsiString, 2147483647, "VARCHAR(MAX)"},
	{model.Binary, 0, "VARBINARY(8000)"},
	{model.Binary, 8000, "VARBINARY($size)"},
	{model.Binary, 2147483647, "VARBINARY(MAX)"},
	{model.Boolean, 0, "BIT"},
	{model.Byte, 0, "TINYINT"},
	{model.Currency, 0, "MONEY"},
	{model.Date, 0, "DATE"},
	{model.DateTime, 0, "DATETIME"},
	{model.DateTime2, 0, "DATETIME2"},
	{model.DateTimeOffset, 0, "DATETIMEOFFSET"},
	{model.Decimal, 0, "DECIMAL(19,5)"},
	{model.Decimal, 38, "DECIMAL($size,$precision)"},
	{model.Double, 0, "DOUBLE PRECISION"},
	{model.Guid, 0, "UNIQUEIDENTIFIER"},
	{model.Int16, 0, "SMALLINT"},
	{model.Int32, 0, "INT"},
	{model.Int64, 0, "BIGINT"},
	{model.Object, 0, "SQL_VARIANT"},
	{model.SByte, 0, "SMALLINT"},
	{model.Single, 0, "REAL"},
	{model.StringFixedLength, 0, "NCHAR(255)"},
	{model.StringFixedLength, 4000, "NCHAR($size)"},
	{model.String, 0, "NVARCHAR(255)"},
	{model.String, 4000, "NVARCHAR($size)"},
	{model.String, 1073741823, "NVARCHAR(MAX)"},
	{model.Time, 0, "TIME"},
	{model.UInt16, 0, "INT"},
	{model.UInt32, 0, "BIGINT"},
	{model.UInt64, 0, "DECIMAL(20,0)"},
	{model.VarNumeric, 0, "NUMERIC"},
	{model.Xml, 0, "XML"},
})

func newSQLServer(opts Options) *Generator {
	q := newQuoter("sqlserver")
	q.open, q.close, q.closeEscape = "[", "]", "]]"
	q.schemaFallback = "dbo"
	q.nationalStrings = true
	q.formatBool = boolOneZero
	// DATETIME keeps three fractional digits and rejects longer literals.
	q.formatDateTime = func(t time.Time) string { return "'" + t.Format("2006-01-02T15:04:05.999") + "'" }
	q.systemMethods = map[model.SystemMethod]string{
		model.NewGuid:               "NEWID()",
		model.NewSequentialID:       "NEWSEQUENTIALID()",
		model.CurrentDateTime:       "GETDATE()",
		model.CurrentDateTimeOffset: "SYSDATETIMEOFFSET()",
		model.CurrentUTCDateTime:    "GETUTCDATE()",
		model.CurrentUser:           "CURRENT_USER",
	}

	col := newColumnRenderer(q, sqlServerTypes)
	col.formatIdentity = identityClause("IDENTITY(1,1)")
	col.namedDefaults = true
	col.formatExtra = func(_ *columnRenderer, c *model.ColumnDefinition) (string, error) {
		if on, _ := c.Features.Bool(model.SqlServerRowGuidColumn); on {
			return "ROWGUIDCOL", nil
		}
		return "", nil
	}

	stmts := genericStatements()
	stmts.alterColumn = sqlServerAlterColumn
	stmts.deleteColumn = sqlServerDeleteColumn
	stmts.renameColumn = sqlServerRenameColumn
	stmts.renameTable = sqlServerRenameTable
	stmts.createIndex = sqlServerCreateIndex
	stmts.deleteIndex = sqlServerDeleteIndex
	stmts.createConstraint = sqlServerCreateConstraint
	stmts.deleteConstraint = sqlServerDeleteConstraint
	stmts.alterSchema = sqlServerAlterSchema
	stmts.insertData = sqlServerInsertData
	stmts.alterDefaultConstraint = sqlServerAlterDefaultConstraint
	stmts.deleteDefaultConstraint = sqlServerDeleteDefaultConstraint

	return newGenerator(&dialect{
		name:                     "sqlserver",
		quoter:                   q,
		column:                   col,
		describer:                extendedProperty{},
		stmts:                    stmts,
		separator:                "; ",
		addColumn:                "ALTER TABLE %s ADD %s",
		alterColumn:              "ALTER TABLE %s ALTER COLUMN %s",
		emptyDeleteColumnIsError: true,
		compose:                  sqlServerCompose,
		features: map[model.Feature]bool{
			model.SqlServerOnlineIndex:    true,
			model.SqlServerIncludes:       true,
			model.SqlServerRowGuidColumn:  true,
			model.SqlServerIdentityInsert: true,
		},
	}, opts)
}

// sqlServerCompose puts description statements in their own batch.
func sqlServerCompose(_ *Generator, ddl string, extra []string) string {
	if len(extra) == 0 {
		return ddl
	}
	return ddl + "\nGO\n" + strings.Join(extra, ";") + "\n"
}

func sqlServerWith(f model.Features) string {
	online, ok := f.Bool(model.SqlServerOnlineIndex)
	if !ok {
		return ""
	}
	if online {
		return " WITH (ONLINE=ON)"
	}
	return " WITH (ONLINE=OFF)"
}

// sqlServerAlterColumn cannot carry a DEFAULT clause, so a default is set
// by a second batch that replaces the default constraint.
func sqlServerAlterColumn(g *Generator, e *expressions.AlterColumn) (string, error) {
	c := e.Column.Clone()
	c.Default = model.NoDefault()
	rendered, err := g.d.column.Render(c)
	if err != nil {
		return "", err
	}
	ddl := fmt.Sprintf(g.d.alterColumn, g.table(e.TableName, e.SchemaName), rendered)
	if e.Column.Default.IsSet() {
		def, err := sqlServerAlterDefaultConstraint(g, &expressions.AlterDefaultConstraint{
			SchemaName:   e.SchemaName,
			TableName:    e.TableName,
			ColumnName:   e.Column.Name,
			DefaultValue: e.Column.Default.Value(),
		})
		if err != nil {
			return "", err
		}
		ddl += "\nGO\n" + def
	}
	return g.d.compose(g, ddl, columnDescription(g, e.SchemaName, e.TableName, e.Column)), nil
}

func sqlServerDropDefaultScript(g *Generator, schema model.SchemaName, table, column string) string {
	t := EscapeLiteral(g.table(table, schema))
	return "DECLARE @default sysname, @sql nvarchar(max);\n\n" +
		"-- get name of default constraint\n" +
		"SELECT @default = name\n" +
		"FROM sys.default_constraints\n" +
		"WHERE parent_object_id = object_id('" + t + "')\n" +
		"AND type = 'D'\n" +
		"AND parent_column_id = (\n" +
		"SELECT column_id\n" +
		"FROM sys.columns\n" +
		"WHERE object_id = object_id('" + t + "')\n" +
		"AND name = '" + EscapeLiteral(column) + "'\n" +
		");\n\n" +
		"-- create alter table command to drop constraint as string and run it\n" +
		"SET @sql = N'ALTER TABLE " + t + " DROP CONSTRAINT ' + QUOTENAME(@default);\n" +
		"EXEC sp_executesql @sql;"
}

// sqlServerDeleteColumn drops each column's default constraint first; SQL
// Server refuses to drop a column that still has one.
func sqlServerDeleteColumn(g *Generator, e *expressions.DeleteColumn) (string, error) {
	if len(e.ColumnNames) == 0 {
		return "", &MalformedInputError{Message: "DeleteColumn requires at least one column name"}
	}
	table := g.table(e.TableName, e.SchemaName)
	batches := make([]string, len(e.ColumnNames))
	for i, c := range e.ColumnNames {
		batches[i] = sqlServerDropDefaultScript(g, e.SchemaName, e.TableName, c) +
			"\n\n-- now we can finally drop column\n" +
			"ALTER TABLE " + table + " DROP COLUMN " + g.d.quoter.QuoteColumnName(c) + ";"
	}
	return strings.Join(batches, "\nGO\n"), nil
}

func sqlServerRenameColumn(g *Generator, e *expressions.RenameColumn) (string, error) {
	target := g.table(e.TableName, e.SchemaName) + "." + g.d.quoter.QuoteColumnName(e.OldName)
	oldName, err := g.d.quoter.QuoteValue(target)
	if err != nil {
		return "", err
	}
	newName, err := g.d.quoter.QuoteValue(e.NewName)
	if err != nil {
		return "", err
	}
	return "sp_rename " + oldName + ", " + newName, nil
}

func sqlServerRenameTable(g *Generator, e *expressions.RenameTable) (string, error) {
	oldName, err := g.d.quoter.QuoteValue(g.table(e.OldName, e.SchemaName))
	if err != nil {
		return "", err
	}
	newName, err := g.d.quoter.QuoteValue(e.NewName)
	if err != nil {
		return "", err
	}
	return "sp_rename " + oldName + ", " + newName, nil
}

func sqlServerCreateIndex(g *Generator, e *expressions.CreateIndex) (string, error) {
	idx := &e.Index
	clustered := ""
	if idx.Clustered {
		clustered = "CLUSTERED "
	}
	include := ""
	if cols, ok := idx.Features.List(model.SqlServerIncludes); ok && len(cols) > 0 {
		include = ") INCLUDE (" + g.columnList(cols, ", ")
	}
	return fmt.Sprintf("CREATE %s%sINDEX %s ON %s (%s%s)%s",
		uniqueKeyword(idx),
		clustered,
		g.d.quoter.QuoteIndexName(idx.Name, model.SchemaName{}),
		g.table(idx.TableName, idx.SchemaName),
		indexColumns(g, idx.Columns, " ASC", ", "),
		include,
		sqlServerWith(idx.Features)), nil
}

func sqlServerDeleteIndex(g *Generator, e *expressions.DeleteIndex) (string, error) {
	idx := &e.Index
	return fmt.Sprintf("DROP INDEX %s ON %s%s",
		g.d.quoter.QuoteIndexName(idx.Name, model.SchemaName{}),
		g.table(idx.TableName, idx.SchemaName),
		sqlServerWith(idx.Features)), nil
}

func sqlServerCreateConstraint(g *Generator, e *expressions.CreateConstraint) (string, error) {
	sql, err := genericCreateConstraint(g, e)
	if err != nil {
		return "", err
	}
	return sql + sqlServerWith(e.Constraint.Features), nil
}

func sqlServerDeleteConstraint(g *Generator, e *expressions.DeleteConstraint) (string, error) {
	sql, err := genericDeleteConstraint(g, e)
	if err != nil {
		return "", err
	}
	return sql + sqlServerWith(e.Constraint.Features), nil
}

func sqlServerAlterSchema(g *Generator, e *expressions.AlterSchema) (string, error) {
	return fmt.Sprintf("ALTER SCHEMA %s TRANSFER %s",
		g.d.quoter.Quote(e.DestinationSchemaName), g.table(e.TableName, e.SourceSchemaName)), nil
}

// sqlServerInsertData wraps the inserts in SET IDENTITY_INSERT when the
// SqlServerIdentityInsert feature is on.
func sqlServerInsertData(g *Generator, e *expressions.InsertData) (string, error) {
	stmts, err := insertStatements(g, e, ", ")
	if err != nil {
		return "", err
	}
	if on, _ := e.Features.Bool(model.SqlServerIdentityInsert); on && len(stmts) > 0 {
		table := g.table(e.TableName, e.SchemaName)
		stmts = append([]string{"SET IDENTITY_INSERT " + table + " ON"}, stmts...)
		stmts = append(stmts, "SET IDENTITY_INSERT "+table+" OFF")
	}
	return g.joinStatements(stmts), nil
}

func sqlServerAlterDefaultConstraint(g *Generator, e *expressions.AlterDefaultConstraint) (string, error) {
	v, err := g.d.quoter.QuoteValue(e.DefaultValue)
	if err != nil {
		return "", err
	}
	return sqlServerDropDefaultScript(g, e.SchemaName, e.TableName, e.ColumnName) +
		"\n\n-- create alter table command to create new default constraint as string and run it\n" +
		fmt.Sprintf("ALTER TABLE %s WITH NOCHECK ADD CONSTRAINT %s DEFAULT(%s) FOR %s;",
			g.table(e.TableName, e.SchemaName),
			g.d.quoter.Quote(DefaultConstraintName(e.TableName, e.ColumnName)),
			v,
			g.d.quoter.QuoteColumnName(e.ColumnName)), nil
}

func sqlServerDeleteDefaultConstraint(g *Generator, e *expressions.DeleteDefaultConstraint) (string, error) {
	return sqlServerDropDefaultScript(g, e.SchemaName, e.TableName, e.ColumnName), nil
}
