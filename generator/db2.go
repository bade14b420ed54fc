package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

var db2Types = mustTypeMap("db2", []typeRow{
	{model.AnsiStringFixedLength, 0, "CHAR(255)"},
	{model.AnsiStringFixedLength, 255, "CHAR($size)"},
	{model.AnsiString, 0, "VARCHAR(255)"},
	{model.AnsiString, 32704, "VARCHAR($size)"},
	{model.AnsiString, 2147483647, "CLOB($size)"},
	{model.Binary, 0, "VARBINARY(8000)"},
	{model.Binary, 255, "BINARY($size)"},
	{model.Binary, 32704, "VARBINARY($size)"},
	{model.Binary, 2147483647, "BLOB($size)"},
	{model.Boolean, 0, "CHAR(1)"},
	{model.Byte, 0, "SMALLINT"},
	{model.Currency, 0, "DECIMAL(19,4)"},
	{model.Date, 0, "DATE"},
	{model.DateTime, 0, "TIMESTAMP"},
	{model.DateTime2, 0, "TIMESTAMP"},
	{model.DateTimeOffset, 0, "TIMESTAMP"},
	{model.Decimal, 0, "DECIMAL(19,5)"},
	{model.Decimal, 31, "DECIMAL($size,$precision)"},
	{model.Double, 0, "DOUBLE"},
	{model.Guid, 0, "CHAR(16) FOR BIT DATA"},
	{model.Int16, 0, "SMALLINT"},
	{model.Int32, 0, "INTEGER"},
	{model.Int64, 0, "BIGINT"},
	{model.SByte, 0, "SMALLINT"},
	{model.Single, 0, "REAL"},
	{model.StringFixedLength, 0, "GRAPHIC(128)"},
	{model.StringFixedLength, 128, "GRAPHIC($size)"},
	{model.String, 0, "VARGRAPHIC(8000)"},
	{model.String, 16352, "VARGRAPHIC($size)"},
	{model.String, 1073741824, "DBCLOB($size)"},
	{model.Time, 0, "TIME"},
	{model.UInt16, 0, "INTEGER"},
	{model.UInt32, 0, "BIGINT"},
	{model.UInt64, 0, "DECIMAL(20,0)"},
	{model.VarNumeric, 0, "DECFLOAT"},
	{model.Xml, 0, "XML"},
}, model.Object)

const db2Unsupported = "This feature not directly supported by most versions of DB2."

func newDB2(opts Options) *Generator {
	q := newQuoter("db2")
	q.shouldQuote = db2NeedsQuoting
	q.formatBool = boolOneZero
	q.formatDateTime = func(t time.Time) string { return "'" + t.Format("2006-01-02-15.04.05.999999") + "'" }
	q.formatBytes = hexBytes("BX'", "'")
	q.systemMethods = map[model.SystemMethod]string{
		model.CurrentUTCDateTime: "(CURRENT_TIMESTAMP - CURRENT_TIMEZONE)",
		model.CurrentDateTime:    "CURRENT_TIMESTAMP",
		model.CurrentUser:        "USER",
	}

	col := newColumnRenderer(q, db2Types)
	col.formatIdentity = identityClause("GENERATED ALWAYS AS IDENTITY")

	stmts := genericStatements()
	stmts.alterColumn = db2AlterColumn
	stmts.deleteColumn = db2DeleteColumn
	stmts.renameColumn = unsupportedStatement[*expressions.RenameColumn](db2Unsupported)
	stmts.createIndex = db2CreateIndex
	stmts.createConstraint = db2CreateConstraint
	stmts.deleteConstraint = db2DeleteConstraint
	stmts.createForeignKey = db2CreateForeignKey
	stmts.deleteForeignKey = db2DeleteForeignKey
	stmts.deleteSchema = db2DeleteSchema
	stmts.alterSchema = unsupportedStatement[*expressions.AlterSchema](db2Unsupported)
	stmts.updateData = db2UpdateData

	return newGenerator(&dialect{
		name:      "db2",
		quoter:    q,
		column:    col,
		describer: commentOn{},
		stmts:     stmts,
		separator: " ",
		addColumn: "ALTER TABLE %s ADD COLUMN %s",
	}, opts)
}

func db2AlterColumn(g *Generator, e *expressions.AlterColumn) (string, error) {
	if e.Column.Identity {
		return g.unsupported(db2Unsupported)
	}
	clauses, err := alterClauses(g, e.Column, alterStyle{column: "ALTER COLUMN ", setType: "SET DATA TYPE", sep: " "})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER TABLE %s %s", g.table(e.TableName, e.SchemaName), clauses), nil
}

// db2DeleteColumn drops every column in one statement. A list that is
// empty or starts with an empty name yields no statement.
func db2DeleteColumn(g *Generator, e *expressions.DeleteColumn) (string, error) {
	if len(e.ColumnNames) == 0 || e.ColumnNames[0] == "" {
		return "", nil
	}
	var b strings.Builder
	b.WriteString("ALTER TABLE ")
	b.WriteString(g.table(e.TableName, e.SchemaName))
	for _, c := range e.ColumnNames {
		b.WriteString(" DROP COLUMN ")
		b.WriteString(g.d.quoter.QuoteColumnName(c))
	}
	return b.String(), nil
}

func db2CreateIndex(g *Generator, e *expressions.CreateIndex) (string, error) {
	idx := &e.Index
	return fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)",
		uniqueKeyword(idx),
		g.d.quoter.QuoteIndexName(idx.Name, idx.SchemaName),
		g.table(idx.TableName, idx.SchemaName),
		indexColumns(g, idx.Columns, "", ", ")), nil
}

func db2CreateConstraint(g *Generator, e *expressions.CreateConstraint) (string, error) {
	c := &e.Constraint
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s (%s)",
		g.table(c.TableName, c.SchemaName),
		g.d.quoter.QuoteConstraintName(c.ConstraintName, c.SchemaName),
		constraintKeyword(c),
		g.columnList(c.Columns, ", ")), nil
}

func db2DeleteConstraint(g *Generator, e *expressions.DeleteConstraint) (string, error) {
	c := &e.Constraint
	return fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s",
		g.table(c.TableName, c.SchemaName),
		g.d.quoter.QuoteConstraintName(c.ConstraintName, c.SchemaName)), nil
}

// db2CreateForeignKey has no ON UPDATE clause.
func db2CreateForeignKey(g *Generator, e *expressions.CreateForeignKey) (string, error) {
	fk := &e.ForeignKey
	name := g.d.quoter.QuoteConstraintName(fk.Name, fk.ForeignTableSchema)
	return foreignKeySQL(g, fk, name, ", ", false), nil
}

func db2DeleteForeignKey(g *Generator, e *expressions.DeleteForeignKey) (string, error) {
	fk := &e.ForeignKey
	return fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s",
		g.table(fk.ForeignTable, fk.ForeignTableSchema),
		g.d.quoter.QuoteConstraintName(fk.Name, fk.ForeignTableSchema)), nil
}

func db2DeleteSchema(g *Generator, e *expressions.DeleteSchema) (string, error) {
	return "DROP SCHEMA " + g.d.quoter.Quote(e.SchemaName) + " RESTRICT", nil
}

// db2UpdateData omits the WHERE clause entirely for all-row updates.
func db2UpdateData(g *Generator, e *expressions.UpdateData) (string, error) {
	set, err := g.assignments(e.Set)
	if err != nil {
		return "", err
	}
	table := g.table(e.TableName, e.SchemaName)
	if e.AllRows {
		return fmt.Sprintf("UPDATE %s SET %s", table, set), nil
	}
	where, err := g.predicate(e.Where)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s", table, set, where), nil
}
