package generator

import (
	"fmt"
	"time"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

var firebirdTypes = mustTypeMap("firebird", []typeRow{
	{model.AnsiStringFixedLength, 0, "CHAR(255)"},
	{model.AnsiStringFixedLength, 32767, "CHAR($size)"},
	{model.AnsiString, 0, "VARCHAR(255)"},
	{model.AnsiString, 32765, "VARCHAR($size)"},
	{model.AnsiString, 2147483647, "BLOB SUB_TYPE TEXT"},
	{model.Binary, 0, "BLOB SUB_TYPE BINARY"},
	{model.Boolean, 0, "BOOLEAN"},
	{model.Byte, 0, "SMALLINT"},
	{model.Currency, 0, "DECIMAL(18,4)"},
	{model.Date, 0, "DATE"},
	{model.DateTime, 0, "TIMESTAMP"},
	{model.DateTime2, 0, "TIMESTAMP"},
	{model.DateTimeOffset, 0, "TIMESTAMP"},
	{model.Decimal, 0, "DECIMAL(18,4)"},
	{model.Decimal, 18, "DECIMAL($size,$precision)"},
	{model.Double, 0, "DOUBLE PRECISION"},
	{model.Guid, 0, "CHAR(16) CHARACTER SET OCTETS"},
	{model.Int16, 0, "SMALLINT"},
	{model.Int32, 0, "INTEGER"},
	{model.Int64, 0, "BIGINT"},
	{model.SByte, 0, "SMALLINT"},
	{model.Single, 0, "FLOAT"},
	{model.StringFixedLength, 0, "CHAR(255)"},
	{model.StringFixedLength, 32767, "CHAR($size)"},
	{model.String, 0, "VARCHAR(255)"},
	{model.String, 32765, "VARCHAR($size)"},
	{model.String, 2147483647, "BLOB SUB_TYPE TEXT"},
	{model.Time, 0, "TIME"},
	{model.UInt16, 0, "INTEGER"},
	{model.UInt32, 0, "BIGINT"},
	{model.UInt64, 0, "DECIMAL(18,0)"},
	{model.VarNumeric, 0, "NUMERIC(18,4)"},
	{model.Xml, 0, "BLOB SUB_TYPE TEXT"},
}, model.Object)

// newFirebird quotes only names Firebird would otherwise fold or reject.
func newFirebird(opts Options) *Generator {
	q := newQuoter("firebird")
	q.shouldQuote = firebirdNeedsQuoting
	q.ignoreSchema = true
	q.formatDateTime = func(t time.Time) string { return "'" + t.Format("2006-01-02 15:04:05.9999") + "'" }
	q.formatBytes = hexBytes("X'", "'")
	q.systemMethods = map[model.SystemMethod]string{
		model.NewGuid:         "gen_uuid()",
		model.CurrentDateTime: "CURRENT_TIMESTAMP",
		model.CurrentUser:     "CURRENT_USER",
	}

	col := newColumnRenderer(q, firebirdTypes)
	col.formatIdentity = identityClause("GENERATED BY DEFAULT AS IDENTITY")

	const noSchemas = "Firebird does not support schemas"
	stmts := genericStatements()
	stmts.alterColumn = firebirdAlterColumn
	stmts.renameColumn = firebirdRenameColumn
	stmts.renameTable = unsupportedStatement[*expressions.RenameTable]("Firebird does not support renaming tables")
	stmts.createSchema = unsupportedStatement[*expressions.CreateSchema](noSchemas)
	stmts.deleteSchema = unsupportedStatement[*expressions.DeleteSchema](noSchemas)
	stmts.alterSchema = unsupportedStatement[*expressions.AlterSchema](noSchemas)

	return newGenerator(&dialect{
		name:      "firebird",
		quoter:    q,
		column:    col,
		describer: commentOn{},
		stmts:     stmts,
		separator: "; ",
		addColumn: "ALTER TABLE %s ADD %s",
	}, opts)
}

func firebirdAlterColumn(g *Generator, e *expressions.AlterColumn) (string, error) {
	if e.Column.Identity {
		return g.unsupported("Firebird cannot turn an existing column into an identity column")
	}
	clauses, err := alterClauses(g, e.Column, alterStyle{column: "ALTER COLUMN ", setType: "TYPE", sep: ", "})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER TABLE %s %s", g.table(e.TableName, e.SchemaName), clauses), nil
}

func firebirdRenameColumn(g *Generator, e *expressions.RenameColumn) (string, error) {
	return fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TO %s",
		g.table(e.TableName, e.SchemaName),
		g.d.quoter.QuoteColumnName(e.OldName),
		g.d.quoter.QuoteColumnName(e.NewName)), nil
}
