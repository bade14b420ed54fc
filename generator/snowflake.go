package generator

import (
	"fmt"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

var snowflakeTypes = mustTypeMap("snowflake", []typeRow{
	{model.AnsiStringFixedLength, 0, "CHAR(255)"},
	{model.AnsiStringFixedLength, 16777216, "CHAR($size)"},
	{model.AnsiString, 0, "VARCHAR"},
	{model.AnsiString, 16777216, "VARCHAR($size)"},
	{model.Binary, 0, "BINARY"},
	{model.Binary, 8388608, "BINARY($size)"},
	{model.Boolean, 0, "BOOLEAN"},
	{model.Byte, 0, "NUMBER(3,0)"},
	{model.Currency, 0, "NUMBER(19,4)"},
	{model.Date, 0, "DATE"},
	{model.DateTime, 0, "TIMESTAMP_NTZ"},
	{model.DateTime2, 0, "TIMESTAMP_NTZ"},
	{model.DateTimeOffset, 0, "TIMESTAMP_TZ"},
	{model.Decimal, 0, "NUMBER(38,0)"},
	{model.Decimal, 38, "NUMBER($size,$precision)"},
	{model.Double, 0, "DOUBLE"},
	{model.Guid, 0, "VARCHAR(36)"},
	{model.Int16, 0, "SMALLINT"},
	{model.Int32, 0, "INT"},
	{model.Int64, 0, "BIGINT"},
	{model.Object, 0, "VARIANT"},
	{model.SByte, 0, "SMALLINT"},
	{model.Single, 0, "FLOAT"},
	{model.StringFixedLength, 0, "CHAR(255)"},
	{model.StringFixedLength, 16777216, "CHAR($size)"},
	{model.String, 0, "VARCHAR"},
	{model.String, 16777216, "VARCHAR($size)"},
	{model.Time, 0, "TIME"},
	{model.UInt16, 0, "INT"},
	{model.UInt32, 0, "BIGINT"},
	{model.UInt64, 0, "NUMBER(20,0)"},
	{model.VarNumeric, 0, "NUMBER"},
	{model.Xml, 0, "VARCHAR"},
})

func newSnowflake(opts Options) *Generator {
	q := newQuoter("snowflake")
	q.schemaFallback = "PUBLIC"
	q.formatBytes = hexBytes("X'", "'")
	q.systemMethods = map[model.SystemMethod]string{
		model.NewGuid:               "UUID_STRING()",
		model.CurrentDateTime:       "CURRENT_TIMESTAMP()",
		model.CurrentDateTimeOffset: "CURRENT_TIMESTAMP()",
		model.CurrentUTCDateTime:    "SYSDATE()",
		model.CurrentUser:           "CURRENT_USER()",
	}
	if opts.UnquotedIdentifiers {
		q.shouldQuote = snowflakeNeedsQuoting
	}

	col := newColumnRenderer(q, snowflakeTypes)
	col.formatIdentity = identityClause("AUTOINCREMENT")

	const noIndexes = "Snowflake does not support indexes"
	stmts := genericStatements()
	stmts.alterColumn = snowflakeAlterColumn
	stmts.renameTable = renameTableTo
	stmts.createIndex = unsupportedStatement[*expressions.CreateIndex](noIndexes)
	stmts.deleteIndex = unsupportedStatement[*expressions.DeleteIndex](noIndexes)
	stmts.alterSchema = snowflakeAlterSchema
	stmts.alterDefaultConstraint = unsupportedStatement[*expressions.AlterDefaultConstraint]("Snowflake only allows sequence defaults to change")

	return newGenerator(&dialect{
		name:       "snowflake",
		quoter:     q,
		column:     col,
		describer:  commentOn{},
		stmts:      stmts,
		terminator: ";",
		addColumn:  "ALTER TABLE %s ADD COLUMN %s",
	}, opts)
}

func snowflakeAlterColumn(g *Generator, e *expressions.AlterColumn) (string, error) {
	if e.Column.Identity {
		return g.unsupported("Snowflake cannot turn an existing column into an identity column")
	}
	c := e.Column.Clone()
	c.Default = model.NoDefault()
	clauses, err := alterClauses(g, c, alterStyle{column: "ALTER COLUMN ", setType: "SET DATA TYPE", sep: ", "})
	if err != nil {
		return "", err
	}
	ddl := g.end(fmt.Sprintf("ALTER TABLE %s %s", g.table(e.TableName, e.SchemaName), clauses))
	return g.d.compose(g, ddl, columnDescription(g, e.SchemaName, e.TableName, e.Column)), nil
}

func snowflakeAlterSchema(g *Generator, e *expressions.AlterSchema) (string, error) {
	return g.end(fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		g.table(e.TableName, e.SourceSchemaName),
		g.table(e.TableName, model.Schema(e.DestinationSchemaName)))), nil
}
