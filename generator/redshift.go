package generator

import (
	"fmt"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

var redshiftTypes = mustTypeMap("redshift", []typeRow{
	{model.AnsiStringFixedLength, 0, "char(255)"},
	{model.AnsiStringFixedLength, 4096, "char($size)"},
	{model.AnsiString, 0, "varchar(256)"},
	{model.AnsiString, 65535, "varchar($size)"},
	{model.Binary, 0, "varbyte"},
	{model.Binary, 1024000, "varbyte($size)"},
	{model.Boolean, 0, "boolean"},
	{model.Byte, 0, "smallint"},
	{model.Currency, 0, "decimal(19,4)"},
	{model.Date, 0, "date"},
	{model.DateTime, 0, "timestamp"},
	{model.DateTime2, 0, "timestamp"},
	{model.DateTimeOffset, 0, "timestamptz"},
	{model.Decimal, 0, "decimal(19,5)"},
	{model.Decimal, 38, "decimal($size,$precision)"},
	{model.Double, 0, "double precision"},
	{model.Guid, 0, "char(36)"},
	{model.Int16, 0, "smallint"},
	{model.Int32, 0, "integer"},
	{model.Int64, 0, "bigint"},
	{model.SByte, 0, "smallint"},
	{model.Single, 0, "real"},
	{model.StringFixedLength, 0, "char(255)"},
	{model.StringFixedLength, 4096, "char($size)"},
	{model.String, 0, "varchar(256)"},
	{model.String, 65535, "varchar($size)"},
	{model.Time, 0, "time"},
	{model.UInt16, 0, "integer"},
	{model.UInt32, 0, "bigint"},
	{model.UInt64, 0, "decimal(20,0)"},
	{model.VarNumeric, 0, "numeric"},
}, model.Object, model.Xml)

// newRedshift starts from the postgres statement table. Redshift has no
// indexes, sequences or serial types.
func newRedshift(opts Options) *Generator {
	q := postgresQuoter("redshift", opts)
	q.systemMethods = map[model.SystemMethod]string{
		model.CurrentDateTime:    "SYSDATE",
		model.CurrentUTCDateTime: "SYSDATE",
		model.CurrentUser:        "current_user",
	}
	col := newColumnRenderer(q, redshiftTypes)
	col.formatIdentity = identityClause("IDENTITY(1,1)")

	stmts := newPostgres(opts).d.stmts
	stmts.alterColumn = redshiftAlterColumn
	stmts.createIndex = unsupportedStatement[*expressions.CreateIndex]("Redshift does not support indexes")
	stmts.deleteIndex = unsupportedStatement[*expressions.DeleteIndex]("Redshift does not support indexes")
	stmts.alterSchema = genericAlterSchema
	stmts.createSequence = unsupportedStatement[*expressions.CreateSequence]("Redshift does not support sequences")
	stmts.deleteSequence = unsupportedStatement[*expressions.DeleteSequence]("Redshift does not support sequences")

	return newGenerator(&dialect{
		name:       "redshift",
		quoter:     q,
		column:     col,
		describer:  commentOn{},
		stmts:      stmts,
		terminator: ";",
		addColumn:  "ALTER TABLE %s ADD %s",
	}, opts)
}

// redshiftAlterColumn can only change the type of a column.
func redshiftAlterColumn(g *Generator, e *expressions.AlterColumn) (string, error) {
	typ, err := g.d.column.formatType(g.d.column, e.Column)
	if err != nil {
		return "", err
	}
	return g.end(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s",
		g.table(e.TableName, e.SchemaName), g.d.quoter.QuoteColumnName(e.Column.Name), typ)), nil
}
