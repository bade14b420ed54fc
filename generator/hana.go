package generator

import (
	"fmt"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

var hanaTypes = mustTypeMap("hana", []typeRow{
	{model.AnsiStringFixedLength, 0, "VARCHAR(255)"},
	{model.AnsiStringFixedLength, 5000, "VARCHAR($size)"},
	{model.AnsiString, 0, "VARCHAR(255)"},
	{model.AnsiString, 5000, "VARCHAR($size)"},
	{model.AnsiString, 2147483647, "CLOB"},
	{model.Binary, 0, "VARBINARY(5000)"},
	{model.Binary, 5000, "VARBINARY($size)"},
	{model.Binary, 2147483647, "BLOB"},
	{model.Boolean, 0, "BOOLEAN"},
	{model.Byte, 0, "TINYINT"},
	{model.Currency, 0, "DECIMAL(19,4)"},
	{model.Date, 0, "DATE"},
	{model.DateTime, 0, "TIMESTAMP"},
	{model.DateTime2, 0, "TIMESTAMP"},
	{model.DateTimeOffset, 0, "TIMESTAMP"},
	{model.Decimal, 0, "DECIMAL(19,5)"},
	{model.Decimal, 38, "DECIMAL($size,$precision)"},
	{model.Double, 0, "DOUBLE"},
	{model.Guid, 0, "VARBINARY(16)"},
	{model.Int16, 0, "SMALLINT"},
	{model.Int32, 0, "INTEGER"},
	{model.Int64, 0, "BIGINT"},
	{model.SByte, 0, "SMALLINT"},
	{model.Single, 0, "REAL"},
	{model.StringFixedLength, 0, "NVARCHAR(255)"},
	{model.StringFixedLength, 5000, "NVARCHAR($size)"},
	{model.String, 0, "NVARCHAR(255)"},
	{model.String, 5000, "NVARCHAR($size)"},
	{model.String, 2147483647, "NCLOB"},
	{model.Time, 0, "TIME"},
	{model.UInt16, 0, "INTEGER"},
	{model.UInt32, 0, "BIGINT"},
	{model.UInt64, 0, "DECIMAL(20,0)"},
	{model.VarNumeric, 0, "DECIMAL"},
	{model.Xml, 0, "NCLOB"},
}, model.Object)

// newHana ignores schemas and never names primary keys. Nullability is
// only rendered when it was set explicitly.
func newHana(opts Options) *Generator {
	q := newQuoter("hana")
	q.ignoreSchema = true
	q.nationalStrings = true
	q.systemMethods = map[model.SystemMethod]string{
		model.NewGuid:            "SYSUUID",
		model.CurrentDateTime:    "CURRENT_TIMESTAMP",
		model.CurrentUTCDateTime: "CURRENT_UTCTIMESTAMP",
		model.CurrentUser:        "CURRENT_USER",
	}

	col := newColumnRenderer(q, hanaTypes)
	col.formatNullable = explicitNullability
	col.formatIdentity = identityClause("GENERATED ALWAYS AS IDENTITY")
	col.namedPrimaryKey = false

	const noDefaults = "HANA cannot change a default without restating the column"
	stmts := genericStatements()
	stmts.createTable = hanaCreateTable
	stmts.deleteColumn = hanaDeleteColumn
	stmts.renameColumn = hanaRenameColumn
	stmts.alterSchema = unsupportedStatement[*expressions.AlterSchema]("HANA does not support moving tables between schemas")
	stmts.alterDefaultConstraint = unsupportedStatement[*expressions.AlterDefaultConstraint](noDefaults)
	stmts.deleteDefaultConstraint = unsupportedStatement[*expressions.DeleteDefaultConstraint](noDefaults)

	return newGenerator(&dialect{
		name:        "hana",
		quoter:      q,
		column:      col,
		describer:   commentOn{},
		stmts:       stmts,
		terminator:  ";",
		addColumn:   "ALTER TABLE %s ADD (%s)",
		alterColumn: "ALTER TABLE %s ALTER (%s)",
	}, opts)
}

func hanaCreateTable(g *Generator, e *expressions.CreateTable) (string, error) {
	cols, err := g.d.column.RenderAll(e.Columns)
	if err != nil {
		return "", err
	}
	ddl := g.end(fmt.Sprintf("CREATE COLUMN TABLE %s (%s)", g.table(e.TableName, e.SchemaName), cols))
	descs := createTableDescriptions(g.d.describer, g.d.quoter, e.SchemaName, e.TableName, e.Description, e.Columns)
	return g.d.compose(g, ddl, descs), nil
}

func hanaDeleteColumn(g *Generator, e *expressions.DeleteColumn) (string, error) {
	table := g.table(e.TableName, e.SchemaName)
	stmts := make([]string, len(e.ColumnNames))
	for i, c := range e.ColumnNames {
		stmts[i] = fmt.Sprintf("ALTER TABLE %s DROP (%s)", table, g.d.quoter.QuoteColumnName(c))
	}
	return g.joinStatements(stmts), nil
}

func hanaRenameColumn(g *Generator, e *expressions.RenameColumn) (string, error) {
	return g.end(fmt.Sprintf("RENAME COLUMN %s.%s TO %s",
		g.table(e.TableName, e.SchemaName),
		g.d.quoter.QuoteColumnName(e.OldName),
		g.d.quoter.QuoteColumnName(e.NewName))), nil
}
