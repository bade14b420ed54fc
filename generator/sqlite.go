package generator

import (
	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

// SQLite type affinity ignores size and precision, so every type has a
// single default template.
var sqliteTypes = mustTypeMap("sqlite", []typeRow{
	{model.Binary, 0, "BLOB"},
	{model.Byte, 0, "INTEGER"},
	{model.Int16, 0, "INTEGER"},
	{model.Int32, 0, "INTEGER"},
	{model.Int64, 0, "INTEGER"},
	{model.SByte, 0, "INTEGER"},
	{model.UInt16, 0, "INTEGER"},
	{model.UInt32, 0, "INTEGER"},
	{model.UInt64, 0, "INTEGER"},
	{model.Currency, 0, "NUMERIC"},
	{model.Decimal, 0, "NUMERIC"},
	{model.Double, 0, "NUMERIC"},
	{model.Single, 0, "NUMERIC"},
	{model.VarNumeric, 0, "NUMERIC"},
	{model.AnsiString, 0, "TEXT"},
	{model.String, 0, "TEXT"},
	{model.AnsiStringFixedLength, 0, "TEXT"},
	{model.StringFixedLength, 0, "TEXT"},
	{model.Date, 0, "DATETIME"},
	{model.DateTime, 0, "DATETIME"},
	{model.DateTime2, 0, "DATETIME"},
	{model.Time, 0, "DATETIME"},
	{model.Boolean, 0, "INTEGER"},
	{model.Guid, 0, "UNIQUEIDENTIFIER"},
}, model.DateTimeOffset, model.Object, model.Xml)

func newSQLite(opts Options) *Generator {
	q := newQuoter("sqlite")
	q.ignoreSchema = true
	q.formatBool = boolOneZero
	q.formatBytes = hexBytes("X'", "'")
	q.systemMethods = map[model.SystemMethod]string{
		model.CurrentDateTime:    "(datetime('now','localtime'))",
		model.CurrentUTCDateTime: "CURRENT_TIMESTAMP",
	}

	col := newColumnRenderer(q, sqliteTypes)
	// AUTOINCREMENT is only legal on an INTEGER PRIMARY KEY column, so an
	// identity column carries the primary key itself.
	col.formatIdentity = identityClause("PRIMARY KEY AUTOINCREMENT")
	col.inlinePrimaryKey = func(pk []*model.ColumnDefinition) bool {
		for _, c := range pk {
			if c.Identity {
				return true
			}
		}
		return false
	}

	const noAlter = "SQLite does not support altering constraints or column definitions"
	stmts := genericStatements()
	stmts.alterColumn = unsupportedStatement[*expressions.AlterColumn](noAlter)
	stmts.renameTable = renameTableTo
	stmts.createConstraint = unsupportedStatement[*expressions.CreateConstraint](noAlter)
	stmts.deleteConstraint = unsupportedStatement[*expressions.DeleteConstraint](noAlter)
	stmts.createForeignKey = unsupportedStatement[*expressions.CreateForeignKey](noAlter)
	stmts.deleteForeignKey = unsupportedStatement[*expressions.DeleteForeignKey](noAlter)
	stmts.alterDefaultConstraint = unsupportedStatement[*expressions.AlterDefaultConstraint](noAlter)
	stmts.deleteDefaultConstraint = unsupportedStatement[*expressions.DeleteDefaultConstraint](noAlter)
	stmts.createSchema = unsupportedStatement[*expressions.CreateSchema]("SQLite does not support schemas")
	stmts.deleteSchema = unsupportedStatement[*expressions.DeleteSchema]("SQLite does not support schemas")
	stmts.alterSchema = unsupportedStatement[*expressions.AlterSchema]("SQLite does not support schemas")
	stmts.createSequence = unsupportedStatement[*expressions.CreateSequence]("SQLite does not support sequences")
	stmts.deleteSequence = unsupportedStatement[*expressions.DeleteSequence]("SQLite does not support sequences")

	return newGenerator(&dialect{
		name:      "sqlite",
		quoter:    q,
		column:    col,
		stmts:     stmts,
		separator: "; ",
		addColumn: "ALTER TABLE %s ADD COLUMN %s",
	}, opts)
}
