package generator

import (
	"fmt"
	"time"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

var mysqlTypes = mustTypeMap("mysql", []typeRow{
	{model.AnsiStringFixedLength, 0, "CHAR(255)"},
	{model.AnsiStringFixedLength, 255, "CHAR($size)"},
	{model.AnsiString, 0, "VARCHAR(255)"},
	{model.AnsiString, 8000, "VARCHAR($size)"},
	{model.AnsiString, 65535, "TEXT"},
	{model.AnsiString, 16777215, "MEDIUMTEXT"},
	{model.AnsiString, 2147483647, "LONGTEXT"},
	{model.Binary, 0, "LONGBLOB"},
	{model.Binary, 255, "TINYBLOB"},
	{model.Binary, 65535, "BLOB"},
	{model.Binary, 16777215, "MEDIUMBLOB"},
	{model.Binary, 2147483647, "LONGBLOB"},
	{model.Boolean, 0, "TINYINT(1)"},
	{model.Byte, 0, "TINYINT UNSIGNED"},
	{model.Currency, 0, "DECIMAL(19,4)"},
	{model.Date, 0, "DATE"},
	{model.DateTime, 0, "DATETIME"},
	{model.DateTime2, 0, "DATETIME(6)"},
	{model.DateTimeOffset, 0, "TIMESTAMP"},
	{model.Decimal, 0, "DECIMAL(19,5)"},
	{model.Decimal, 65, "DECIMAL($size,$precision)"},
	{model.Double, 0, "DOUBLE"},
	{model.Guid, 0, "CHAR(36)"},
	{model.Int16, 0, "SMALLINT"},
	{model.Int32, 0, "INTEGER"},
	{model.Int64, 0, "BIGINT"},
	{model.SByte, 0, "TINYINT"},
	{model.Single, 0, "FLOAT"},
	{model.StringFixedLength, 0, "NCHAR(255)"},
	{model.StringFixedLength, 255, "NCHAR($size)"},
	{model.String, 0, "NVARCHAR(255)"},
	{model.String, 8000, "NVARCHAR($size)"},
	{model.String, 65535, "TEXT"},
	{model.String, 16777215, "MEDIUMTEXT"},
	{model.String, 2147483647, "LONGTEXT"},
	{model.Time, 0, "TIME"},
	{model.UInt16, 0, "SMALLINT UNSIGNED"},
	{model.UInt32, 0, "INTEGER UNSIGNED"},
	{model.UInt64, 0, "BIGINT UNSIGNED"},
	{model.VarNumeric, 0, "DECIMAL(65,30)"},
	{model.Xml, 0, "LONGTEXT"},
}, model.Object)

const mysqlDefaultEngine = "INNODB"

func newMySQL(opts Options) *Generator {
	q := newQuoter("mysql")
	q.open, q.close, q.closeEscape = "`", "`", "``"
	q.ignoreSchema = true
	q.escapeBackslash = true
	q.formatBool = boolOneZero
	q.formatDateTime = func(t time.Time) string { return "'" + t.Format("2006-01-02 15:04:05.999999") + "'" }
	q.systemMethods = map[model.SystemMethod]string{
		model.NewGuid:            "(SELECT UUID())",
		model.CurrentDateTime:    "CURRENT_TIMESTAMP",
		model.CurrentUTCDateTime: "UTC_TIMESTAMP",
		model.CurrentUser:        "CURRENT_USER()",
	}

	col := newColumnRenderer(q, mysqlTypes)
	col.formatIdentity = identityClause("AUTO_INCREMENT")
	col.formatExtra = func(r *columnRenderer, c *model.ColumnDefinition) (string, error) {
		if c.Description == "" {
			return "", nil
		}
		return "COMMENT " + r.quoter.quoteString(c.Description), nil
	}

	stmts := genericStatements()
	stmts.createTable = mysqlCreateTable
	stmts.alterTable = mysqlAlterTable
	stmts.renameColumn = unsupportedStatement[*expressions.RenameColumn]("MySQL does not support renaming a column without restating its definition")
	stmts.deleteIndex = mysqlDeleteIndex
	stmts.deleteConstraint = mysqlDeleteConstraint
	stmts.deleteForeignKey = mysqlDeleteForeignKey
	stmts.createSchema = unsupportedStatement[*expressions.CreateSchema]("MySQL does not support schemas")
	stmts.deleteSchema = unsupportedStatement[*expressions.DeleteSchema]("MySQL does not support schemas")
	stmts.alterSchema = unsupportedStatement[*expressions.AlterSchema]("MySQL does not support schemas")
	stmts.alterDefaultConstraint = mysqlAlterDefaultConstraint
	stmts.deleteDefaultConstraint = mysqlDeleteDefaultConstraint
	stmts.createSequence = unsupportedStatement[*expressions.CreateSequence]("MySQL does not support sequences")
	stmts.deleteSequence = unsupportedStatement[*expressions.DeleteSequence]("MySQL does not support sequences")

	return newGenerator(&dialect{
		name:                     "mysql",
		quoter:                   q,
		column:                   col,
		stmts:                    stmts,
		separator:                "; ",
		addColumn:                "ALTER TABLE %s ADD COLUMN %s",
		alterColumn:              "ALTER TABLE %s MODIFY COLUMN %s",
		emptyDeleteColumnIsError: true,
		features: map[model.Feature]bool{
			model.MySQLTableEngine: true,
		},
	}, opts)
}

func mysqlCreateTable(g *Generator, e *expressions.CreateTable) (string, error) {
	cols, err := g.d.column.RenderAll(e.Columns)
	if err != nil {
		return "", err
	}
	engine := mysqlDefaultEngine
	if v, ok := e.Features.Text(model.MySQLTableEngine); ok && v != "" {
		engine = v
	}
	sql := fmt.Sprintf("CREATE TABLE %s (%s) ENGINE = %s", g.table(e.TableName, e.SchemaName), cols, engine)
	if e.Description != "" {
		sql += " COMMENT " + g.d.quoter.quoteString(e.Description)
	}
	return sql, nil
}

func mysqlAlterTable(g *Generator, e *expressions.AlterTable) (string, error) {
	if e.Description == "" {
		return "", nil
	}
	return fmt.Sprintf("ALTER TABLE %s COMMENT %s",
		g.table(e.TableName, e.SchemaName), g.d.quoter.quoteString(e.Description)), nil
}

func mysqlDeleteIndex(g *Generator, e *expressions.DeleteIndex) (string, error) {
	return fmt.Sprintf("DROP INDEX %s ON %s",
		g.d.quoter.QuoteIndexName(e.Index.Name, model.SchemaName{}),
		g.table(e.Index.TableName, e.Index.SchemaName)), nil
}

// mysqlDeleteConstraint drops primary keys and unique indexes by their
// own syntax; MySQL has no DROP CONSTRAINT for them.
func mysqlDeleteConstraint(g *Generator, e *expressions.DeleteConstraint) (string, error) {
	c := &e.Constraint
	table := g.table(c.TableName, c.SchemaName)
	if c.IsPrimaryKey() {
		return "ALTER TABLE " + table + " DROP PRIMARY KEY", nil
	}
	return "ALTER TABLE " + table + " DROP INDEX " + g.d.quoter.Quote(c.ConstraintName), nil
}

func mysqlDeleteForeignKey(g *Generator, e *expressions.DeleteForeignKey) (string, error) {
	fk := &e.ForeignKey
	return fmt.Sprintf("ALTER TABLE %s DROP FOREIGN KEY %s",
		g.table(fk.ForeignTable, fk.ForeignTableSchema), g.d.quoter.Quote(fk.Name)), nil
}

func mysqlAlterDefaultConstraint(g *Generator, e *expressions.AlterDefaultConstraint) (string, error) {
	v, err := g.d.quoter.QuoteValue(e.DefaultValue)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER TABLE %s ALTER %s SET DEFAULT %s",
		g.table(e.TableName, e.SchemaName), g.d.quoter.QuoteColumnName(e.ColumnName), v), nil
}

func mysqlDeleteDefaultConstraint(g *Generator, e *expressions.DeleteDefaultConstraint) (string, error) {
	return fmt.Sprintf("ALTER TABLE %s ALTER %s DROP DEFAULT",
		g.table(e.TableName, e.SchemaName), g.d.quoter.QuoteColumnName(e.ColumnName)), nil
}
