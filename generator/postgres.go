package generator

import (
	"fmt"
	"strings"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

var postgresTypes = mustTypeMap("postgres", []typeRow{
	{model.AnsiStringFixedLength, 0, "char(255)"},
	{model.AnsiStringFixedLength, 8000, "char($size)"},
	{model.AnsiString, 0, "text"},
	{model.AnsiString, 8000, "varchar($size)"},
	{model.AnsiString, 2147483647, "text"},
	{model.Binary, 0, "bytea"},
	{model.Binary, 2147483647, "bytea"},
	{model.Boolean, 0, "boolean"},
	{model.Byte, 0, "smallint"},
	{model.Currency, 0, "money"},
	{model.Date, 0, "date"},
	{model.DateTime, 0, "timestamp"},
	{model.DateTime2, 0, "timestamp"},
	{model.DateTimeOffset, 0, "timestamptz"},
	{model.Decimal, 0, "decimal(19,5)"},
	{model.Decimal, 1000, "decimal($size,$precision)"},
	{model.Double, 0, "float8"},
	{model.Guid, 0, "uuid"},
	{model.Int16, 0, "smallint"},
	{model.Int32, 0, "integer"},
	{model.Int64, 0, "bigint"},
	{model.SByte, 0, "smallint"},
	{model.Single, 0, "float4"},
	{model.StringFixedLength, 0, "char(255)"},
	{model.StringFixedLength, 8000, "char($size)"},
	{model.String, 0, "text"},
	{model.String, 10485760, "varchar($size)"},
	{model.String, 2147483647, "text"},
	{model.Time, 0, "time"},
	{model.UInt16, 0, "integer"},
	{model.UInt32, 0, "bigint"},
	{model.UInt64, 0, "numeric(20,0)"},
	{model.VarNumeric, 0, "numeric"},
	{model.Xml, 0, "xml"},
}, model.Object)

func postgresQuoter(name string, opts Options) *Quoter {
	q := newQuoter(name)
	q.schemaFallback = "public"
	q.formatBool = boolLowerTrueFalse
	q.formatBytes = hexBytes(`E'\\x`, "'")
	q.systemMethods = map[model.SystemMethod]string{
		model.NewGuid:               "uuid_generate_v4()",
		model.CurrentDateTime:       "now()",
		model.CurrentDateTimeOffset: "current_timestamp",
		model.CurrentUTCDateTime:    "(now() at time zone 'UTC')",
		model.CurrentUser:           "current_user",
	}
	if opts.UnquotedIdentifiers {
		q.shouldQuote = pgNeedsQuoting
	}
	return q
}

// postgresSerialType swaps integer identity columns for serial types.
func postgresSerialType(r *columnRenderer, c *model.ColumnDefinition) (string, error) {
	if c.Identity {
		switch c.Type {
		case model.Int16:
			return "smallserial", nil
		case model.Int32:
			return "serial", nil
		case model.Int64:
			return "bigserial", nil
		}
	}
	return r.resolveType(c)
}

func newPostgres(opts Options) *Generator {
	q := postgresQuoter("postgres", opts)
	col := newColumnRenderer(q, postgresTypes)
	col.formatType = postgresSerialType

	stmts := genericStatements()
	stmts.alterColumn = postgresAlterColumn
	stmts.deleteColumn = postgresDeleteColumn
	stmts.renameTable = renameTableTo
	stmts.createIndex = postgresCreateIndex
	stmts.createForeignKey = postgresCreateForeignKey
	stmts.alterSchema = postgresAlterSchema
	stmts.insertData = postgresInsertData
	stmts.alterDefaultConstraint = postgresAlterDefaultConstraint
	stmts.deleteDefaultConstraint = postgresDeleteDefaultConstraint

	return newGenerator(&dialect{
		name:       "postgres",
		quoter:     q,
		column:     col,
		describer:  commentOn{},
		stmts:      stmts,
		terminator: ";",
		addColumn:  "ALTER TABLE %s ADD %s",
		features: map[model.Feature]bool{
			model.PostgresIndexMethod:   true,
			model.PostgresIndexIncludes: true,
		},
	}, opts)
}

func postgresAlterColumn(g *Generator, e *expressions.AlterColumn) (string, error) {
	if e.Column.Identity {
		return g.unsupported("altering a column to identity is not supported")
	}
	clauses, err := alterClauses(g, e.Column, alterStyle{column: "ALTER ", setType: "TYPE", sep: ", "})
	if err != nil {
		return "", err
	}
	ddl := g.end(fmt.Sprintf("ALTER TABLE %s %s", g.table(e.TableName, e.SchemaName), clauses))
	return g.d.compose(g, ddl, columnDescription(g, e.SchemaName, e.TableName, e.Column)), nil
}

// postgresDeleteColumn puts each DROP COLUMN on its own line.
func postgresDeleteColumn(g *Generator, e *expressions.DeleteColumn) (string, error) {
	table := g.table(e.TableName, e.SchemaName)
	stmts := make([]string, len(e.ColumnNames))
	for i, c := range e.ColumnNames {
		stmts[i] = g.end(fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, g.d.quoter.QuoteColumnName(c)))
	}
	return strings.Join(stmts, "\n"), nil
}

func postgresCreateIndex(g *Generator, e *expressions.CreateIndex) (string, error) {
	idx := &e.Index
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE %sINDEX %s ON %s",
		uniqueKeyword(idx),
		g.d.quoter.QuoteIndexName(idx.Name, model.SchemaName{}),
		g.table(idx.TableName, idx.SchemaName))
	if method, ok := idx.Features.Text(model.PostgresIndexMethod); ok && method != "" {
		b.WriteString(" USING ")
		b.WriteString(method)
	}
	fmt.Fprintf(&b, " (%s)", indexColumns(g, idx.Columns, " ASC", ","))
	if includes, ok := idx.Features.List(model.PostgresIndexIncludes); ok && len(includes) > 0 {
		fmt.Fprintf(&b, " INCLUDE (%s)", g.columnList(includes, ","))
	}
	return g.end(b.String()), nil
}

func postgresCreateForeignKey(g *Generator, e *expressions.CreateForeignKey) (string, error) {
	fk := &e.ForeignKey
	return g.end(foreignKeySQL(g, fk, g.d.quoter.Quote(fk.Name), ",", true)), nil
}

func postgresAlterSchema(g *Generator, e *expressions.AlterSchema) (string, error) {
	return g.end(fmt.Sprintf("ALTER TABLE %s SET SCHEMA %s",
		g.table(e.TableName, e.SourceSchemaName), g.d.quoter.Quote(e.DestinationSchemaName))), nil
}

func postgresInsertData(g *Generator, e *expressions.InsertData) (string, error) {
	stmts, err := insertStatements(g, e, ",")
	if err != nil {
		return "", err
	}
	return g.joinStatements(stmts), nil
}

func postgresAlterDefaultConstraint(g *Generator, e *expressions.AlterDefaultConstraint) (string, error) {
	v, err := g.d.quoter.QuoteValue(e.DefaultValue)
	if err != nil {
		return "", err
	}
	col := g.d.quoter.QuoteColumnName(e.ColumnName)
	return g.end(fmt.Sprintf("ALTER TABLE %s ALTER %s DROP DEFAULT, ALTER %s SET DEFAULT %s",
		g.table(e.TableName, e.SchemaName), col, col, v)), nil
}

func postgresDeleteDefaultConstraint(g *Generator, e *expressions.DeleteDefaultConstraint) (string, error) {
	return g.end(fmt.Sprintf("ALTER TABLE %s ALTER %s DROP DEFAULT",
		g.table(e.TableName, e.SchemaName), g.d.quoter.QuoteColumnName(e.ColumnName))), nil
}
