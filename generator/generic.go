package generator

import (
	"fmt"
	"strings"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

func genericStatements() statements {
	return statements{
		createTable:             genericCreateTable,
		deleteTable:             genericDeleteTable,
		alterTable:              genericAlterTable,
		createColumn:            genericCreateColumn,
		alterColumn:             genericAlterColumn,
		deleteColumn:            genericDeleteColumn,
		renameColumn:            genericRenameColumn,
		renameTable:             genericRenameTable,
		createIndex:             genericCreateIndex,
		deleteIndex:             genericDeleteIndex,
		createConstraint:        genericCreateConstraint,
		deleteConstraint:        genericDeleteConstraint,
		createForeignKey:        genericCreateForeignKey,
		deleteForeignKey:        genericDeleteForeignKey,
		createSchema:            genericCreateSchema,
		deleteSchema:            genericDeleteSchema,
		alterSchema:             genericAlterSchema,
		insertData:              genericInsertData,
		deleteData:              genericDeleteData,
		updateData:              genericUpdateData,
		alterDefaultConstraint:  genericAlterDefaultConstraint,
		deleteDefaultConstraint: genericDeleteDefaultConstraint,
		createSequence:          genericCreateSequence,
		deleteSequence:          genericDeleteSequence,
		executeSQL:              genericExecuteSQL,
	}
}

var genericTypes = mustTypeMap("generic", []typeRow{
	{model.AnsiStringFixedLength, 0, "CHAR(255)"},
	{model.AnsiStringFixedLength, 8000, "CHAR($size)"},
	{model.AnsiString, 0, "VARCHAR(255)"},
	{model.AnsiString, 8000, "VARCHAR($size)"},
	{model.Binary, 0, "VARBINARY(8000)"},
	{model.Binary, 8000, "VARBINARY($size)"},
	{model.Boolean, 0, "BOOLEAN"},
	{model.Byte, 0, "SMALLINT"},
	{model.Currency, 0, "DECIMAL(19,4)"},
	{model.Date, 0, "DATE"},
	{model.DateTime, 0, "TIMESTAMP"},
	{model.DateTime2, 0, "TIMESTAMP"},
	{model.DateTimeOffset, 0, "TIMESTAMP WITH TIME ZONE"},
	{model.Decimal, 0, "DECIMAL(19,5)"},
	{model.Decimal, 38, "DECIMAL($size,$precision)"},
	{model.Double, 0, "DOUBLE PRECISION"},
	{model.Guid, 0, "CHAR(36)"},
	{model.Int16, 0, "SMALLINT"},
	{model.Int32, 0, "INTEGER"},
	{model.Int64, 0, "BIGINT"},
	{model.SByte, 0, "SMALLINT"},
	{model.Single, 0, "REAL"},
	{model.StringFixedLength, 0, "NCHAR(255)"},
	{model.StringFixedLength, 4000, "NCHAR($size)"},
	{model.String, 0, "NVARCHAR(255)"},
	{model.String, 4000, "NVARCHAR($size)"},
	{model.Time, 0, "TIME"},
	{model.UInt16, 0, "INTEGER"},
	{model.UInt32, 0, "BIGINT"},
	{model.UInt64, 0, "DECIMAL(20,0)"},
	{model.VarNumeric, 0, "NUMERIC"},
	{model.Xml, 0, "XML"},
}, model.Object)

func newGeneric(opts Options) *Generator {
	q := newQuoter("generic")
	return newGenerator(&dialect{
		name:        "generic",
		quoter:      q,
		column:      newColumnRenderer(q, genericTypes),
		stmts:       genericStatements(),
		separator:   "; ",
		addColumn:   "ALTER TABLE %s ADD COLUMN %s",
		alterColumn: "ALTER TABLE %s ALTER COLUMN %s",
	}, opts)
}

func genericCreateTable(g *Generator, e *expressions.CreateTable) (string, error) {
	cols, err := g.d.column.RenderAll(e.Columns)
	if err != nil {
		return "", err
	}
	ddl := g.end(fmt.Sprintf("CREATE TABLE %s (%s)", g.table(e.TableName, e.SchemaName), cols))
	descs := createTableDescriptions(g.d.describer, g.d.quoter, e.SchemaName, e.TableName, e.Description, e.Columns)
	return g.d.compose(g, ddl, descs), nil
}

func genericDeleteTable(g *Generator, e *expressions.DeleteTable) (string, error) {
	return g.end("DROP TABLE " + g.table(e.TableName, e.SchemaName)), nil
}

// genericAlterTable only has a description to change.
func genericAlterTable(g *Generator, e *expressions.AlterTable) (string, error) {
	if g.d.describer == nil {
		return "", nil
	}
	desc := g.d.describer.table(g.d.quoter, e.SchemaName, e.TableName, e.Description)
	if desc == "" {
		return "", nil
	}
	return g.end(desc), nil
}

func columnDescription(g *Generator, schema model.SchemaName, table string, c *model.ColumnDefinition) []string {
	if g.d.describer == nil {
		return nil
	}
	if s := g.d.describer.column(g.d.quoter, schema, table, c.Name, c.Description); s != "" {
		return []string{s}
	}
	return nil
}

func genericCreateColumn(g *Generator, e *expressions.CreateColumn) (string, error) {
	col, err := g.d.column.Render(e.Column)
	if err != nil {
		return "", err
	}
	ddl := g.end(fmt.Sprintf(g.d.addColumn, g.table(e.TableName, e.SchemaName), col))
	return g.d.compose(g, ddl, columnDescription(g, e.SchemaName, e.TableName, e.Column)), nil
}

func genericAlterColumn(g *Generator, e *expressions.AlterColumn) (string, error) {
	col, err := g.d.column.Render(e.Column)
	if err != nil {
		return "", err
	}
	ddl := g.end(fmt.Sprintf(g.d.alterColumn, g.table(e.TableName, e.SchemaName), col))
	return g.d.compose(g, ddl, columnDescription(g, e.SchemaName, e.TableName, e.Column)), nil
}

func genericDeleteColumn(g *Generator, e *expressions.DeleteColumn) (string, error) {
	if len(e.ColumnNames) == 0 {
		if g.d.emptyDeleteColumnIsError {
			return "", &MalformedInputError{Message: "DeleteColumn requires at least one column name"}
		}
		return "", nil
	}
	table := g.table(e.TableName, e.SchemaName)
	stmts := make([]string, len(e.ColumnNames))
	for i, c := range e.ColumnNames {
		stmts[i] = fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", table, g.d.quoter.QuoteColumnName(c))
	}
	return g.joinStatements(stmts), nil
}

func genericRenameColumn(g *Generator, e *expressions.RenameColumn) (string, error) {
	return g.end(fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
		g.table(e.TableName, e.SchemaName),
		g.d.quoter.QuoteColumnName(e.OldName),
		g.d.quoter.QuoteColumnName(e.NewName))), nil
}

func genericRenameTable(g *Generator, e *expressions.RenameTable) (string, error) {
	return g.end(fmt.Sprintf("RENAME TABLE %s TO %s",
		g.table(e.OldName, e.SchemaName), g.d.quoter.Quote(e.NewName))), nil
}

// renameTableTo renders the ALTER TABLE ... RENAME TO form.
func renameTableTo(g *Generator, e *expressions.RenameTable) (string, error) {
	return g.end(fmt.Sprintf("ALTER TABLE %s RENAME TO %s",
		g.table(e.OldName, e.SchemaName), g.d.quoter.Quote(e.NewName))), nil
}

func uniqueKeyword(idx *model.IndexDefinition) string {
	if idx.Unique {
		return "UNIQUE "
	}
	return ""
}

// indexColumns renders index columns with asc appended to ascending ones
// and " DESC" to descending ones.
func indexColumns(g *Generator, cols []model.IndexColumnDefinition, asc, sep string) string {
	out := make([]string, len(cols))
	for i, c := range cols {
		dir := asc
		if c.Direction == model.Descending {
			dir = " DESC"
		}
		out[i] = g.d.quoter.QuoteColumnName(c.Name) + dir
	}
	return strings.Join(out, sep)
}

func genericCreateIndex(g *Generator, e *expressions.CreateIndex) (string, error) {
	idx := &e.Index
	return g.end(fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)",
		uniqueKeyword(idx),
		g.d.quoter.QuoteIndexName(idx.Name, model.SchemaName{}),
		g.table(idx.TableName, idx.SchemaName),
		indexColumns(g, idx.Columns, " ASC", ", "))), nil
}

func genericDeleteIndex(g *Generator, e *expressions.DeleteIndex) (string, error) {
	return g.end("DROP INDEX " + g.d.quoter.QuoteIndexName(e.Index.Name, e.Index.SchemaName)), nil
}

func constraintKeyword(c *model.ConstraintDefinition) string {
	if c.IsPrimaryKey() {
		return "PRIMARY KEY"
	}
	return "UNIQUE"
}

func genericCreateConstraint(g *Generator, e *expressions.CreateConstraint) (string, error) {
	c := &e.Constraint
	return g.end(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s %s (%s)",
		g.table(c.TableName, c.SchemaName),
		g.d.quoter.Quote(c.ConstraintName),
		constraintKeyword(c),
		g.columnList(c.Columns, ", "))), nil
}

func genericDeleteConstraint(g *Generator, e *expressions.DeleteConstraint) (string, error) {
	c := &e.Constraint
	return g.end(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s",
		g.table(c.TableName, c.SchemaName), g.d.quoter.Quote(c.ConstraintName))), nil
}

// foreignKeySQL renders the ADD CONSTRAINT ... FOREIGN KEY statement body.
// name is already quoted; onUpdate controls whether ON UPDATE is emitted.
func foreignKeySQL(g *Generator, fk *model.ForeignKeyDefinition, name, sep string, onUpdate bool) string {
	update := ""
	if onUpdate {
		update = formatCascade("UPDATE", fk.OnUpdate)
	}
	return fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)%s%s",
		g.table(fk.ForeignTable, fk.ForeignTableSchema),
		name,
		g.columnList(fk.ForeignColumns, sep),
		g.table(fk.PrimaryTable, fk.PrimaryTableSchema),
		g.columnList(fk.PrimaryColumns, sep),
		formatCascade("DELETE", fk.OnDelete),
		update)
}

func genericCreateForeignKey(g *Generator, e *expressions.CreateForeignKey) (string, error) {
	fk := &e.ForeignKey
	return g.end(foreignKeySQL(g, fk, g.d.quoter.Quote(fk.Name), ", ", true)), nil
}

func genericDeleteForeignKey(g *Generator, e *expressions.DeleteForeignKey) (string, error) {
	fk := &e.ForeignKey
	return g.end(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT %s",
		g.table(fk.ForeignTable, fk.ForeignTableSchema), g.d.quoter.Quote(fk.Name))), nil
}

func genericCreateSchema(g *Generator, e *expressions.CreateSchema) (string, error) {
	return g.end("CREATE SCHEMA " + g.d.quoter.Quote(e.SchemaName)), nil
}

func genericDeleteSchema(g *Generator, e *expressions.DeleteSchema) (string, error) {
	return g.end("DROP SCHEMA " + g.d.quoter.Quote(e.SchemaName)), nil
}

func genericAlterSchema(g *Generator, _ *expressions.AlterSchema) (string, error) {
	return g.unsupported("moving a table to another schema is not supported")
}

func insertStatements(g *Generator, e *expressions.InsertData, sep string) ([]string, error) {
	table := g.table(e.TableName, e.SchemaName)
	stmts := make([]string, 0, len(e.Rows))
	for _, row := range e.Rows {
		vals, err := g.rowValues(row, sep)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, g.rowColumns(row, sep), vals))
	}
	return stmts, nil
}

func genericInsertData(g *Generator, e *expressions.InsertData) (string, error) {
	stmts, err := insertStatements(g, e, ", ")
	if err != nil {
		return "", err
	}
	return g.joinStatements(stmts), nil
}

func genericDeleteData(g *Generator, e *expressions.DeleteData) (string, error) {
	table := g.table(e.TableName, e.SchemaName)
	if e.AllRows {
		return g.end("DELETE FROM " + table), nil
	}
	stmts := make([]string, 0, len(e.Rows))
	for _, row := range e.Rows {
		where, err := g.predicate(row)
		if err != nil {
			return "", err
		}
		stmts = append(stmts, fmt.Sprintf("DELETE FROM %s WHERE %s", table, where))
	}
	return g.joinStatements(stmts), nil
}

func genericUpdateData(g *Generator, e *expressions.UpdateData) (string, error) {
	set, err := g.assignments(e.Set)
	if err != nil {
		return "", err
	}
	where := "1 = 1"
	if !e.AllRows {
		if where, err = g.predicate(e.Where); err != nil {
			return "", err
		}
	}
	return g.end(fmt.Sprintf("UPDATE %s SET %s WHERE %s", g.table(e.TableName, e.SchemaName), set, where)), nil
}

func genericAlterDefaultConstraint(g *Generator, e *expressions.AlterDefaultConstraint) (string, error) {
	v, err := g.d.quoter.QuoteValue(e.DefaultValue)
	if err != nil {
		return "", err
	}
	return g.end(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s SET DEFAULT %s",
		g.table(e.TableName, e.SchemaName), g.d.quoter.QuoteColumnName(e.ColumnName), v)), nil
}

func genericDeleteDefaultConstraint(g *Generator, e *expressions.DeleteDefaultConstraint) (string, error) {
	return g.end(fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s DROP DEFAULT",
		g.table(e.TableName, e.SchemaName), g.d.quoter.QuoteColumnName(e.ColumnName))), nil
}

func genericCreateSequence(g *Generator, e *expressions.CreateSequence) (string, error) {
	s := &e.Sequence
	var b strings.Builder
	b.WriteString("CREATE SEQUENCE ")
	b.WriteString(g.d.quoter.QuoteSequenceName(s.Name, s.SchemaName))
	opt := func(keyword string, v *int64) {
		if v != nil {
			fmt.Fprintf(&b, " %s %d", keyword, *v)
		}
	}
	opt("INCREMENT BY", s.Increment)
	opt("MINVALUE", s.MinValue)
	opt("MAXVALUE", s.MaxValue)
	opt("START WITH", s.StartWith)
	opt("CACHE", s.Cache)
	if s.Cycle {
		b.WriteString(" CYCLE")
	}
	return g.end(b.String()), nil
}

func genericDeleteSequence(g *Generator, e *expressions.DeleteSequence) (string, error) {
	return g.end("DROP SEQUENCE " + g.d.quoter.QuoteSequenceName(e.SequenceName, e.SchemaName)), nil
}

func genericExecuteSQL(_ *Generator, e *expressions.ExecuteSQL) (string, error) {
	return e.SQL, nil
}

func unsupportedStatement[E any](msg string) func(g *Generator, e E) (string, error) {
	return func(g *Generator, _ E) (string, error) {
		return g.unsupported(msg)
	}
}

// alterStyle describes the per-clause ALTER COLUMN form used by dialects
// that cannot restate a whole column definition.
type alterStyle struct {
	column  string // prefix before the column name, "ALTER " or "ALTER COLUMN "
	setType string // "TYPE" or "SET DATA TYPE"
	sep     string
}

// alterClauses renders type, nullability and default changes of c as
// separate clauses. Only nullability and defaults that are set produce a
// clause.
func alterClauses(g *Generator, c *model.ColumnDefinition, st alterStyle) (string, error) {
	col := st.column + g.d.quoter.QuoteColumnName(c.Name)
	typ, err := g.d.column.formatType(g.d.column, c)
	if err != nil {
		return "", err
	}
	clauses := []string{col + " " + st.setType + " " + typ}
	switch c.Nullable {
	case model.Nullable:
		clauses = append(clauses, col+" DROP NOT NULL")
	case model.NotNullable:
		clauses = append(clauses, col+" SET NOT NULL")
	}
	if c.Default.IsSet() {
		def, err := g.d.column.formatDefault(c)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, col+" SET "+def)
	}
	return strings.Join(clauses, st.sep), nil
}
