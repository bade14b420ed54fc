// Package generator turns expressions into dialect SQL. Every dialect is a
// copy of the generic statement table with a few entries replaced, plus a
// Quoter, a TypeMap and a column renderer.
package generator

import (
	"fmt"
	"strings"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

// Options tune a generator at construction.
type Options struct {
	Compatibility CompatibilityMode
	// StrictFeatures rejects known additional features the dialect does not
	// support. Unknown keys are always ignored.
	StrictFeatures bool
	// UnquotedIdentifiers quotes identifiers only when required, on the
	// dialects that allow it (postgres, snowflake).
	UnquotedIdentifiers bool
}

// statements holds one renderer per expression kind. A dialect starts from
// genericStatements and replaces the entries it renders differently.
type statements struct {
	createTable             func(g *Generator, e *expressions.CreateTable) (string, error)
	deleteTable             func(g *Generator, e *expressions.DeleteTable) (string, error)
	alterTable              func(g *Generator, e *expressions.AlterTable) (string, error)
	createColumn            func(g *Generator, e *expressions.CreateColumn) (string, error)
	alterColumn             func(g *Generator, e *expressions.AlterColumn) (string, error)
	deleteColumn            func(g *Generator, e *expressions.DeleteColumn) (string, error)
	renameColumn            func(g *Generator, e *expressions.RenameColumn) (string, error)
	renameTable             func(g *Generator, e *expressions.RenameTable) (string, error)
	createIndex             func(g *Generator, e *expressions.CreateIndex) (string, error)
	deleteIndex             func(g *Generator, e *expressions.DeleteIndex) (string, error)
	createConstraint        func(g *Generator, e *expressions.CreateConstraint) (string, error)
	deleteConstraint        func(g *Generator, e *expressions.DeleteConstraint) (string, error)
	createForeignKey        func(g *Generator, e *expressions.CreateForeignKey) (string, error)
	deleteForeignKey        func(g *Generator, e *expressions.DeleteForeignKey) (string, error)
	createSchema            func(g *Generator, e *expressions.CreateSchema) (string, error)
	deleteSchema            func(g *Generator, e *expressions.DeleteSchema) (string, error)
	alterSchema             func(g *Generator, e *expressions.AlterSchema) (string, error)
	insertData              func(g *Generator, e *expressions.InsertData) (string, error)
	deleteData              func(g *Generator, e *expressions.DeleteData) (string, error)
	updateData              func(g *Generator, e *expressions.UpdateData) (string, error)
	alterDefaultConstraint  func(g *Generator, e *expressions.AlterDefaultConstraint) (string, error)
	deleteDefaultConstraint func(g *Generator, e *expressions.DeleteDefaultConstraint) (string, error)
	createSequence          func(g *Generator, e *expressions.CreateSequence) (string, error)
	deleteSequence          func(g *Generator, e *expressions.DeleteSequence) (string, error)
	executeSQL              func(g *Generator, e *expressions.ExecuteSQL) (string, error)
}

type dialect struct {
	name      string
	quoter    *Quoter
	column    *columnRenderer
	describer describer
	stmts     statements

	// terminator ends every statement; separator sits between statements
	// of a multi-statement result.
	terminator string
	separator  string

	// addColumn and alterColumn are format strings taking the quoted table
	// and the rendered column.
	addColumn   string
	alterColumn string

	emptyDeleteColumnIsError bool

	features map[model.Feature]bool
	compose  func(g *Generator, ddl string, extra []string) string
}

// Generator renders expressions for one dialect. It holds no mutable
// state and is safe for concurrent use.
type Generator struct {
	d    *dialect
	opts Options
}

func newGenerator(d *dialect, opts Options) *Generator {
	if d.compose == nil {
		d.compose = composeTerminated
	}
	return &Generator{d: d, opts: opts}
}

func (g *Generator) Dialect() string   { return g.d.name }
func (g *Generator) Quoter() *Quoter   { return g.d.quoter }
func (g *Generator) TypeMap() *TypeMap { return g.d.column.types }
func (g *Generator) Options() Options  { return g.opts }

// Supports reports whether the dialect honours the additional feature f.
func (g *Generator) Supports(f model.Feature) bool { return g.d.features[f] }

// Generate returns the SQL for e. An empty string means there is nothing
// to execute; PerformDBOperation and ExecuteSQLScript are carried out by
// the processor and always generate "".
func (g *Generator) Generate(e expressions.Expression) (string, error) {
	if err := g.checkFeatures(e); err != nil {
		return "", err
	}
	v := &sqlVisitor{g: g}
	if err := e.Accept(v); err != nil {
		return "", err
	}
	return v.sql, nil
}

func (g *Generator) checkFeatures(e expressions.Expression) error {
	if !g.opts.StrictFeatures {
		return nil
	}
	var sets []*model.Features
	if fe, ok := e.(expressions.FeatureExpression); ok {
		sets = append(sets, fe.AdditionalFeatures())
	}
	switch e := e.(type) {
	case *expressions.CreateTable:
		for _, c := range e.Columns {
			if c != nil {
				sets = append(sets, &c.Features)
			}
		}
	case *expressions.CreateColumn:
		if e.Column != nil {
			sets = append(sets, &e.Column.Features)
		}
	case *expressions.AlterColumn:
		if e.Column != nil {
			sets = append(sets, &e.Column.Features)
		}
	}
	for _, f := range sets {
		for _, k := range f.Keys() {
			if k.Known() && !g.d.features[k] {
				return &UnsupportedFeatureError{
					Dialect: g.d.name,
					Message: fmt.Sprintf("additional feature %s is not supported", k),
				}
			}
		}
	}
	return nil
}

// unsupported applies the compatibility mode to an operation the dialect
// cannot express.
func (g *Generator) unsupported(msg string) (string, error) {
	if g.opts.Compatibility == Loose {
		return CompatibilityPrefix + msg, nil
	}
	return "", &UnsupportedFeatureError{Dialect: g.d.name, Message: msg}
}

func (g *Generator) end(stmt string) string { return stmt + g.d.terminator }

func (g *Generator) joinStatements(stmts []string) string {
	var b strings.Builder
	for i, s := range stmts {
		if i > 0 {
			b.WriteString(g.d.separator)
		}
		b.WriteString(s)
		b.WriteString(g.d.terminator)
	}
	return b.String()
}

// composeTerminated appends description statements to a terminated DDL
// statement using the dialect's separators.
func composeTerminated(g *Generator, ddl string, extra []string) string {
	if len(extra) == 0 {
		return ddl
	}
	return ddl + g.d.separator + g.joinStatements(extra)
}

func (g *Generator) table(name string, schema model.SchemaName) string {
	return g.d.quoter.QuoteTableName(name, schema)
}

func (g *Generator) columnList(names []string, sep string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = g.d.quoter.QuoteColumnName(n)
	}
	return strings.Join(quoted, sep)
}

func (g *Generator) rowColumns(row model.Row, sep string) string {
	quoted := make([]string, len(row))
	for i, cv := range row {
		quoted[i] = g.d.quoter.QuoteColumnName(cv.Column)
	}
	return strings.Join(quoted, sep)
}

func (g *Generator) rowValues(row model.Row, sep string) (string, error) {
	vals := make([]string, len(row))
	for i, cv := range row {
		v, err := g.d.quoter.QuoteValue(cv.Value)
		if err != nil {
			return "", err
		}
		vals[i] = v
	}
	return strings.Join(vals, sep), nil
}

// predicate renders a row as "a = 1 AND b IS NULL".
func (g *Generator) predicate(row model.Row) (string, error) {
	clauses := make([]string, len(row))
	for i, cv := range row {
		v, err := g.d.quoter.QuoteValue(cv.Value)
		if err != nil {
			return "", err
		}
		op := "="
		if model.IsNull(cv.Value) {
			op = "IS"
		}
		clauses[i] = g.d.quoter.QuoteColumnName(cv.Column) + " " + op + " " + v
	}
	return strings.Join(clauses, " AND "), nil
}

// assignments renders a row as "a = 1, b = NULL".
func (g *Generator) assignments(row model.Row) (string, error) {
	clauses := make([]string, len(row))
	for i, cv := range row {
		v, err := g.d.quoter.QuoteValue(cv.Value)
		if err != nil {
			return "", err
		}
		clauses[i] = g.d.quoter.QuoteColumnName(cv.Column) + " = " + v
	}
	return strings.Join(clauses, ", "), nil
}

func (g *Generator) checkForeignKeyColumns(fk *model.ForeignKeyDefinition) error {
	if len(fk.PrimaryColumns) != len(fk.ForeignColumns) {
		return &MalformedInputError{Message: "Number of primary columns and secondary columns must be equal"}
	}
	return nil
}

// sqlVisitor adapts the statement table to expressions.Visitor.
type sqlVisitor struct {
	g   *Generator
	sql string
}

func (v *sqlVisitor) VisitCreateTable(e *expressions.CreateTable) (err error) {
	v.sql, err = v.g.d.stmts.createTable(v.g, e)
	return err
}

func (v *sqlVisitor) VisitDeleteTable(e *expressions.DeleteTable) (err error) {
	v.sql, err = v.g.d.stmts.deleteTable(v.g, e)
	return err
}

func (v *sqlVisitor) VisitAlterTable(e *expressions.AlterTable) (err error) {
	v.sql, err = v.g.d.stmts.alterTable(v.g, e)
	return err
}

func (v *sqlVisitor) VisitCreateColumn(e *expressions.CreateColumn) (err error) {
	v.sql, err = v.g.d.stmts.createColumn(v.g, e)
	return err
}

func (v *sqlVisitor) VisitAlterColumn(e *expressions.AlterColumn) (err error) {
	v.sql, err = v.g.d.stmts.alterColumn(v.g, e)
	return err
}

func (v *sqlVisitor) VisitDeleteColumn(e *expressions.DeleteColumn) (err error) {
	v.sql, err = v.g.d.stmts.deleteColumn(v.g, e)
	return err
}

func (v *sqlVisitor) VisitRenameColumn(e *expressions.RenameColumn) (err error) {
	v.sql, err = v.g.d.stmts.renameColumn(v.g, e)
	return err
}

func (v *sqlVisitor) VisitRenameTable(e *expressions.RenameTable) (err error) {
	v.sql, err = v.g.d.stmts.renameTable(v.g, e)
	return err
}

func (v *sqlVisitor) VisitCreateIndex(e *expressions.CreateIndex) (err error) {
	v.sql, err = v.g.d.stmts.createIndex(v.g, e)
	return err
}

func (v *sqlVisitor) VisitDeleteIndex(e *expressions.DeleteIndex) (err error) {
	v.sql, err = v.g.d.stmts.deleteIndex(v.g, e)
	return err
}

func (v *sqlVisitor) VisitCreateConstraint(e *expressions.CreateConstraint) (err error) {
	v.sql, err = v.g.d.stmts.createConstraint(v.g, e)
	return err
}

func (v *sqlVisitor) VisitDeleteConstraint(e *expressions.DeleteConstraint) (err error) {
	v.sql, err = v.g.d.stmts.deleteConstraint(v.g, e)
	return err
}

// VisitCreateForeignKey rejects mismatched column counts before the
// dialect sees the expression, including dialects without foreign keys.
func (v *sqlVisitor) VisitCreateForeignKey(e *expressions.CreateForeignKey) (err error) {
	if ferr := v.g.checkForeignKeyColumns(&e.ForeignKey); ferr != nil {
		return ferr
	}
	v.sql, err = v.g.d.stmts.createForeignKey(v.g, e)
	return err
}

func (v *sqlVisitor) VisitDeleteForeignKey(e *expressions.DeleteForeignKey) (err error) {
	v.sql, err = v.g.d.stmts.deleteForeignKey(v.g, e)
	return err
}

func (v *sqlVisitor) VisitCreateSchema(e *expressions.CreateSchema) (err error) {
	v.sql, err = v.g.d.stmts.createSchema(v.g, e)
	return err
}

func (v *sqlVisitor) VisitDeleteSchema(e *expressions.DeleteSchema) (err error) {
	v.sql, err = v.g.d.stmts.deleteSchema(v.g, e)
	return err
}

func (v *sqlVisitor) VisitAlterSchema(e *expressions.AlterSchema) (err error) {
	v.sql, err = v.g.d.stmts.alterSchema(v.g, e)
	return err
}

func (v *sqlVisitor) VisitInsertData(e *expressions.InsertData) (err error) {
	v.sql, err = v.g.d.stmts.insertData(v.g, e)
	return err
}

func (v *sqlVisitor) VisitDeleteData(e *expressions.DeleteData) (err error) {
	v.sql, err = v.g.d.stmts.deleteData(v.g, e)
	return err
}

func (v *sqlVisitor) VisitUpdateData(e *expressions.UpdateData) (err error) {
	v.sql, err = v.g.d.stmts.updateData(v.g, e)
	return err
}

func (v *sqlVisitor) VisitAlterDefaultConstraint(e *expressions.AlterDefaultConstraint) (err error) {
	v.sql, err = v.g.d.stmts.alterDefaultConstraint(v.g, e)
	return err
}

func (v *sqlVisitor) VisitDeleteDefaultConstraint(e *expressions.DeleteDefaultConstraint) (err error) {
	v.sql, err = v.g.d.stmts.deleteDefaultConstraint(v.g, e)
	return err
}

func (v *sqlVisitor) VisitCreateSequence(e *expressions.CreateSequence) (err error) {
	v.sql, err = v.g.d.stmts.createSequence(v.g, e)
	return err
}

func (v *sqlVisitor) VisitDeleteSequence(e *expressions.DeleteSequence) (err error) {
	v.sql, err = v.g.d.stmts.deleteSequence(v.g, e)
	return err
}

func (v *sqlVisitor) VisitExecuteSQL(e *expressions.ExecuteSQL) (err error) {
	v.sql, err = v.g.d.stmts.executeSQL(v.g, e)
	return err
}

func (v *sqlVisitor) VisitPerformDBOperation(*expressions.PerformDBOperation) error {
	v.sql = ""
	return nil
}

func (v *sqlVisitor) VisitExecuteSQLScript(*expressions.ExecuteSQLScript) error {
	v.sql = ""
	return nil
}
