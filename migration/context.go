package migration

import (
	"context"
	"errors"
	"fmt"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

// Inspector answers existence questions against the target database.
// Processors implement it; migrations reach it through Context.Schema.
type Inspector interface {
	SchemaExists(ctx context.Context, schema string) (bool, error)
	TableExists(ctx context.Context, schema, table string) (bool, error)
}

// Context collects the expressions a migration's Up or Down describes, in
// authoring order. Builder misuse is recorded and reported by Err instead
// of panicking mid-migration.
type Context struct {
	ctx       context.Context
	inspector Inspector
	exprs     []expressions.Expression
	errs      []error
}

// NewContext returns an empty Context. inspector may be nil when no
// database is available; schema queries then fail.
func NewContext(ctx context.Context, inspector Inspector) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Context{ctx: ctx, inspector: inspector}
}

// Expressions returns the collected expressions.
func (c *Context) Expressions() []expressions.Expression { return c.exprs }

// Err returns every recorded builder error joined, or nil.
func (c *Context) Err() error { return errors.Join(c.errs...) }

func (c *Context) add(e expressions.Expression) {
	c.exprs = append(c.exprs, e)
}

func (c *Context) errorf(format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf(format, args...))
}

func (c *Context) Create() *CreateBuilder { return &CreateBuilder{c: c} }
func (c *Context) Alter() *AlterBuilder   { return &AlterBuilder{c: c} }
func (c *Context) Delete() *DeleteBuilder { return &DeleteBuilder{c: c} }
func (c *Context) Rename() *RenameBuilder { return &RenameBuilder{c: c} }

// Execute records raw SQL, SQL scripts and code operations.
func (c *Context) Execute() *ExecuteBuilder { return &ExecuteBuilder{c: c} }

// Insert starts an insert into table.
func (c *Context) Insert(table string) *InsertBuilder {
	e := &expressions.InsertData{TableName: table}
	c.add(e)
	return &InsertBuilder{c: c, e: e}
}

// Update starts an update of table. Exactly one of Where or AllRows must
// follow; the validator rejects anything else.
func (c *Context) Update(table string) *UpdateBuilder {
	e := &expressions.UpdateData{TableName: table}
	c.add(e)
	return &UpdateBuilder{e: e}
}

// Schema starts an existence query against schema. An empty name means the
// connection's default schema.
func (c *Context) Schema(schema string) *SchemaQuery {
	return &SchemaQuery{c: c, schema: schema}
}

// setFeature stores a feature value, recording unknown keys and mismatched
// kinds as builder errors.
func (c *Context) setFeature(f *model.Features, key model.Feature, v model.FeatureValue) {
	if err := f.Set(key, v); err != nil {
		c.errs = append(c.errs, err)
	}
}

// SchemaQuery checks whether a schema, or a table inside it, exists.
type SchemaQuery struct {
	c      *Context
	schema string
}

// Exists reports whether the schema exists. A failed query is recorded as
// a builder error and reported as false.
func (q *SchemaQuery) Exists() bool {
	if q.c.inspector == nil {
		q.c.errorf("schema %q: existence queries need a database connection", q.schema)
		return false
	}
	ok, err := q.c.inspector.SchemaExists(q.c.ctx, q.schema)
	if err != nil {
		q.c.errorf("check schema %q: %w", q.schema, err)
		return false
	}
	return ok
}

// Table narrows the query to a table.
func (q *SchemaQuery) Table(name string) *TableQuery {
	return &TableQuery{q: q, table: name}
}

type TableQuery struct {
	q     *SchemaQuery
	table string
}

func (t *TableQuery) Exists() bool {
	c := t.q.c
	if c.inspector == nil {
		c.errorf("table %q: existence queries need a database connection", t.table)
		return false
	}
	ok, err := c.inspector.TableExists(c.ctx, t.q.schema, t.table)
	if err != nil {
		c.errorf("check table %q: %w", t.table, err)
		return false
	}
	return ok
}
