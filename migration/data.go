package migration

import (
	"context"
	"io/fs"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

type InsertBuilder struct {
	c *Context
	e *expressions.InsertData
}

func (b *InsertBuilder) InSchema(schema string) *InsertBuilder {
	b.e.SchemaName = model.Schema(schema)
	return b
}

// Row adds a row; columns render in name order.
func (b *InsertBuilder) Row(values map[string]any) *InsertBuilder {
	b.e.Rows = append(b.e.Rows, model.RowFromMap(values))
	return b
}

// Values adds a row keeping the given column order.
func (b *InsertBuilder) Values(row model.Row) *InsertBuilder {
	b.e.Rows = append(b.e.Rows, row.Clone())
	return b
}

// WithIdentityInsert allows explicit values for identity columns on SQL
// Server. Other dialects ignore it.
func (b *InsertBuilder) WithIdentityInsert() *InsertBuilder {
	b.c.setFeature(&b.e.Features, model.SqlServerIdentityInsert, model.BoolValue(true))
	return b
}

type UpdateBuilder struct {
	e *expressions.UpdateData
}

func (b *UpdateBuilder) InSchema(schema string) *UpdateBuilder {
	b.e.SchemaName = model.Schema(schema)
	return b
}

// Set adds assignments; columns render in name order.
func (b *UpdateBuilder) Set(values map[string]any) *UpdateBuilder {
	b.e.Set = append(b.e.Set, model.RowFromMap(values)...)
	return b
}

// Where restricts the update to rows matching every column of values.
func (b *UpdateBuilder) Where(values map[string]any) *UpdateBuilder {
	b.e.Where = append(b.e.Where, model.RowFromMap(values)...)
	return b
}

func (b *UpdateBuilder) AllRows() *UpdateBuilder {
	b.e.AllRows = true
	return b
}

type ExecuteBuilder struct {
	c *Context
}

// SQL runs a raw statement as written.
func (b *ExecuteBuilder) SQL(statement string) {
	b.c.add(&expressions.ExecuteSQL{SQL: statement})
}

// Script runs a SQL file after $(name) token replacement. Relative paths
// are resolved against the root-path convention.
func (b *ExecuteBuilder) Script(path string, params map[string]string) {
	b.c.add(&expressions.ExecuteSQLScript{Path: path, Parameters: params})
}

// EmbeddedScript reads a script from fsys now and runs its contents as a
// raw statement. Token replacement does not apply.
func (b *ExecuteBuilder) EmbeddedScript(fsys fs.FS, name string) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		b.c.errorf("read embedded script %s: %w", name, err)
		return
	}
	b.c.add(&expressions.ExecuteSQL{SQL: string(data)})
}

// Operation runs fn inside the migration's transaction.
func (b *ExecuteBuilder) Operation(description string, fn func(ctx context.Context, db expressions.Execer) error) {
	b.c.add(&expressions.PerformDBOperation{Description: description, Operation: fn})
}
