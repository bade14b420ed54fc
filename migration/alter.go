package migration

import (
	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

type AlterBuilder struct {
	c *Context
}

// Table alters an existing table: its description, its columns, or the
// schema it lives in.
func (b *AlterBuilder) Table(name string) *AlterTableBuilder {
	return &AlterTableBuilder{scope: &tableScope{c: b.c, table: name}}
}

type AlterTableBuilder struct {
	scope *tableScope
}

func (b *AlterTableBuilder) InSchema(schema string) *AlterTableBuilder {
	b.scope.inSchema(schema)
	return b
}

func (b *AlterTableBuilder) WithDescription(description string) *AlterTableBuilder {
	e := &expressions.AlterTable{TableName: b.scope.table, Description: description}
	b.scope.track(&e.SchemaName)
	b.scope.c.add(e)
	return b
}

// ToSchema moves the table into schema.
func (b *AlterTableBuilder) ToSchema(schema string) *AlterTableBuilder {
	e := &expressions.AlterSchema{TableName: b.scope.table, DestinationSchemaName: schema}
	b.scope.track(&e.SourceSchemaName)
	b.scope.c.add(e)
	return b
}

func (b *AlterTableBuilder) AddColumn(name string) *AlterTableColumn {
	col := &model.ColumnDefinition{Name: name, TableName: b.scope.table, ModificationType: model.ColumnCreate}
	e := &expressions.CreateColumn{TableName: b.scope.table, Column: col}
	b.scope.track(&e.SchemaName)
	b.scope.c.add(e)
	return b.column(col)
}

func (b *AlterTableBuilder) AlterColumn(name string) *AlterTableColumn {
	col := &model.ColumnDefinition{Name: name, TableName: b.scope.table, ModificationType: model.ColumnAlter}
	e := &expressions.AlterColumn{TableName: b.scope.table, Column: col}
	b.scope.track(&e.SchemaName)
	b.scope.c.add(e)
	return b.column(col)
}

func (b *AlterTableBuilder) column(col *model.ColumnDefinition) *AlterTableColumn {
	cb := &AlterTableColumn{table: b}
	cb.columnOptions = columnOptions[*AlterTableColumn]{self: cb, scope: b.scope, col: col}
	return cb
}

// AlterTableColumn configures a column added or redefined by Alter().Table.
type AlterTableColumn struct {
	columnOptions[*AlterTableColumn]
	table *AlterTableBuilder
}

func (c *AlterTableColumn) AddColumn(name string) *AlterTableColumn {
	return c.table.AddColumn(name)
}

func (c *AlterTableColumn) AlterColumn(name string) *AlterTableColumn {
	return c.table.AlterColumn(name)
}

// Column redefines a column. The whole definition is replaced, so the type
// must be given again.
func (b *AlterBuilder) Column(name string) *AlterColumnBuilder {
	col := &model.ColumnDefinition{Name: name, ModificationType: model.ColumnAlter}
	e := &expressions.AlterColumn{Column: col}
	scope := &tableScope{c: b.c}
	scope.track(&e.SchemaName)
	scope.trackTable(&e.TableName)
	scope.trackTable(&col.TableName)
	b.c.add(e)
	cb := &AlterColumnBuilder{}
	cb.columnOptions = columnOptions[*AlterColumnBuilder]{self: cb, scope: scope, col: col}
	return cb
}

type AlterColumnBuilder struct {
	columnOptions[*AlterColumnBuilder]
}

func (b *AlterColumnBuilder) OnTable(table string) *AlterColumnBuilder {
	b.scope.onTable(table)
	return b
}

func (b *AlterColumnBuilder) InSchema(schema string) *AlterColumnBuilder {
	b.scope.inSchema(schema)
	return b
}

// DefaultValue replaces only the default of column, leaving its type and
// nullability alone.
func (b *AlterBuilder) DefaultValue(column string) *AlterDefaultBuilder {
	e := &expressions.AlterDefaultConstraint{ColumnName: column}
	b.c.add(e)
	return &AlterDefaultBuilder{e: e}
}

type AlterDefaultBuilder struct {
	e *expressions.AlterDefaultConstraint
}

func (b *AlterDefaultBuilder) OnTable(table string) *AlterDefaultBuilder {
	b.e.TableName = table
	return b
}

func (b *AlterDefaultBuilder) InSchema(schema string) *AlterDefaultBuilder {
	b.e.SchemaName = model.Schema(schema)
	return b
}

// To sets the new default. nil renders as NULL.
func (b *AlterDefaultBuilder) To(v any) *AlterDefaultBuilder {
	b.e.DefaultValue = v
	return b
}
