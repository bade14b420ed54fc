package migration

import (
	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

// Rename renames tables and columns.
type RenameBuilder struct {
	c *Context
}

func (b *RenameBuilder) Table(name string) *RenameTableBuilder {
	e := &expressions.RenameTable{OldName: name}
	b.c.add(e)
	return &RenameTableBuilder{e: e}
}

type RenameTableBuilder struct {
	e *expressions.RenameTable
}

func (b *RenameTableBuilder) InSchema(schema string) *RenameTableBuilder {
	b.e.SchemaName = model.Schema(schema)
	return b
}

func (b *RenameTableBuilder) To(name string) *RenameTableBuilder {
	b.e.NewName = name
	return b
}

func (b *RenameBuilder) Column(name string) *RenameColumnBuilder {
	e := &expressions.RenameColumn{OldName: name}
	b.c.add(e)
	return &RenameColumnBuilder{e: e}
}

type RenameColumnBuilder struct {
	e *expressions.RenameColumn
}

func (b *RenameColumnBuilder) OnTable(table string) *RenameColumnBuilder {
	b.e.TableName = table
	return b
}

func (b *RenameColumnBuilder) InSchema(schema string) *RenameColumnBuilder {
	b.e.SchemaName = model.Schema(schema)
	return b
}

func (b *RenameColumnBuilder) To(name string) *RenameColumnBuilder {
	b.e.NewName = name
	return b
}
