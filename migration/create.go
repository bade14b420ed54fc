package migration

import (
	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

// CreateBuilder starts every Create expression.
type CreateBuilder struct {
	c *Context
}

// Table creates a table. Columns are added with WithColumn; column indexes
// and foreign keys become their own expressions after the table.
func (b *CreateBuilder) Table(name string) *CreateTableBuilder {
	e := &expressions.CreateTable{TableName: name}
	scope := &tableScope{c: b.c, table: name}
	scope.track(&e.SchemaName)
	b.c.add(e)
	return &CreateTableBuilder{scope: scope, e: e}
}

type CreateTableBuilder struct {
	scope *tableScope
	e     *expressions.CreateTable
}

func (b *CreateTableBuilder) InSchema(schema string) *CreateTableBuilder {
	b.scope.inSchema(schema)
	return b
}

func (b *CreateTableBuilder) WithDescription(description string) *CreateTableBuilder {
	b.e.Description = description
	return b
}

func (b *CreateTableBuilder) WithFeature(key model.Feature, v model.FeatureValue) *CreateTableBuilder {
	b.scope.c.setFeature(&b.e.Features, key, v)
	return b
}

func (b *CreateTableBuilder) WithColumn(name string) *CreateTableColumn {
	col := &model.ColumnDefinition{Name: name, ModificationType: model.ColumnCreate}
	b.scope.trackTable(&col.TableName)
	b.e.Columns = append(b.e.Columns, col)
	cb := &CreateTableColumn{table: b}
	cb.columnOptions = columnOptions[*CreateTableColumn]{self: cb, scope: b.scope, col: col}
	return cb
}

// CreateTableColumn configures one column of a table being created.
type CreateTableColumn struct {
	columnOptions[*CreateTableColumn]
	table *CreateTableBuilder
}

// WithColumn moves on to the next column of the same table.
func (c *CreateTableColumn) WithColumn(name string) *CreateTableColumn {
	return c.table.WithColumn(name)
}

// Column adds a column to an existing table.
func (b *CreateBuilder) Column(name string) *CreateColumnBuilder {
	col := &model.ColumnDefinition{Name: name, ModificationType: model.ColumnCreate}
	e := &expressions.CreateColumn{Column: col}
	scope := &tableScope{c: b.c}
	scope.track(&e.SchemaName)
	scope.trackTable(&e.TableName)
	scope.trackTable(&col.TableName)
	b.c.add(e)
	cb := &CreateColumnBuilder{}
	cb.columnOptions = columnOptions[*CreateColumnBuilder]{self: cb, scope: scope, col: col}
	return cb
}

type CreateColumnBuilder struct {
	columnOptions[*CreateColumnBuilder]
}

func (b *CreateColumnBuilder) OnTable(table string) *CreateColumnBuilder {
	b.scope.onTable(table)
	return b
}

func (b *CreateColumnBuilder) InSchema(schema string) *CreateColumnBuilder {
	b.scope.inSchema(schema)
	return b
}

// Index creates an index. An empty name is filled in by the index-name
// convention.
func (b *CreateBuilder) Index(name string) *CreateIndexBuilder {
	e := &expressions.CreateIndex{Index: model.IndexDefinition{Name: name}}
	b.c.add(e)
	return &CreateIndexBuilder{c: b.c, idx: &e.Index}
}

type CreateIndexBuilder struct {
	c   *Context
	idx *model.IndexDefinition
}

func (b *CreateIndexBuilder) OnTable(table string) *CreateIndexBuilder {
	b.idx.TableName = table
	return b
}

func (b *CreateIndexBuilder) InSchema(schema string) *CreateIndexBuilder {
	b.idx.SchemaName = model.Schema(schema)
	return b
}

func (b *CreateIndexBuilder) OnColumn(name string) *CreateIndexBuilder {
	b.idx.Columns = append(b.idx.Columns, model.IndexColumnDefinition{Name: name})
	return b
}

func (b *CreateIndexBuilder) OnColumnDescending(name string) *CreateIndexBuilder {
	b.idx.Columns = append(b.idx.Columns, model.IndexColumnDefinition{Name: name, Direction: model.Descending})
	return b
}

func (b *CreateIndexBuilder) Unique() *CreateIndexBuilder {
	b.idx.Unique = true
	return b
}

func (b *CreateIndexBuilder) Clustered() *CreateIndexBuilder {
	b.idx.Clustered = true
	return b
}

func (b *CreateIndexBuilder) WithFeature(key model.Feature, v model.FeatureValue) *CreateIndexBuilder {
	b.c.setFeature(&b.idx.Features, key, v)
	return b
}

// ForeignKey creates a foreign key. An empty name is filled in by the
// foreign-key-name convention.
func (b *CreateBuilder) ForeignKey(name string) *ForeignKeyBuilder {
	e := &expressions.CreateForeignKey{ForeignKey: model.ForeignKeyDefinition{Name: name}}
	b.c.add(e)
	return &ForeignKeyBuilder{fk: &e.ForeignKey}
}

type ForeignKeyBuilder struct {
	fk *model.ForeignKeyDefinition
}

func (b *ForeignKeyBuilder) FromTable(table string) *ForeignKeyBuilder {
	b.fk.ForeignTable = table
	return b
}

func (b *ForeignKeyBuilder) FromSchema(schema string) *ForeignKeyBuilder {
	b.fk.ForeignTableSchema = model.Schema(schema)
	return b
}

func (b *ForeignKeyBuilder) ForeignColumns(names ...string) *ForeignKeyBuilder {
	b.fk.ForeignColumns = append(b.fk.ForeignColumns, names...)
	return b
}

func (b *ForeignKeyBuilder) ToTable(table string) *ForeignKeyBuilder {
	b.fk.PrimaryTable = table
	return b
}

func (b *ForeignKeyBuilder) ToSchema(schema string) *ForeignKeyBuilder {
	b.fk.PrimaryTableSchema = model.Schema(schema)
	return b
}

func (b *ForeignKeyBuilder) PrimaryColumns(names ...string) *ForeignKeyBuilder {
	b.fk.PrimaryColumns = append(b.fk.PrimaryColumns, names...)
	return b
}

func (b *ForeignKeyBuilder) OnDelete(r model.Rule) *ForeignKeyBuilder {
	b.fk.OnDelete = r
	return b
}

func (b *ForeignKeyBuilder) OnUpdate(r model.Rule) *ForeignKeyBuilder {
	b.fk.OnUpdate = r
	return b
}

// PrimaryKey creates a primary key constraint. An empty name is filled in
// by the constraint-name convention.
func (b *CreateBuilder) PrimaryKey(name string) *ConstraintBuilder {
	return b.constraint(model.PrimaryKeyConstraint, name)
}

// UniqueConstraint creates a unique constraint.
func (b *CreateBuilder) UniqueConstraint(name string) *ConstraintBuilder {
	return b.constraint(model.UniqueConstraint, name)
}

func (b *CreateBuilder) constraint(t model.ConstraintType, name string) *ConstraintBuilder {
	e := &expressions.CreateConstraint{Constraint: model.ConstraintDefinition{Type: t, ConstraintName: name}}
	b.c.add(e)
	return &ConstraintBuilder{c: b.c, def: &e.Constraint}
}

// ConstraintBuilder configures a constraint being created or deleted.
type ConstraintBuilder struct {
	c   *Context
	def *model.ConstraintDefinition
}

func (b *ConstraintBuilder) OnTable(table string) *ConstraintBuilder {
	b.def.TableName = table
	return b
}

func (b *ConstraintBuilder) InSchema(schema string) *ConstraintBuilder {
	b.def.SchemaName = model.Schema(schema)
	return b
}

func (b *ConstraintBuilder) Columns(names ...string) *ConstraintBuilder {
	b.def.Columns = append(b.def.Columns, names...)
	return b
}

func (b *ConstraintBuilder) WithFeature(key model.Feature, v model.FeatureValue) *ConstraintBuilder {
	b.c.setFeature(&b.def.Features, key, v)
	return b
}

func (b *CreateBuilder) Schema(name string) {
	b.c.add(&expressions.CreateSchema{SchemaName: name})
}

func (b *CreateBuilder) Sequence(name string) *SequenceBuilder {
	e := &expressions.CreateSequence{Sequence: model.SequenceDefinition{Name: name}}
	b.c.add(e)
	return &SequenceBuilder{seq: &e.Sequence}
}

// SequenceBuilder configures a sequence. Options left alone are omitted
// from the generated statement.
type SequenceBuilder struct {
	seq *model.SequenceDefinition
}

func (b *SequenceBuilder) InSchema(schema string) *SequenceBuilder {
	b.seq.SchemaName = model.Schema(schema)
	return b
}

func (b *SequenceBuilder) IncrementBy(n int64) *SequenceBuilder {
	b.seq.Increment = model.Int64Ptr(n)
	return b
}

func (b *SequenceBuilder) MinValue(n int64) *SequenceBuilder {
	b.seq.MinValue = model.Int64Ptr(n)
	return b
}

func (b *SequenceBuilder) MaxValue(n int64) *SequenceBuilder {
	b.seq.MaxValue = model.Int64Ptr(n)
	return b
}

func (b *SequenceBuilder) StartWith(n int64) *SequenceBuilder {
	b.seq.StartWith = model.Int64Ptr(n)
	return b
}

func (b *SequenceBuilder) Cache(n int64) *SequenceBuilder {
	b.seq.Cache = model.Int64Ptr(n)
	return b
}

func (b *SequenceBuilder) Cycle() *SequenceBuilder {
	b.seq.Cycle = true
	return b
}
