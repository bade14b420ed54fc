package migration

import (
	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

type DeleteBuilder struct {
	c *Context
}

func (b *DeleteBuilder) Table(name string) *DeleteTableBuilder {
	e := &expressions.DeleteTable{TableName: name}
	b.c.add(e)
	return &DeleteTableBuilder{e: e}
}

type DeleteTableBuilder struct {
	e *expressions.DeleteTable
}

func (b *DeleteTableBuilder) InSchema(schema string) *DeleteTableBuilder {
	b.e.SchemaName = model.Schema(schema)
	return b
}

// Column drops a column. Further columns of the same table are added with
// Column on the returned builder and dropped by the same expression.
func (b *DeleteBuilder) Column(name string) *DeleteColumnBuilder {
	e := &expressions.DeleteColumn{ColumnNames: []string{name}}
	b.c.add(e)
	return &DeleteColumnBuilder{e: e}
}

type DeleteColumnBuilder struct {
	e *expressions.DeleteColumn
}

func (b *DeleteColumnBuilder) Column(name string) *DeleteColumnBuilder {
	b.e.ColumnNames = append(b.e.ColumnNames, name)
	return b
}

func (b *DeleteColumnBuilder) FromTable(table string) *DeleteColumnBuilder {
	b.e.TableName = table
	return b
}

func (b *DeleteColumnBuilder) InSchema(schema string) *DeleteColumnBuilder {
	b.e.SchemaName = model.Schema(schema)
	return b
}

func (b *DeleteBuilder) Index(name string) *DeleteIndexBuilder {
	e := &expressions.DeleteIndex{Index: model.IndexDefinition{Name: name}}
	b.c.add(e)
	return &DeleteIndexBuilder{idx: &e.Index}
}

type DeleteIndexBuilder struct {
	idx *model.IndexDefinition
}

func (b *DeleteIndexBuilder) OnTable(table string) *DeleteIndexBuilder {
	b.idx.TableName = table
	return b
}

func (b *DeleteIndexBuilder) InSchema(schema string) *DeleteIndexBuilder {
	b.idx.SchemaName = model.Schema(schema)
	return b
}

// OnColumn records the indexed columns. Dropping only needs the name; the
// columns let the index-name convention derive an omitted one.
func (b *DeleteIndexBuilder) OnColumn(names ...string) *DeleteIndexBuilder {
	for _, n := range names {
		b.idx.Columns = append(b.idx.Columns, model.IndexColumnDefinition{Name: n})
	}
	return b
}

func (b *DeleteBuilder) ForeignKey(name string) *DeleteForeignKeyBuilder {
	e := &expressions.DeleteForeignKey{ForeignKey: model.ForeignKeyDefinition{Name: name}}
	b.c.add(e)
	return &DeleteForeignKeyBuilder{fk: &e.ForeignKey}
}

type DeleteForeignKeyBuilder struct {
	fk *model.ForeignKeyDefinition
}

func (b *DeleteForeignKeyBuilder) OnTable(table string) *DeleteForeignKeyBuilder {
	b.fk.ForeignTable = table
	return b
}

func (b *DeleteForeignKeyBuilder) InSchema(schema string) *DeleteForeignKeyBuilder {
	b.fk.ForeignTableSchema = model.Schema(schema)
	return b
}

func (b *DeleteBuilder) PrimaryKey(name string) *ConstraintBuilder {
	return b.constraint(model.PrimaryKeyConstraint, name)
}

func (b *DeleteBuilder) UniqueConstraint(name string) *ConstraintBuilder {
	return b.constraint(model.UniqueConstraint, name)
}

func (b *DeleteBuilder) constraint(t model.ConstraintType, name string) *ConstraintBuilder {
	e := &expressions.DeleteConstraint{Constraint: model.ConstraintDefinition{Type: t, ConstraintName: name}}
	b.c.add(e)
	return &ConstraintBuilder{c: b.c, def: &e.Constraint}
}

func (b *DeleteBuilder) Schema(name string) {
	b.c.add(&expressions.DeleteSchema{SchemaName: name})
}

func (b *DeleteBuilder) Sequence(name string) *DeleteSequenceBuilder {
	e := &expressions.DeleteSequence{SequenceName: name}
	b.c.add(e)
	return &DeleteSequenceBuilder{e: e}
}

type DeleteSequenceBuilder struct {
	e *expressions.DeleteSequence
}

func (b *DeleteSequenceBuilder) InSchema(schema string) *DeleteSequenceBuilder {
	b.e.SchemaName = model.Schema(schema)
	return b
}

// DefaultConstraint removes the default of column.
func (b *DeleteBuilder) DefaultConstraint(column string) *DeleteDefaultBuilder {
	e := &expressions.DeleteDefaultConstraint{ColumnName: column}
	b.c.add(e)
	return &DeleteDefaultBuilder{e: e}
}

type DeleteDefaultBuilder struct {
	e *expressions.DeleteDefaultConstraint
}

func (b *DeleteDefaultBuilder) OnTable(table string) *DeleteDefaultBuilder {
	b.e.TableName = table
	return b
}

func (b *DeleteDefaultBuilder) InSchema(schema string) *DeleteDefaultBuilder {
	b.e.SchemaName = model.Schema(schema)
	return b
}

// FromTable deletes rows. Each Row call adds a predicate; AllRows
// deletes everything.
func (b *DeleteBuilder) FromTable(table string) *DeleteDataBuilder {
	e := &expressions.DeleteData{TableName: table}
	b.c.add(e)
	return &DeleteDataBuilder{e: e}
}

type DeleteDataBuilder struct {
	e *expressions.DeleteData
}

func (b *DeleteDataBuilder) InSchema(schema string) *DeleteDataBuilder {
	b.e.SchemaName = model.Schema(schema)
	return b
}

// Row deletes the rows matching every column of values.
func (b *DeleteDataBuilder) Row(values map[string]any) *DeleteDataBuilder {
	b.e.Rows = append(b.e.Rows, model.RowFromMap(values))
	return b
}

// IsNull deletes the rows where column is NULL.
func (b *DeleteDataBuilder) IsNull(column string) *DeleteDataBuilder {
	b.e.Rows = append(b.e.Rows, model.Row{{Column: column, Value: model.DBNull}})
	return b
}

func (b *DeleteDataBuilder) AllRows() *DeleteDataBuilder {
	b.e.AllRows = true
	return b
}
