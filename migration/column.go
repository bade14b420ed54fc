package migration

import (
	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

// tableScope is the table a builder is working on. Every schema or table
// slot it hands out follows later InSchema and OnTable calls.
type tableScope struct {
	c          *Context
	schema     model.SchemaName
	table      string
	slots      []*model.SchemaName
	tableSlots []*string
}

func (s *tableScope) track(slot *model.SchemaName) {
	*slot = s.schema
	s.slots = append(s.slots, slot)
}

func (s *tableScope) trackTable(slot *string) {
	*slot = s.table
	s.tableSlots = append(s.tableSlots, slot)
}

func (s *tableScope) inSchema(name string) {
	s.schema = model.Schema(name)
	for _, slot := range s.slots {
		*slot = s.schema
	}
}

func (s *tableScope) onTable(name string) {
	s.table = name
	for _, slot := range s.tableSlots {
		*slot = name
	}
}

// columnOptions holds the column modifiers shared by every column builder.
// B is the concrete builder returned so calls chain without losing the
// builder's own methods.
type columnOptions[B any] struct {
	self  B
	scope *tableScope
	col   *model.ColumnDefinition
	fk    *model.ForeignKeyDefinition
}

func (o *columnOptions[B]) as(t model.DbType, size, precision int) B {
	o.col.Type = t
	o.col.Size = size
	o.col.Precision = precision
	o.col.CustomType = ""
	return o.self
}

func (o *columnOptions[B]) AsAnsiString(size int) B { return o.as(model.AnsiString, size, 0) }
func (o *columnOptions[B]) AsFixedLengthAnsiString(size int) B {
	return o.as(model.AnsiStringFixedLength, size, 0)
}
func (o *columnOptions[B]) AsString(size int) B { return o.as(model.String, size, 0) }
func (o *columnOptions[B]) AsFixedLengthString(size int) B {
	return o.as(model.StringFixedLength, size, 0)
}
func (o *columnOptions[B]) AsBinary(size int) B { return o.as(model.Binary, size, 0) }
func (o *columnOptions[B]) AsBoolean() B        { return o.as(model.Boolean, 0, 0) }
func (o *columnOptions[B]) AsByte() B           { return o.as(model.Byte, 0, 0) }
func (o *columnOptions[B]) AsCurrency() B       { return o.as(model.Currency, 0, 0) }
func (o *columnOptions[B]) AsDate() B           { return o.as(model.Date, 0, 0) }
func (o *columnOptions[B]) AsDateTime() B       { return o.as(model.DateTime, 0, 0) }
func (o *columnOptions[B]) AsDateTime2() B      { return o.as(model.DateTime2, 0, 0) }
func (o *columnOptions[B]) AsDateTimeOffset() B { return o.as(model.DateTimeOffset, 0, 0) }
func (o *columnOptions[B]) AsDecimal(size, precision int) B {
	return o.as(model.Decimal, size, precision)
}
func (o *columnOptions[B]) AsDouble() B             { return o.as(model.Double, 0, 0) }
func (o *columnOptions[B]) AsFloat() B              { return o.as(model.Single, 0, 0) }
func (o *columnOptions[B]) AsGuid() B               { return o.as(model.Guid, 0, 0) }
func (o *columnOptions[B]) AsInt16() B              { return o.as(model.Int16, 0, 0) }
func (o *columnOptions[B]) AsInt32() B              { return o.as(model.Int32, 0, 0) }
func (o *columnOptions[B]) AsInt64() B              { return o.as(model.Int64, 0, 0) }
func (o *columnOptions[B]) AsTime() B               { return o.as(model.Time, 0, 0) }
func (o *columnOptions[B]) AsXml(size int) B        { return o.as(model.Xml, size, 0) }
func (o *columnOptions[B]) AsType(t model.DbType) B { return o.as(t, 0, 0) }

// AsCustom uses a native type name verbatim, bypassing the type map.
func (o *columnOptions[B]) AsCustom(native string) B {
	o.col.Type = model.TypeUnset
	o.col.CustomType = native
	return o.self
}

func (o *columnOptions[B]) Nullable() B {
	o.col.Nullable = model.Nullable
	return o.self
}

func (o *columnOptions[B]) NotNullable() B {
	o.col.Nullable = model.NotNullable
	return o.self
}

// WithDefault sets the column default. nil and model.DBNull give an explicit
// DEFAULT NULL; a model.SystemMethod renders as the dialect's function.
func (o *columnOptions[B]) WithDefault(v any) B {
	o.col.Default = model.Default(v)
	return o.self
}

func (o *columnOptions[B]) Identity() B {
	o.col.Identity = true
	return o.self
}

func (o *columnOptions[B]) WithCollation(collation string) B {
	o.col.Collation = collation
	return o.self
}

func (o *columnOptions[B]) WithColumnDescription(description string) B {
	o.col.Description = description
	return o.self
}

func (o *columnOptions[B]) WithFeature(key model.Feature, v model.FeatureValue) B {
	o.scope.c.setFeature(&o.col.Features, key, v)
	return o.self
}

// PrimaryKey marks the column as (part of) the primary key. An empty name
// lets the dialect choose.
func (o *columnOptions[B]) PrimaryKey(name string) B {
	o.col.PrimaryKey = true
	o.col.PrimaryKeyName = name
	return o.self
}

// Indexed adds a single-column index. An empty name is filled in by the
// index-name convention.
func (o *columnOptions[B]) Indexed(name string) B {
	o.col.Indexed = true
	o.index(name, false)
	return o.self
}

// Unique adds a single-column unique index.
func (o *columnOptions[B]) Unique(name string) B {
	o.col.Unique = true
	o.index(name, true)
	return o.self
}

func (o *columnOptions[B]) index(name string, unique bool) {
	e := &expressions.CreateIndex{Index: model.IndexDefinition{
		Name:    name,
		Unique:  unique,
		Columns: []model.IndexColumnDefinition{{Name: o.col.Name}},
	}}
	o.scope.track(&e.Index.SchemaName)
	o.scope.trackTable(&e.Index.TableName)
	o.scope.c.add(e)
}

// ForeignKey references primaryColumn of primaryTable. An empty name is
// filled in by the foreign-key-name convention.
func (o *columnOptions[B]) ForeignKey(name, primaryTable, primaryColumn string) B {
	return o.foreignKey(name, model.SchemaName{}, primaryTable, primaryColumn)
}

// ForeignKeyInSchema is ForeignKey for a primary table in another schema.
func (o *columnOptions[B]) ForeignKeyInSchema(name, primarySchema, primaryTable, primaryColumn string) B {
	return o.foreignKey(name, model.Schema(primarySchema), primaryTable, primaryColumn)
}

func (o *columnOptions[B]) foreignKey(name string, primarySchema model.SchemaName, primaryTable, primaryColumn string) B {
	e := &expressions.CreateForeignKey{ForeignKey: model.ForeignKeyDefinition{
		Name:               name,
		ForeignColumns:     []string{o.col.Name},
		PrimaryTable:       primaryTable,
		PrimaryTableSchema: primarySchema,
		PrimaryColumns:     []string{primaryColumn},
	}}
	o.scope.track(&e.ForeignKey.ForeignTableSchema)
	o.scope.trackTable(&e.ForeignKey.ForeignTable)
	o.scope.c.add(e)
	o.col.IsForeignKey = true
	o.col.ForeignKey = &e.ForeignKey
	o.fk = &e.ForeignKey
	return o.self
}

// OnDelete sets the delete rule of the column's last foreign key.
func (o *columnOptions[B]) OnDelete(r model.Rule) B {
	if o.fk == nil {
		o.scope.c.errorf("column %q: OnDelete without ForeignKey", o.col.Name)
		return o.self
	}
	o.fk.OnDelete = r
	return o.self
}

// OnUpdate sets the update rule of the column's last foreign key.
func (o *columnOptions[B]) OnUpdate(r model.Rule) B {
	if o.fk == nil {
		o.scope.c.errorf("column %q: OnUpdate without ForeignKey", o.col.Name)
		return o.self
	}
	o.fk.OnUpdate = r
	return o.self
}

// OnDeleteOrUpdate sets both rules.
func (o *columnOptions[B]) OnDeleteOrUpdate(r model.Rule) B {
	o.OnDelete(r)
	return o.OnUpdate(r)
}
