package expressions

import (
	"strings"

	"github.com/Limetric/schemaferry/model"
)

// CreateIndex creates an index.
type CreateIndex struct {
	Index model.IndexDefinition
}

func (*CreateIndex) expression()                               {}
func (*CreateIndex) Kind() Kind                                { return KindCreateIndex }
func (e *CreateIndex) Accept(v Visitor) error                  { return v.VisitCreateIndex(e) }
func (e *CreateIndex) IndexDefinition() *model.IndexDefinition { return &e.Index }
func (e *CreateIndex) AdditionalFeatures() *model.Features     { return &e.Index.Features }
func (e *CreateIndex) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.Index.SchemaName}
}

func (e *CreateIndex) Describe() string {
	return "CreateIndex " + e.Index.TableName + " (" + strings.Join(e.Index.ColumnNames(), ", ") + ")"
}

func (e *CreateIndex) CollectValidationErrors() []string {
	return e.Index.CollectValidationErrors()
}

// DeleteIndex drops an index. Only the name and, on dialects that need it,
// the table are used.
type DeleteIndex struct {
	Index model.IndexDefinition
}

func (*DeleteIndex) expression()                               {}
func (*DeleteIndex) Kind() Kind                                { return KindDeleteIndex }
func (e *DeleteIndex) Accept(v Visitor) error                  { return v.VisitDeleteIndex(e) }
func (e *DeleteIndex) IndexDefinition() *model.IndexDefinition { return &e.Index }
func (e *DeleteIndex) AdditionalFeatures() *model.Features     { return &e.Index.Features }
func (e *DeleteIndex) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.Index.SchemaName}
}

func (e *DeleteIndex) Describe() string {
	return "DeleteIndex " + e.Index.TableName + " (" + strings.Join(e.Index.ColumnNames(), ", ") + ")"
}

func (e *DeleteIndex) CollectValidationErrors() []string {
	var errs []string
	if e.Index.Name == "" {
		errs = append(errs, model.ErrIndexNameEmpty)
	}
	if e.Index.TableName == "" {
		errs = append(errs, model.ErrTableNameEmpty)
	}
	return errs
}

// CreateConstraint adds a primary key or unique constraint.
type CreateConstraint struct {
	Constraint model.ConstraintDefinition
}

func (*CreateConstraint) expression()                           {}
func (*CreateConstraint) Kind() Kind                            { return KindCreateConstraint }
func (e *CreateConstraint) Accept(v Visitor) error              { return v.VisitCreateConstraint(e) }
func (e *CreateConstraint) Describe() string                    { return "CreateConstraint " + e.Constraint.ConstraintName }
func (e *CreateConstraint) AdditionalFeatures() *model.Features { return &e.Constraint.Features }
func (e *CreateConstraint) ConstraintDefinition() *model.ConstraintDefinition {
	return &e.Constraint
}
func (e *CreateConstraint) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.Constraint.SchemaName}
}

func (e *CreateConstraint) CollectValidationErrors() []string {
	return e.Constraint.CollectValidationErrors()
}

// DeleteConstraint drops a primary key or unique constraint.
type DeleteConstraint struct {
	Constraint model.ConstraintDefinition
}

func (*DeleteConstraint) expression()                           {}
func (*DeleteConstraint) Kind() Kind                            { return KindDeleteConstraint }
func (e *DeleteConstraint) Accept(v Visitor) error              { return v.VisitDeleteConstraint(e) }
func (e *DeleteConstraint) Describe() string                    { return "DeleteConstraint " + e.Constraint.ConstraintName }
func (e *DeleteConstraint) AdditionalFeatures() *model.Features { return &e.Constraint.Features }
func (e *DeleteConstraint) ConstraintDefinition() *model.ConstraintDefinition {
	return &e.Constraint
}
func (e *DeleteConstraint) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.Constraint.SchemaName}
}

func (e *DeleteConstraint) CollectValidationErrors() []string {
	if e.Constraint.TableName == "" {
		return []string{model.ErrTableNameEmpty}
	}
	return nil
}

// CreateForeignKey adds a foreign key constraint.
type CreateForeignKey struct {
	ForeignKey model.ForeignKeyDefinition
}

func (*CreateForeignKey) expression()              {}
func (*CreateForeignKey) Kind() Kind               { return KindCreateForeignKey }
func (e *CreateForeignKey) Accept(v Visitor) error { return v.VisitCreateForeignKey(e) }
func (e *CreateForeignKey) ForeignKeyDefinition() *model.ForeignKeyDefinition {
	return &e.ForeignKey
}
func (e *CreateForeignKey) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.ForeignKey.ForeignTableSchema, &e.ForeignKey.PrimaryTableSchema}
}

func (e *CreateForeignKey) Describe() string {
	return describeForeignKey("CreateForeignKey ", &e.ForeignKey)
}

func (e *CreateForeignKey) CollectValidationErrors() []string {
	return e.ForeignKey.CollectValidationErrors()
}

// DeleteForeignKey drops a foreign key constraint from ForeignTable.
type DeleteForeignKey struct {
	ForeignKey model.ForeignKeyDefinition
}

func (*DeleteForeignKey) expression()              {}
func (*DeleteForeignKey) Kind() Kind               { return KindDeleteForeignKey }
func (e *DeleteForeignKey) Accept(v Visitor) error { return v.VisitDeleteForeignKey(e) }
func (e *DeleteForeignKey) ForeignKeyDefinition() *model.ForeignKeyDefinition {
	return &e.ForeignKey
}
func (e *DeleteForeignKey) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.ForeignKey.ForeignTableSchema, &e.ForeignKey.PrimaryTableSchema}
}

func (e *DeleteForeignKey) Describe() string {
	return describeForeignKey("DeleteForeignKey ", &e.ForeignKey)
}

func (e *DeleteForeignKey) CollectValidationErrors() []string {
	var errs []string
	if e.ForeignKey.Name == "" {
		errs = append(errs, model.ErrForeignKeyNameEmpty)
	}
	if e.ForeignKey.ForeignTable == "" {
		errs = append(errs, model.ErrForeignTableNameEmpty)
	}
	return errs
}

func describeForeignKey(prefix string, fk *model.ForeignKeyDefinition) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(fk.Name)
	b.WriteString(" ")
	b.WriteString(fk.ForeignTable)
	b.WriteString(" (" + strings.Join(fk.ForeignColumns, ", ") + ")")
	if fk.PrimaryTable != "" {
		b.WriteString(" " + fk.PrimaryTable)
		b.WriteString(" (" + strings.Join(fk.PrimaryColumns, ", ") + ")")
	}
	return b.String()
}
