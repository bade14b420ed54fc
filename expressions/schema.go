package expressions

import (
	"github.com/Limetric/schemaferry/model"
)

// CreateSchema creates a schema.
type CreateSchema struct {
	SchemaName string
}

func (*CreateSchema) expression()              {}
func (*CreateSchema) Kind() Kind               { return KindCreateSchema }
func (e *CreateSchema) Accept(v Visitor) error { return v.VisitCreateSchema(e) }
func (e *CreateSchema) Describe() string       { return "CreateSchema " + e.SchemaName }

func (e *CreateSchema) CollectValidationErrors() []string {
	if e.SchemaName == "" {
		return []string{model.ErrSchemaNameEmpty}
	}
	return nil
}

// DeleteSchema drops a schema.
type DeleteSchema struct {
	SchemaName string
}

func (*DeleteSchema) expression()              {}
func (*DeleteSchema) Kind() Kind               { return KindDeleteSchema }
func (e *DeleteSchema) Accept(v Visitor) error { return v.VisitDeleteSchema(e) }
func (e *DeleteSchema) Describe() string       { return "DeleteSchema " + e.SchemaName }

func (e *DeleteSchema) CollectValidationErrors() []string {
	if e.SchemaName == "" {
		return []string{model.ErrSchemaNameEmpty}
	}
	return nil
}

// AlterSchema moves a table from SourceSchemaName to DestinationSchemaName.
type AlterSchema struct {
	SourceSchemaName      model.SchemaName
	TableName             string
	DestinationSchemaName string
}

func (*AlterSchema) expression()              {}
func (*AlterSchema) Kind() Kind               { return KindAlterSchema }
func (e *AlterSchema) Accept(v Visitor) error { return v.VisitAlterSchema(e) }
func (e *AlterSchema) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.SourceSchemaName}
}

func (e *AlterSchema) Describe() string {
	return "AlterSchema " + qualified(e.SourceSchemaName, e.TableName) + " " + e.DestinationSchemaName
}

func (e *AlterSchema) CollectValidationErrors() []string {
	var errs []string
	if e.TableName == "" {
		errs = append(errs, model.ErrTableNameEmpty)
	}
	if e.DestinationSchemaName == "" {
		errs = append(errs, model.ErrDestinationSchemaEmpty)
	}
	return errs
}
