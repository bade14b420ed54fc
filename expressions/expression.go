// Package expressions defines the intermediate representation of schema
// and data operations. Each operation is one variant of the closed
// Expression sum type; generators and processors consume them through
// Visitor.
package expressions

import (
	"context"

	"github.com/Limetric/schemaferry/model"
)

// Kind identifies an expression variant.
type Kind int

const (
	KindCreateTable Kind = iota + 1
	KindDeleteTable
	KindAlterTable
	KindCreateColumn
	KindAlterColumn
	KindDeleteColumn
	KindRenameColumn
	KindRenameTable
	KindCreateIndex
	KindDeleteIndex
	KindCreateConstraint
	KindDeleteConstraint
	KindCreateForeignKey
	KindDeleteForeignKey
	KindCreateSchema
	KindDeleteSchema
	KindAlterSchema
	KindInsertData
	KindDeleteData
	KindUpdateData
	KindAlterDefaultConstraint
	KindDeleteDefaultConstraint
	KindPerformDBOperation
	KindCreateSequence
	KindDeleteSequence
	KindExecuteSQL
	KindExecuteSQLScript
)

var kindNames = map[Kind]string{
	KindCreateTable:             "CreateTableExpression",
	KindDeleteTable:             "DeleteTableExpression",
	KindAlterTable:              "AlterTableExpression",
	KindCreateColumn:            "CreateColumnExpression",
	KindAlterColumn:             "AlterColumnExpression",
	KindDeleteColumn:            "DeleteColumnExpression",
	KindRenameColumn:            "RenameColumnExpression",
	KindRenameTable:             "RenameTableExpression",
	KindCreateIndex:             "CreateIndexExpression",
	KindDeleteIndex:             "DeleteIndexExpression",
	KindCreateConstraint:        "CreateConstraintExpression",
	KindDeleteConstraint:        "DeleteConstraintExpression",
	KindCreateForeignKey:        "CreateForeignKeyExpression",
	KindDeleteForeignKey:        "DeleteForeignKeyExpression",
	KindCreateSchema:            "CreateSchemaExpression",
	KindDeleteSchema:            "DeleteSchemaExpression",
	KindAlterSchema:             "AlterSchemaExpression",
	KindInsertData:              "InsertDataExpression",
	KindDeleteData:              "DeleteDataExpression",
	KindUpdateData:              "UpdateDataExpression",
	KindAlterDefaultConstraint:  "AlterDefaultConstraintExpression",
	KindDeleteDefaultConstraint: "DeleteDefaultConstraintExpression",
	KindPerformDBOperation:      "PerformDBOperationExpression",
	KindCreateSequence:          "CreateSequenceExpression",
	KindDeleteSequence:          "DeleteSequenceExpression",
	KindExecuteSQL:              "ExecuteSqlExpression",
	KindExecuteSQLScript:        "ExecuteSqlScriptExpression",
}

// String returns the expression type name used in validation reports.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UnknownExpression"
}

// Expression is one schema or data operation. Only this package defines
// implementations.
type Expression interface {
	Kind() Kind
	// CollectValidationErrors returns human-readable problems with the
	// expression. It never mutates the expression.
	CollectValidationErrors() []string
	// Describe returns a short diagnostic string.
	Describe() string
	// Accept calls the Visitor method matching the variant.
	Accept(v Visitor) error

	expression()
}

// Visitor has one method per expression variant. Implementations get a
// compile error when a variant is added and not handled.
type Visitor interface {
	VisitCreateTable(*CreateTable) error
	VisitDeleteTable(*DeleteTable) error
	VisitAlterTable(*AlterTable) error
	VisitCreateColumn(*CreateColumn) error
	VisitAlterColumn(*AlterColumn) error
	VisitDeleteColumn(*DeleteColumn) error
	VisitRenameColumn(*RenameColumn) error
	VisitRenameTable(*RenameTable) error
	VisitCreateIndex(*CreateIndex) error
	VisitDeleteIndex(*DeleteIndex) error
	VisitCreateConstraint(*CreateConstraint) error
	VisitDeleteConstraint(*DeleteConstraint) error
	VisitCreateForeignKey(*CreateForeignKey) error
	VisitDeleteForeignKey(*DeleteForeignKey) error
	VisitCreateSchema(*CreateSchema) error
	VisitDeleteSchema(*DeleteSchema) error
	VisitAlterSchema(*AlterSchema) error
	VisitInsertData(*InsertData) error
	VisitDeleteData(*DeleteData) error
	VisitUpdateData(*UpdateData) error
	VisitAlterDefaultConstraint(*AlterDefaultConstraint) error
	VisitDeleteDefaultConstraint(*DeleteDefaultConstraint) error
	VisitPerformDBOperation(*PerformDBOperation) error
	VisitCreateSequence(*CreateSequence) error
	VisitDeleteSequence(*DeleteSequence) error
	VisitExecuteSQL(*ExecuteSQL) error
	VisitExecuteSQLScript(*ExecuteSQLScript) error
}

// Execer runs a statement inside the processor's current transaction.
// PerformDBOperation callbacks receive one.
type Execer interface {
	Exec(ctx context.Context, query string, args ...any) error
}

// SchemaExpression exposes every schema slot of an expression so the
// default-schema convention can fill the unset ones.
type SchemaExpression interface {
	Expression
	SchemaSlots() []*model.SchemaName
}

// IndexExpression is implemented by expressions carrying an index.
type IndexExpression interface {
	Expression
	IndexDefinition() *model.IndexDefinition
}

// ConstraintExpression is implemented by expressions carrying a constraint.
type ConstraintExpression interface {
	Expression
	ConstraintDefinition() *model.ConstraintDefinition
}

// ForeignKeyExpression is implemented by expressions carrying a foreign key.
type ForeignKeyExpression interface {
	Expression
	ForeignKeyDefinition() *model.ForeignKeyDefinition
}

// FileSystemExpression is implemented by expressions that reference a file
// on disk.
type FileSystemExpression interface {
	Expression
	FilePath() *string
}

// FeatureExpression is implemented by expressions with additional features.
type FeatureExpression interface {
	Expression
	AdditionalFeatures() *model.Features
}

// qualified renders schema.name for diagnostics, omitting an unset or
// empty schema.
func qualified(schema model.SchemaName, name string) string {
	if schema.String() == "" {
		return name
	}
	return schema.String() + "." + name
}
