package expressions

import (
	"context"
	"fmt"

	"github.com/Limetric/schemaferry/model"
)

// AlterDefaultConstraint replaces the default value of a column.
type AlterDefaultConstraint struct {
	SchemaName   model.SchemaName
	TableName    string
	ColumnName   string
	DefaultValue any
}

func (*AlterDefaultConstraint) expression()              {}
func (*AlterDefaultConstraint) Kind() Kind               { return KindAlterDefaultConstraint }
func (e *AlterDefaultConstraint) Accept(v Visitor) error { return v.VisitAlterDefaultConstraint(e) }
func (e *AlterDefaultConstraint) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.SchemaName}
}

func (e *AlterDefaultConstraint) Describe() string {
	return fmt.Sprintf("AlterDefaultConstraint %s %s %v", qualified(e.SchemaName, e.TableName), e.ColumnName, e.DefaultValue)
}

func (e *AlterDefaultConstraint) CollectValidationErrors() []string {
	var errs []string
	if e.TableName == "" {
		errs = append(errs, model.ErrTableNameEmpty)
	}
	if e.ColumnName == "" {
		errs = append(errs, model.ErrColumnNameEmpty)
	}
	return errs
}

// DeleteDefaultConstraint removes the default value of a column.
type DeleteDefaultConstraint struct {
	SchemaName model.SchemaName
	TableName  string
	ColumnName string
}

func (*DeleteDefaultConstraint) expression()              {}
func (*DeleteDefaultConstraint) Kind() Kind               { return KindDeleteDefaultConstraint }
func (e *DeleteDefaultConstraint) Accept(v Visitor) error { return v.VisitDeleteDefaultConstraint(e) }
func (e *DeleteDefaultConstraint) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.SchemaName}
}

func (e *DeleteDefaultConstraint) Describe() string {
	return "DeleteDefaultConstraint " + qualified(e.SchemaName, e.TableName) + " " + e.ColumnName
}

func (e *DeleteDefaultConstraint) CollectValidationErrors() []string {
	var errs []string
	if e.TableName == "" {
		errs = append(errs, model.ErrTableNameEmpty)
	}
	if e.ColumnName == "" {
		errs = append(errs, model.ErrColumnNameEmpty)
	}
	return errs
}

// PerformDBOperation runs caller code against the open transaction. It has
// no SQL of its own, so generators render nothing for it.
type PerformDBOperation struct {
	Description string
	Operation   func(ctx context.Context, db Execer) error
}

func (*PerformDBOperation) expression()              {}
func (*PerformDBOperation) Kind() Kind               { return KindPerformDBOperation }
func (e *PerformDBOperation) Accept(v Visitor) error { return v.VisitPerformDBOperation(e) }

func (e *PerformDBOperation) Describe() string {
	if e.Description == "" {
		return "PerformDBOperation"
	}
	return "PerformDBOperation " + e.Description
}

func (e *PerformDBOperation) CollectValidationErrors() []string {
	if e.Operation == nil {
		return []string{model.ErrOperationNil}
	}
	return nil
}

// CreateSequence creates a sequence.
type CreateSequence struct {
	Sequence model.SequenceDefinition
}

func (*CreateSequence) expression()              {}
func (*CreateSequence) Kind() Kind               { return KindCreateSequence }
func (e *CreateSequence) Accept(v Visitor) error { return v.VisitCreateSequence(e) }
func (e *CreateSequence) Describe() string       { return "CreateSequence " + e.Sequence.Name }
func (e *CreateSequence) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.Sequence.SchemaName}
}

func (e *CreateSequence) CollectValidationErrors() []string {
	return e.Sequence.CollectValidationErrors()
}

// DeleteSequence drops a sequence.
type DeleteSequence struct {
	SchemaName   model.SchemaName
	SequenceName string
}

func (*DeleteSequence) expression()              {}
func (*DeleteSequence) Kind() Kind               { return KindDeleteSequence }
func (e *DeleteSequence) Accept(v Visitor) error { return v.VisitDeleteSequence(e) }
func (e *DeleteSequence) Describe() string       { return "DeleteSequence " + e.SequenceName }
func (e *DeleteSequence) SchemaSlots() []*model.SchemaName {
	return []*model.SchemaName{&e.SchemaName}
}

func (e *DeleteSequence) CollectValidationErrors() []string {
	if e.SequenceName == "" {
		return []string{model.ErrSequenceNameEmpty}
	}
	return nil
}

// ExecuteSQL runs a raw statement. Generators return it unchanged.
type ExecuteSQL struct {
	SQL string
}

func (*ExecuteSQL) expression()              {}
func (*ExecuteSQL) Kind() Kind               { return KindExecuteSQL }
func (e *ExecuteSQL) Accept(v Visitor) error { return v.VisitExecuteSQL(e) }
func (e *ExecuteSQL) Describe() string       { return "ExecuteSqlStatement " + e.SQL }

func (e *ExecuteSQL) CollectValidationErrors() []string {
	if e.SQL == "" {
		return []string{model.ErrSQLStatementEmpty}
	}
	return nil
}

// ExecuteSQLScript runs the statements of a SQL file after $(name) token
// replacement. The processor reads the file; generators render nothing.
type ExecuteSQLScript struct {
	Path       string
	Parameters map[string]string
}

func (*ExecuteSQLScript) expression()              {}
func (*ExecuteSQLScript) Kind() Kind               { return KindExecuteSQLScript }
func (e *ExecuteSQLScript) Accept(v Visitor) error { return v.VisitExecuteSQLScript(e) }
func (e *ExecuteSQLScript) Describe() string       { return "ExecuteSqlScript " + e.Path }
func (e *ExecuteSQLScript) FilePath() *string      { return &e.Path }

func (e *ExecuteSQLScript) CollectValidationErrors() []string {
	if e.Path == "" {
		return []string{model.ErrSQLScriptEmpty}
	}
	return nil
}
