package expressions

import (
	"github.com/Limetric/schemaferry/model"
)

// CreateTable creates a table with its columns.
type CreateTable struct {
	SchemaName  model.SchemaName
	TableName   string
	Columns     []*model.ColumnDefinition
	Description string
	Features    model.Features
}

func (*CreateTable) expression()                           {}
func (*CreateTable) Kind() Kind                            { return KindCreateTable }
func (e *CreateTable) Accept(v Visitor) error              { return v.VisitCreateTable(e) }
func (e *CreateTable) Describe() string                    { return "CreateTable " + e.TableName }
func (e *CreateTable) SchemaSlots() []*model.SchemaName    { return []*model.SchemaName{&e.SchemaName} }
func (e *CreateTable) AdditionalFeatures() *model.Features { return &e.Features }

func (e *CreateTable) CollectValidationErrors() []string {
	var errs []string
	if e.TableName == "" {
		errs = append(errs, model.ErrTableNameEmpty)
	}
	seen := make(map[string]bool, len(e.Columns))
	duplicate := false
	for _, c := range e.Columns {
		errs = append(errs, c.CollectValidationErrors()...)
		if c.Name != "" {
			if seen[c.Name] {
				duplicate = true
			}
			seen[c.Name] = true
		}
	}
	if duplicate {
		errs = append(errs, model.ErrColumnNamesNotUnique)
	}
	return errs
}

// DeleteTable drops a table.
type DeleteTable struct {
	SchemaName model.SchemaName
	TableName  string
}

func (*DeleteTable) expression()                        {}
func (*DeleteTable) Kind() Kind                         { return KindDeleteTable }
func (e *DeleteTable) Accept(v Visitor) error           { return v.VisitDeleteTable(e) }
func (e *DeleteTable) Describe() string                 { return "DeleteTable " + e.TableName }
func (e *DeleteTable) SchemaSlots() []*model.SchemaName { return []*model.SchemaName{&e.SchemaName} }

func (e *DeleteTable) CollectValidationErrors() []string {
	if e.TableName == "" {
		return []string{model.ErrTableNameEmpty}
	}
	return nil
}

// AlterTable changes table-level metadata; today only the description.
type AlterTable struct {
	SchemaName  model.SchemaName
	TableName   string
	Description string
}

func (*AlterTable) expression()                        {}
func (*AlterTable) Kind() Kind                         { return KindAlterTable }
func (e *AlterTable) Accept(v Visitor) error           { return v.VisitAlterTable(e) }
func (e *AlterTable) Describe() string                 { return "AlterTable " + e.TableName }
func (e *AlterTable) SchemaSlots() []*model.SchemaName { return []*model.SchemaName{&e.SchemaName} }

func (e *AlterTable) CollectValidationErrors() []string {
	if e.TableName == "" {
		return []string{model.ErrTableNameEmpty}
	}
	return nil
}

// RenameTable renames OldName to NewName within one schema.
type RenameTable struct {
	SchemaName model.SchemaName
	OldName    string
	NewName    string
}

func (*RenameTable) expression()                        {}
func (*RenameTable) Kind() Kind                         { return KindRenameTable }
func (e *RenameTable) Accept(v Visitor) error           { return v.VisitRenameTable(e) }
func (e *RenameTable) Describe() string                 { return "RenameTable " + e.OldName + " " + e.NewName }
func (e *RenameTable) SchemaSlots() []*model.SchemaName { return []*model.SchemaName{&e.SchemaName} }

func (e *RenameTable) CollectValidationErrors() []string {
	var errs []string
	if e.OldName == "" {
		errs = append(errs, model.ErrOldTableNameEmpty)
	}
	if e.NewName == "" {
		errs = append(errs, model.ErrNewTableNameEmpty)
	}
	return errs
}
