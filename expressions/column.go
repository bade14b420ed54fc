package expressions

import (
	"strings"

	"github.com/Limetric/schemaferry/model"
)

// CreateColumn adds a column to an existing table.
type CreateColumn struct {
	SchemaName model.SchemaName
	TableName  string
	Column     *model.ColumnDefinition
}

func (*CreateColumn) expression()                        {}
func (*CreateColumn) Kind() Kind                         { return KindCreateColumn }
func (e *CreateColumn) Accept(v Visitor) error           { return v.VisitCreateColumn(e) }
func (e *CreateColumn) SchemaSlots() []*model.SchemaName { return []*model.SchemaName{&e.SchemaName} }

func (e *CreateColumn) Describe() string {
	return "CreateColumn " + e.TableName + " " + columnName(e.Column)
}

func (e *CreateColumn) CollectValidationErrors() []string {
	return tableColumnErrors(e.TableName, e.Column)
}

// AlterColumn redefines an existing column.
type AlterColumn struct {
	SchemaName model.SchemaName
	TableName  string
	Column     *model.ColumnDefinition
}

func (*AlterColumn) expression()                        {}
func (*AlterColumn) Kind() Kind                         { return KindAlterColumn }
func (e *AlterColumn) Accept(v Visitor) error           { return v.VisitAlterColumn(e) }
func (e *AlterColumn) SchemaSlots() []*model.SchemaName { return []*model.SchemaName{&e.SchemaName} }

func (e *AlterColumn) Describe() string {
	return "AlterColumn " + e.TableName + " " + columnName(e.Column)
}

func (e *AlterColumn) CollectValidationErrors() []string {
	return tableColumnErrors(e.TableName, e.Column)
}

// DeleteColumn drops one or more columns. An empty ColumnNames list is
// legal at generation time on dialects that treat it as a no-op.
type DeleteColumn struct {
	SchemaName  model.SchemaName
	TableName   string
	ColumnNames []string
}

func (*DeleteColumn) expression()                        {}
func (*DeleteColumn) Kind() Kind                         { return KindDeleteColumn }
func (e *DeleteColumn) Accept(v Visitor) error           { return v.VisitDeleteColumn(e) }
func (e *DeleteColumn) SchemaSlots() []*model.SchemaName { return []*model.SchemaName{&e.SchemaName} }

func (e *DeleteColumn) Describe() string {
	return "DeleteColumn " + e.TableName + " " + strings.Join(e.ColumnNames, ", ")
}

func (e *DeleteColumn) CollectValidationErrors() []string {
	var errs []string
	if e.TableName == "" {
		errs = append(errs, model.ErrTableNameEmpty)
	}
	if len(e.ColumnNames) == 0 {
		errs = append(errs, model.ErrColumnNameEmpty)
	}
	for _, name := range e.ColumnNames {
		if name == "" {
			errs = append(errs, model.ErrColumnNameEmpty)
			break
		}
	}
	return errs
}

// RenameColumn renames OldName to NewName.
type RenameColumn struct {
	SchemaName model.SchemaName
	TableName  string
	OldName    string
	NewName    string
}

func (*RenameColumn) expression()                        {}
func (*RenameColumn) Kind() Kind                         { return KindRenameColumn }
func (e *RenameColumn) Accept(v Visitor) error           { return v.VisitRenameColumn(e) }
func (e *RenameColumn) SchemaSlots() []*model.SchemaName { return []*model.SchemaName{&e.SchemaName} }

func (e *RenameColumn) Describe() string {
	return "RenameColumn " + e.TableName + " " + e.OldName + " to " + e.NewName
}

func (e *RenameColumn) CollectValidationErrors() []string {
	var errs []string
	if e.TableName == "" {
		errs = append(errs, model.ErrTableNameEmpty)
	}
	if e.OldName == "" {
		errs = append(errs, model.ErrOldColumnNameEmpty)
	}
	if e.NewName == "" {
		errs = append(errs, model.ErrNewColumnNameEmpty)
	}
	return errs
}

func tableColumnErrors(table string, c *model.ColumnDefinition) []string {
	var errs []string
	if table == "" {
		errs = append(errs, model.ErrTableNameEmpty)
	}
	if c == nil {
		return append(errs, model.ErrColumnNameEmpty)
	}
	return append(errs, c.CollectValidationErrors()...)
}

func columnName(c *model.ColumnDefinition) string {
	if c == nil {
		return ""
	}
	return c.Name
}
