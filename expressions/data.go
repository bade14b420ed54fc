package expressions

import (
	"github.com/Limetric/schemaferry/model"
)

// InsertData inserts one statement per row.
type InsertData struct {
	SchemaName model.SchemaName
	TableName  string
	Rows       []model.Row
	Features   model.Features
}

func (*InsertData) expression()                           {}
func (*InsertData) Kind() Kind                            { return KindInsertData }
func (e *InsertData) Accept(v Visitor) error              { return v.VisitInsertData(e) }
func (e *InsertData) Describe() string                    { return "InsertData " + e.TableName }
func (e *InsertData) SchemaSlots() []*model.SchemaName    { return []*model.SchemaName{&e.SchemaName} }
func (e *InsertData) AdditionalFeatures() *model.Features { return &e.Features }

func (e *InsertData) CollectValidationErrors() []string {
	if e.TableName == "" {
		return []string{model.ErrTableNameEmpty}
	}
	return nil
}

// DeleteData deletes every row (AllRows) or the rows matching each
// predicate row. Columns within a row are ANDed.
type DeleteData struct {
	SchemaName model.SchemaName
	TableName  string
	Rows       []model.Row
	AllRows    bool
}

func (*DeleteData) expression()                        {}
func (*DeleteData) Kind() Kind                         { return KindDeleteData }
func (e *DeleteData) Accept(v Visitor) error           { return v.VisitDeleteData(e) }
func (e *DeleteData) Describe() string                 { return "DeleteData " + e.TableName }
func (e *DeleteData) SchemaSlots() []*model.SchemaName { return []*model.SchemaName{&e.SchemaName} }

func (e *DeleteData) CollectValidationErrors() []string {
	if e.TableName == "" {
		return []string{model.ErrTableNameEmpty}
	}
	return nil
}

// UpdateData sets columns on every row (AllRows) or the rows matching
// Where.
type UpdateData struct {
	SchemaName model.SchemaName
	TableName  string
	Set        model.Row
	Where      model.Row
	AllRows    bool
}

func (*UpdateData) expression()                        {}
func (*UpdateData) Kind() Kind                         { return KindUpdateData }
func (e *UpdateData) Accept(v Visitor) error           { return v.VisitUpdateData(e) }
func (e *UpdateData) Describe() string                 { return "UpdateData " + e.TableName }
func (e *UpdateData) SchemaSlots() []*model.SchemaName { return []*model.SchemaName{&e.SchemaName} }

func (e *UpdateData) CollectValidationErrors() []string {
	var errs []string
	if e.TableName == "" {
		errs = append(errs, model.ErrTableNameEmpty)
	}
	if len(e.Set) == 0 {
		errs = append(errs, model.ErrUpdateNoSetValues)
	}
	switch {
	case !e.AllRows && len(e.Where) == 0:
		errs = append(errs, model.ErrUpdateMissingCondition)
	case e.AllRows && len(e.Where) > 0:
		errs = append(errs, model.ErrUpdateBothConditions)
	}
	return errs
}
