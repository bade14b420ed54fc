package expressions

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Limetric/schemaferry/model"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		expr Expression
		want string
	}{
		{&DeleteConstraint{Constraint: model.ConstraintDefinition{ConstraintName: "ThaConstraint"}}, "DeleteConstraint ThaConstraint"},
		{&DeleteDefaultConstraint{SchemaName: model.Schema("ThaSchema"), TableName: "ThaTable", ColumnName: "ThaColumn"}, "DeleteDefaultConstraint ThaSchema.ThaTable ThaColumn"},
		{&DeleteDefaultConstraint{TableName: "ThaTable", ColumnName: "ThaColumn"}, "DeleteDefaultConstraint ThaTable ThaColumn"},
		{&CreateTable{TableName: "users"}, "CreateTable users"},
		{&DeleteColumn{TableName: "users", ColumnNames: []string{"a", "b"}}, "DeleteColumn users a, b"},
		{&RenameColumn{TableName: "users", OldName: "a", NewName: "b"}, "RenameColumn users a to b"},
		{&CreateIndex{Index: model.IndexDefinition{TableName: "users", Columns: []model.IndexColumnDefinition{{Name: "email"}}}}, "CreateIndex users (email)"},
		{&CreateForeignKey{ForeignKey: model.ForeignKeyDefinition{Name: "FK", ForeignTable: "orders", ForeignColumns: []string{"user_id"}, PrimaryTable: "users", PrimaryColumns: []string{"id"}}}, "CreateForeignKey FK orders (user_id) users (id)"},
		{&PerformDBOperation{}, "PerformDBOperation"},
	}
	for _, tt := range tests {
		if got := tt.expr.Describe(); got != tt.want {
			t.Errorf("%s.Describe() = %q, want %q", tt.expr.Kind(), got, tt.want)
		}
	}
}

func TestCollectValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want []string
	}{
		{
			name: "delete constraint without table",
			expr: &DeleteConstraint{Constraint: model.ConstraintDefinition{ConstraintName: "PK_t"}},
			want: []string{model.ErrTableNameEmpty},
		},
		{
			name: "create table with duplicate and untyped columns",
			expr: &CreateTable{TableName: "t", Columns: []*model.ColumnDefinition{
				{Name: "a", Type: model.Int32},
				{Name: "a"},
			}},
			want: []string{model.ErrColumnTypeUndefined, model.ErrColumnNamesNotUnique},
		},
		{
			name: "update without condition",
			expr: &UpdateData{TableName: "t", Set: model.Row{{Column: "a", Value: 1}}},
			want: []string{model.ErrUpdateMissingCondition},
		},
		{
			name: "update with both conditions",
			expr: &UpdateData{TableName: "t", Set: model.Row{{Column: "a", Value: 1}}, Where: model.Row{{Column: "b", Value: 2}}, AllRows: true},
			want: []string{model.ErrUpdateBothConditions},
		},
		{
			name: "index without columns",
			expr: &CreateIndex{Index: model.IndexDefinition{Name: "IX", TableName: "t"}},
			want: []string{model.ErrIndexNoColumns},
		},
		{
			name: "foreign key missing everything",
			expr: &CreateForeignKey{},
			want: []string{
				model.ErrForeignKeyNameEmpty,
				model.ErrForeignTableNameEmpty,
				model.ErrPrimaryTableNameEmpty,
				model.ErrForeignKeyNoForeignCols,
				model.ErrForeignKeyNoPrimaryCols,
			},
		},
		{
			name: "alter schema without destination",
			expr: &AlterSchema{TableName: "t"},
			want: []string{model.ErrDestinationSchemaEmpty},
		},
		{
			name: "perform operation without callback",
			expr: &PerformDBOperation{},
			want: []string{model.ErrOperationNil},
		},
		{
			name: "valid sql",
			expr: &ExecuteSQL{SQL: "SELECT 1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.expr.CollectValidationErrors()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if again := tt.expr.CollectValidationErrors(); !cmp.Equal(got, again) {
				t.Errorf("second call returned %v, first %v", again, got)
			}
		})
	}
}

func TestKindNames(t *testing.T) {
	for k := KindCreateTable; k <= KindExecuteSQLScript; k++ {
		if _, ok := kindNames[k]; !ok {
			t.Errorf("Kind %d has no name", int(k))
		}
	}
	if got := KindDeleteConstraint.String(); got != "DeleteConstraintExpression" {
		t.Errorf("KindDeleteConstraint.String() = %q", got)
	}
}

func TestAcceptDispatchesOnce(t *testing.T) {
	all := []Expression{
		&CreateTable{}, &DeleteTable{}, &AlterTable{}, &CreateColumn{}, &AlterColumn{},
		&DeleteColumn{}, &RenameColumn{}, &RenameTable{}, &CreateIndex{}, &DeleteIndex{},
		&CreateConstraint{}, &DeleteConstraint{}, &CreateForeignKey{}, &DeleteForeignKey{},
		&CreateSchema{}, &DeleteSchema{}, &AlterSchema{}, &InsertData{}, &DeleteData{},
		&UpdateData{}, &AlterDefaultConstraint{}, &DeleteDefaultConstraint{},
		&PerformDBOperation{}, &CreateSequence{}, &DeleteSequence{}, &ExecuteSQL{},
		&ExecuteSQLScript{},
	}
	for _, e := range all {
		r := &recorder{}
		if err := e.Accept(r); err != nil {
			t.Fatalf("Accept(%s) error: %v", e.Kind(), err)
		}
		if len(r.calls) != 1 || r.calls[0] != e.Kind() {
			t.Errorf("Accept(%s) dispatched %v", e.Kind(), r.calls)
		}
	}
}

type recorder struct{ calls []Kind }

func (r *recorder) hit(e Expression) error { r.calls = append(r.calls, e.Kind()); return nil }

func (r *recorder) VisitCreateTable(e *CreateTable) error           { return r.hit(e) }
func (r *recorder) VisitDeleteTable(e *DeleteTable) error           { return r.hit(e) }
func (r *recorder) VisitAlterTable(e *AlterTable) error             { return r.hit(e) }
func (r *recorder) VisitCreateColumn(e *CreateColumn) error         { return r.hit(e) }
func (r *recorder) VisitAlterColumn(e *AlterColumn) error           { return r.hit(e) }
func (r *recorder) VisitDeleteColumn(e *DeleteColumn) error         { return r.hit(e) }
func (r *recorder) VisitRenameColumn(e *RenameColumn) error         { return r.hit(e) }
func (r *recorder) VisitRenameTable(e *RenameTable) error           { return r.hit(e) }
func (r *recorder) VisitCreateIndex(e *CreateIndex) error           { return r.hit(e) }
func (r *recorder) VisitDeleteIndex(e *DeleteIndex) error           { return r.hit(e) }
func (r *recorder) VisitCreateConstraint(e *CreateConstraint) error { return r.hit(e) }
func (r *recorder) VisitDeleteConstraint(e *DeleteConstraint) error { return r.hit(e) }
func (r *recorder) VisitCreateForeignKey(e *CreateForeignKey) error { return r.hit(e) }
func (r *recorder) VisitDeleteForeignKey(e *DeleteForeignKey) error { return r.hit(e) }
func (r *recorder) VisitCreateSchema(e *CreateSchema) error         { return r.hit(e) }
func (r *recorder) VisitDeleteSchema(e *DeleteSchema) error         { return r.hit(e) }
func (r *recorder) VisitAlterSchema(e *AlterSchema) error           { return r.hit(e) }
func (r *recorder) VisitInsertData(e *InsertData) error             { return r.hit(e) }
func (r *recorder) VisitDeleteData(e *DeleteData) error             { return r.hit(e) }
func (r *recorder) VisitUpdateData(e *UpdateData) error             { return r.hit(e) }
func (r *recorder) VisitAlterDefaultConstraint(e *AlterDefaultConstraint) error {
	return r.hit(e)
}
func (r *recorder) VisitDeleteDefaultConstraint(e *DeleteDefaultConstraint) error {
	return r.hit(e)
}
func (r *recorder) VisitPerformDBOperation(e *PerformDBOperation) error { return r.hit(e) }
func (r *recorder) VisitCreateSequence(e *CreateSequence) error         { return r.hit(e) }
func (r *recorder) VisitDeleteSequence(e *DeleteSequence) error         { return r.hit(e) }
func (r *recorder) VisitExecuteSQL(e *ExecuteSQL) error                 { return r.hit(e) }
func (r *recorder) VisitExecuteSQLScript(e *ExecuteSQLScript) error     { return r.hit(e) }
