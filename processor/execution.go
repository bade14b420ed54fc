package processor

import (
	"context"

	"github.com/Limetric/schemaferry/expressions"
)

// execution carries one Process call's context through the visitor.
type execution struct {
	p   *Processor
	ctx context.Context
}

func (x *execution) generated(e expressions.Expression) error {
	sql, err := x.p.gen.Generate(e)
	if err != nil {
		return err
	}
	return x.p.run(x.ctx, sql)
}

func (x *execution) VisitCreateTable(e *expressions.CreateTable) error   { return x.generated(e) }
func (x *execution) VisitDeleteTable(e *expressions.DeleteTable) error   { return x.generated(e) }
func (x *execution) VisitAlterTable(e *expressions.AlterTable) error     { return x.generated(e) }
func (x *execution) VisitCreateColumn(e *expressions.CreateColumn) error { return x.generated(e) }
func (x *execution) VisitAlterColumn(e *expressions.AlterColumn) error   { return x.generated(e) }
func (x *execution) VisitDeleteColumn(e *expressions.DeleteColumn) error { return x.generated(e) }
func (x *execution) VisitRenameColumn(e *expressions.RenameColumn) error { return x.generated(e) }
func (x *execution) VisitRenameTable(e *expressions.RenameTable) error   { return x.generated(e) }
func (x *execution) VisitCreateIndex(e *expressions.CreateIndex) error   { return x.generated(e) }
func (x *execution) VisitDeleteIndex(e *expressions.DeleteIndex) error   { return x.generated(e) }

func (x *execution) VisitCreateConstraint(e *expressions.CreateConstraint) error {
	return x.generated(e)
}

func (x *execution) VisitDeleteConstraint(e *expressions.DeleteConstraint) error {
	return x.generated(e)
}

func (x *execution) VisitCreateForeignKey(e *expressions.CreateForeignKey) error {
	return x.generated(e)
}

func (x *execution) VisitDeleteForeignKey(e *expressions.DeleteForeignKey) error {
	return x.generated(e)
}

func (x *execution) VisitCreateSchema(e *expressions.CreateSchema) error { return x.generated(e) }
func (x *execution) VisitDeleteSchema(e *expressions.DeleteSchema) error { return x.generated(e) }
func (x *execution) VisitAlterSchema(e *expressions.AlterSchema) error   { return x.generated(e) }
func (x *execution) VisitInsertData(e *expressions.InsertData) error     { return x.generated(e) }
func (x *execution) VisitDeleteData(e *expressions.DeleteData) error     { return x.generated(e) }
func (x *execution) VisitUpdateData(e *expressions.UpdateData) error     { return x.generated(e) }

func (x *execution) VisitAlterDefaultConstraint(e *expressions.AlterDefaultConstraint) error {
	return x.generated(e)
}

func (x *execution) VisitDeleteDefaultConstraint(e *expressions.DeleteDefaultConstraint) error {
	return x.generated(e)
}

func (x *execution) VisitCreateSequence(e *expressions.CreateSequence) error {
	return x.generated(e)
}

func (x *execution) VisitDeleteSequence(e *expressions.DeleteSequence) error {
	return x.generated(e)
}

func (x *execution) VisitPerformDBOperation(e *expressions.PerformDBOperation) error {
	return x.p.perform(x.ctx, e)
}

// VisitExecuteSQL bypasses statement splitting; the text is the author's.
func (x *execution) VisitExecuteSQL(e *expressions.ExecuteSQL) error {
	return x.p.runRaw(x.ctx, e.SQL)
}

func (x *execution) VisitExecuteSQLScript(e *expressions.ExecuteSQLScript) error {
	return x.p.runScript(x.ctx, e)
}
