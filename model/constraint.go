package model

// ConstraintType selects between primary key and unique constraints.
type ConstraintType int

const (
	PrimaryKeyConstraint ConstraintType = iota
	UniqueConstraint
)

// ConstraintDefinition describes a primary key or unique constraint.
type ConstraintDefinition struct {
	Type           ConstraintType
	ConstraintName string
	SchemaName     SchemaName
	TableName      string
	Columns        []string
	Features       Features
}

func (d *ConstraintDefinition) IsPrimaryKey() bool { return d.Type == PrimaryKeyConstraint }

func (d *ConstraintDefinition) CollectValidationErrors() []string {
	var errs []string
	if d.TableName == "" {
		errs = append(errs, ErrTableNameEmpty)
	}
	if len(d.Columns) == 0 {
		errs = append(errs, ErrConstraintNoColumns)
	}
	return errs
}

func (d *ConstraintDefinition) Clone() *ConstraintDefinition {
	out := *d
	out.Columns = append([]string(nil), d.Columns...)
	out.Features = d.Features.Clone()
	return &out
}
