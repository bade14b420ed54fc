package model

// ColumnModification distinguishes a column being created from one being
// altered; some dialects render the two differently.
type ColumnModification int

const (
	ColumnCreate ColumnModification = iota
	ColumnAlter
)

// ColumnDefinition describes a single column.
type ColumnDefinition struct {
	Name       string
	Type       DbType
	Size       int
	Precision  int
	CustomType string

	Nullable Nullability
	Default  DefaultValue

	Identity       bool
	PrimaryKey     bool
	PrimaryKeyName string
	Unique         bool
	Indexed        bool
	IsForeignKey   bool
	ForeignKey     *ForeignKeyDefinition

	TableName        string
	ModificationType ColumnModification
	Description      string
	Collation        string
	Features         Features
}

func (c *ColumnDefinition) CollectValidationErrors() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, ErrColumnNameEmpty)
	}
	if c.Type == TypeUnset && c.CustomType == "" {
		errs = append(errs, ErrColumnTypeUndefined)
	}
	return errs
}

// Clone returns a copy of the column. The foreign key pointer is shared;
// the feature map is copied.
func (c *ColumnDefinition) Clone() *ColumnDefinition {
	out := *c
	out.Features = c.Features.Clone()
	return &out
}
