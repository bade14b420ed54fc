package model

// Rule is a referential action for ON DELETE / ON UPDATE.
type Rule int

const (
	RuleNone Rule = iota
	Cascade
	SetNull
	SetDefault
	Restrict
)

func (r Rule) String() string {
	switch r {
	case Cascade:
		return "CASCADE"
	case SetNull:
		return "SET NULL"
	case SetDefault:
		return "SET DEFAULT"
	case Restrict:
		return "RESTRICT"
	}
	return ""
}

// ForeignKeyDefinition links ForeignColumns of ForeignTable to
// PrimaryColumns of PrimaryTable, position by position.
type ForeignKeyDefinition struct {
	Name               string
	ForeignTable       string
	ForeignTableSchema SchemaName
	ForeignColumns     []string
	PrimaryTable       string
	PrimaryTableSchema SchemaName
	PrimaryColumns     []string
	OnDelete           Rule
	OnUpdate           Rule
}

func (d *ForeignKeyDefinition) CollectValidationErrors() []string {
	var errs []string
	if d.Name == "" {
		errs = append(errs, ErrForeignKeyNameEmpty)
	}
	if d.ForeignTable == "" {
		errs = append(errs, ErrForeignTableNameEmpty)
	}
	if d.PrimaryTable == "" {
		errs = append(errs, ErrPrimaryTableNameEmpty)
	}
	if len(d.ForeignColumns) == 0 {
		errs = append(errs, ErrForeignKeyNoForeignCols)
	}
	if len(d.PrimaryColumns) == 0 {
		errs = append(errs, ErrForeignKeyNoPrimaryCols)
	}
	return errs
}

func (d *ForeignKeyDefinition) Clone() *ForeignKeyDefinition {
	out := *d
	out.ForeignColumns = append([]string(nil), d.ForeignColumns...)
	out.PrimaryColumns = append([]string(nil), d.PrimaryColumns...)
	return &out
}
