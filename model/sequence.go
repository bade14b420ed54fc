package model

// SequenceDefinition describes a sequence. Nil fields are omitted from the
// generated statement.
type SequenceDefinition struct {
	Name       string
	SchemaName SchemaName
	Increment  *int64
	MinValue   *int64
	MaxValue   *int64
	StartWith  *int64
	Cache      *int64
	Cycle      bool
}

func (d *SequenceDefinition) CollectValidationErrors() []string {
	if d.Name == "" {
		return []string{ErrSequenceNameEmpty}
	}
	return nil
}

// Int64Ptr returns a pointer to v, for the optional sequence fields.
func Int64Ptr(v int64) *int64 { return &v }
