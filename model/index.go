package model

// Direction is the sort order of an index column.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// IndexColumnDefinition is one column of an index.
type IndexColumnDefinition struct {
	Name      string
	Direction Direction
}

// IndexDefinition describes an index. Columns render in stored order.
type IndexDefinition struct {
	Name       string
	SchemaName SchemaName
	TableName  string
	Unique     bool
	Clustered  bool
	Columns    []IndexColumnDefinition
	Features   Features
}

func (d *IndexDefinition) CollectValidationErrors() []string {
	var errs []string
	if d.Name == "" {
		errs = append(errs, ErrIndexNameEmpty)
	}
	if d.TableName == "" {
		errs = append(errs, ErrTableNameEmpty)
	}
	if len(d.Columns) == 0 {
		errs = append(errs, ErrIndexNoColumns)
	}
	for _, c := range d.Columns {
		if c.Name == "" {
			errs = append(errs, ErrColumnNameEmpty)
		}
	}
	return errs
}

// Clone deep-copies the column list and the feature map so the clone can
// be mutated independently.
func (d *IndexDefinition) Clone() *IndexDefinition {
	out := *d
	if d.Columns != nil {
		out.Columns = make([]IndexColumnDefinition, len(d.Columns))
		copy(out.Columns, d.Columns)
	}
	out.Features = d.Features.Clone()
	return &out
}

// ColumnNames returns the index column names in order.
func (d *IndexDefinition) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}
