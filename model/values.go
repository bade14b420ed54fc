package model

import (
	"sort"
)

// Nullability is the tri-state nullable flag of a column.
type Nullability int

const (
	NullabilityUnset Nullability = iota
	Nullable
	NotNullable
)

type defaultState int

const (
	defaultUnset defaultState = iota
	defaultNull
	defaultValue
)

// DefaultValue is a column default: unset, explicit NULL, or a value.
// The zero value is unset.
type DefaultValue struct {
	state defaultState
	value any
}

// NoDefault returns an unset default.
func NoDefault() DefaultValue { return DefaultValue{} }

// NullDefault returns an explicit DEFAULT NULL.
func NullDefault() DefaultValue { return DefaultValue{state: defaultNull} }

// Default returns a default holding v. A nil v or DBNull is treated as
// an explicit null.
func Default(v any) DefaultValue {
	if IsNull(v) {
		return NullDefault()
	}
	return DefaultValue{state: defaultValue, value: v}
}

func (d DefaultValue) IsSet() bool  { return d.state != defaultUnset }
func (d DefaultValue) IsNull() bool { return d.state == defaultNull }

// Value returns the held value; nil when unset or null.
func (d DefaultValue) Value() any { return d.value }

// SchemaName is an optional schema. The zero value is unset, which omits
// the schema prefix. A set-but-empty name selects the dialect fallback.
type SchemaName struct {
	name string
	set  bool
}

// Schema returns a set schema name. Schema("") is set-but-empty.
func Schema(name string) SchemaName { return SchemaName{name: name, set: true} }

func (s SchemaName) IsSet() bool    { return s.set }
func (s SchemaName) String() string { return s.name }

type dbNull struct{}

func (dbNull) String() string { return "NULL" }

// DBNull is the explicit null placeholder. Quoters render it as NULL and
// predicates compare it with IS.
var DBNull any = dbNull{}

// IsNull reports whether v is nil or DBNull.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(dbNull)
	return ok
}

// SystemMethod names a database function used as a value, typically as a
// column default.
type SystemMethod int

const (
	NewGuid SystemMethod = iota + 1
	NewSequentialID
	CurrentDateTime
	CurrentDateTimeOffset
	CurrentUTCDateTime
	CurrentUser
)

func (m SystemMethod) String() string {
	switch m {
	case NewGuid:
		return "NewGuid"
	case NewSequentialID:
		return "NewSequentialId"
	case CurrentDateTime:
		return "CurrentDateTime"
	case CurrentDateTimeOffset:
		return "CurrentDateTimeOffset"
	case CurrentUTCDateTime:
		return "CurrentUTCDateTime"
	case CurrentUser:
		return "CurrentUser"
	}
	return "SystemMethod(?)"
}

// RawSQL is rendered verbatim wherever a value is expected.
type RawSQL string

// ColumnValue pairs a column with a value in a data row.
type ColumnValue struct {
	Column string
	Value  any
}

// Row is an ordered list of column values. Generators render it in the
// stored order.
type Row []ColumnValue

// RowFromMap builds a Row with columns sorted by name.
func RowFromMap(m map[string]any) Row {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	row := make(Row, 0, len(keys))
	for _, k := range keys {
		row = append(row, ColumnValue{Column: k, Value: m[k]})
	}
	return row
}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}
