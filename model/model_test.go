package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIndexCloneIsDeep(t *testing.T) {
	orig := &IndexDefinition{
		Name:      "IX_users_email",
		TableName: "users",
		Columns:   []IndexColumnDefinition{{Name: "email"}, {Name: "created", Direction: Descending}},
	}
	if err := orig.Features.Set(SqlServerIncludes, ListValue{"name"}); err != nil {
		t.Fatal(err)
	}

	clone := orig.Clone()
	clone.Columns[0].Name = "changed"
	clone.Columns = append(clone.Columns, IndexColumnDefinition{Name: "extra"})
	if err := clone.Features.Set(SqlServerOnlineIndex, BoolValue(true)); err != nil {
		t.Fatal(err)
	}
	includes, _ := clone.Features.List(SqlServerIncludes)
	includes[0] = "mutated"

	if orig.Columns[0].Name != "email" {
		t.Errorf("original column renamed through clone: %q", orig.Columns[0].Name)
	}
	if len(orig.Columns) != 2 {
		t.Errorf("original columns len = %d, want 2", len(orig.Columns))
	}
	if orig.Features.Has(SqlServerOnlineIndex) {
		t.Error("feature added to clone leaked into original")
	}
	if got, _ := orig.Features.List(SqlServerIncludes); got[0] != "name" {
		t.Errorf("original include list mutated: %v", got)
	}
}

func TestIndexValidation(t *testing.T) {
	tests := []struct {
		name  string
		index IndexDefinition
		want  []string
	}{
		{
			name:  "valid",
			index: IndexDefinition{Name: "IX", TableName: "t", Columns: []IndexColumnDefinition{{Name: "a"}}},
		},
		{
			name:  "no columns",
			index: IndexDefinition{Name: "IX", TableName: "t"},
			want:  []string{ErrIndexNoColumns},
		},
		{
			name:  "everything missing",
			index: IndexDefinition{Columns: []IndexColumnDefinition{{}}},
			want:  []string{ErrIndexNameEmpty, ErrTableNameEmpty, ErrColumnNameEmpty},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.index.CollectValidationErrors()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CollectValidationErrors() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestColumnValidation(t *testing.T) {
	c := &ColumnDefinition{}
	got := c.CollectValidationErrors()
	want := []string{ErrColumnNameEmpty, ErrColumnTypeUndefined}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	c = &ColumnDefinition{Name: "payload", CustomType: "json"}
	if errs := c.CollectValidationErrors(); len(errs) != 0 {
		t.Errorf("custom type column should be valid, got %v", errs)
	}
}

func TestColumnCloneCopiesFeatures(t *testing.T) {
	c := &ColumnDefinition{Name: "id", Type: Guid}
	c.Features.SetUnchecked(SqlServerRowGuidColumn, BoolValue(true))
	clone := c.Clone()
	clone.Name = "other"
	clone.Features.SetUnchecked(SqlServerOnlineIndex, BoolValue(true))
	if c.Name != "id" || c.Features.Has(SqlServerOnlineIndex) {
		t.Errorf("clone shares state with original: %+v", c)
	}
}

func TestSetUncheckedNilRemovesKey(t *testing.T) {
	c := &ColumnDefinition{Name: "id", Type: Int32}
	c.Features.SetUnchecked(SqlServerRowGuidColumn, BoolValue(true))
	c.Features.SetUnchecked(SqlServerRowGuidColumn, nil)
	c.Features.SetUnchecked("VendorSpecific", nil)

	clone := c.Clone()
	if clone.Features.Len() != 0 || c.Features.Len() != 0 {
		t.Errorf("features after nil set = %v, want none", c.Features.Keys())
	}

	idx := &IndexDefinition{Name: "IX_t_a", TableName: "t", Columns: []IndexColumnDefinition{{Name: "a"}}}
	idx.Features.SetUnchecked(PostgresIndexIncludes, nil)
	if got := idx.Clone(); got.Features.Has(PostgresIndexIncludes) {
		t.Error("index clone kept a nil feature")
	}
}

func TestDefaultValueStates(t *testing.T) {
	if NoDefault().IsSet() {
		t.Error("NoDefault should be unset")
	}
	if d := NullDefault(); !d.IsSet() || !d.IsNull() {
		t.Error("NullDefault should be set and null")
	}
	if d := Default(DBNull); !d.IsNull() {
		t.Error("Default(DBNull) should be an explicit null")
	}
	if d := Default(nil); !d.IsNull() {
		t.Error("Default(nil) should be an explicit null")
	}
	d := Default(0)
	if !d.IsSet() || d.IsNull() || d.Value() != 0 {
		t.Errorf("Default(0) = %+v", d)
	}
	var zero ColumnDefinition
	if zero.Default.IsSet() {
		t.Error("zero column default should be unset")
	}
}

func TestSchemaNameStates(t *testing.T) {
	var unset SchemaName
	if unset.IsSet() {
		t.Error("zero SchemaName should be unset")
	}
	empty := Schema("")
	if !empty.IsSet() || empty.String() != "" {
		t.Errorf("Schema(\"\") = %+v, want set and empty", empty)
	}
}

func TestFeaturesSet(t *testing.T) {
	var f Features
	if err := f.Set("SqlServerOnlineIndx", BoolValue(true)); !errors.Is(err, ErrUnknownFeature) {
		t.Errorf("misspelled key error = %v, want ErrUnknownFeature", err)
	}
	if err := f.Set(SqlServerOnlineIndex, StringValue("yes")); !errors.Is(err, ErrFeatureKind) {
		t.Errorf("wrong kind error = %v, want ErrFeatureKind", err)
	}
	if err := f.Set(PostgresIndexMethod, StringValue("gin")); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if v, ok := f.Text(PostgresIndexMethod); !ok || v != "gin" {
		t.Errorf("Text() = %q, %t", v, ok)
	}

	f.SetUnchecked("VendorSpecific", BoolValue(true))
	if diff := cmp.Diff([]Feature{PostgresIndexMethod, "VendorSpecific"}, f.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestRowFromMapIsSorted(t *testing.T) {
	row := RowFromMap(map[string]any{"b": 2, "a": 1, "c": nil})
	want := Row{{Column: "a", Value: 1}, {Column: "b", Value: 2}, {Column: "c", Value: nil}}
	if diff := cmp.Diff(want, row); diff != "" {
		t.Errorf("RowFromMap mismatch (-want +got):\n%s", diff)
	}
}

func TestAllDbTypes(t *testing.T) {
	types := AllDbTypes()
	if types[0] != AnsiString || types[len(types)-1] != Xml {
		t.Fatalf("AllDbTypes bounds = %v..%v", types[0], types[len(types)-1])
	}
	for _, ty := range types {
		if ty.String() == "" || ty.String() == "DbType(?)" {
			t.Errorf("DbType %d has no name", int(ty))
		}
	}
}
