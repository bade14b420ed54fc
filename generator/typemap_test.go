package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/Limetric/schemaferry/model"
)

func TestEveryDbTypeResolvesOrIsUnsupported(t *testing.T) {
	for _, dialect := range Dialects() {
		m := mustNew(t, dialect, Options{}).TypeMap()
		for _, dbType := range model.AllDbTypes() {
			got, err := m.Resolve(dbType, 0, 0)
			if m.Supports(dbType) {
				if err != nil || got == "" {
					t.Errorf("%s: Resolve(%s) = %q, %v", dialect, dbType, got, err)
				}
				continue
			}
			var cfg *ConfigurationError
			if !errors.As(err, &cfg) {
				t.Errorf("%s: unsupported %s error = %v, want ConfigurationError", dialect, dbType, err)
			}
		}
	}
}

func TestTypeMapResolveBySize(t *testing.T) {
	m := mustNew(t, "sqlserver", Options{}).TypeMap()

	tests := []struct {
		size int
		want string
	}{
		{0, "NVARCHAR(255)"},
		{-1, "NVARCHAR(255)"},
		{50, "NVARCHAR(50)"},
		{4000, "NVARCHAR(4000)"},
		{4001, "NVARCHAR(MAX)"},
	}
	for _, tt := range tests {
		got, err := m.Resolve(model.String, tt.size, 0)
		if err != nil {
			t.Fatalf("Resolve(String, %d) error: %v", tt.size, err)
		}
		if got != tt.want {
			t.Errorf("Resolve(String, %d) = %q, want %q", tt.size, got, tt.want)
		}
	}

	if got, _ := m.Resolve(model.Int32, 99, 0); got != "INT" {
		t.Errorf("size should be ignored for single-template types, got %q", got)
	}

	_, err := m.Resolve(model.String, 2000000000, 0)
	var cfg *ConfigurationError
	if !errors.As(err, &cfg) {
		t.Errorf("oversize error = %v, want ConfigurationError", err)
	}
}

func TestTypeMapPrecision(t *testing.T) {
	m := mustNew(t, "postgres", Options{}).TypeMap()
	got, err := m.Resolve(model.Decimal, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != "decimal(10,2)" {
		t.Errorf("got %q", got)
	}
}

func TestNewTypeMapReportsProblems(t *testing.T) {
	rows := []typeRow{
		{model.String, 100, "VARCHAR($size)"},
		{model.Int32, 0, ""},
		{model.Int64, 0, "BIGINT"},
		{model.Int64, 0, "INT8"},
		{model.Boolean, 0, "BOOL"},
	}
	_, err := newTypeMap("test", rows, model.Boolean)
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{
		"String has no default template",
		"Int32 capacity 0 has an empty template",
		"Int64 capacity 0 is mapped twice",
		"Boolean is both mapped and unsupported",
		"Xml is not mapped",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %q:\n%v", want, err)
		}
	}
}

func TestMustTypeMapPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("mustTypeMap did not panic on an incomplete table")
		}
	}()
	mustTypeMap("test", []typeRow{{model.String, 0, "TEXT"}})
}
