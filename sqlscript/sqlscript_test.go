package sqlscript

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReplaceTokens(t *testing.T) {
	tests := []struct {
		name   string
		sql    string
		params map[string]string
		want   string
	}{
		{
			"braces escaped and token replaced",
			"SELECT {x} FROM t WHERE id=$(id)",
			map[string]string{"id": "42"},
			"SELECT {{x}} FROM t WHERE id=42",
		},
		{
			"unknown token untouched",
			"SELECT $(missing), $(id)",
			map[string]string{"id": "1"},
			"SELECT $(missing), 1",
		},
		{
			"replacement braces not escaped",
			"INSERT INTO t VALUES ('$(json)')",
			map[string]string{"json": `{"a":1}`},
			`INSERT INTO t VALUES ('{"a":1}')`,
		},
		{
			"escaped token collapses",
			"SELECT '$$((id))', $(id)",
			map[string]string{"id": "7"},
			"SELECT '$(id)', 7",
		},
		{
			"no params only escapes braces",
			"SELECT '{a}', $(id), $$((id))",
			nil,
			"SELECT '{{a}}', $(id), $$((id))",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReplaceTokens(tt.sql, tt.params); got != tt.want {
				t.Errorf("ReplaceTokens(%q) = %q, want %q", tt.sql, got, tt.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	got := Expand(`SELECT '{"k":1}', $(id), '$$((id))'`, map[string]string{"id": "5"})
	want := `SELECT '{"k":1}', 5, '$(id)'`
	if got != want {
		t.Errorf("Expand() = %q, want %q", got, want)
	}
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{"single statement", "SELECT 1", []string{"SELECT 1"}},
		{"two statements", "SELECT 1; SELECT 2;", []string{"SELECT 1", "SELECT 2"}},
		{"empty statements skipped", "SELECT 1;; ;SELECT 2;", []string{"SELECT 1", "SELECT 2"}},
		{"semicolon inside quotes", "SELECT 'hello;world'; SELECT 2", []string{"SELECT 'hello;world'", "SELECT 2"}},
		{"escaped quotes", "SELECT 'it''s;'; SELECT 2", []string{"SELECT 'it''s;'", "SELECT 2"}},
		{"empty input", "", nil},
		{"only whitespace", "   \n\t  ", nil},
		{
			"line comment with semicolon",
			"-- cleanup; later\nDELETE FROM t; SELECT 1",
			[]string{"-- cleanup; later\nDELETE FROM t", "SELECT 1"},
		},
		{
			"dollar-quoted function body",
			"CREATE FUNCTION f() RETURNS void AS $$ BEGIN PERFORM 1; END; $$ LANGUAGE plpgsql; SELECT 1;",
			[]string{"CREATE FUNCTION f() RETURNS void AS $$ BEGIN PERFORM 1; END; $$ LANGUAGE plpgsql", "SELECT 1"},
		},
		{
			"tagged dollar-quoted body",
			"DO $fn$ BEGIN RAISE NOTICE 'x;y'; END; $fn$; SELECT 2;",
			[]string{"DO $fn$ BEGIN RAISE NOTICE 'x;y'; END; $fn$", "SELECT 2"},
		},
		{
			"positional parameter is not a dollar tag",
			"SELECT $1; SELECT 2",
			[]string{"SELECT $1", "SELECT 2"},
		},
		{
			"nested block comment with semicolon",
			"/* outer; /* inner; */ done; */ SELECT 1; SELECT 2;",
			[]string{"/* outer; /* inner; */ done; */ SELECT 1", "SELECT 2"},
		},
		{"double-quoted identifier", `SELECT "a;b" FROM t; SELECT 2;`, []string{`SELECT "a;b" FROM t`, "SELECT 2"}},
		{"backtick identifier", "SELECT `a;b` FROM t; SELECT 2", []string{"SELECT `a;b` FROM t", "SELECT 2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitStatements(tt.sql)); diff != "" {
				t.Errorf("SplitStatements(%q) mismatch (-want +got):\n%s", tt.sql, diff)
			}
		})
	}
}

func TestSplitBatches(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{"no separator", "SELECT 1; SELECT 2", []string{"SELECT 1; SELECT 2"}},
		{"two batches", "SELECT 1\nGO\nSELECT 2", []string{"SELECT 1", "SELECT 2"}},
		{"case insensitive with spaces", "SELECT 1\n  go  \r\nSELECT 2\nGo", []string{"SELECT 1", "SELECT 2"}},
		{"repeat count", "INSERT INTO t DEFAULT VALUES\nGO 3\nSELECT 1", []string{
			"INSERT INTO t DEFAULT VALUES", "INSERT INTO t DEFAULT VALUES", "INSERT INTO t DEFAULT VALUES", "SELECT 1",
		}},
		{"GO inside literal", "SELECT '\nGO\n'\nGO\nSELECT 2", []string{"SELECT '\nGO\n'", "SELECT 2"}},
		{"GO inside block comment", "/*\nGO\n*/ SELECT 1", []string{"/*\nGO\n*/ SELECT 1"}},
		{"GO after line comment", "SELECT 1 -- done\nGO\nSELECT 2", []string{"SELECT 1 -- done", "SELECT 2"}},
		{"GOTO is not a separator", "GOTO label\nGO", []string{"GOTO label"}},
		{"empty batches dropped", "GO\nGO\nSELECT 1\nGO\n", []string{"SELECT 1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitBatches(tt.sql)); diff != "" {
				t.Errorf("SplitBatches(%q) mismatch (-want +got):\n%s", tt.sql, diff)
			}
		})
	}
}
