// Package sqlscript prepares raw SQL script text for execution: token
// substitution and splitting into statements or GO batches.
package sqlscript

import (
	"regexp"
	"strings"
)

var (
	tokenPattern   = regexp.MustCompile(`\$\((\w+)\)`)
	escapedPattern = regexp.MustCompile(`\${2}\({2}(\w+)\){2}`)
)

// ReplaceTokens doubles every brace in sql, then substitutes $(name)
// tokens found in params. Unknown tokens are left as written so unset
// variables remain visible. Once tokens are substituted, the escaped form
// $$((name)) collapses to a literal $(name). Substituted values are
// inserted verbatim.
func ReplaceTokens(sql string, params map[string]string) string {
	sql = strings.ReplaceAll(sql, "{", "{{")
	sql = strings.ReplaceAll(sql, "}", "}}")
	if len(params) == 0 {
		return sql
	}

	sql = tokenPattern.ReplaceAllStringFunc(sql, func(m string) string {
		name := m[2 : len(m)-1]
		if v, ok := params[name]; ok {
			return v
		}
		return m
	})
	return escapedPattern.ReplaceAllString(sql, "$$(${1})")
}

var braceUnescaper = strings.NewReplacer("{{", "{", "}}", "}")

// Expand runs ReplaceTokens and then folds the doubled braces back, giving
// the text a database should receive.
func Expand(sql string, params map[string]string) string {
	return braceUnescaper.Replace(ReplaceTokens(sql, params))
}
