package generator

import (
	"strings"

	"github.com/Limetric/schemaferry/model"
)

// columnRenderer turns a ColumnDefinition into a column clause. Dialects
// replace individual clause formatters; the clause order is fixed:
// name, type, collation, nullability, default, identity, then dialect
// extras. The primary key is a trailing clause of the column list.
type columnRenderer struct {
	quoter *Quoter
	types  *TypeMap

	formatType     func(r *columnRenderer, c *model.ColumnDefinition) (string, error)
	formatNullable func(c *model.ColumnDefinition) string
	formatIdentity func(c *model.ColumnDefinition) string
	formatExtra    func(r *columnRenderer, c *model.ColumnDefinition) (string, error)

	// inlinePrimaryKey reports whether the primary key is rendered by the
	// identity clause instead of a trailing PRIMARY KEY clause.
	inlinePrimaryKey func(pk []*model.ColumnDefinition) bool
	// namedPrimaryKey renders CONSTRAINT <name> before PRIMARY KEY when a
	// column carries a primary key name.
	namedPrimaryKey bool
	// namedDefaults names default constraints DF_<table>_<column> when the
	// column knows its table.
	namedDefaults bool
}

func newColumnRenderer(q *Quoter, types *TypeMap) *columnRenderer {
	return &columnRenderer{
		quoter:          q,
		types:           types,
		formatType:      (*columnRenderer).resolveType,
		formatNullable:  notNullUnlessNullable,
		formatIdentity:  func(*model.ColumnDefinition) string { return "" },
		namedPrimaryKey: true,
	}
}

// Render returns the full clause for one column.
func (r *columnRenderer) Render(c *model.ColumnDefinition) (string, error) {
	typ, err := r.formatType(r, c)
	if err != nil {
		return "", err
	}
	def, err := r.formatDefault(c)
	if err != nil {
		return "", err
	}
	clauses := []string{
		r.quoter.QuoteColumnName(c.Name),
		typ,
		r.formatCollation(c),
		r.formatNullable(c),
		def,
		r.formatIdentity(c),
	}
	if r.formatExtra != nil {
		extra, err := r.formatExtra(r, c)
		if err != nil {
			return "", err
		}
		clauses = append(clauses, extra)
	}
	return joinNonEmpty(clauses, " "), nil
}

// RenderAll renders a column list followed by the primary key clause.
func (r *columnRenderer) RenderAll(cols []*model.ColumnDefinition) (string, error) {
	parts := make([]string, 0, len(cols))
	var pk []*model.ColumnDefinition
	for _, c := range cols {
		s, err := r.Render(c)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
		if c.PrimaryKey {
			pk = append(pk, c)
		}
	}
	return strings.Join(parts, ", ") + r.primaryKeyClause(pk), nil
}

func (r *columnRenderer) primaryKeyClause(pk []*model.ColumnDefinition) string {
	if len(pk) == 0 {
		return ""
	}
	if r.inlinePrimaryKey != nil && r.inlinePrimaryKey(pk) {
		return ""
	}
	names := make([]string, len(pk))
	pkName := ""
	for i, c := range pk {
		names[i] = r.quoter.QuoteColumnName(c.Name)
		if pkName == "" {
			pkName = c.PrimaryKeyName
		}
	}
	clause := ", "
	if r.namedPrimaryKey && pkName != "" {
		clause += "CONSTRAINT " + r.quoter.Quote(pkName) + " "
	}
	return clause + "PRIMARY KEY (" + strings.Join(names, ", ") + ")"
}

func (r *columnRenderer) resolveType(c *model.ColumnDefinition) (string, error) {
	if c.Type == model.TypeUnset {
		return c.CustomType, nil
	}
	return r.types.Resolve(c.Type, c.Size, c.Precision)
}

func (r *columnRenderer) formatCollation(c *model.ColumnDefinition) string {
	if c.Collation == "" {
		return ""
	}
	return "COLLATE " + c.Collation
}

func (r *columnRenderer) formatDefault(c *model.ColumnDefinition) (string, error) {
	if !c.Default.IsSet() {
		return "", nil
	}
	if c.Default.IsNull() {
		return "DEFAULT NULL", nil
	}
	v, err := r.quoter.QuoteValue(c.Default.Value())
	if err != nil {
		return "", err
	}
	if r.namedDefaults && c.TableName != "" {
		return "CONSTRAINT " + r.quoter.Quote(DefaultConstraintName(c.TableName, c.Name)) + " DEFAULT " + v, nil
	}
	return "DEFAULT " + v, nil
}

// DefaultConstraintName is the name given to a column default on dialects
// that name them.
func DefaultConstraintName(table, column string) string {
	return "DF_" + table + "_" + column
}

// notNullUnlessNullable makes columns NOT NULL unless marked nullable.
func notNullUnlessNullable(c *model.ColumnDefinition) string {
	if c.Nullable == model.Nullable {
		return ""
	}
	return "NOT NULL"
}

// explicitNullability renders only what was asked for.
func explicitNullability(c *model.ColumnDefinition) string {
	switch c.Nullable {
	case model.Nullable:
		return "NULL"
	case model.NotNullable:
		return "NOT NULL"
	}
	return ""
}

func identityClause(clause string) func(*model.ColumnDefinition) string {
	return func(c *model.ColumnDefinition) string {
		if c.Identity {
			return clause
		}
		return ""
	}
}

// formatCascade renders " ON <what> <rule>", or "" for RuleNone.
func formatCascade(what string, rule model.Rule) string {
	if rule == model.RuleNone {
		return ""
	}
	return " ON " + what + " " + rule.String()
}

func joinNonEmpty(parts []string, sep string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(p)
	}
	return b.String()
}
