package generator

import (
	"fmt"

	"github.com/Limetric/schemaferry/model"
)

// describer renders table and column descriptions as standalone
// statements. Dialects without one drop descriptions, or render them
// inline through the column renderer.
type describer interface {
	table(q *Quoter, schema model.SchemaName, table, description string) string
	column(q *Quoter, schema model.SchemaName, table, column, description string) string
}

// commentOn uses COMMENT ON TABLE / COMMENT ON COLUMN.
type commentOn struct{}

func (commentOn) table(q *Quoter, schema model.SchemaName, table, description string) string {
	if description == "" {
		return ""
	}
	return fmt.Sprintf("COMMENT ON TABLE %s IS '%s'", q.QuoteTableName(table, schema), EscapeLiteral(description))
}

func (commentOn) column(q *Quoter, schema model.SchemaName, table, column, description string) string {
	if description == "" {
		return ""
	}
	return fmt.Sprintf("COMMENT ON COLUMN %s.%s IS '%s'",
		q.QuoteTableName(table, schema), q.QuoteColumnName(column), EscapeLiteral(description))
}

// extendedProperty stores descriptions as MS_Description extended
// properties.
type extendedProperty struct{}

func (extendedProperty) schema(schema model.SchemaName) string {
	if s := schema.String(); s != "" {
		return s
	}
	return "dbo"
}

func (p extendedProperty) table(_ *Quoter, schema model.SchemaName, table, description string) string {
	if description == "" {
		return ""
	}
	return fmt.Sprintf("EXEC sys.sp_addextendedproperty @name = N'MS_Description', @value = N'%s', "+
		"@level0type = N'SCHEMA', @level0name = '%s', @level1type = N'Table', @level1name = '%s'",
		EscapeLiteral(description), EscapeLiteral(p.schema(schema)), EscapeLiteral(table))
}

func (p extendedProperty) column(_ *Quoter, schema model.SchemaName, table, column, description string) string {
	if description == "" {
		return ""
	}
	return fmt.Sprintf("EXEC sys.sp_addextendedproperty @name = N'MS_Description', @value = N'%s', "+
		"@level0type = N'SCHEMA', @level0name = '%s', @level1type = N'Table', @level1name = '%s', "+
		"@level2type = N'Column', @level2name = '%s'",
		EscapeLiteral(description), EscapeLiteral(p.schema(schema)), EscapeLiteral(table), EscapeLiteral(column))
}

// createTableDescriptions returns the table description followed by the
// column descriptions, skipping empty ones.
func createTableDescriptions(d describer, q *Quoter, schema model.SchemaName, table, description string, cols []*model.ColumnDefinition) []string {
	if d == nil {
		return nil
	}
	var out []string
	if s := d.table(q, schema, table, description); s != "" {
		out = append(out, s)
	}
	for _, c := range cols {
		if s := d.column(q, schema, table, c.Name, c.Description); s != "" {
			out = append(out, s)
		}
	}
	return out
}
