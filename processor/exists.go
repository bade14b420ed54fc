package processor

import (
	"context"
	"fmt"

	"github.com/Limetric/schemaferry/generator"
)

// existenceQueries builds catalog lookups for one dialect. Names arrive
// unquoted; an empty schema means the connection default.
type existenceQueries struct {
	schema func(q *generator.Quoter, schema string) string
	table  func(q *generator.Quoter, schema, table string) string
}

// lit renders name as a '...' string literal.
func lit(name string) string { return "'" + generator.EscapeLiteral(name) + "'" }

func informationSchema(defaultSchema string) existenceQueries {
	pick := func(schema string) string {
		if schema == "" {
			return defaultSchema
		}
		return lit(schema)
	}
	return existenceQueries{
		schema: func(_ *generator.Quoter, schema string) string {
			return fmt.Sprintf("SELECT 1 FROM information_schema.schemata WHERE schema_name = %s", pick(schema))
		},
		table: func(_ *generator.Quoter, schema, table string) string {
			return fmt.Sprintf("SELECT 1 FROM information_schema.tables WHERE table_schema = %s AND table_name = %s", pick(schema), lit(table))
		},
	}
}

var catalogs = map[string]existenceQueries{
	"postgres":  informationSchema("current_schema()"),
	"redshift":  informationSchema("current_schema()"),
	"mysql":     informationSchema("DATABASE()"),
	"sqlserver": informationSchema("SCHEMA_NAME()"),
	"snowflake": informationSchema("CURRENT_SCHEMA()"),
	"sqlite": {
		schema: func(_ *generator.Quoter, schema string) string {
			if schema == "" {
				schema = "main"
			}
			return fmt.Sprintf("SELECT 1 FROM pragma_database_list WHERE name = %s", lit(schema))
		},
		table: func(q *generator.Quoter, schema, table string) string {
			if schema == "" {
				schema = "main"
			}
			return fmt.Sprintf("SELECT 1 FROM %s.sqlite_master WHERE type = 'table' AND name = %s", q.Quote(schema), lit(table))
		},
	},
	"hana": {
		schema: func(_ *generator.Quoter, schema string) string {
			if schema == "" {
				return "SELECT 1 FROM SYS.SCHEMAS WHERE SCHEMA_NAME = CURRENT_SCHEMA"
			}
			return fmt.Sprintf("SELECT 1 FROM SYS.SCHEMAS WHERE SCHEMA_NAME = %s", lit(schema))
		},
		table: func(_ *generator.Quoter, schema, table string) string {
			owner := "CURRENT_SCHEMA"
			if schema != "" {
				owner = lit(schema)
			}
			return fmt.Sprintf("SELECT 1 FROM SYS.TABLES WHERE SCHEMA_NAME = %s AND TABLE_NAME = %s", owner, lit(table))
		},
	},
}

func (p *Processor) catalog() (existenceQueries, error) {
	c, ok := catalogs[p.gen.Dialect()]
	if !ok {
		return existenceQueries{}, fmt.Errorf("existence checks are not supported for %s", p.gen.Dialect())
	}
	return c, nil
}

// unquote strips the dialect's identifier quotes from name.
func (p *Processor) unquote(name string) string {
	return p.gen.Quoter().UnQuote(name)
}

// SchemaExists reports whether schema exists.
func (p *Processor) SchemaExists(ctx context.Context, schema string) (bool, error) {
	c, err := p.catalog()
	if err != nil {
		return false, err
	}
	return p.exists(ctx, c.schema(p.gen.Quoter(), p.unquote(schema)))
}

// TableExists reports whether table exists in schema.
func (p *Processor) TableExists(ctx context.Context, schema, table string) (bool, error) {
	c, err := p.catalog()
	if err != nil {
		return false, err
	}
	return p.exists(ctx, c.table(p.gen.Quoter(), p.unquote(schema), p.unquote(table)))
}

func (p *Processor) exists(ctx context.Context, query string) (bool, error) {
	rows, err := p.Query(ctx, query)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	found := rows.Next()
	return found, rows.Err()
}
