package generator

import (
	"fmt"
	"sort"
	"strings"
)

var constructors = map[string]func(Options) *Generator{
	"generic":   newGeneric,
	"postgres":  newPostgres,
	"redshift":  newRedshift,
	"sqlserver": newSQLServer,
	"mysql":     newMySQL,
	"sqlite":    newSQLite,
	"db2":       newDB2,
	"hana":      newHana,
	"oracle":    newOracle,
	"firebird":  newFirebird,
	"snowflake": newSnowflake,
}

// New returns the generator registered under name.
func New(name string, opts Options) (*Generator, error) {
	ctor, ok := constructors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (must be one of: %s)", name, strings.Join(Dialects(), ", "))
	}
	return ctor(opts), nil
}

// Dialects lists the registered dialect names in sorted order.
func Dialects() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
