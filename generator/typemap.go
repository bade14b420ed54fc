package generator

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Limetric/schemaferry/model"
)

type typeEntry struct {
	capacity int
	template string
}

// typeRow is one line of a dialect's literal type table. Capacity 0 is the
// default template used when no size is given.
type typeRow struct {
	dbType   model.DbType
	capacity int
	template string
}

// TypeMap resolves a DbType plus size and precision to a dialect type
// name. Templates may contain $size and $precision.
type TypeMap struct {
	dialect     string
	entries     map[model.DbType][]typeEntry
	unsupported map[model.DbType]bool
}

// mustTypeMap builds a TypeMap from a literal table and panics when the
// table leaves a DbType neither mapped nor declared unsupported.
func mustTypeMap(dialect string, rows []typeRow, unsupported ...model.DbType) *TypeMap {
	m, err := newTypeMap(dialect, rows, unsupported...)
	if err != nil {
		panic(err)
	}
	return m
}

func newTypeMap(dialect string, rows []typeRow, unsupported ...model.DbType) (*TypeMap, error) {
	m := &TypeMap{
		dialect:     dialect,
		entries:     make(map[model.DbType][]typeEntry),
		unsupported: make(map[model.DbType]bool),
	}
	for _, t := range unsupported {
		m.unsupported[t] = true
	}
	for _, r := range rows {
		m.entries[r.dbType] = append(m.entries[r.dbType], typeEntry{capacity: r.capacity, template: r.template})
	}
	for t := range m.entries {
		es := m.entries[t]
		sort.SliceStable(es, func(i, j int) bool { return es[i].capacity < es[j].capacity })
	}
	if problems := collectTypeMapProblems(m); len(problems) > 0 {
		return nil, &ConfigurationError{Dialect: dialect, Message: "type map: " + strings.Join(problems, "; ")}
	}
	return m, nil
}

func collectTypeMapProblems(m *TypeMap) []string {
	var problems []string
	for _, t := range model.AllDbTypes() {
		es, mapped := m.entries[t]
		switch {
		case mapped && m.unsupported[t]:
			problems = append(problems, fmt.Sprintf("%s is both mapped and unsupported", t))
		case !mapped && !m.unsupported[t]:
			problems = append(problems, fmt.Sprintf("%s is not mapped", t))
		case mapped && es[0].capacity != 0:
			problems = append(problems, fmt.Sprintf("%s has no default template", t))
		}
		for i, e := range es {
			if e.template == "" {
				problems = append(problems, fmt.Sprintf("%s capacity %d has an empty template", t, e.capacity))
			}
			if i > 0 && es[i-1].capacity == e.capacity {
				problems = append(problems, fmt.Sprintf("%s capacity %d is mapped twice", t, e.capacity))
			}
		}
	}
	return problems
}

// Resolve returns the type name for t. A zero size selects the default
// template; otherwise the smallest capacity that fits size is used. Types
// with only a default template ignore size.
func (m *TypeMap) Resolve(t model.DbType, size, precision int) (string, error) {
	if m.unsupported[t] {
		return "", &ConfigurationError{Dialect: m.dialect, Message: fmt.Sprintf("DbType %s is not supported", t)}
	}
	es, ok := m.entries[t]
	if !ok {
		return "", &ConfigurationError{Dialect: m.dialect, Message: fmt.Sprintf("no type mapping for DbType %s", t)}
	}
	if size <= 0 || len(es) == 1 {
		return expandTemplate(es[0].template, size, precision), nil
	}
	for _, e := range es[1:] {
		if size <= e.capacity {
			return expandTemplate(e.template, size, precision), nil
		}
	}
	return "", &ConfigurationError{
		Dialect: m.dialect,
		Message: fmt.Sprintf("DbType %s size %d exceeds the largest mapping (%d)", t, size, es[len(es)-1].capacity),
	}
}

// Supports reports whether t has a mapping.
func (m *TypeMap) Supports(t model.DbType) bool {
	_, ok := m.entries[t]
	return ok
}

func expandTemplate(tmpl string, size, precision int) string {
	if !strings.Contains(tmpl, "$") {
		return tmpl
	}
	tmpl = strings.ReplaceAll(tmpl, "$size", strconv.Itoa(size))
	return strings.ReplaceAll(tmpl, "$precision", strconv.Itoa(precision))
}
