// Package conventions fills in values that migration authors may omit:
// schema names, constraint and index names, and script root paths.
package conventions

import (
	"path/filepath"
	"strings"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

// Convention rewrites an expression in place. Implementations must only
// assign values that are still unset, so applying one twice is the same as
// applying it once.
type Convention interface {
	Name() string
	Apply(e expressions.Expression)
}

// Set is an ordered list of conventions.
type Set struct {
	conventions []Convention
}

// Options configure the default convention set.
type Options struct {
	// DefaultSchema, when non-nil, fills unset schema names. It is read on
	// every application.
	DefaultSchema *string
	// RootPath resolves relative script paths. Empty leaves them relative.
	RootPath string
}

// NewSet returns the default conventions in their required order. The
// schema convention runs first because later conventions may read the
// schema it assigns.
func NewSet(opts Options) *Set {
	return &Set{conventions: []Convention{
		&DefaultSchema{Schema: opts.DefaultSchema},
		&RootPath{Root: opts.RootPath},
		ForeignKeyName{},
		IndexName{},
		ConstraintName{},
	}}
}

// NewCustomSet returns a set running exactly the given conventions in order.
func NewCustomSet(conventions ...Convention) *Set {
	return &Set{conventions: conventions}
}

// Apply runs every convention on e and returns it.
func (s *Set) Apply(e expressions.Expression) expressions.Expression {
	if s == nil {
		return e
	}
	for _, c := range s.conventions {
		c.Apply(e)
	}
	return e
}

// Names lists the conventions in application order.
func (s *Set) Names() []string {
	names := make([]string, len(s.conventions))
	for i, c := range s.conventions {
		names[i] = c.Name()
	}
	return names
}

// DefaultSchema assigns the configured schema to every unset schema slot.
// With no default configured the slots stay unset.
type DefaultSchema struct {
	Schema *string
}

func (*DefaultSchema) Name() string { return "default-schema" }

func (c *DefaultSchema) Apply(e expressions.Expression) {
	if c.Schema == nil {
		return
	}
	se, ok := e.(expressions.SchemaExpression)
	if !ok {
		return
	}
	for _, slot := range se.SchemaSlots() {
		if !slot.IsSet() {
			*slot = model.Schema(*c.Schema)
		}
	}
}

// RootPath makes relative script paths absolute under Root.
type RootPath struct {
	Root string
}

func (*RootPath) Name() string { return "root-path" }

func (c *RootPath) Apply(e expressions.Expression) {
	if c.Root == "" {
		return
	}
	fe, ok := e.(expressions.FileSystemExpression)
	if !ok {
		return
	}
	p := fe.FilePath()
	if *p == "" || filepath.IsAbs(*p) {
		return
	}
	*p = filepath.Join(c.Root, *p)
}

// ForeignKeyName names foreign keys
// FK_{foreignTable}_{foreignColumns...}_{primaryTable}_{primaryColumns...}.
type ForeignKeyName struct{}

func (ForeignKeyName) Name() string { return "foreign-key-name" }

func (ForeignKeyName) Apply(e expressions.Expression) {
	fe, ok := e.(expressions.ForeignKeyExpression)
	if !ok {
		return
	}
	fk := fe.ForeignKeyDefinition()
	if fk.Name != "" {
		return
	}
	fk.Name = ForeignKeyNameFor(fk)
}

// ForeignKeyNameFor returns the conventional name of fk.
func ForeignKeyNameFor(fk *model.ForeignKeyDefinition) string {
	var b strings.Builder
	b.WriteString("FK_")
	b.WriteString(fk.ForeignTable)
	for _, c := range fk.ForeignColumns {
		b.WriteString("_")
		b.WriteString(c)
	}
	b.WriteString("_")
	b.WriteString(fk.PrimaryTable)
	for _, c := range fk.PrimaryColumns {
		b.WriteString("_")
		b.WriteString(c)
	}
	return b.String()
}

// IndexName names indexes IX_{table}_{columns...}.
type IndexName struct{}

func (IndexName) Name() string { return "index-name" }

func (IndexName) Apply(e expressions.Expression) {
	ie, ok := e.(expressions.IndexExpression)
	if !ok {
		return
	}
	idx := ie.IndexDefinition()
	if idx.Name != "" {
		return
	}
	idx.Name = IndexNameFor(idx)
}

// IndexNameFor returns the conventional name of idx.
func IndexNameFor(idx *model.IndexDefinition) string {
	var b strings.Builder
	b.WriteString("IX_")
	b.WriteString(idx.TableName)
	for _, c := range idx.Columns {
		b.WriteString("_")
		b.WriteString(c.Name)
	}
	return b.String()
}

// ConstraintName names primary keys PK_{table} and unique constraints
// UC_{table}_{columns...}.
type ConstraintName struct{}

func (ConstraintName) Name() string { return "constraint-name" }

func (ConstraintName) Apply(e expressions.Expression) {
	ce, ok := e.(expressions.ConstraintExpression)
	if !ok {
		return
	}
	c := ce.ConstraintDefinition()
	if c.ConstraintName != "" {
		return
	}
	c.ConstraintName = ConstraintNameFor(c)
}

// ConstraintNameFor returns the conventional name of c.
func ConstraintNameFor(c *model.ConstraintDefinition) string {
	if c.IsPrimaryKey() {
		return "PK_" + c.TableName
	}
	var b strings.Builder
	b.WriteString("UC_")
	b.WriteString(c.TableName)
	for _, col := range c.Columns {
		b.WriteString("_")
		b.WriteString(col)
	}
	return b.String()
}
