package migration

import (
	"fmt"
	"log"
	"strings"

	"github.com/Limetric/schemaferry/conventions"
	"github.com/Limetric/schemaferry/expressions"
)

// InvalidMigrationError is returned when any expression of a migration
// fails validation. Message holds one "Kind: errors" line per failing
// expression.
type InvalidMigrationError struct {
	Migration string
	Message   string
}

func (e *InvalidMigrationError) Error() string {
	return fmt.Sprintf("migration %s contained the following validation error(s): %s", e.Migration, e.Message)
}

// Validator applies conventions to expressions and checks them.
type Validator struct {
	Conventions *conventions.Set
	Logger      *log.Logger
}

func (v *Validator) logger() *log.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return log.Default()
}

// Validate applies the convention set to every expression in place, then
// collects the errors of each one. A migration is rejected as a whole: any
// error yields an *InvalidMigrationError and no expression should be run.
func (v *Validator) Validate(m Migration, exprs []expressions.Expression) error {
	var report strings.Builder
	for _, e := range exprs {
		v.Conventions.Apply(e)
		if errs := e.CollectValidationErrors(); len(errs) > 0 {
			fmt.Fprintf(&report, "%s: %s\n", e.Kind(), strings.Join(errs, " "))
		}
	}
	if report.Len() == 0 {
		return nil
	}

	name := m.Info().String()
	v.logger().Printf("  migration %s rejected:\n%s", name, report.String())
	return &InvalidMigrationError{Migration: name, Message: report.String()}
}

// Validate is a shorthand for a Validator logging to the default logger.
func Validate(m Migration, exprs []expressions.Expression, conv *conventions.Set) error {
	v := &Validator{Conventions: conv}
	return v.Validate(m, exprs)
}
