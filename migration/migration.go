// Package migration defines what a migration is, the fluent builders
// migrations use to describe their changes, and the validator that
// rejects a migration before any SQL is generated for it.
package migration

import (
	"fmt"
	"sort"
)

// TransactionBehavior controls whether a migration runs inside a
// transaction.
type TransactionBehavior int

const (
	// InTransaction runs the whole migration in one transaction.
	InTransaction TransactionBehavior = iota
	// NoTransaction runs each statement on its own, for statements the
	// database refuses inside a transaction.
	NoTransaction
)

// Info identifies a migration.
type Info struct {
	Version     int64
	Description string
	Transaction TransactionBehavior
}

func (i Info) String() string {
	if i.Description == "" {
		return fmt.Sprintf("%d", i.Version)
	}
	return fmt.Sprintf("%d_%s", i.Version, i.Description)
}

// Migration describes one schema change. Up and Down record expressions on
// the Context; they must not talk to the database directly.
type Migration interface {
	Info() Info
	Up(c *Context)
	Down(c *Context)
}

// Func adapts plain functions to Migration.
type Func struct {
	Meta     Info
	UpFunc   func(c *Context)
	DownFunc func(c *Context)
}

func (f *Func) Info() Info { return f.Meta }

func (f *Func) Up(c *Context) {
	if f.UpFunc != nil {
		f.UpFunc(c)
	}
}

func (f *Func) Down(c *Context) {
	if f.DownFunc != nil {
		f.DownFunc(c)
	}
}

// Sort orders migrations by version.
func Sort(ms []Migration) {
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].Info().Version < ms[j].Info().Version })
}

// CheckVersions reports duplicate versions.
func CheckVersions(ms []Migration) error {
	seen := make(map[int64]string, len(ms))
	for _, m := range ms {
		info := m.Info()
		if prev, ok := seen[info.Version]; ok {
			return fmt.Errorf("duplicate migration version %d (%s and %s)", info.Version, prev, info)
		}
		seen[info.Version] = info.String()
	}
	return nil
}
