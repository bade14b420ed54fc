// Package runner applies and rolls back migrations in version order,
// recording each applied version in a VersionStore.
package runner

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Limetric/schemaferry/conventions"
	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/migration"
	"github.com/Limetric/schemaferry/processor"
)

// Runner applies migrations through one processor.
type Runner struct {
	p          *processor.Processor
	store      VersionStore
	validator  *migration.Validator
	migrations []migration.Migration
	log        *log.Logger
}

// Options configure a Runner.
type Options struct {
	Conventions *conventions.Set
	// Store defaults to a ProcessorStore on the default version table.
	Store  VersionStore
	Logger *log.Logger
}

// New sorts migrations by version and rejects duplicate versions.
func New(p *processor.Processor, migrations []migration.Migration, opts Options) (*Runner, error) {
	ms := append([]migration.Migration(nil), migrations...)
	migration.Sort(ms)
	if err := migration.CheckVersions(ms); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	store := opts.Store
	if store == nil {
		store = NewProcessorStore(p, "", "")
	}
	return &Runner{
		p:          p,
		store:      store,
		validator:  &migration.Validator{Conventions: opts.Conventions, Logger: logger},
		migrations: ms,
		log:        logger,
	}, nil
}

// Status is a migration and whether it has been applied.
type Status struct {
	Info    migration.Info
	Applied bool
}

// List reports every known migration in version order.
func (r *Runner) List(ctx context.Context) ([]Status, error) {
	applied, err := r.applied(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, len(r.migrations))
	for i, m := range r.migrations {
		info := m.Info()
		out[i] = Status{Info: info, Applied: applied[info.Version]}
	}
	return out, nil
}

func (r *Runner) applied(ctx context.Context) (map[int64]bool, error) {
	versions, err := r.store.Applied(ctx)
	if err != nil {
		return nil, fmt.Errorf("read applied versions: %w", err)
	}
	set := make(map[int64]bool, len(versions))
	for _, v := range versions {
		set[v.Version] = true
	}
	return set, nil
}

// MigrateUp applies every pending migration with a version up to target.
// A target of 0 applies everything. The first failure stops the run.
func (r *Runner) MigrateUp(ctx context.Context, target int64) error {
	if err := r.store.EnsureTable(ctx); err != nil {
		return err
	}
	applied, err := r.applied(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	count := 0
	for _, m := range r.migrations {
		info := m.Info()
		if applied[info.Version] || (target > 0 && info.Version > target) {
			continue
		}
		r.log.Printf("migrating %s...", info)
		if err := r.apply(ctx, m, true); err != nil {
			return fmt.Errorf("migration %s: %w", info, err)
		}
		count++
	}
	r.log.Printf("applied %d migration(s) in %s", count, time.Since(start).Round(time.Millisecond))
	return nil
}

// Rollback reverts the last steps applied migrations.
func (r *Runner) Rollback(ctx context.Context, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	applied, err := r.applied(ctx)
	if err != nil {
		return err
	}
	var todo []migration.Migration
	for i := len(r.migrations) - 1; i >= 0 && len(todo) < steps; i-- {
		if applied[r.migrations[i].Info().Version] {
			todo = append(todo, r.migrations[i])
		}
	}
	return r.rollback(ctx, todo)
}

// RollbackTo reverts every applied migration newer than version.
func (r *Runner) RollbackTo(ctx context.Context, version int64) error {
	applied, err := r.applied(ctx)
	if err != nil {
		return err
	}
	var todo []migration.Migration
	for i := len(r.migrations) - 1; i >= 0; i-- {
		info := r.migrations[i].Info()
		if info.Version > version && applied[info.Version] {
			todo = append(todo, r.migrations[i])
		}
	}
	return r.rollback(ctx, todo)
}

func (r *Runner) rollback(ctx context.Context, todo []migration.Migration) error {
	for _, m := range todo {
		r.log.Printf("rolling back %s...", m.Info())
		if err := r.apply(ctx, m, false); err != nil {
			return fmt.Errorf("rollback %s: %w", m.Info(), err)
		}
	}
	r.log.Printf("rolled back %d migration(s)", len(todo))
	return nil
}

// apply runs one direction of m. The migration is built and validated
// before any SQL is generated; a rejected migration touches nothing.
func (r *Runner) apply(ctx context.Context, m migration.Migration, up bool) error {
	c := migration.NewContext(ctx, r.p)
	if up {
		m.Up(c)
	} else {
		m.Down(c)
	}
	if err := c.Err(); err != nil {
		return err
	}
	exprs := c.Expressions()
	if err := r.validator.Validate(m, exprs); err != nil {
		return err
	}

	info := m.Info()
	transactional := info.Transaction == migration.InTransaction
	if transactional {
		if err := r.p.BeginTransaction(ctx); err != nil {
			return err
		}
	}
	if err := r.run(ctx, info, exprs, up); err != nil {
		if transactional {
			if rbErr := r.p.Rollback(ctx); rbErr != nil {
				r.log.Printf("  WARN: %v", rbErr)
			}
		}
		return err
	}
	if transactional {
		return r.p.Commit(ctx)
	}
	return nil
}

func (r *Runner) run(ctx context.Context, info migration.Info, exprs []expressions.Expression, up bool) error {
	for _, e := range exprs {
		if err := r.p.Process(ctx, e); err != nil {
			return err
		}
	}
	if up {
		return r.store.Record(ctx, info)
	}
	return r.store.Remove(ctx, info.Version)
}
