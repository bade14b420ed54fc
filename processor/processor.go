// Package processor executes expressions: it generates each expression's
// SQL for one dialect, logs it, and runs it against a database unless the
// processor is preview-only.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/generator"
	"github.com/Limetric/schemaferry/sqlscript"
)

// ErrNoConnection is returned by queries on a processor that has no
// database, which is only allowed in preview-only mode.
var ErrNoConnection = errors.New("processor has no database connection")

// Options configure a Processor.
type Options struct {
	// PreviewOnly logs SQL without executing it. Queries still run when a
	// connection is available.
	PreviewOnly bool
	// Timeout bounds each statement. Zero means no limit.
	Timeout time.Duration
	Logger  *log.Logger
}

// Processor runs expressions against one connection, inside at most one
// transaction at a time. It is not safe for concurrent use.
type Processor struct {
	gen  *generator.Generator
	conn Conn
	tx   Tx
	opts Options
	log  *log.Logger
}

// New returns a processor for gen's dialect. conn may be nil only when
// opts.PreviewOnly is set.
func New(gen *generator.Generator, conn Conn, opts Options) (*Processor, error) {
	if conn == nil && !opts.PreviewOnly {
		return nil, fmt.Errorf("%s: %w (enable preview to run without one)", gen.Dialect(), ErrNoConnection)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Processor{gen: gen, conn: conn, opts: opts, log: logger}, nil
}

func (p *Processor) Generator() *generator.Generator { return p.gen }
func (p *Processor) PreviewOnly() bool               { return p.opts.PreviewOnly }

// Close closes the underlying connection, if any.
func (p *Processor) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

// BeginTransaction starts a transaction; later statements run inside it
// until Commit or Rollback. Preview-only processors do not open one.
func (p *Processor) BeginTransaction(ctx context.Context) error {
	if p.tx != nil {
		return fmt.Errorf("transaction already open")
	}
	if p.opts.PreviewOnly || p.conn == nil {
		return nil
	}
	tx, err := p.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	p.tx = tx
	return nil
}

func (p *Processor) Commit(ctx context.Context) error {
	if p.tx == nil {
		return nil
	}
	tx := p.tx
	p.tx = nil
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (p *Processor) Rollback(ctx context.Context) error {
	if p.tx == nil {
		return nil
	}
	tx := p.tx
	p.tx = nil
	if err := tx.Rollback(ctx); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// querier is the open transaction, or the connection outside one.
func (p *Processor) querier() (Querier, error) {
	if p.tx != nil {
		return p.tx, nil
	}
	if p.conn == nil {
		return nil, ErrNoConnection
	}
	return p.conn, nil
}

func (p *Processor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.opts.Timeout > 0 {
		return context.WithTimeout(ctx, p.opts.Timeout)
	}
	return ctx, func() {}
}

// Exec logs a statement and runs it unless preview-only.
func (p *Processor) Exec(ctx context.Context, statement string, args ...any) error {
	p.log.Printf("  %s", statement)
	if p.opts.PreviewOnly {
		return nil
	}
	q, err := p.querier()
	if err != nil {
		return err
	}
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	if err := q.Exec(ctx, statement, args...); err != nil {
		return fmt.Errorf("exec %q: %w", abbreviate(statement), err)
	}
	return nil
}

// Query runs a read-only query, also in preview-only mode.
func (p *Processor) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	q, err := p.querier()
	if err != nil {
		return nil, err
	}
	ctx, cancel := p.withTimeout(ctx)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		cancel()
		return nil, err
	}
	return &timedRows{Rows: rows, cancel: cancel}, nil
}

// timedRows releases the query timeout when the rows are closed.
type timedRows struct {
	Rows
	cancel context.CancelFunc
}

func (r *timedRows) Close() error {
	err := r.Rows.Close()
	r.cancel()
	return err
}

// Process generates and runs one expression.
func (p *Processor) Process(ctx context.Context, e expressions.Expression) error {
	if err := e.Accept(&execution{p: p, ctx: ctx}); err != nil {
		return fmt.Errorf("%s: %w", e.Describe(), err)
	}
	return nil
}

// run executes generated SQL. Empty output is a no-op on this dialect and
// Loose-mode warnings are logged instead of executed.
func (p *Processor) run(ctx context.Context, sql string) error {
	switch {
	case sql == "":
		return nil
	case generator.IsCompatibilityWarning(sql):
		p.log.Printf("  WARN: %s", strings.TrimPrefix(sql, generator.CompatibilityPrefix))
		return nil
	}
	for _, stmt := range p.split(sql) {
		if err := p.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// split cuts SQL into the units the driver accepts: GO batches on SQL
// Server, single statements elsewhere.
func (p *Processor) split(sql string) []string {
	if p.gen.Dialect() == "sqlserver" {
		return sqlscript.SplitBatches(sql)
	}
	return sqlscript.SplitStatements(sql)
}

// runRaw executes user-written SQL. Only SQL Server batches are split, so
// procedure bodies containing semicolons reach the database intact.
func (p *Processor) runRaw(ctx context.Context, sql string) error {
	if p.gen.Dialect() != "sqlserver" {
		return p.Exec(ctx, sql)
	}
	for _, batch := range sqlscript.SplitBatches(sql) {
		if err := p.Exec(ctx, batch); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) runScript(ctx context.Context, e *expressions.ExecuteSQLScript) error {
	data, err := os.ReadFile(e.Path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	p.log.Printf("  script %s", e.Path)
	for _, stmt := range p.split(sqlscript.Expand(string(data), e.Parameters)) {
		if err := p.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) perform(ctx context.Context, e *expressions.PerformDBOperation) error {
	if p.opts.PreviewOnly {
		p.log.Printf("  skipped in preview: %s", e.Describe())
		return nil
	}
	q, err := p.querier()
	if err != nil {
		return err
	}
	p.log.Printf("  %s", e.Describe())
	return e.Operation(ctx, q)
}

func abbreviate(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > 80 {
		return s[:77] + "..."
	}
	return s
}
