package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/migration"
	"github.com/Limetric/schemaferry/model"
	"github.com/Limetric/schemaferry/processor"
)

// DefaultVersionTable is the table applied versions are recorded in.
const DefaultVersionTable = "VersionInfo"

// AppliedVersion is one row of the version table.
type AppliedVersion struct {
	Version     int64
	Description string
}

// VersionStore tracks which migrations have been applied.
type VersionStore interface {
	EnsureTable(ctx context.Context) error
	Applied(ctx context.Context) ([]AppliedVersion, error)
	Record(ctx context.Context, info migration.Info) error
	Remove(ctx context.Context, version int64) error
}

// ProcessorStore keeps the version table in the target database. Its DDL
// and DML go through the processor, so they are generated for the
// dialect, logged, and part of the migration's transaction.
type ProcessorStore struct {
	p      *processor.Processor
	schema model.SchemaName
	table  string
	now    func() time.Time
}

// NewProcessorStore returns a store for table in schema. An empty schema
// uses the connection default; an empty table uses DefaultVersionTable.
func NewProcessorStore(p *processor.Processor, schema, table string) *ProcessorStore {
	s := &ProcessorStore{p: p, table: table, now: func() time.Time { return time.Now().UTC() }}
	if schema != "" {
		s.schema = model.Schema(schema)
	}
	if s.table == "" {
		s.table = DefaultVersionTable
	}
	return s
}

func (s *ProcessorStore) exists(ctx context.Context) (bool, error) {
	ok, err := s.p.TableExists(ctx, s.schema.String(), s.table)
	if errors.Is(err, processor.ErrNoConnection) {
		// Preview without a database: nothing is applied yet.
		return false, nil
	}
	return ok, err
}

func (s *ProcessorStore) EnsureTable(ctx context.Context) error {
	ok, err := s.exists(ctx)
	if err != nil {
		return fmt.Errorf("check version table: %w", err)
	}
	if ok {
		return nil
	}
	table := &expressions.CreateTable{
		SchemaName: s.schema,
		TableName:  s.table,
		Columns: []*model.ColumnDefinition{
			{Name: "Version", Type: model.Int64, Nullable: model.NotNullable, TableName: s.table},
			{Name: "AppliedOn", Type: model.DateTime, Nullable: model.Nullable, TableName: s.table},
			{Name: "Description", Type: model.String, Size: 1024, Nullable: model.Nullable, TableName: s.table},
		},
	}
	index := &expressions.CreateIndex{Index: model.IndexDefinition{
		Name:       "UC_Version",
		SchemaName: s.schema,
		TableName:  s.table,
		Unique:     true,
		Columns:    []model.IndexColumnDefinition{{Name: "Version"}},
	}}
	for _, e := range []expressions.Expression{table, index} {
		if err := s.p.Process(ctx, e); err != nil {
			return fmt.Errorf("create version table: %w", err)
		}
	}
	return nil
}

func (s *ProcessorStore) Applied(ctx context.Context) ([]AppliedVersion, error) {
	ok, err := s.exists(ctx)
	if err != nil || !ok {
		return nil, err
	}
	q := s.p.Generator().Quoter()
	query := fmt.Sprintf("SELECT %s, %s FROM %s ORDER BY %s",
		q.QuoteColumnName("Version"), q.QuoteColumnName("Description"),
		q.QuoteTableName(s.table, s.schema), q.QuoteColumnName("Version"))
	rows, err := s.p.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("read applied versions: %w", err)
	}
	defer rows.Close()

	var out []AppliedVersion
	for rows.Next() {
		var v AppliedVersion
		var desc *string
		if err := rows.Scan(&v.Version, &desc); err != nil {
			return nil, fmt.Errorf("scan applied version: %w", err)
		}
		if desc != nil {
			v.Description = *desc
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *ProcessorStore) Record(ctx context.Context, info migration.Info) error {
	e := &expressions.InsertData{SchemaName: s.schema, TableName: s.table, Rows: []model.Row{{
		{Column: "Version", Value: info.Version},
		{Column: "AppliedOn", Value: s.now()},
		{Column: "Description", Value: info.Description},
	}}}
	return s.p.Process(ctx, e)
}

func (s *ProcessorStore) Remove(ctx context.Context, version int64) error {
	e := &expressions.DeleteData{SchemaName: s.schema, TableName: s.table, Rows: []model.Row{{
		{Column: "Version", Value: version},
	}}}
	return s.p.Process(ctx, e)
}
