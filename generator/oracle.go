package generator

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Limetric/schemaferry/expressions"
	"github.com/Limetric/schemaferry/model"
)

var oracleTypes = mustTypeMap("oracle", []typeRow{
	{model.AnsiStringFixedLength, 0, "CHAR(255 CHAR)"},
	{model.AnsiStringFixedLength, 2000, "CHAR($size CHAR)"},
	{model.AnsiString, 0, "VARCHAR2(255 CHAR)"},
	{model.AnsiString, 4000, "VARCHAR2($size CHAR)"},
	{model.AnsiString, 2147483647, "CLOB"},
	{model.Binary, 0, "RAW(2000)"},
	{model.Binary, 2000, "RAW($size)"},
	{model.Binary, 2147483647, "BLOB"},
	{model.Boolean, 0, "NUMBER(1,0)"},
	{model.Byte, 0, "NUMBER(3,0)"},
	{model.Currency, 0, "NUMBER(19,4)"},
	{model.Date, 0, "DATE"},
	{model.DateTime, 0, "TIMESTAMP(4)"},
	{model.DateTime2, 0, "TIMESTAMP(7)"},
	{model.DateTimeOffset, 0, "TIMESTAMP(4) WITH TIME ZONE"},
	{model.Decimal, 0, "NUMBER(19,5)"},
	{model.Decimal, 38, "NUMBER($size,$precision)"},
	{model.Double, 0, "DOUBLE PRECISION"},
	{model.Guid, 0, "RAW(16)"},
	{model.Int16, 0, "NUMBER(5,0)"},
	{model.Int32, 0, "NUMBER(10,0)"},
	{model.Int64, 0, "NUMBER(19,0)"},
	{model.SByte, 0, "NUMBER(3,0)"},
	{model.Single, 0, "FLOAT(24)"},
	{model.StringFixedLength, 0, "NCHAR(255)"},
	{model.StringFixedLength, 2000, "NCHAR($size)"},
	{model.String, 0, "NVARCHAR2(255)"},
	{model.String, 2000, "NVARCHAR2($size)"},
	{model.String, 1073741823, "NCLOB"},
	{model.Time, 0, "DATE"},
	{model.UInt16, 0, "NUMBER(5,0)"},
	{model.UInt32, 0, "NUMBER(10,0)"},
	{model.UInt64, 0, "NUMBER(20,0)"},
	{model.VarNumeric, 0, "NUMBER"},
	{model.Xml, 0, "XMLTYPE"},
}, model.Object)

func newOracle(opts Options) *Generator {
	q := newQuoter("oracle")
	q.formatBool = boolOneZero
	q.formatDateTime = func(t time.Time) string {
		if t.Nanosecond() != 0 {
			return "to_timestamp('" + t.Format("2006-01-02 15:04:05.000000000") + "', 'yyyy-mm-dd hh24:mi:ss.ff9')"
		}
		return "to_date('" + t.Format("2006-01-02 15:04:05") + "', 'yyyy-mm-dd hh24:mi:ss')"
	}
	q.formatBytes = func(b []byte) string {
		return "hextoraw('" + strings.ToUpper(hex.EncodeToString(b)) + "')"
	}
	q.formatGUID = func(u uuid.UUID) string {
		return "hextoraw('" + strings.ToUpper(hex.EncodeToString(u[:])) + "')"
	}
	q.systemMethods = map[model.SystemMethod]string{
		model.NewGuid:               "sys_guid()",
		model.CurrentDateTime:       "LOCALTIMESTAMP",
		model.CurrentDateTimeOffset: "CURRENT_TIMESTAMP",
		model.CurrentUTCDateTime:    "sys_extract_utc(SYSTIMESTAMP)",
		model.CurrentUser:           "USER",
	}

	col := newColumnRenderer(q, oracleTypes)
	col.formatIdentity = identityClause("GENERATED BY DEFAULT ON NULL AS IDENTITY")

	const noSchemas = "Oracle schemas are users and are not managed by migrations"
	stmts := genericStatements()
	stmts.renameTable = renameTableTo
	stmts.createForeignKey = oracleCreateForeignKey
	stmts.createSchema = unsupportedStatement[*expressions.CreateSchema](noSchemas)
	stmts.deleteSchema = unsupportedStatement[*expressions.DeleteSchema](noSchemas)
	stmts.alterSchema = unsupportedStatement[*expressions.AlterSchema](noSchemas)
	stmts.alterDefaultConstraint = oracleAlterDefaultConstraint
	stmts.deleteDefaultConstraint = oracleDeleteDefaultConstraint

	return newGenerator(&dialect{
		name:                     "oracle",
		quoter:                   q,
		column:                   col,
		describer:                commentOn{},
		stmts:                    stmts,
		separator:                "; ",
		addColumn:                "ALTER TABLE %s ADD %s",
		alterColumn:              "ALTER TABLE %s MODIFY %s",
		emptyDeleteColumnIsError: true,
	}, opts)
}

// oracleCreateForeignKey omits ON UPDATE, which Oracle lacks.
func oracleCreateForeignKey(g *Generator, e *expressions.CreateForeignKey) (string, error) {
	fk := &e.ForeignKey
	return foreignKeySQL(g, fk, g.d.quoter.Quote(fk.Name), ", ", false), nil
}

func oracleAlterDefaultConstraint(g *Generator, e *expressions.AlterDefaultConstraint) (string, error) {
	v, err := g.d.quoter.QuoteValue(e.DefaultValue)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ALTER TABLE %s MODIFY %s DEFAULT %s",
		g.table(e.TableName, e.SchemaName), g.d.quoter.QuoteColumnName(e.ColumnName), v), nil
}

func oracleDeleteDefaultConstraint(g *Generator, e *expressions.DeleteDefaultConstraint) (string, error) {
	return fmt.Sprintf("ALTER TABLE %s MODIFY %s DEFAULT NULL",
		g.table(e.TableName, e.SchemaName), g.d.quoter.QuoteColumnName(e.ColumnName)), nil
}
