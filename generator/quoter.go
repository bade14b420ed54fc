package generator

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Limetric/schemaferry/model"
)

// Quoter renders identifiers and literal values for one dialect. It is
// configured at construction and never mutated afterwards, so a single
// instance may be shared between goroutines.
type Quoter struct {
	dialect     string
	open        string
	close       string
	closeEscape string

	// shouldQuote decides whether an identifier needs quoting. Nil quotes
	// every identifier.
	shouldQuote func(name string) bool

	// schemaFallback replaces a set-but-empty schema name.
	schemaFallback string
	// ignoreSchema drops schema prefixes from object names.
	ignoreSchema bool

	nationalStrings bool
	escapeBackslash bool

	formatBool     func(bool) string
	formatDateTime func(time.Time) string
	formatBytes    func([]byte) string
	formatGUID     func(uuid.UUID) string
	systemMethods  map[model.SystemMethod]string
}

// newQuoter returns a double-quote, always-quoting ANSI quoter that dialect
// constructors adjust.
func newQuoter(dialect string) *Quoter {
	return &Quoter{
		dialect:        dialect,
		open:           `"`,
		close:          `"`,
		closeEscape:    `""`,
		formatBool:     boolTrueFalse,
		formatDateTime: isoDateTime,
		formatBytes:    hexBytes("0x", ""),
		formatGUID:     quotedGUID,
		systemMethods: map[model.SystemMethod]string{
			model.CurrentDateTime: "CURRENT_TIMESTAMP",
			model.CurrentUser:     "CURRENT_USER",
		},
	}
}

func (q *Quoter) Dialect() string { return q.dialect }

// IsQuoted reports whether name is wrapped in this dialect's quotes.
func (q *Quoter) IsQuoted(name string) bool {
	if len(name) < len(q.open)+len(q.close) {
		return false
	}
	return strings.HasPrefix(name, q.open) && strings.HasSuffix(name, q.close)
}

// Quote quotes an identifier when the dialect's policy requires it,
// escaping embedded close quotes.
func (q *Quoter) Quote(name string) string {
	if name == "" {
		return name
	}
	if q.shouldQuote != nil && !q.shouldQuote(name) {
		return name
	}
	return q.open + strings.ReplaceAll(name, q.close, q.closeEscape) + q.close
}

// UnQuote reverses Quote. Unquoted input is returned unchanged.
func (q *Quoter) UnQuote(name string) string {
	if !q.IsQuoted(name) {
		return name
	}
	inner := name[len(q.open) : len(name)-len(q.close)]
	return strings.ReplaceAll(inner, q.closeEscape, q.close)
}

// QuoteSchemaName returns the quoted schema, the dialect fallback for a
// set-but-empty schema, or "" when the schema is unset or ignored.
func (q *Quoter) QuoteSchemaName(schema model.SchemaName) string {
	if q.ignoreSchema || !schema.IsSet() {
		return ""
	}
	name := schema.String()
	if name == "" {
		name = q.schemaFallback
	}
	if name == "" {
		return ""
	}
	return q.Quote(name)
}

func (q *Quoter) QuoteColumnName(name string) string { return q.Quote(name) }

func (q *Quoter) QuoteTableName(name string, schema model.SchemaName) string {
	return q.prefixed(schema, q.Quote(name))
}

func (q *Quoter) QuoteConstraintName(name string, schema model.SchemaName) string {
	return q.prefixed(schema, q.Quote(name))
}

func (q *Quoter) QuoteSequenceName(name string, schema model.SchemaName) string {
	return q.prefixed(schema, q.Quote(name))
}

// QuoteIndexName leaves an already quoted name as is.
func (q *Quoter) QuoteIndexName(name string, schema model.SchemaName) string {
	if !q.IsQuoted(name) {
		name = q.Quote(name)
	}
	return q.prefixed(schema, name)
}

func (q *Quoter) prefixed(schema model.SchemaName, quoted string) string {
	s := q.QuoteSchemaName(schema)
	if s == "" {
		return quoted
	}
	return s + "." + quoted
}

// QuoteValue renders v as a SQL literal. Nil and model.DBNull render NULL.
// Types without a defined rendering are an error rather than a guess.
func (q *Quoter) QuoteValue(v any) (string, error) {
	if model.IsNull(v) {
		return "NULL", nil
	}
	switch x := v.(type) {
	case model.RawSQL:
		return string(x), nil
	case model.SystemMethod:
		return q.systemMethod(x)
	case string:
		return q.quoteString(x), nil
	case []byte:
		return q.formatBytes(x), nil
	case bool:
		return q.formatBool(x), nil
	case int:
		return strconv.FormatInt(int64(x), 10), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case decimal.Decimal:
		return x.String(), nil
	case uuid.UUID:
		return q.formatGUID(x), nil
	case time.Time:
		return q.formatDateTime(x), nil
	case time.Duration:
		return q.quoteString(formatDuration(x)), nil
	}
	return "", fmt.Errorf("%s: cannot render value of type %T", q.dialect, v)
}

func (q *Quoter) quoteString(s string) string {
	if q.escapeBackslash {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	s = strings.ReplaceAll(s, "'", "''")
	if q.nationalStrings {
		return "N'" + s + "'"
	}
	return "'" + s + "'"
}

func (q *Quoter) systemMethod(m model.SystemMethod) (string, error) {
	if s, ok := q.systemMethods[m]; ok {
		return s, nil
	}
	return "", &UnsupportedFeatureError{
		Dialect: q.dialect,
		Message: fmt.Sprintf("system method %s is not supported", m),
	}
}

// EscapeLiteral doubles single quotes so s can sit inside a '...' literal.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func boolTrueFalse(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}

func boolLowerTrueFalse(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func boolOneZero(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func isoDateTime(t time.Time) string {
	return "'" + t.Format("2006-01-02T15:04:05.999999") + "'"
}

func hexBytes(prefix, suffix string) func([]byte) string {
	return func(b []byte) string {
		return prefix + strings.ToUpper(hex.EncodeToString(b)) + suffix
	}
}

func quotedGUID(u uuid.UUID) string {
	return "'" + u.String() + "'"
}

func formatDuration(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	h := int64(d / time.Hour)
	m := int64(d % time.Hour / time.Minute)
	s := int64(d % time.Minute / time.Second)
	out := fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	if frac := int64(d % time.Second); frac != 0 {
		out += strings.TrimRight(fmt.Sprintf(".%09d", frac), "0")
	}
	if neg {
		return "-" + out
	}
	return out
}
