package generator

import (
	"strings"
)

// pgReservedWords are PostgreSQL reserved words that must be quoted as identifiers.
var pgReservedWords = map[string]bool{
	"all": true, "analyse": true, "analyze": true, "and": true, "any": true,
	"array": true, "as": true, "asc": true, "authorization": true, "between": true,
	"binary": true, "both": true, "case": true, "cast": true, "check": true,
	"collate": true, "column": true, "constraint": true, "create": true, "cross": true,
	"current_date": true, "current_role": true, "current_time": true,
	"current_timestamp": true, "current_user": true, "default": true, "deferrable": true,
	"desc": true, "distinct": true, "do": true, "else": true, "end": true, "except": true,
	"false": true, "fetch": true, "for": true, "foreign": true, "freeze": true,
	"from": true, "full": true, "grant": true, "group": true, "having": true,
	"ilike": true, "in": true, "initially": true, "inner": true, "intersect": true,
	"into": true, "is": true, "isnull": true, "join": true, "lateral": true,
	"leading": true, "left": true, "like": true, "limit": true, "localtime": true,
	"localtimestamp": true, "natural": true, "not": true, "notnull": true, "null": true,
	"offset": true, "on": true, "only": true, "or": true, "order": true, "outer": true,
	"overlaps": true, "placing": true, "primary": true, "references": true,
	"returning": true, "right": true, "select": true, "session_user": true,
	"similar": true, "some": true, "symmetric": true, "table": true, "then": true,
	"to": true, "trailing": true, "true": true, "union": true, "unique": true,
	"user": true, "using": true, "variadic": true, "verbose": true, "when": true,
	"where": true, "window": true, "with": true,
}

// firebirdReservedWords are Firebird 3 reserved words, upper case.
var firebirdReservedWords = map[string]bool{
	"ADD": true, "ADMIN": true, "ALL": true, "ALTER": true, "AND": true, "ANY": true,
	"AS": true, "AT": true, "AVG": true, "BEGIN": true, "BETWEEN": true, "BIGINT": true,
	"BLOB": true, "BOOLEAN": true, "BOTH": true, "BY": true, "CASE": true, "CAST": true,
	"CHAR": true, "CHARACTER": true, "CHECK": true, "CLOSE": true, "COLLATE": true,
	"COLUMN": true, "COMMIT": true, "CONNECT": true, "CONSTRAINT": true, "COUNT": true,
	"CREATE": true, "CROSS": true, "CURRENT": true, "CURRENT_DATE": true,
	"CURRENT_TIME": true, "CURRENT_TIMESTAMP": true, "CURRENT_USER": true, "CURSOR": true,
	"DATE": true, "DAY": true, "DEC": true, "DECIMAL": true, "DECLARE": true,
	"DEFAULT": true, "DELETE": true, "DISTINCT": true, "DOUBLE": true, "DROP": true,
	"ELSE": true, "END": true, "ESCAPE": true, "EXECUTE": true, "EXISTS": true,
	"EXTERNAL": true, "FALSE": true, "FETCH": true, "FILTER": true, "FLOAT": true,
	"FOR": true, "FOREIGN": true, "FROM": true, "FULL": true, "FUNCTION": true,
	"GRANT": true, "GROUP": true, "HAVING": true, "HOUR": true, "IN": true, "INDEX": true,
	"INNER": true, "INSERT": true, "INT": true, "INTEGER": true, "INTO": true, "IS": true,
	"JOIN": true, "LEADING": true, "LEFT": true, "LIKE": true, "MAX": true, "MERGE": true,
	"MIN": true, "MINUTE": true, "MONTH": true, "NATURAL": true, "NCHAR": true, "NO": true,
	"NOT": true, "NULL": true, "NUMERIC": true, "OF": true, "ON": true, "ONLY": true,
	"OPEN": true, "OR": true, "ORDER": true, "OUTER": true, "POSITION": true,
	"PRECISION": true, "PRIMARY": true, "PROCEDURE": true, "REAL": true,
	"REFERENCES": true, "RETURNS": true, "RIGHT": true, "ROLLBACK": true, "ROW": true,
	"ROWS": true, "SECOND": true, "SELECT": true, "SET": true, "SMALLINT": true,
	"SOME": true, "SUM": true, "TABLE": true, "THEN": true, "TIME": true,
	"TIMESTAMP": true, "TO": true, "TRAILING": true, "TRIGGER": true, "TRUE": true,
	"UNION": true, "UNIQUE": true, "UPDATE": true, "USER": true, "USING": true,
	"VALUE": true, "VALUES": true, "VARCHAR": true, "VARIABLE": true, "VARYING": true,
	"VIEW": true, "WHEN": true, "WHERE": true, "WHILE": true, "WITH": true, "YEAR": true,
}

// snowflakeReservedWords are Snowflake reserved keywords, upper case.
var snowflakeReservedWords = map[string]bool{
	"ACCOUNT": true, "ALL": true, "ALTER": true, "AND": true, "ANY": true, "AS": true,
	"BETWEEN": true, "BY": true, "CASE": true, "CAST": true, "CHECK": true,
	"COLUMN": true, "CONNECT": true, "CONNECTION": true, "CONSTRAINT": true,
	"CREATE": true, "CROSS": true, "CURRENT": true, "CURRENT_DATE": true,
	"CURRENT_TIME": true, "CURRENT_TIMESTAMP": true, "CURRENT_USER": true,
	"DATABASE": true, "DELETE": true, "DISTINCT": true, "DROP": true, "ELSE": true,
	"EXISTS": true, "FALSE": true, "FOLLOWING": true, "FOR": true, "FROM": true,
	"FULL": true, "GRANT": true, "GROUP": true, "GSCLUSTER": true, "HAVING": true,
	"ILIKE": true, "IN": true, "INCREMENT": true, "INNER": true, "INSERT": true,
	"INTERSECT": true, "INTO": true, "IS": true, "ISSUE": true, "JOIN": true,
	"LATERAL": true, "LEFT": true, "LIKE": true, "LOCALTIME": true,
	"LOCALTIMESTAMP": true, "MINUS": true, "NATURAL": true, "NOT": true, "NULL": true,
	"OF": true, "ON": true, "OR": true, "ORDER": true, "ORGANIZATION": true,
	"QUALIFY": true, "REGEXP": true, "REVOKE": true, "RIGHT": true, "RLIKE": true,
	"ROW": true, "ROWS": true, "SAMPLE": true, "SCHEMA": true, "SELECT": true,
	"SET": true, "SOME": true, "START": true, "TABLE": true, "TABLESAMPLE": true,
	"THEN": true, "TO": true, "TRIGGER": true, "TRUE": true, "TRY_CAST": true,
	"UNION": true, "UNIQUE": true, "UPDATE": true, "USING": true, "VALUES": true,
	"VIEW": true, "WHEN": true, "WHENEVER": true, "WHERE": true, "WITH": true,
}

// pgNeedsQuoting reports whether a PG identifier needs quoting beyond
// the reserved-word check: anything outside [a-z_][a-z0-9_$]* does.
func pgNeedsQuoting(name string) bool {
	if pgReservedWords[name] {
		return true
	}
	for i, r := range name {
		if r >= 'a' && r <= 'z' || r == '_' {
			continue
		}
		if i > 0 && (r >= '0' && r <= '9' || r == '$') {
			continue
		}
		return true
	}
	return false
}

// firebirdNeedsQuoting is the upper-case counterpart of pgNeedsQuoting.
// Firebird folds unquoted names to upper case, so lower-case names are
// quoted to keep their spelling.
func firebirdNeedsQuoting(name string) bool {
	if firebirdReservedWords[strings.ToUpper(name)] {
		return true
	}
	for i, r := range name {
		if r >= 'A' && r <= 'Z' || r == '_' {
			continue
		}
		if i > 0 && (r >= '0' && r <= '9' || r == '$') {
			continue
		}
		return true
	}
	return false
}

// snowflakeNeedsQuoting accepts either case because Snowflake matches
// unquoted names case-insensitively.
func snowflakeNeedsQuoting(name string) bool {
	if snowflakeReservedWords[strings.ToUpper(name)] {
		return true
	}
	for i, r := range name {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_' {
			continue
		}
		if i > 0 && (r >= '0' && r <= '9' || r == '$') {
			continue
		}
		return true
	}
	return false
}

// db2SpecialChars are the characters that force DB2 identifiers to be
// quoted. Names without them stay unquoted so DB2 folds their case.
const db2SpecialChars = `"%'()*+|,{}-./:;<=>?^[]`

func db2NeedsQuoting(name string) bool {
	return strings.ContainsAny(name, db2SpecialChars)
}
