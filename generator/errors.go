package generator

import (
	"strings"
)

// CompatibilityMode selects what a generator does with an operation its
// dialect cannot express.
type CompatibilityMode int

const (
	// Strict returns an *UnsupportedFeatureError.
	Strict CompatibilityMode = iota
	// Loose returns a SQL comment carrying the warning and no error.
	Loose
)

func (m CompatibilityMode) String() string {
	if m == Loose {
		return "loose"
	}
	return "strict"
}

// CompatibilityPrefix starts every warning string produced in Loose mode.
const CompatibilityPrefix = "-- unsupported: "

// IsCompatibilityWarning reports whether sql is a Loose-mode warning
// rather than an executable statement.
func IsCompatibilityWarning(sql string) bool {
	return strings.HasPrefix(sql, CompatibilityPrefix)
}

// UnsupportedFeatureError reports an operation or value the dialect cannot
// express.
type UnsupportedFeatureError struct {
	Dialect string
	Message string
}

func (e *UnsupportedFeatureError) Error() string {
	return e.Dialect + ": " + e.Message
}

// MalformedInputError reports an expression that can never produce valid
// SQL, such as a foreign key with mismatched column counts.
type MalformedInputError struct {
	Message string
}

func (e *MalformedInputError) Error() string { return e.Message }

// ConfigurationError reports a gap in a dialect's static tables.
type ConfigurationError struct {
	Dialect string
	Message string
}

func (e *ConfigurationError) Error() string {
	return "dialect " + e.Dialect + ": " + e.Message
}
