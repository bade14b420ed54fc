package model

// Validation messages shared by definitions and expressions.
const (
	ErrTableNameEmpty          = "The table name cannot be null or empty"
	ErrColumnNameEmpty         = "The column name cannot be null or empty"
	ErrColumnNamesNotUnique    = "Column names must be unique"
	ErrColumnTypeUndefined     = "The column does not have a type defined"
	ErrSchemaNameEmpty         = "The schema name cannot be null or empty"
	ErrOldTableNameEmpty       = "The old table name cannot be null or empty"
	ErrNewTableNameEmpty       = "The new table name cannot be null or empty"
	ErrOldColumnNameEmpty      = "The old column name cannot be null or empty"
	ErrNewColumnNameEmpty      = "The new column name cannot be null or empty"
	ErrIndexNameEmpty          = "The index name cannot be null or empty"
	ErrIndexNoColumns          = "The index must have one or more columns"
	ErrForeignKeyNameEmpty     = "The foreign key name cannot be null or empty"
	ErrForeignTableNameEmpty   = "The foreign table name cannot be null or empty"
	ErrPrimaryTableNameEmpty   = "The primary table name cannot be null or empty"
	ErrForeignKeyNoForeignCols = "The foreign key must have one or more foreign columns"
	ErrForeignKeyNoPrimaryCols = "The foreign key must have one or more primary columns"
	ErrConstraintNoColumns     = "The constraint must have at least one column specified"
	ErrSequenceNameEmpty       = "The sequence name cannot be null or empty"
	ErrDestinationSchemaEmpty  = "The destination schema cannot be null"
	ErrSQLStatementEmpty       = "The sql statement cannot be null or empty"
	ErrSQLScriptEmpty          = "The sql script cannot be null or empty"
	ErrOperationNil            = "The operation cannot be null"
	ErrUpdateMissingCondition  = "Update statement is missing a condition. Specify one by calling .Where() or target all rows by calling .AllRows()."
	ErrUpdateBothConditions    = "Update statement specifies both a .Where() condition and that .AllRows() should be targeted. Specify one or the other, but not both."
	ErrUpdateNoSetValues       = "Update statement must set at least one column"
)
