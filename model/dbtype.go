package model

// DbType is the dialect-agnostic column type. Generators translate it to a
// native type through their type map.
type DbType int

const (
	TypeUnset DbType = iota
	AnsiString
	AnsiStringFixedLength
	Binary
	Boolean
	Byte
	Currency
	Date
	DateTime
	DateTime2
	DateTimeOffset
	Decimal
	Double
	Guid
	Int16
	Int32
	Int64
	Object
	SByte
	Single
	String
	StringFixedLength
	Time
	UInt16
	UInt32
	UInt64
	VarNumeric
	Xml
)

var dbTypeNames = [...]string{
	TypeUnset:             "Unset",
	AnsiString:            "AnsiString",
	AnsiStringFixedLength: "AnsiStringFixedLength",
	Binary:                "Binary",
	Boolean:               "Boolean",
	Byte:                  "Byte",
	Currency:              "Currency",
	Date:                  "Date",
	DateTime:              "DateTime",
	DateTime2:             "DateTime2",
	DateTimeOffset:        "DateTimeOffset",
	Decimal:               "Decimal",
	Double:                "Double",
	Guid:                  "Guid",
	Int16:                 "Int16",
	Int32:                 "Int32",
	Int64:                 "Int64",
	Object:                "Object",
	SByte:                 "SByte",
	Single:                "Single",
	String:                "String",
	StringFixedLength:     "StringFixedLength",
	Time:                  "Time",
	UInt16:                "UInt16",
	UInt32:                "UInt32",
	UInt64:                "UInt64",
	VarNumeric:            "VarNumeric",
	Xml:                   "Xml",
}

func (t DbType) String() string {
	if t < 0 || int(t) >= len(dbTypeNames) {
		return "DbType(?)"
	}
	return dbTypeNames[t]
}

// AllDbTypes lists every concrete DbType, excluding TypeUnset.
func AllDbTypes() []DbType {
	out := make([]DbType, 0, len(dbTypeNames)-1)
	for t := AnsiString; t <= Xml; t++ {
		out = append(out, t)
	}
	return out
}
