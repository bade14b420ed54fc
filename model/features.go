package model

import (
	"errors"
	"fmt"
	"sort"
)

// Feature is a dialect extension key. The known keys form a closed set;
// each expects one value kind.
type Feature string

const (
	SqlServerOnlineIndex    Feature = "SqlServerOnlineIndex"
	SqlServerIncludes       Feature = "SqlServerIncludes"
	SqlServerRowGuidColumn  Feature = "SqlServerRowGuidColumn"
	SqlServerIdentityInsert Feature = "SqlServerIdentityInsert"

	PostgresIndexMethod   Feature = "PostgresIndexMethod"
	PostgresIndexIncludes Feature = "PostgresIndexIncludes"

	MySQLTableEngine Feature = "MySQLTableEngine"

	SqlAnywhereNullsDistinct Feature = "SqlAnywhereNullsDistinct"
)

// FeatureKind is the tag of a FeatureValue.
type FeatureKind int

const (
	BoolKind FeatureKind = iota + 1
	StringKind
	ListKind
)

var knownFeatures = map[Feature]FeatureKind{
	SqlServerOnlineIndex:     BoolKind,
	SqlServerIncludes:        ListKind,
	SqlServerRowGuidColumn:   BoolKind,
	SqlServerIdentityInsert:  BoolKind,
	PostgresIndexMethod:      StringKind,
	PostgresIndexIncludes:    ListKind,
	MySQLTableEngine:         StringKind,
	SqlAnywhereNullsDistinct: BoolKind,
}

var (
	ErrUnknownFeature = errors.New("unknown additional feature")
	ErrFeatureKind    = errors.New("additional feature value has the wrong kind")
)

// Known reports whether f belongs to the closed set of feature keys.
func (f Feature) Known() bool {
	_, ok := knownFeatures[f]
	return ok
}

// FeatureValue is a tagged variant: BoolValue, StringValue or ListValue.
type FeatureValue interface {
	Kind() FeatureKind
	clone() FeatureValue
}

type BoolValue bool

func (BoolValue) Kind() FeatureKind     { return BoolKind }
func (v BoolValue) clone() FeatureValue { return v }

type StringValue string

func (StringValue) Kind() FeatureKind     { return StringKind }
func (v StringValue) clone() FeatureValue { return v }

type ListValue []string

func (ListValue) Kind() FeatureKind { return ListKind }
func (v ListValue) clone() FeatureValue {
	out := make(ListValue, len(v))
	copy(out, v)
	return out
}

// Features holds the additional features of a definition or expression.
// The zero value is ready to use.
type Features struct {
	m map[Feature]FeatureValue
}

// Set stores v under a known key after checking its kind.
func (f *Features) Set(key Feature, v FeatureValue) error {
	kind, ok := knownFeatures[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFeature, string(key))
	}
	if v == nil || v.Kind() != kind {
		return fmt.Errorf("%w: %s", ErrFeatureKind, key)
	}
	f.SetUnchecked(key, v)
	return nil
}

// SetUnchecked stores v without validating the key. Generators ignore keys
// they do not recognise, so this is the path for extension modules that
// predate a key being added to the closed set. A nil v removes the key.
func (f *Features) SetUnchecked(key Feature, v FeatureValue) {
	if v == nil {
		delete(f.m, key)
		return
	}
	if f.m == nil {
		f.m = make(map[Feature]FeatureValue)
	}
	f.m[key] = v
}

func (f Features) Has(key Feature) bool {
	_, ok := f.m[key]
	return ok
}

func (f Features) Len() int { return len(f.m) }

// Keys returns the stored keys in sorted order.
func (f Features) Keys() []Feature {
	keys := make([]Feature, 0, len(f.m))
	for k := range f.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (f Features) Bool(key Feature) (value, ok bool) {
	v, ok := f.m[key].(BoolValue)
	return bool(v), ok
}

func (f Features) Text(key Feature) (string, bool) {
	v, ok := f.m[key].(StringValue)
	return string(v), ok
}

func (f Features) List(key Feature) ([]string, bool) {
	v, ok := f.m[key].(ListValue)
	return []string(v), ok
}

// Clone deep-copies the map and every list value.
func (f Features) Clone() Features {
	if f.m == nil {
		return Features{}
	}
	out := Features{m: make(map[Feature]FeatureValue, len(f.m))}
	for k, v := range f.m {
		if v == nil {
			continue
		}
		out.m[k] = v.clone()
	}
	return out
}
