package types

import (
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

// Value is the closed set of typed payloads an attribute can hold. The
// interface is sealed: the only implementations are the six variants in this
// file. Values are immutable.
type Value interface {
	// Kind reports the data type of the variant.
	Kind() DataType
	// Equal reports whether other is the same variant with an equal payload.
	Equal(other Value) bool
	String() string

	sealed()
}

// DictionaryEntry is an entry of an enumerated dictionary.
type DictionaryEntry struct {
	Dictionary DictionaryIdentifier `json:"dictionary"`
	Key        string               `json:"key"`
	Label      string               `json:"label,omitempty"`
}

// DateValue holds a point in time.
type DateValue struct{ v time.Time }

// DictionaryEntryValue holds a dictionary entry.
type DictionaryEntryValue struct{ v DictionaryEntry }

// DoubleValue holds a float64.
type DoubleValue struct{ v float64 }

// IntegerValue holds an int64.
type IntegerValue struct{ v int64 }

// BooleanValue holds a bool.
type BooleanValue struct{ v bool }

// StringValue holds a string.
type StringValue struct{ v string }

// NewDateValue wraps t as a date value.
func NewDateValue(t time.Time) DateValue { return DateValue{v: t} }

// NewDictionaryEntryValue wraps e as a dictionary entry value.
func NewDictionaryEntryValue(e DictionaryEntry) DictionaryEntryValue {
	return DictionaryEntryValue{v: e}
}

// NewDoubleValue wraps f as a double value.
func NewDoubleValue(f float64) DoubleValue { return DoubleValue{v: f} }

// NewIntegerValue wraps i as an integer value.
func NewIntegerValue(i int64) IntegerValue { return IntegerValue{v: i} }

// NewBooleanValue wraps b as a boolean value.
func NewBooleanValue(b bool) BooleanValue { return BooleanValue{v: b} }

// NewStringValue wraps s as a string value.
func NewStringValue(s string) StringValue { return StringValue{v: s} }

// Date returns the wrapped time.
func (v DateValue) Date() time.Time { return v.v }

// Entry returns the wrapped dictionary entry.
func (v DictionaryEntryValue) Entry() DictionaryEntry { return v.v }

// Double returns the wrapped float64.
func (v DoubleValue) Double() float64 { return v.v }

// Integer returns the wrapped int64.
func (v IntegerValue) Integer() int64 { return v.v }

// Boolean returns the wrapped bool.
func (v BooleanValue) Boolean() bool { return v.v }

// Str returns the wrapped string.
func (v StringValue) Str() string { return v.v }

// Kind returns DataTypeDate.
func (DateValue) Kind() DataType { return DataTypeDate }

// Kind returns DataTypeDictionaryEntry.
func (DictionaryEntryValue) Kind() DataType { return DataTypeDictionaryEntry }

// Kind returns DataTypeDouble.
func (DoubleValue) Kind() DataType { return DataTypeDouble }

// Kind returns DataTypeInteger.
func (IntegerValue) Kind() DataType { return DataTypeInteger }

// Kind returns DataTypeBoolean.
func (BooleanValue) Kind() DataType { return DataTypeBoolean }

// Kind returns DataTypeString.
func (StringValue) Kind() DataType { return DataTypeString }

func (DateValue) sealed()            {}
func (DictionaryEntryValue) sealed() {}
func (DoubleValue) sealed()          {}
func (IntegerValue) sealed()         {}
func (BooleanValue) sealed()         {}
func (StringValue) sealed()          {}

// Equal compares instants, ignoring the location.
func (v DateValue) Equal(other Value) bool {
	o, ok := other.(DateValue)
	return ok && v.v.Equal(o.v)
}

// Equal compares dictionary, key, and label.
func (v DictionaryEntryValue) Equal(other Value) bool {
	o, ok := other.(DictionaryEntryValue)
	return ok && v.v == o.v
}

// Equal compares with ==, so NaN never equals itself.
func (v DoubleValue) Equal(other Value) bool {
	o, ok := other.(DoubleValue)
	return ok && v.v == o.v
}

// Equal reports whether other is an IntegerValue with the same payload.
func (v IntegerValue) Equal(other Value) bool {
	o, ok := other.(IntegerValue)
	return ok && v.v == o.v
}

// Equal reports whether other is a BooleanValue with the same payload.
func (v BooleanValue) Equal(other Value) bool {
	o, ok := other.(BooleanValue)
	return ok && v.v == o.v
}

// Equal reports whether other is a StringValue with the same payload.
func (v StringValue) Equal(other Value) bool {
	o, ok := other.(StringValue)
	return ok && v.v == o.v
}

// String formats the date as RFC 3339.
func (v DateValue) String() string { return v.v.Format(time.RFC3339) }

// String renders dictionary/key.
func (v DictionaryEntryValue) String() string {
	return string(v.v.Dictionary) + "/" + v.v.Key
}

func (v DoubleValue) String() string  { return strconv.FormatFloat(v.v, 'g', -1, 64) }
func (v IntegerValue) String() string { return strconv.FormatInt(v.v, 10) }
func (v BooleanValue) String() string { return strconv.FormatBool(v.v) }

// String quotes the payload.
func (v StringValue) String() string { return strconv.Quote(v.v) }

// ValueMatcher handles each Value variant. Adding a variant adds a method
// here, so every matcher stops compiling until it handles the new kind.
type ValueMatcher[R any] interface {
	MatchDate(v DateValue) R
	MatchDictionaryEntry(v DictionaryEntryValue) R
	MatchDouble(v DoubleValue) R
	MatchInteger(v IntegerValue) R
	MatchBoolean(v BooleanValue) R
	MatchString(v StringValue) R
}

// MatchValue dispatches v to the matcher method for its variant.
// Returns ErrInvalidArgument if v is nil.
func MatchValue[R any](v Value, m ValueMatcher[R]) (R, error) {
	var zero R
	switch tv := v.(type) {
	case DateValue:
		return m.MatchDate(tv), nil
	case DictionaryEntryValue:
		return m.MatchDictionaryEntry(tv), nil
	case DoubleValue:
		return m.MatchDouble(tv), nil
	case IntegerValue:
		return m.MatchInteger(tv), nil
	case BooleanValue:
		return m.MatchBoolean(tv), nil
	case StringValue:
		return m.MatchString(tv), nil
	case nil:
		return zero, invalidArgument("value")
	default:
		// Unreachable while Value stays sealed.
		return zero, errors.AssertionFailedf("unhandled value variant %T", v)
	}
}

// payloadMatcher unwraps a value into its primitive payload.
type payloadMatcher struct{}

func (payloadMatcher) MatchDate(v DateValue) any                       { return v.v }
func (payloadMatcher) MatchDictionaryEntry(v DictionaryEntryValue) any { return v.v }
func (payloadMatcher) MatchDouble(v DoubleValue) any                   { return v.v }
func (payloadMatcher) MatchInteger(v IntegerValue) any                 { return v.v }
func (payloadMatcher) MatchBoolean(v BooleanValue) any                 { return v.v }
func (payloadMatcher) MatchString(v StringValue) any                   { return v.v }

// Payload returns the primitive payload of v: time.Time, DictionaryEntry,
// float64, int64, bool, or string. Returns nil for a nil value.
func Payload(v Value) any {
	p, err := MatchValue[any](v, payloadMatcher{})
	if err != nil {
		return nil
	}
	return p
}
