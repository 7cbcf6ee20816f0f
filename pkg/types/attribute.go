package types

import (
	"github.com/cockroachdb/errors"
)

// DataType is the declared kind of the values an attribute accepts. The set
// is closed; the zero value is not a valid data type.
type DataType uint8

// Supported data types, one per Value variant.
const (
	DataTypeDate DataType = iota + 1
	DataTypeDictionaryEntry
	DataTypeDouble
	DataTypeInteger
	DataTypeBoolean
	DataTypeString
)

// dataTypeNames maps each data type to its wire name, used by the catalog
// files and manifests.
var dataTypeNames = map[DataType]string{
	DataTypeDate:            "date",
	DataTypeDictionaryEntry: "dictionary_entry",
	DataTypeDouble:          "double",
	DataTypeInteger:         "integer",
	DataTypeBoolean:         "boolean",
	DataTypeString:          "string",
}

func (d DataType) String() string {
	if name, ok := dataTypeNames[d]; ok {
		return name
	}
	return "undefined"
}

// Valid reports whether d is one of the declared data types.
func (d DataType) Valid() bool {
	_, ok := dataTypeNames[d]
	return ok
}

// MarshalText encodes the wire name.
func (d DataType) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, errors.Wrapf(ErrInvalidArgument, "data type %d", uint8(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a wire name.
func (d *DataType) UnmarshalText(text []byte) error {
	parsed, err := ParseDataType(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDataType maps a wire name to its DataType.
// Returns ErrInvalidArgument for unknown names.
func ParseDataType(name string) (DataType, error) {
	for d, n := range dataTypeNames {
		if n == name {
			return d, nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidArgument, "unknown data type %q", name)
}

// Attribute is a named, typed slot that may be bound to a value on objects of
// the same category. Attributes are immutable once constructed.
type Attribute struct {
	identifier AttributeIdentifier
	name       string
	category   *Category
	dataType   DataType
	dictionary DictionaryIdentifier
}

// AttributeOption configures optional attribute fields.
type AttributeOption func(a *Attribute)

// WithAttributeName sets the display name. Defaults to the identifier.
func WithAttributeName(name string) AttributeOption {
	return func(a *Attribute) {
		if name != "" {
			a.name = name
		}
	}
}

// WithDictionary names the dictionary whose entries a dictionary entry
// attribute draws from.
func WithDictionary(id DictionaryIdentifier) AttributeOption {
	return func(a *Attribute) {
		a.dictionary = id
	}
}

// NewAttribute creates an attribute of the given category and data type.
// Returns ErrInvalidArgument if the identifier is empty, the category is nil,
// or the data type is not valid.
func NewAttribute(id AttributeIdentifier, category *Category, dataType DataType, opts ...AttributeOption) (*Attribute, error) {
	if id == "" {
		return nil, invalidArgument("attribute identifier")
	}
	if category == nil {
		return nil, invalidArgument("attribute category")
	}
	if !dataType.Valid() {
		return nil, errors.Wrapf(ErrInvalidArgument, "attribute %s has invalid data type %d", id, uint8(dataType))
	}

	a := &Attribute{
		identifier: id,
		name:       string(id),
		category:   category,
		dataType:   dataType,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Identifier returns the attribute identifier.
func (a *Attribute) Identifier() AttributeIdentifier { return a.identifier }

// Name returns the display name.
func (a *Attribute) Name() string { return a.name }

// Category returns the category the attribute belongs to.
func (a *Attribute) Category() *Category { return a.category }

// DataType returns the declared data type.
func (a *Attribute) DataType() DataType { return a.dataType }

// Dictionary returns the dictionary identifier, empty when none is declared.
func (a *Attribute) Dictionary() DictionaryIdentifier { return a.dictionary }

func (a *Attribute) String() string {
	return string(a.category.identifier) + "." + string(a.identifier) + ":" + a.dataType.String()
}
