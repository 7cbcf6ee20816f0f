package types

import "github.com/cockroachdb/errors"

// CategoryIdentifier names a category. Identifiers are compared by equality
// and carry no ordering semantics.
type CategoryIdentifier string

// AttributeIdentifier names an attribute.
type AttributeIdentifier string

// RelationIdentifier names a relation configuration.
type RelationIdentifier string

// DictionaryIdentifier names a dictionary of enumerated entries.
type DictionaryIdentifier string

func (id CategoryIdentifier) String() string   { return string(id) }
func (id AttributeIdentifier) String() string  { return string(id) }
func (id RelationIdentifier) String() string   { return string(id) }
func (id DictionaryIdentifier) String() string { return string(id) }

// NewCategoryIdentifier returns ErrInvalidArgument for an empty string.
func NewCategoryIdentifier(s string) (CategoryIdentifier, error) {
	if s == "" {
		return "", errors.Wrap(ErrInvalidArgument, "category identifier must not be empty")
	}
	return CategoryIdentifier(s), nil
}

// NewAttributeIdentifier returns ErrInvalidArgument for an empty string.
func NewAttributeIdentifier(s string) (AttributeIdentifier, error) {
	if s == "" {
		return "", errors.Wrap(ErrInvalidArgument, "attribute identifier must not be empty")
	}
	return AttributeIdentifier(s), nil
}

// NewRelationIdentifier returns ErrInvalidArgument for an empty string.
func NewRelationIdentifier(s string) (RelationIdentifier, error) {
	if s == "" {
		return "", errors.Wrap(ErrInvalidArgument, "relation identifier must not be empty")
	}
	return RelationIdentifier(s), nil
}

// NewDictionaryIdentifier returns ErrInvalidArgument for an empty string.
func NewDictionaryIdentifier(s string) (DictionaryIdentifier, error) {
	if s == "" {
		return "", errors.Wrap(ErrInvalidArgument, "dictionary identifier must not be empty")
	}
	return DictionaryIdentifier(s), nil
}
