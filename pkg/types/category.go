package types

// Category classifies objects and the attributes that may be bound to them.
// A Category is immutable once constructed.
type Category struct {
	identifier CategoryIdentifier
	name       string
}

// NewCategory creates a category. An empty name defaults to the identifier.
// Returns ErrInvalidArgument if the identifier is empty.
func NewCategory(id CategoryIdentifier, name string) (*Category, error) {
	if id == "" {
		return nil, invalidArgument("category identifier")
	}
	if name == "" {
		name = string(id)
	}
	return &Category{identifier: id, name: name}, nil
}

// Identifier returns the category identifier.
func (c *Category) Identifier() CategoryIdentifier { return c.identifier }

// Name returns the display name.
func (c *Category) Name() string { return c.name }

func (c *Category) String() string { return string(c.identifier) }
