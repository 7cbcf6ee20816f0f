package types

// Catalog is the read-only source of reference data: categories, attributes,
// and relation configurations. Callers attach to a backend, resolve
// identifiers, and detach when done. Returned references are immutable.
type Catalog interface {
	// Attach connects the Catalog to the backend described by config.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, lookups return ErrCatalogDetached.
	Detach() error

	// Category returns the category with the given identifier.
	// Returns ErrNotFound if it does not exist.
	Category(id CategoryIdentifier) (*Category, error)

	// Categories returns all categories ordered by identifier.
	Categories() ([]*Category, error)

	// Attribute returns the attribute with the given identifier.
	// Returns ErrNotFound if it does not exist.
	Attribute(id AttributeIdentifier) (*Attribute, error)

	// AttributesByCategory returns the attributes of a category ordered by
	// identifier. Returns ErrNotFound if the category does not exist.
	AttributesByCategory(id CategoryIdentifier) ([]*Attribute, error)

	// RelationConfiguration returns the relation configuration with the
	// given identifier. Returns ErrNotFound if it does not exist.
	RelationConfiguration(id RelationIdentifier) (*RelationConfiguration, error)

	// RelationConfigurations returns all relation configurations ordered by
	// identifier.
	RelationConfigurations() ([]*RelationConfiguration, error)
}
