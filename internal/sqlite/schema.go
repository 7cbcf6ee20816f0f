package sqlite

// Schema DDL for the reference tables. Empty identifiers and unknown data
// types or directions are rejected at load time by the CHECK constraints.
const (
	createCategories = `CREATE TABLE categories (
    category_id TEXT PRIMARY KEY NOT NULL CHECK (category_id <> ''),
    name TEXT
);`

	createAttributes = `CREATE TABLE attributes (
    attribute_id TEXT PRIMARY KEY NOT NULL CHECK (attribute_id <> ''),
    category_id TEXT NOT NULL,
    name TEXT,
    data_type TEXT NOT NULL CHECK (data_type IN ('date', 'dictionary_entry', 'double', 'integer', 'boolean', 'string')),
    dictionary_id TEXT,
    FOREIGN KEY (category_id) REFERENCES categories(category_id)
);`

	createRelationConfigurations = `CREATE TABLE relation_configurations (
    relation_id TEXT PRIMARY KEY NOT NULL CHECK (relation_id <> ''),
    name TEXT,
    direction TEXT CHECK (direction IN ('directed', 'bidirectional'))
);`
)

const (
	idxAttributesCategory = `CREATE INDEX idx_attributes_category ON attributes(category_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createCategories,
	createAttributes,
	createRelationConfigurations,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxAttributesCategory,
}
