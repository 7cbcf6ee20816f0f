package sqlite

// JSONL record structures for the reference data files. The field names are
// the SQLite column names, so the loader can map records to rows directly.

// CategoryRecord is one line of categories.jsonl.
type CategoryRecord struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name,omitempty"`
}

// AttributeRecord is one line of attributes.jsonl. DataType holds the wire
// name of the data type (date, dictionary_entry, double, integer, boolean,
// string).
type AttributeRecord struct {
	AttributeID  string `json:"attribute_id"`
	CategoryID   string `json:"category_id"`
	Name         string `json:"name,omitempty"`
	DataType     string `json:"data_type"`
	DictionaryID string `json:"dictionary_id,omitempty"`
}

// RelationRecord is one line of relation_configurations.jsonl. An empty
// direction reads as directed.
type RelationRecord struct {
	RelationID string `json:"relation_id"`
	Name       string `json:"name,omitempty"`
	Direction  string `json:"direction,omitempty"`
}

// ReferenceData is the full content of a catalog data directory.
type ReferenceData struct {
	Categories             []CategoryRecord
	Attributes             []AttributeRecord
	RelationConfigurations []RelationRecord
}
