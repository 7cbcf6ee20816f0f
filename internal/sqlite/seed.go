// This file defines the example reference data written by "eav init
// --with-examples".
package sqlite

// ExampleReferenceData returns a small people-and-organisations model that
// exercises every data type and both relation directions.
func ExampleReferenceData() ReferenceData {
	return ReferenceData{
		Categories: []CategoryRecord{
			{CategoryID: "organisation", Name: "Organisation"},
			{CategoryID: "person", Name: "Person"},
		},
		Attributes: []AttributeRecord{
			{AttributeID: "age", CategoryID: "person", Name: "Age", DataType: "integer"},
			{AttributeID: "nickname", CategoryID: "person", Name: "Nickname", DataType: "string"},
			{AttributeID: "born", CategoryID: "person", Name: "Date of birth", DataType: "date"},
			{AttributeID: "height", CategoryID: "person", Name: "Height (m)", DataType: "double"},
			{AttributeID: "active", CategoryID: "person", Name: "Active", DataType: "boolean"},
			{AttributeID: "role", CategoryID: "person", Name: "Role", DataType: "dictionary_entry", DictionaryID: "roles"},
			{AttributeID: "legal_name", CategoryID: "organisation", Name: "Legal name", DataType: "string"},
			{AttributeID: "founded", CategoryID: "organisation", Name: "Founded", DataType: "date"},
		},
		RelationConfigurations: []RelationRecord{
			{RelationID: "employs", Name: "Employs", Direction: "directed"},
			{RelationID: "knows", Name: "Knows", Direction: "directed"},
			{RelationID: "partner_of", Name: "Partner of", Direction: "bidirectional"},
		},
	}
}
