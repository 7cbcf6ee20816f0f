package types

// ObjectValue binds a Value to an attribute of one owning object. It is
// created only by Object.AddValue and lives as long as the binding is
// attached.
type ObjectValue struct {
	attribute *Attribute
	objectID  string
	kind      DataType
	value     Value
}

// Attribute returns the bound attribute.
func (ov *ObjectValue) Attribute() *Attribute { return ov.attribute }

// ObjectID returns the ID of the owning object.
func (ov *ObjectValue) ObjectID() string { return ov.objectID }

// Kind returns the variant the binding was created from.
func (ov *ObjectValue) Kind() DataType { return ov.kind }

// Value returns the bound value.
func (ov *ObjectValue) Value() Value { return ov.value }

func (ov *ObjectValue) String() string {
	return string(ov.attribute.identifier) + "=" + ov.value.String()
}

// objectValueFactory binds each variant to an attribute of an object.
type objectValueFactory struct {
	attribute *Attribute
	objectID  string
}

func (f objectValueFactory) bind(kind DataType, v Value) *ObjectValue {
	return &ObjectValue{attribute: f.attribute, objectID: f.objectID, kind: kind, value: v}
}

func (f objectValueFactory) MatchDate(v DateValue) *ObjectValue {
	return f.bind(DataTypeDate, v)
}

func (f objectValueFactory) MatchDictionaryEntry(v DictionaryEntryValue) *ObjectValue {
	return f.bind(DataTypeDictionaryEntry, v)
}

func (f objectValueFactory) MatchDouble(v DoubleValue) *ObjectValue {
	return f.bind(DataTypeDouble, v)
}

func (f objectValueFactory) MatchInteger(v IntegerValue) *ObjectValue {
	return f.bind(DataTypeInteger, v)
}

func (f objectValueFactory) MatchBoolean(v BooleanValue) *ObjectValue {
	return f.bind(DataTypeBoolean, v)
}

func (f objectValueFactory) MatchString(v StringValue) *ObjectValue {
	return f.bind(DataTypeString, v)
}
