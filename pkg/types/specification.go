package types

// ObjectMatchesAttribute reports whether the attribute belongs to the
// object's category. Nil arguments never match.
func ObjectMatchesAttribute(object *Object, attribute *Attribute) bool {
	if object == nil || attribute == nil || attribute.category == nil {
		return false
	}
	return object.category.identifier == attribute.category.identifier
}

// ValueMatchesAttribute reports whether the value's kind equals the
// attribute's declared data type. Nil arguments never match.
func ValueMatchesAttribute(value Value, attribute *Attribute) bool {
	if value == nil || attribute == nil {
		return false
	}
	return attribute.dataType == value.Kind()
}
