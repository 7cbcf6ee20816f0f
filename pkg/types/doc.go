// Package types defines the EAV object aggregate, the closed set of value
// kinds, the read-only reference model (categories, attributes, relation
// configurations), the Catalog interface, and the standard error types.
//
// An Object is the unit of consistency: every value attached to it must
// belong to the object's category and match the attribute's declared data
// type. Reference data is supplied by a Catalog and never mutated here.
package types
