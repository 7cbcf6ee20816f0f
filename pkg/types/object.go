package types

import (
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Object is the aggregate root of the EAV model: an entity of one category
// carrying typed attribute values and outgoing relations. The object owns its
// values and relations; category and name never change after construction.
//
// All methods are safe for concurrent use. Each object is its own unit of
// mutual exclusion, so the check-then-act sequences of UpdateValue and
// UpdateRelation are atomic.
type Object struct {
	mu sync.RWMutex

	id       string
	category *Category
	name     string

	values    []*ObjectValue
	relations []*Relation
}

// NewObject creates an empty object with a fresh UUID v7.
// Returns ErrInvalidArgument if category is nil or name is empty.
func NewObject(category *Category, name string) (*Object, error) {
	if category == nil {
		return nil, invalidArgument("category")
	}
	if name == "" {
		return nil, invalidArgument("name")
	}
	return &Object{
		id:       generateID(),
		category: category,
		name:     name,
	}, nil
}

// generateID generates a new UUID v7 for object IDs.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// ID returns the object ID.
func (o *Object) ID() string { return o.id }

// Category returns the category given at construction.
func (o *Object) Category() *Category { return o.category }

// Name returns the name given at construction.
func (o *Object) Name() string { return o.name }

// Values returns a snapshot of all attached values in attachment order.
func (o *Object) Values() []*ObjectValue {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]*ObjectValue, len(o.values))
	copy(out, o.values)
	return out
}

// ValuesByAttribute returns the values bound to the attribute identifier.
// Returns an empty slice (not nil) when there are none.
func (o *Object) ValuesByAttribute(id AttributeIdentifier) []*ObjectValue {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.valuesByAttributeLocked(id)
}

// ValueByAttribute returns the single value bound to the attribute
// identifier, or nil if there is none. Returns ErrIllegalState when more than
// one value is bound, which happens only if AddValue was called repeatedly
// for the same attribute.
func (o *Object) ValueByAttribute(id AttributeIdentifier) (*ObjectValue, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.valueByAttributeLocked(id)
}

// HasValues reports whether any value is bound to the attribute identifier.
func (o *Object) HasValues(id AttributeIdentifier) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	for _, v := range o.values {
		if v.attribute.identifier == id {
			return true
		}
	}
	return false
}

// AddValue binds value to attribute. The attribute must belong to the
// object's category and the value's kind must equal the attribute's data
// type. AddValue does not replace existing values for the attribute; use
// UpdateValue for single-value semantics.
//
// Returns ErrInvalidArgument if attribute or value is nil and
// ErrConstraintViolation (as *ConstraintViolationError) on a category or type
// mismatch. The object is unchanged on error.
func (o *Object) AddValue(attribute *Attribute, value Value) (*ObjectValue, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.addValueLocked(attribute, value)
}

// UpdateValue replaces the value bound to attribute. A nil value removes the
// binding and returns nil. All checks run before the prior binding is
// removed, so a rejected value leaves the object unchanged.
//
// Returns ErrInvalidArgument if attribute is nil, ErrIllegalState if several
// values are already bound to the attribute, and ErrConstraintViolation if the
// new value does not match.
func (o *Object) UpdateValue(attribute *Attribute, value Value) (*ObjectValue, error) {
	if attribute == nil {
		return nil, invalidArgument("attribute")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	existing, err := o.valueByAttributeLocked(attribute.identifier)
	if err != nil {
		return nil, err
	}
	if value != nil {
		if err := o.checkValue(attribute, value); err != nil {
			return nil, err
		}
	}

	if existing != nil {
		o.values = removeFirst(o.values, existing)
	}
	if value == nil {
		return nil, nil
	}
	return o.addValueLocked(attribute, value)
}

// Relations returns a snapshot of all outgoing relations in insertion order.
func (o *Object) Relations() []*Relation {
	o.mu.RLock()
	defer o.mu.RUnlock()

	out := make([]*Relation, len(o.relations))
	copy(out, o.relations)
	return out
}

// RelationsByIdentifier returns the relations of the given configuration.
// Returns an empty slice (not nil) when there are none.
func (o *Object) RelationsByIdentifier(id RelationIdentifier) []*Relation {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.relationsByIdentifierLocked(id)
}

// RelationByIdentifier returns the single relation of the given
// configuration, or nil if there is none. Returns ErrIllegalState when more
// than one relation exists for the configuration.
func (o *Object) RelationByIdentifier(id RelationIdentifier) (*Relation, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return o.relationByIdentifierLocked(id)
}

// HasRelations reports whether any relation of the configuration exists.
func (o *Object) HasRelations(id RelationIdentifier) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	for _, r := range o.relations {
		if r.configuration.identifier == id {
			return true
		}
	}
	return false
}

// AddRelation adds a relation of the given configuration to target. Several
// relations of the same configuration accumulate.
// Returns ErrInvalidArgument if configuration or target is nil.
func (o *Object) AddRelation(configuration *RelationConfiguration, target *Object) (*Relation, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.addRelationLocked(configuration, target)
}

// UpdateRelation replaces the relation of the given configuration. A nil
// target removes the relation and returns nil.
// Returns ErrInvalidArgument if configuration is nil and ErrIllegalState if
// several relations of the configuration already exist.
func (o *Object) UpdateRelation(configuration *RelationConfiguration, target *Object) (*Relation, error) {
	if configuration == nil {
		return nil, invalidArgument("relation configuration")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	existing, err := o.relationByIdentifierLocked(configuration.identifier)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		o.relations = removeFirst(o.relations, existing)
	}
	if target == nil {
		return nil, nil
	}
	return o.addRelationLocked(configuration, target)
}

func (o *Object) String() string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return fmt.Sprintf("Object[id=%s,name=%s,category=%s,values=%v,relations=%v]",
		o.id, o.name, o.category, o.values, o.relations)
}

// checkValue runs the category and data type gates.
func (o *Object) checkValue(attribute *Attribute, value Value) error {
	if attribute == nil {
		return invalidArgument("attribute")
	}
	if value == nil {
		return invalidArgument("value")
	}
	if !ObjectMatchesAttribute(o, attribute) {
		return errors.WithStack(&ConstraintViolationError{
			Reason:            ReasonCategoryMismatch,
			Attribute:         attribute.identifier,
			ObjectCategory:    o.category.identifier,
			AttributeCategory: attribute.category.identifier,
		})
	}
	if !ValueMatchesAttribute(value, attribute) {
		return errors.WithStack(&ConstraintViolationError{
			Reason:            ReasonTypeMismatch,
			Attribute:         attribute.identifier,
			ObjectCategory:    o.category.identifier,
			AttributeCategory: attribute.category.identifier,
			Expected:          attribute.dataType,
			Actual:            value.Kind(),
			Value:             value.String(),
		})
	}
	return nil
}

// addValueLocked validates and appends a new binding. The caller must hold
// o.mu for writing.
func (o *Object) addValueLocked(attribute *Attribute, value Value) (*ObjectValue, error) {
	if err := o.checkValue(attribute, value); err != nil {
		return nil, err
	}
	ov, err := MatchValue[*ObjectValue](value, objectValueFactory{attribute: attribute, objectID: o.id})
	if err != nil {
		return nil, err
	}
	o.values = append(o.values, ov)
	return ov, nil
}

func (o *Object) addRelationLocked(configuration *RelationConfiguration, target *Object) (*Relation, error) {
	if configuration == nil {
		return nil, invalidArgument("relation configuration")
	}
	if target == nil {
		return nil, invalidArgument("relation target")
	}
	r := &Relation{
		configuration: configuration,
		sourceID:      o.id,
		targetID:      target.id,
	}
	o.relations = append(o.relations, r)
	return r, nil
}

func (o *Object) valuesByAttributeLocked(id AttributeIdentifier) []*ObjectValue {
	out := []*ObjectValue{}
	for _, v := range o.values {
		if v.attribute.identifier == id {
			out = append(out, v)
		}
	}
	return out
}

func (o *Object) valueByAttributeLocked(id AttributeIdentifier) (*ObjectValue, error) {
	matches := o.valuesByAttributeLocked(id)
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, errors.Wrapf(ErrIllegalState, "%d values bound to attribute %s, expected at most one", len(matches), id)
	}
}

func (o *Object) relationsByIdentifierLocked(id RelationIdentifier) []*Relation {
	out := []*Relation{}
	for _, r := range o.relations {
		if r.configuration.identifier == id {
			out = append(out, r)
		}
	}
	return out
}

func (o *Object) relationByIdentifierLocked(id RelationIdentifier) (*Relation, error) {
	matches := o.relationsByIdentifierLocked(id)
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, errors.Wrapf(ErrIllegalState, "%d relations of configuration %s, expected at most one", len(matches), id)
	}
}

// removeFirst returns a new slice without the first occurrence of target.
// Snapshots handed out earlier keep their contents.
func removeFirst[T comparable](items []T, target T) []T {
	out := make([]T, 0, len(items))
	removed := false
	for _, item := range items {
		if !removed && item == target {
			removed = true
			continue
		}
		out = append(out, item)
	}
	return out
}
