package types

import "github.com/cockroachdb/errors"

// pendingBinding is one staged value or relation of a Builder.
type pendingBinding struct {
	relation bool

	attribute *Attribute
	value     Value

	configuration *RelationConfiguration
	target        *Object
}

func (p pendingBinding) apply(o *Object) error {
	if p.relation {
		_, err := o.AddRelation(p.configuration, p.target)
		return err
	}
	_, err := o.AddValue(p.attribute, p.value)
	return err
}

// Builder stages values and relations before an object exists, then creates
// the object and replays the staged bindings in insertion order. Staged
// values for the same attribute accumulate as with Object.AddValue.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	category *Category
	name     string
	pending  []pendingBinding
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithCategory sets the category of the object to build.
func (b *Builder) WithCategory(category *Category) *Builder {
	b.category = category
	return b
}

// WithName sets the name of the object to build.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// AddValue stages a value binding.
func (b *Builder) AddValue(attribute *Attribute, value Value) *Builder {
	b.pending = append(b.pending, pendingBinding{attribute: attribute, value: value})
	return b
}

// AddRelation stages a relation to target.
func (b *Builder) AddRelation(configuration *RelationConfiguration, target *Object) *Builder {
	b.pending = append(b.pending, pendingBinding{relation: true, configuration: configuration, target: target})
	return b
}

// Len returns the number of staged bindings.
func (b *Builder) Len() int {
	return len(b.pending)
}

// Build creates the object and applies every staged binding in order. The
// first failing binding aborts the build; its error is returned wrapped with
// the binding position and no object is returned.
func (b *Builder) Build() (*Object, error) {
	o, err := NewObject(b.category, b.name)
	if err != nil {
		return nil, err
	}
	for i, p := range b.pending {
		if err := p.apply(o); err != nil {
			return nil, errors.Wrapf(err, "binding %d", i)
		}
	}
	return o, nil
}
