package types

import "github.com/cockroachdb/errors"

// Direction describes how a relation configuration reads.
type Direction uint8

const (
	// Directed relations read from source to target only.
	Directed Direction = iota
	// Bidirectional relations read the same in both directions. The edge is
	// still owned by its source object.
	Bidirectional
)

func (d Direction) String() string {
	if d == Bidirectional {
		return "bidirectional"
	}
	return "directed"
}

// ParseDirection maps "directed", "bidirectional", or "" (directed) to a
// Direction. Returns ErrInvalidArgument otherwise.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "", "directed":
		return Directed, nil
	case "bidirectional":
		return Bidirectional, nil
	default:
		return Directed, errors.Wrapf(ErrInvalidArgument, "unknown relation direction %q", s)
	}
}

// RelationConfiguration is the edge kind of a relation. It is immutable once
// constructed.
type RelationConfiguration struct {
	identifier RelationIdentifier
	name       string
	direction  Direction
}

// NewRelationConfiguration creates a relation configuration. An empty name
// defaults to the identifier. Returns ErrInvalidArgument for an empty
// identifier.
func NewRelationConfiguration(id RelationIdentifier, name string, direction Direction) (*RelationConfiguration, error) {
	if id == "" {
		return nil, invalidArgument("relation identifier")
	}
	if name == "" {
		name = string(id)
	}
	return &RelationConfiguration{identifier: id, name: name, direction: direction}, nil
}

// Identifier returns the relation identifier.
func (rc *RelationConfiguration) Identifier() RelationIdentifier { return rc.identifier }

// Name returns the display name.
func (rc *RelationConfiguration) Name() string { return rc.name }

// Direction returns the directionality of the relation.
func (rc *RelationConfiguration) Direction() Direction { return rc.direction }

func (rc *RelationConfiguration) String() string { return string(rc.identifier) }

// Relation is a directed edge owned by its source object. The target is
// referenced by ID only; removing the relation never affects the target.
type Relation struct {
	configuration *RelationConfiguration
	sourceID      string
	targetID      string
}

// Configuration returns the relation configuration.
func (r *Relation) Configuration() *RelationConfiguration { return r.configuration }

// SourceID returns the ID of the owning object.
func (r *Relation) SourceID() string { return r.sourceID }

// TargetID returns the ID of the target object.
func (r *Relation) TargetID() string { return r.targetID }

func (r *Relation) String() string {
	arrow := " -> "
	if r.configuration.direction == Bidirectional {
		arrow = " <-> "
	}
	return string(r.configuration.identifier) + ": " + r.sourceID + arrow + r.targetID
}
