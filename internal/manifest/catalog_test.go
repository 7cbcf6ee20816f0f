package manifest

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/eav/pkg/types"
)

// memCatalog is an in-memory types.Catalog for tests.
type memCatalog struct {
	categories map[types.CategoryIdentifier]*types.Category
	attributes map[types.AttributeIdentifier]*types.Attribute
	relations  map[types.RelationIdentifier]*types.RelationConfiguration
}

var _ types.Catalog = (*memCatalog)(nil)

func newMemCatalog(t *testing.T) *memCatalog {
	t.Helper()
	c := &memCatalog{
		categories: map[types.CategoryIdentifier]*types.Category{},
		attributes: map[types.AttributeIdentifier]*types.Attribute{},
		relations:  map[types.RelationIdentifier]*types.RelationConfiguration{},
	}

	for _, id := range []types.CategoryIdentifier{"person", "organisation"} {
		cat, err := types.NewCategory(id, "")
		require.NoError(t, err)
		c.categories[id] = cat
	}
	attrs := []struct {
		id       types.AttributeIdentifier
		category types.CategoryIdentifier
		dataType types.DataType
	}{
		{"age", "person", types.DataTypeInteger},
		{"nickname", "person", types.DataTypeString},
		{"born", "person", types.DataTypeDate},
		{"height", "person", types.DataTypeDouble},
		{"active", "person", types.DataTypeBoolean},
		{"role", "person", types.DataTypeDictionaryEntry},
		{"legal_name", "organisation", types.DataTypeString},
	}
	for _, a := range attrs {
		attr, err := types.NewAttribute(a.id, c.categories[a.category], a.dataType)
		require.NoError(t, err)
		c.attributes[a.id] = attr
	}
	for _, r := range []struct {
		id  types.RelationIdentifier
		dir types.Direction
	}{{"knows", types.Directed}, {"employs", types.Directed}, {"partner_of", types.Bidirectional}} {
		rc, err := types.NewRelationConfiguration(r.id, "", r.dir)
		require.NoError(t, err)
		c.relations[r.id] = rc
	}
	return c
}

func (c *memCatalog) Attach(types.Config) error { return nil }
func (c *memCatalog) Detach() error             { return nil }

func (c *memCatalog) Category(id types.CategoryIdentifier) (*types.Category, error) {
	if cat, ok := c.categories[id]; ok {
		return cat, nil
	}
	return nil, errors.Wrapf(types.ErrNotFound, "category %s", id)
}

func (c *memCatalog) Categories() ([]*types.Category, error) {
	out := []*types.Category{}
	for _, cat := range c.categories {
		out = append(out, cat)
	}
	return out, nil
}

func (c *memCatalog) Attribute(id types.AttributeIdentifier) (*types.Attribute, error) {
	if a, ok := c.attributes[id]; ok {
		return a, nil
	}
	return nil, errors.Wrapf(types.ErrNotFound, "attribute %s", id)
}

func (c *memCatalog) AttributesByCategory(id types.CategoryIdentifier) ([]*types.Attribute, error) {
	out := []*types.Attribute{}
	for _, a := range c.attributes {
		if a.Category().Identifier() == id {
			out = append(out, a)
		}
	}
	return out, nil
}

func (c *memCatalog) RelationConfiguration(id types.RelationIdentifier) (*types.RelationConfiguration, error) {
	if rc, ok := c.relations[id]; ok {
		return rc, nil
	}
	return nil, errors.Wrapf(types.ErrNotFound, "relation configuration %s", id)
}

func (c *memCatalog) RelationConfigurations() ([]*types.RelationConfiguration, error) {
	out := []*types.RelationConfiguration{}
	for _, rc := range c.relations {
		out = append(out, rc)
	}
	return out, nil
}
