package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testModel is a small reference model shared by the package tests.
type testModel struct {
	person       *Category
	organisation *Category

	age      *Attribute
	nickname *Attribute
	born     *Attribute
	height   *Attribute
	active   *Attribute
	role     *Attribute
	title    *Attribute

	knows   *RelationConfiguration
	partner *RelationConfiguration
}

func newTestModel(t *testing.T) testModel {
	t.Helper()

	var m testModel
	var err error

	m.person, err = NewCategory("person", "Person")
	require.NoError(t, err)
	m.organisation, err = NewCategory("organisation", "Organisation")
	require.NoError(t, err)

	attr := func(id AttributeIdentifier, c *Category, dt DataType, opts ...AttributeOption) *Attribute {
		a, err := NewAttribute(id, c, dt, opts...)
		require.NoError(t, err)
		return a
	}
	m.age = attr("age", m.person, DataTypeInteger)
	m.nickname = attr("nickname", m.person, DataTypeString)
	m.born = attr("born", m.person, DataTypeDate)
	m.height = attr("height", m.person, DataTypeDouble)
	m.active = attr("active", m.person, DataTypeBoolean)
	m.role = attr("role", m.person, DataTypeDictionaryEntry, WithDictionary("roles"))
	m.title = attr("title", m.organisation, DataTypeString)

	m.knows, err = NewRelationConfiguration("knows", "Knows", Directed)
	require.NoError(t, err)
	m.partner, err = NewRelationConfiguration("partner_of", "Partner of", Bidirectional)
	require.NoError(t, err)

	return m
}

func (m testModel) newPerson(t *testing.T, name string) *Object {
	t.Helper()
	o, err := NewObject(m.person, name)
	require.NoError(t, err)
	return o
}
