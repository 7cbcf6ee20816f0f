package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectMatchesAttribute(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	assert.True(t, ObjectMatchesAttribute(alice, m.age))
	assert.False(t, ObjectMatchesAttribute(alice, m.title))
	assert.False(t, ObjectMatchesAttribute(nil, m.age))
	assert.False(t, ObjectMatchesAttribute(alice, nil))
}

func TestValueMatchesAttribute(t *testing.T) {
	m := newTestModel(t)

	assert.True(t, ValueMatchesAttribute(NewIntegerValue(1), m.age))
	assert.False(t, ValueMatchesAttribute(NewDoubleValue(1), m.age))
	assert.False(t, ValueMatchesAttribute(nil, m.age))
	assert.False(t, ValueMatchesAttribute(NewIntegerValue(1), nil))
}
