package types

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewObject(t *testing.T) {
	m := newTestModel(t)

	tests := []struct {
		name     string
		category *Category
		objName  string
		wantErr  error
	}{
		{name: "valid object", category: m.person, objName: "alice"},
		{name: "nil category rejected", category: nil, objName: "alice", wantErr: ErrInvalidArgument},
		{name: "empty name rejected", category: m.person, objName: "", wantErr: ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := NewObject(tt.category, tt.objName)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, o)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, o.ID())
			assert.Same(t, tt.category, o.Category())
			assert.Equal(t, tt.objName, o.Name())
			assert.Empty(t, o.Values())
			assert.Empty(t, o.Relations())
		})
	}
}

func TestNewObjectAssignsDistinctIDs(t *testing.T) {
	m := newTestModel(t)
	a := m.newPerson(t, "alice")
	b := m.newPerson(t, "alice")
	assert.NotEqual(t, a.ID(), b.ID())
}

// The example scenario: Person with an integer age.
func TestObjectPersonAgeScenario(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	ov, err := alice.AddValue(m.age, NewIntegerValue(30))
	require.NoError(t, err)
	assert.Equal(t, alice.ID(), ov.ObjectID())

	got, err := alice.ValueByAttribute(m.age.Identifier())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Same(t, ov, got)
	assert.True(t, got.Value().Equal(NewIntegerValue(30)))

	_, err = alice.AddValue(m.age, NewStringValue("thirty"))
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = alice.UpdateValue(m.age, NewIntegerValue(31))
	require.NoError(t, err)

	values := alice.ValuesByAttribute(m.age.Identifier())
	require.Len(t, values, 1)
	assert.True(t, values[0].Value().Equal(NewIntegerValue(31)))
}

func TestObjectAddValueCategoryGate(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	// title belongs to organisation; every value kind must be rejected.
	values := []Value{
		NewStringValue("CEO"),
		NewIntegerValue(1),
		NewDoubleValue(1.5),
		NewBooleanValue(true),
		NewDateValue(time.Now()),
		NewDictionaryEntryValue(DictionaryEntry{Dictionary: "roles", Key: "admin"}),
	}
	for _, v := range values {
		t.Run(v.Kind().String(), func(t *testing.T) {
			_, err := alice.AddValue(m.title, v)
			require.ErrorIs(t, err, ErrConstraintViolation)

			var cv *ConstraintViolationError
			require.True(t, errors.As(err, &cv))
			assert.Equal(t, ReasonCategoryMismatch, cv.Reason)
			assert.Equal(t, CategoryIdentifier("person"), cv.ObjectCategory)
			assert.Equal(t, CategoryIdentifier("organisation"), cv.AttributeCategory)
			assert.Equal(t, AttributeIdentifier("title"), cv.Attribute)
			assert.Contains(t, err.Error(), "category mismatch")
		})
	}
	assert.Empty(t, alice.Values(), "rejected values must not be attached")
}

func TestObjectAddValueTypeGate(t *testing.T) {
	m := newTestModel(t)

	attrs := []*Attribute{m.age, m.nickname, m.born, m.height, m.active, m.role}
	values := []Value{
		NewIntegerValue(1),
		NewStringValue("x"),
		NewDateValue(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)),
		NewDoubleValue(1.5),
		NewBooleanValue(false),
		NewDictionaryEntryValue(DictionaryEntry{Dictionary: "roles", Key: "admin"}),
	}

	for _, a := range attrs {
		for _, v := range values {
			t.Run(fmt.Sprintf("%s/%s", a.Identifier(), v.Kind()), func(t *testing.T) {
				o := m.newPerson(t, "bob")
				_, err := o.AddValue(a, v)
				if a.DataType() == v.Kind() {
					assert.NoError(t, err)
					return
				}
				require.ErrorIs(t, err, ErrConstraintViolation)
				var cv *ConstraintViolationError
				require.True(t, errors.As(err, &cv))
				assert.Equal(t, ReasonTypeMismatch, cv.Reason)
				assert.Equal(t, a.DataType(), cv.Expected)
				assert.Equal(t, v.Kind(), cv.Actual)
				assert.Empty(t, o.Values())
			})
		}
	}
}

func TestObjectAddValueMissingArguments(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	_, err := alice.AddValue(nil, NewIntegerValue(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = alice.AddValue(m.age, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = alice.UpdateValue(nil, NewIntegerValue(1))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Empty(t, alice.Values())
}

func TestObjectUpdateValueReplaces(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	first, err := alice.UpdateValue(m.nickname, NewStringValue("al"))
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := alice.UpdateValue(m.nickname, NewStringValue("ali"))
	require.NoError(t, err)
	require.NotNil(t, second)

	values := alice.ValuesByAttribute(m.nickname.Identifier())
	require.Len(t, values, 1)
	assert.Same(t, second, values[0])
	assert.Equal(t, "ali", values[0].Value().(StringValue).Str())
}

func TestObjectUpdateValueNilDeletes(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	_, err := alice.UpdateValue(m.nickname, NewStringValue("al"))
	require.NoError(t, err)

	got, err := alice.UpdateValue(m.nickname, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, alice.ValuesByAttribute(m.nickname.Identifier()))
	assert.False(t, alice.HasValues(m.nickname.Identifier()))

	// Deleting an absent binding is a no-op.
	got, err = alice.UpdateValue(m.nickname, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestObjectUpdateValueRejectedLeavesPriorBinding(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	prior, err := alice.UpdateValue(m.age, NewIntegerValue(30))
	require.NoError(t, err)

	_, err = alice.UpdateValue(m.age, NewStringValue("thirty"))
	require.ErrorIs(t, err, ErrConstraintViolation)

	got, err := alice.ValueByAttribute(m.age.Identifier())
	require.NoError(t, err)
	assert.Same(t, prior, got, "failed update must not remove the prior value")
}

func TestObjectUpdateValueLeavesOtherAttributes(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	_, err := alice.AddValue(m.age, NewIntegerValue(30))
	require.NoError(t, err)
	_, err = alice.AddValue(m.nickname, NewStringValue("al"))
	require.NoError(t, err)

	_, err = alice.UpdateValue(m.age, NewIntegerValue(31))
	require.NoError(t, err)

	assert.Len(t, alice.Values(), 2)
	assert.True(t, alice.HasValues(m.nickname.Identifier()))
}

// AddValue twice for one attribute is an acknowledged ambiguity: the single
// lookup must fail instead of picking one binding.
func TestObjectAddValueTwiceMakesSingleLookupFail(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	_, err := alice.AddValue(m.age, NewIntegerValue(30))
	require.NoError(t, err)
	_, err = alice.AddValue(m.age, NewIntegerValue(31))
	require.NoError(t, err)

	assert.Len(t, alice.ValuesByAttribute(m.age.Identifier()), 2)
	assert.True(t, alice.HasValues(m.age.Identifier()))

	got, err := alice.ValueByAttribute(m.age.Identifier())
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.Nil(t, got)

	// UpdateValue cannot pick a binding to replace either.
	_, err = alice.UpdateValue(m.age, NewIntegerValue(32))
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.Len(t, alice.ValuesByAttribute(m.age.Identifier()), 2)
}

func TestObjectValueLookupsOnEmptyObject(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	values := alice.ValuesByAttribute("missing")
	assert.NotNil(t, values)
	assert.Empty(t, values)

	got, err := alice.ValueByAttribute("missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, alice.HasValues("missing"))
}

func TestObjectValuesReturnsSnapshot(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	_, err := alice.AddValue(m.age, NewIntegerValue(30))
	require.NoError(t, err)
	snapshot := alice.Values()

	_, err = alice.UpdateValue(m.age, nil)
	require.NoError(t, err)

	assert.Len(t, snapshot, 1, "snapshot must not observe later mutations")
	assert.Empty(t, alice.Values())
}

func TestObjectKindPreservation(t *testing.T) {
	m := newTestModel(t)
	born := time.Date(1994, 3, 1, 0, 0, 0, 0, time.UTC)
	entry := DictionaryEntry{Dictionary: "roles", Key: "admin", Label: "Administrator"}

	tests := []struct {
		attr    *Attribute
		value   Value
		payload any
	}{
		{m.born, NewDateValue(born), born},
		{m.role, NewDictionaryEntryValue(entry), entry},
		{m.height, NewDoubleValue(1.82), 1.82},
		{m.age, NewIntegerValue(30), int64(30)},
		{m.active, NewBooleanValue(true), true},
		{m.nickname, NewStringValue("al"), "al"},
	}

	for _, tt := range tests {
		t.Run(tt.value.Kind().String(), func(t *testing.T) {
			o := m.newPerson(t, "alice")
			_, err := o.AddValue(tt.attr, tt.value)
			require.NoError(t, err)

			got, err := o.ValueByAttribute(tt.attr.Identifier())
			require.NoError(t, err)
			require.NotNil(t, got)

			assert.Equal(t, tt.value.Kind(), got.Kind())
			assert.IsType(t, tt.value, got.Value())
			assert.True(t, tt.value.Equal(got.Value()))
			assert.Equal(t, tt.payload, Payload(got.Value()))
			assert.Same(t, tt.attr, got.Attribute())
		})
	}
}

func TestObjectImmutableIdentity(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")
	bob := m.newPerson(t, "bob")
	id := alice.ID()

	_, err := alice.AddValue(m.age, NewIntegerValue(30))
	require.NoError(t, err)
	_, err = alice.UpdateValue(m.age, nil)
	require.NoError(t, err)
	_, err = alice.AddRelation(m.knows, bob)
	require.NoError(t, err)
	_, err = alice.UpdateRelation(m.knows, nil)
	require.NoError(t, err)

	assert.Same(t, m.person, alice.Category())
	assert.Equal(t, "alice", alice.Name())
	assert.Equal(t, id, alice.ID())
}

func TestObjectAddRelationAccumulates(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")
	bob := m.newPerson(t, "bob")
	carol := m.newPerson(t, "carol")

	r1, err := alice.AddRelation(m.knows, bob)
	require.NoError(t, err)
	r2, err := alice.AddRelation(m.knows, carol)
	require.NoError(t, err)

	assert.Equal(t, alice.ID(), r1.SourceID())
	assert.Equal(t, bob.ID(), r1.TargetID())
	assert.Same(t, m.knows, r1.Configuration())

	rels := alice.RelationsByIdentifier(m.knows.Identifier())
	require.Len(t, rels, 2)
	assert.Same(t, r1, rels[0])
	assert.Same(t, r2, rels[1])
	assert.True(t, alice.HasRelations(m.knows.Identifier()))

	_, err = alice.RelationByIdentifier(m.knows.Identifier())
	assert.ErrorIs(t, err, ErrIllegalState)

	dave := m.newPerson(t, "dave")
	r, err := alice.UpdateRelation(m.knows, dave)
	assert.ErrorIs(t, err, ErrIllegalState)
	assert.Nil(t, r)
	assert.Equal(t, []*Relation{r1, r2}, alice.RelationsByIdentifier(m.knows.Identifier()))

	// The target owns no back edge.
	assert.Empty(t, bob.Relations())
}

func TestObjectAddRelationMissingArguments(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")
	bob := m.newPerson(t, "bob")

	_, err := alice.AddRelation(nil, bob)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = alice.AddRelation(m.knows, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = alice.UpdateRelation(nil, bob)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Empty(t, alice.Relations())
}

func TestObjectUpdateRelationReplaces(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")
	bob := m.newPerson(t, "bob")
	carol := m.newPerson(t, "carol")

	_, err := alice.UpdateRelation(m.partner, bob)
	require.NoError(t, err)
	r, err := alice.UpdateRelation(m.partner, carol)
	require.NoError(t, err)

	rels := alice.RelationsByIdentifier(m.partner.Identifier())
	require.Len(t, rels, 1)
	assert.Same(t, r, rels[0])
	assert.Equal(t, carol.ID(), rels[0].TargetID())

	got, err := alice.RelationByIdentifier(m.partner.Identifier())
	require.NoError(t, err)
	assert.Same(t, r, got)
}

func TestObjectUpdateRelationNilDeletes(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")
	bob := m.newPerson(t, "bob")

	_, err := alice.UpdateRelation(m.knows, bob)
	require.NoError(t, err)
	_, err = alice.AddRelation(m.partner, bob)
	require.NoError(t, err)

	got, err := alice.UpdateRelation(m.knows, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, alice.HasRelations(m.knows.Identifier()))
	assert.True(t, alice.HasRelations(m.partner.Identifier()))
}

func TestObjectRelationLookupsOnEmptyObject(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	rels := alice.RelationsByIdentifier("missing")
	assert.NotNil(t, rels)
	assert.Empty(t, rels)

	got, err := alice.RelationByIdentifier("missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestObjectConcurrentUpdateValueKeepsSingleBinding(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := alice.UpdateValue(m.age, NewIntegerValue(int64(i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Len(t, alice.ValuesByAttribute(m.age.Identifier()), 1)
}

func TestObjectString(t *testing.T) {
	m := newTestModel(t)
	alice := m.newPerson(t, "alice")
	_, err := alice.AddValue(m.age, NewIntegerValue(30))
	require.NoError(t, err)

	s := alice.String()
	assert.Contains(t, s, "name=alice")
	assert.Contains(t, s, "category=person")
	assert.Contains(t, s, "age=30")
}
