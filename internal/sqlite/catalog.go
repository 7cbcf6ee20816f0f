// This file implements the catalog lookups and row hydration.
package sqlite

import (
	"database/sql"

	"github.com/cockroachdb/errors"

	"github.com/mesh-intelligence/eav/pkg/types"
)

const (
	selectCategory   = `SELECT category_id, name FROM categories WHERE category_id = ?`
	selectCategories = `SELECT category_id, name FROM categories ORDER BY category_id`

	attributeColumns = `SELECT a.attribute_id, a.name, a.data_type, a.dictionary_id, c.category_id, c.name
FROM attributes a JOIN categories c ON c.category_id = a.category_id`
	selectAttribute            = attributeColumns + ` WHERE a.attribute_id = ?`
	selectAttributesByCategory = attributeColumns + ` WHERE a.category_id = ? ORDER BY a.attribute_id`

	selectRelation  = `SELECT relation_id, name, direction FROM relation_configurations WHERE relation_id = ?`
	selectRelations = `SELECT relation_id, name, direction FROM relation_configurations ORDER BY relation_id`
)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Category returns the category with the given identifier.
func (b *Backend) Category(id types.CategoryIdentifier) (*types.Category, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	return b.categoryLocked(id)
}

func (b *Backend) categoryLocked(id types.CategoryIdentifier) (*types.Category, error) {
	c, err := hydrateCategory(b.db.QueryRow(selectCategory, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(types.ErrNotFound, "category %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting category %s", id)
	}
	return c, nil
}

// Categories returns all categories ordered by identifier.
func (b *Backend) Categories() ([]*types.Category, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	rows, err := b.db.Query(selectCategories)
	if err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	return collect(rows, hydrateCategory)
}

// Attribute returns the attribute with the given identifier.
func (b *Backend) Attribute(id types.AttributeIdentifier) (*types.Attribute, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	a, err := hydrateAttribute(b.db.QueryRow(selectAttribute, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(types.ErrNotFound, "attribute %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting attribute %s", id)
	}
	return a, nil
}

// AttributesByCategory returns the attributes of a category ordered by
// identifier. Returns ErrNotFound if the category does not exist.
func (b *Backend) AttributesByCategory(id types.CategoryIdentifier) ([]*types.Attribute, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	if _, err := b.categoryLocked(id); err != nil {
		return nil, err
	}
	rows, err := b.db.Query(selectAttributesByCategory, string(id))
	if err != nil {
		return nil, errors.Wrapf(err, "querying attributes of %s", id)
	}
	return collect(rows, hydrateAttribute)
}

// RelationConfiguration returns the relation configuration with the given
// identifier.
func (b *Backend) RelationConfiguration(id types.RelationIdentifier) (*types.RelationConfiguration, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	rc, err := hydrateRelation(b.db.QueryRow(selectRelation, string(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(types.ErrNotFound, "relation configuration %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting relation configuration %s", id)
	}
	return rc, nil
}

// RelationConfigurations returns all relation configurations ordered by
// identifier.
func (b *Backend) RelationConfigurations() ([]*types.RelationConfiguration, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrCatalogDetached
	}
	rows, err := b.db.Query(selectRelations)
	if err != nil {
		return nil, errors.Wrap(err, "querying relation configurations")
	}
	return collect(rows, hydrateRelation)
}

// collect hydrates every row and closes rows. The result is never nil.
func collect[T any](rows *sql.Rows, hydrate func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := hydrate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating rows")
	}
	return out, nil
}

func hydrateCategory(s scanner) (*types.Category, error) {
	var id string
	var name sql.NullString
	if err := s.Scan(&id, &name); err != nil {
		return nil, err
	}
	return types.NewCategory(types.CategoryIdentifier(id), name.String)
}

func hydrateAttribute(s scanner) (*types.Attribute, error) {
	var (
		id, dataType, categoryID string
		name, dictionary         sql.NullString
		categoryName             sql.NullString
	)
	if err := s.Scan(&id, &name, &dataType, &dictionary, &categoryID, &categoryName); err != nil {
		return nil, err
	}

	category, err := types.NewCategory(types.CategoryIdentifier(categoryID), categoryName.String)
	if err != nil {
		return nil, errors.Wrapf(err, "hydrating attribute %s", id)
	}
	dt, err := types.ParseDataType(dataType)
	if err != nil {
		err = errors.WithDetailf(err, "check the data_type of %s in %s", id, attributesJSONL)
		return nil, errors.Wrapf(err, "hydrating attribute %s", id)
	}
	return types.NewAttribute(types.AttributeIdentifier(id), category, dt,
		types.WithAttributeName(name.String),
		types.WithDictionary(types.DictionaryIdentifier(dictionary.String)))
}

func hydrateRelation(s scanner) (*types.RelationConfiguration, error) {
	var id string
	var name, direction sql.NullString
	if err := s.Scan(&id, &name, &direction); err != nil {
		return nil, err
	}
	dir, err := types.ParseDirection(direction.String)
	if err != nil {
		return nil, errors.Wrapf(err, "hydrating relation configuration %s", id)
	}
	return types.NewRelationConfiguration(types.RelationIdentifier(id), name.String, dir)
}
