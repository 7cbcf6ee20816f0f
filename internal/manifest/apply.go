package manifest

import (
	"github.com/cockroachdb/errors"

	"github.com/mesh-intelligence/eav/pkg/types"
)

// Apply assembles the manifest's objects against catalog in file order and
// then runs its updates. Relation targets must name an object declared
// earlier in the objects section; update targets may name any declared
// object. The first failure aborts the run and no objects are returned.
func Apply(catalog types.Catalog, m *Manifest) ([]*types.Object, error) {
	if catalog == nil {
		return nil, errors.Wrap(types.ErrInvalidArgument, "catalog is required")
	}
	if m == nil {
		return nil, errors.Wrap(types.ErrInvalidArgument, "manifest is required")
	}

	a := &applier{catalog: catalog, byName: make(map[string]*types.Object)}
	objects := make([]*types.Object, 0, len(m.Objects))
	for i, spec := range m.Objects {
		o, err := a.build(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "objects[%d] %q", i, spec.Name)
		}
		a.byName[spec.Name] = o
		objects = append(objects, o)
	}
	for i, spec := range m.Updates {
		if err := a.update(spec); err != nil {
			return nil, errors.Wrapf(err, "updates[%d] %q", i, spec.Object)
		}
	}
	return objects, nil
}

// applier resolves references for one Apply run.
type applier struct {
	catalog types.Catalog
	byName  map[string]*types.Object
}

func (a *applier) build(spec ObjectSpec) (*types.Object, error) {
	if spec.Name == "" {
		return nil, errors.Wrap(types.ErrInvalidArgument, "object name is required")
	}
	if _, dup := a.byName[spec.Name]; dup {
		return nil, errors.Wrapf(types.ErrInvalidArgument, "object %q declared twice", spec.Name)
	}
	categoryID, err := types.NewCategoryIdentifier(spec.Category)
	if err != nil {
		return nil, err
	}
	category, err := a.catalog.Category(categoryID)
	if err != nil {
		return nil, err
	}

	b := types.NewBuilder().WithCategory(category).WithName(spec.Name)
	for _, vs := range spec.Values {
		if vs.Clear {
			return nil, errors.Wrapf(types.ErrInvalidArgument, "attribute %s: clear is only allowed in updates", vs.Attribute)
		}
		attr, value, err := a.resolveValue(vs)
		if err != nil {
			return nil, err
		}
		b.AddValue(attr, value)
	}
	for _, rs := range spec.Relations {
		if rs.Clear {
			return nil, errors.Wrapf(types.ErrInvalidArgument, "relation %s: clear is only allowed in updates", rs.Configuration)
		}
		cfg, target, err := a.resolveRelation(rs)
		if err != nil {
			return nil, err
		}
		b.AddRelation(cfg, target)
	}
	return b.Build()
}

func (a *applier) update(spec UpdateSpec) error {
	o, ok := a.byName[spec.Object]
	if !ok {
		return errors.Wrapf(types.ErrInvalidArgument, "object %q is not declared", spec.Object)
	}

	for _, vs := range spec.Values {
		if vs.Clear {
			if err := vs.checkClear(); err != nil {
				return err
			}
			attr, err := a.attribute(vs.Attribute)
			if err != nil {
				return err
			}
			if _, err := o.UpdateValue(attr, nil); err != nil {
				return err
			}
			continue
		}
		attr, value, err := a.resolveValue(vs)
		if err != nil {
			return err
		}
		if _, err := o.UpdateValue(attr, value); err != nil {
			return err
		}
	}

	for _, rs := range spec.Relations {
		if rs.Clear {
			if err := rs.checkClear(); err != nil {
				return err
			}
			cfg, err := a.relationConfiguration(rs.Configuration)
			if err != nil {
				return err
			}
			if _, err := o.UpdateRelation(cfg, nil); err != nil {
				return err
			}
			continue
		}
		cfg, target, err := a.resolveRelation(rs)
		if err != nil {
			return err
		}
		if _, err := o.UpdateRelation(cfg, target); err != nil {
			return err
		}
	}
	return nil
}

func (a *applier) resolveValue(vs ValueSpec) (*types.Attribute, types.Value, error) {
	attr, err := a.attribute(vs.Attribute)
	if err != nil {
		return nil, nil, err
	}
	value, err := vs.Value()
	if err != nil {
		return nil, nil, err
	}
	return attr, value, nil
}

func (a *applier) resolveRelation(rs RelationSpec) (*types.RelationConfiguration, *types.Object, error) {
	cfg, err := a.relationConfiguration(rs.Configuration)
	if err != nil {
		return nil, nil, err
	}
	target, ok := a.byName[rs.Target]
	if !ok {
		return nil, nil, errors.Wrapf(types.ErrInvalidArgument,
			"relation %s: target %q is not declared earlier", rs.Configuration, rs.Target)
	}
	return cfg, target, nil
}

func (a *applier) attribute(name string) (*types.Attribute, error) {
	id, err := types.NewAttributeIdentifier(name)
	if err != nil {
		return nil, err
	}
	return a.catalog.Attribute(id)
}

func (a *applier) relationConfiguration(name string) (*types.RelationConfiguration, error) {
	id, err := types.NewRelationIdentifier(name)
	if err != nil {
		return nil, err
	}
	return a.catalog.RelationConfiguration(id)
}
