package services

import (
	"fmt"

	"github.com/MiNi89iOS/SkySnap-IFC-001/internal/domain/model"
)

// IDGenerator produces fresh global identifiers. Injected so migration
// sessions stay deterministic under test doubles.
type IDGenerator func() string

// UnsupportedEntityError reports a source entity type the target schema
// does not define. The whole migration is failed on this path; the caller
// must discard the target model rather than persist a partial clone graph.
type UnsupportedEntityError struct {
	TypeName string
	Handle   int
}

func (e *UnsupportedEntityError) Error() string {
	return fmt.Sprintf("target schema does not support entity type %s (#%d)", e.TypeName, e.Handle)
}

// Migrator clones entities and their transitive reference closure from one
// model into another. The identity cache makes Migrate idempotent per
// (source entity, target model) pair and is the session manifest of
// everything the migration created.
type Migrator struct {
	newID IDGenerator
	ids   map[*model.Model]map[int]int
}

// NewMigrator creates a migration session. A nil generator falls back to
// random IFC global identifiers.
func NewMigrator(newID IDGenerator) *Migrator {
	if newID == nil {
		newID = model.NewGlobalID
	}
	return &Migrator{
		newID: newID,
		ids:   make(map[*model.Model]map[int]int),
	}
}

// MigratedIDs returns the source-handle to target-handle manifest for one
// target model. Mutating the map does not affect the session.
func (mi *Migrator) MigratedIDs(target *model.Model) map[int]int {
	out := make(map[int]int, len(mi.ids[target]))
	for src, dst := range mi.ids[target] {
		out[src] = dst
	}
	return out
}

// MigratedEntities returns every entity this session created in target.
func (mi *Migrator) MigratedEntities(target *model.Model) []*model.Entity {
	var out []*model.Entity
	for _, id := range mi.ids[target] {
		if e := target.ByHandle(id); e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Migrate deep-copies src and everything it references into target.
// Shared sub-objects are cloned once and reused, which also breaks cycles:
// the clone is registered in the cache before its attributes are filled.
// Every cloned root entity receives a fresh global identifier; the donor
// identifier is never installed, so merged models cannot collide on
// identity.
func (mi *Migrator) Migrate(src *model.Entity, target *model.Model) (*model.Entity, error) {
	if src == nil {
		return nil, nil
	}

	cache := mi.ids[target]
	if cache == nil {
		cache = make(map[int]int)
		mi.ids[target] = cache
	}
	if id, done := cache[src.ID()]; done {
		return target.ByHandle(id), nil
	}

	clone, err := target.NewEntity(src.Type())
	if err != nil {
		return nil, &UnsupportedEntityError{TypeName: src.Type(), Handle: src.ID()}
	}
	cache[src.ID()] = clone.ID()

	for i := 0; i < src.AttrCount(); i++ {
		v, err := mi.copyValue(src.AttrAt(i), target)
		if err != nil {
			return nil, err
		}
		if err := clone.SetAttrAt(i, v); err != nil {
			return nil, err
		}
	}

	if clone.Def().Root() {
		if err := clone.SetAttr("GlobalId", model.Str(mi.newID())); err != nil {
			return nil, err
		}
	}
	return clone, nil
}

func (mi *Migrator) copyValue(v model.Value, target *model.Model) (model.Value, error) {
	switch t := v.(type) {
	case model.Ref:
		clone, err := mi.Migrate(t.Target, target)
		if err != nil {
			return nil, err
		}
		return model.RefTo(clone), nil
	case model.List:
		out := make(model.List, len(t))
		for i, item := range t {
			c, err := mi.copyValue(item, target)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	case model.Typed:
		inner, err := mi.copyValue(t.Inner, target)
		if err != nil {
			return nil, err
		}
		return model.Typed{Type: t.Type, Inner: inner}, nil
	default:
		// Scalars are immutable; share them.
		return v, nil
	}
}
