package model

import (
	"fmt"
	"sort"
)

// Header mirrors the exchange file's header section.
type Header struct {
	Description   []string
	Name          string
	Timestamp     string
	Authors       []string
	Organizations []string
	Preprocessor  string
	Origin        string
	Authorization string
}

// Model is an in-memory graph of entities plus the schema that types them.
type Model struct {
	Header Header

	schema   *Schema
	entities map[int]*Entity
	nextID   int
}

// New creates an empty model bound to the given schema.
func New(schema *Schema) *Model {
	return &Model{
		schema:   schema,
		entities: make(map[int]*Entity),
		nextID:   1,
	}
}

// Schema returns the schema the model is bound to.
func (m *Model) Schema() *Schema {
	return m.schema
}

// Len returns the number of entities in the model.
func (m *Model) Len() int {
	return len(m.entities)
}

// NewEntity creates an entity of the given type with the next free handle.
// Attribute slots beyond the given values are initialized to Null.
func (m *Model) NewEntity(typeName string, attrs ...Value) (*Entity, error) {
	return m.NewEntityWithHandle(m.nextID, typeName, attrs...)
}

// NewEntityWithHandle creates an entity under an explicit handle. Used by
// the file reader, which must preserve the handles of the source file.
func (m *Model) NewEntityWithHandle(id int, typeName string, attrs ...Value) (*Entity, error) {
	def, ok := m.schema.Lookup(typeName)
	if !ok {
		return nil, fmt.Errorf("schema %s does not define entity type %q", m.schema.Name(), typeName)
	}
	if len(attrs) > len(def.Attrs) {
		return nil, fmt.Errorf("%s takes %d attributes, got %d", def.Name, len(def.Attrs), len(attrs))
	}
	if _, taken := m.entities[id]; taken {
		return nil, fmt.Errorf("handle #%d already in use", id)
	}

	slots := make([]Value, len(def.Attrs))
	for i := range slots {
		if i < len(attrs) && attrs[i] != nil {
			slots[i] = attrs[i]
		} else {
			slots[i] = Null{}
		}
	}

	e := &Entity{id: id, def: def, attrs: slots}
	m.entities[id] = e
	if id >= m.nextID {
		m.nextID = id + 1
	}
	return e, nil
}

// ByHandle returns the entity with the given handle, or nil.
func (m *Model) ByHandle(id int) *Entity {
	return m.entities[id]
}

// Remove deletes the entity from the model. References held by other
// entities are not touched; callers must prove the entity unreferenced
// first (see InverseReferences).
func (m *Model) Remove(e *Entity) {
	if e == nil {
		return
	}
	if m.entities[e.id] == e {
		delete(m.entities, e.id)
	}
}

// All returns every entity in ascending handle order.
func (m *Model) All() []*Entity {
	ids := make([]int, 0, len(m.entities))
	for id := range m.entities {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*Entity, len(ids))
	for i, id := range ids {
		out[i] = m.entities[id]
	}
	return out
}

// EntitiesOfType returns every entity whose type is typeName or one of its
// subtypes, in ascending handle order.
func (m *Model) EntitiesOfType(typeName string) []*Entity {
	var out []*Entity
	for _, e := range m.All() {
		if e.IsA(typeName) {
			out = append(out, e)
		}
	}
	return out
}

// InverseReferences returns the entities that forward-reference target,
// in ascending handle order. The reverse index is derived per call and
// never stored, so it cannot fall out of sync with attribute mutation.
func (m *Model) InverseReferences(target *Entity) []*Entity {
	var out []*Entity
	for _, e := range m.All() {
		if e == target {
			continue
		}
		for _, v := range e.attrs {
			if valueReferences(v, target) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

func valueReferences(v Value, target *Entity) bool {
	switch t := v.(type) {
	case Ref:
		return t.Target == target
	case List:
		for _, item := range t {
			if valueReferences(item, target) {
				return true
			}
		}
	case Typed:
		return valueReferences(t.Inner, target)
	}
	return false
}
