package model

import "fmt"

// Entity is one typed record in a model. Its attribute slots are positional
// per the schema definition of its type; named access goes through the
// type definition's attribute table.
type Entity struct {
	id    int
	def   *TypeDef
	attrs []Value
}

// ID returns the entity's handle, unique within its model.
func (e *Entity) ID() int {
	return e.id
}

// Type returns the canonical type name, e.g. "IfcColumn".
func (e *Entity) Type() string {
	return e.def.Name
}

// Def returns the entity's type definition.
func (e *Entity) Def() *TypeDef {
	return e.def
}

// IsA reports whether the entity's type is name or a subtype of it.
func (e *Entity) IsA(name string) bool {
	return e.def.IsA(name)
}

// AttrCount returns the number of attribute slots.
func (e *Entity) AttrCount() int {
	return len(e.attrs)
}

// AttrAt returns the attribute at position i, or Null when out of range.
func (e *Entity) AttrAt(i int) Value {
	if i < 0 || i >= len(e.attrs) {
		return Null{}
	}
	return e.attrs[i]
}

// Attr returns the named attribute, or Null when the type has no such
// attribute.
func (e *Entity) Attr(name string) Value {
	i := e.def.AttrIndex(name)
	if i < 0 {
		return Null{}
	}
	return e.AttrAt(i)
}

// SetAttr assigns the named attribute in place.
func (e *Entity) SetAttr(name string, v Value) error {
	i := e.def.AttrIndex(name)
	if i < 0 {
		return fmt.Errorf("%s has no attribute %q", e.def.Name, name)
	}
	e.attrs[i] = v
	return nil
}

// SetAttrAt assigns the attribute at position i in place.
func (e *Entity) SetAttrAt(i int, v Value) error {
	if i < 0 || i >= len(e.attrs) {
		return fmt.Errorf("%s has no attribute at position %d", e.def.Name, i)
	}
	e.attrs[i] = v
	return nil
}

// GlobalID returns the entity's global identifier, or "" for non-root types.
func (e *Entity) GlobalID() string {
	if !e.def.Root() {
		return ""
	}
	s, _ := AsString(e.Attr("GlobalId"))
	return s
}

// RefEntity returns the entity referenced by the named attribute, or nil.
func (e *Entity) RefEntity(name string) *Entity {
	t, _ := AsEntity(e.Attr(name))
	return t
}

func (e *Entity) String() string {
	return fmt.Sprintf("#%d=%s", e.id, e.def.Name)
}
