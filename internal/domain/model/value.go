// Package model implements the in-memory IFC entity graph: schema-typed
// entities with positional attributes, identified within one model by a
// numeric handle. Two models are independent graphs; handles from one are
// meaningless in the other.
package model

// Value is one attribute slot of an entity. The set of implementations is
// closed: Null, Derived, Real, Int, Boolean, Str, Enum, Ref, List and Typed.
type Value interface {
	isValue()
}

// Null is an unset attribute ($ in the exchange format).
type Null struct{}

// Derived marks an attribute whose value is derived in a subtype (*).
type Derived struct{}

// Real is a floating-point attribute.
type Real float64

// Int is an integer attribute.
type Int int64

// Boolean is a boolean attribute (.T. / .F.).
type Boolean bool

// Str is a string attribute.
type Str string

// Enum is an enumeration attribute (.VALUE.).
type Enum string

// Ref is a forward reference to another entity in the same model.
type Ref struct {
	Target *Entity
}

// List is an ordered aggregate of values.
type List []Value

// Typed wraps a value in a defined-type name, e.g. IFCLABEL('Antenna').
type Typed struct {
	Type  string
	Inner Value
}

func (Null) isValue()    {}
func (Derived) isValue() {}
func (Real) isValue()    {}
func (Int) isValue()     {}
func (Boolean) isValue() {}
func (Str) isValue()     {}
func (Enum) isValue()    {}
func (Ref) isValue()     {}
func (List) isValue()    {}
func (Typed) isValue()   {}

// RefTo returns a reference value pointing at e.
func RefTo(e *Entity) Ref {
	return Ref{Target: e}
}

// IsNull reports whether v is absent (nil interface or Null).
func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}

// AsEntity unwraps a reference value.
func AsEntity(v Value) (*Entity, bool) {
	r, ok := v.(Ref)
	if !ok || r.Target == nil {
		return nil, false
	}
	return r.Target, true
}

// AsString unwraps a string-like value, looking through a Typed wrapper.
func AsString(v Value) (string, bool) {
	switch t := v.(type) {
	case Str:
		return string(t), true
	case Enum:
		return string(t), true
	case Typed:
		return AsString(t.Inner)
	}
	return "", false
}

// AsFloat unwraps a numeric value, looking through a Typed wrapper.
func AsFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case Real:
		return float64(t), true
	case Int:
		return float64(t), true
	case Typed:
		return AsFloat(t.Inner)
	}
	return 0, false
}

// AsList unwraps an aggregate value. A Null yields an empty list.
func AsList(v Value) (List, bool) {
	switch t := v.(type) {
	case List:
		return t, true
	case Null:
		return nil, true
	}
	return nil, false
}

// EntityList collects the referenced entities of an aggregate value,
// skipping any element that is not a reference.
func EntityList(v Value) []*Entity {
	list, ok := AsList(v)
	if !ok {
		return nil
	}
	var out []*Entity
	for _, item := range list {
		if e, ok := AsEntity(item); ok {
			out = append(out, e)
		}
	}
	return out
}
