package ecs

import (
	"fmt"
	"maps"
	"sync/atomic"

	"github.com/kamstrup/intmap"
)

// Fields is a table of named component fields. Component types whose default
// value is a Fields table merge overrides into a fresh copy of the default.
type Fields map[string]any

// lastTypeId is shared by every registry so tokens never collide across them.
var lastTypeId atomic.Uint32

type componentInfo struct {
	name string
	def  any
}

// ComponentType is the identity token for one kind of component data.
// Tokens are compared by value; the zero ComponentType is invalid.
type ComponentType struct {
	id   uint32
	info *componentInfo
}

// ID returns the numeric identity of the component type.
func (t ComponentType) ID() uint32 {
	return t.id
}

// Name returns the diagnostic name given when the type was defined.
func (t ComponentType) Name() string {
	if t.info == nil {
		return ""
	}
	return t.info.name
}

// Valid reports whether the token was produced by Define.
func (t ComponentType) Valid() bool {
	return t.id != 0 && t.info != nil
}

// Default returns the default value of the type. Table defaults are returned
// as a copy so callers cannot mutate the shared default.
func (t ComponentType) Default() any {
	if t.info == nil {
		return nil
	}
	if fields, ok := asFields(t.info.def); ok {
		return maps.Clone(fields)
	}
	return t.info.def
}

func (t ComponentType) String() string {
	if t.info == nil {
		return "ComponentType(invalid)"
	}
	if t.info.name == "" {
		return fmt.Sprintf("ComponentType#%d", t.id)
	}
	return t.info.name
}

// New creates a component instance of this type.
//
// If the default is a table and the override is a table, the result is a new
// table holding every default field overwritten by every provided field. A
// table default without an override is copied. In every other case the data is
// the override when given (and non-nil), otherwise the default, stored as is.
func (t ComponentType) New(override ...any) *Component {
	if !t.Valid() {
		panic("cannot create component of an undefined type")
	}

	var value any
	if len(override) > 0 {
		value = override[0]
	}

	return &Component{
		Type: t,
		Data: mergeData(t.info.def, value),
	}
}

func mergeData(def, override any) any {
	defFields, defIsTable := asFields(def)
	if !defIsTable {
		if override != nil {
			return override
		}
		return def
	}

	if override == nil {
		return maps.Clone(defFields)
	}

	overrideFields, ok := asFields(override)
	if !ok {
		return override
	}

	merged := make(Fields, len(defFields)+len(overrideFields))
	maps.Copy(merged, defFields)
	maps.Copy(merged, overrideFields)
	return merged
}

func asFields(v any) (Fields, bool) {
	switch f := v.(type) {
	case Fields:
		return f, f != nil
	case map[string]any:
		return Fields(f), f != nil
	default:
		return nil, false
	}
}

// Component is one typed data record attached to an entity.
type Component struct {
	Type ComponentType
	Data any
}

// ComponentRegistry interns component types. Types from different registries
// never share an id, so a registry only serves lookup and listing.
type ComponentRegistry struct {
	byId  *intmap.Map[uint32, ComponentType]
	order []ComponentType
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		byId: intmap.New[uint32, ComponentType](64),
	}
}

// DefaultRegistry backs DefineComponent.
var DefaultRegistry = NewComponentRegistry()

// DefineComponent defines a new component type on the DefaultRegistry.
func DefineComponent(name string, defaultValue any) ComponentType {
	return DefaultRegistry.Define(name, defaultValue)
}

// Define creates a new unique component type with the given diagnostic name
// and default value. A table default is copied so later mutation of the
// caller's map does not leak into instances.
func (r *ComponentRegistry) Define(name string, defaultValue any) ComponentType {
	if fields, ok := asFields(defaultValue); ok {
		defaultValue = maps.Clone(fields)
	}

	t := ComponentType{
		id: lastTypeId.Add(1),
		info: &componentInfo{
			name: name,
			def:  defaultValue,
		},
	}

	r.byId.Put(t.id, t)
	r.order = append(r.order, t)
	return t
}

// Lookup returns the component type with the given id.
func (r *ComponentRegistry) Lookup(id uint32) (ComponentType, bool) {
	return r.byId.Get(id)
}

// Types returns every defined type in definition order.
func (r *ComponentRegistry) Types() []ComponentType {
	out := make([]ComponentType, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of defined types.
func (r *ComponentRegistry) Len() int {
	return len(r.order)
}
