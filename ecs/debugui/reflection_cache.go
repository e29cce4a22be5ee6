package debugui

import (
	"reflect"
	"sort"
)

// FieldInfo describes one exported field of a struct component payload.
type FieldInfo struct {
	Name      string
	Index     int
	Kind      reflect.Kind
	IsPointer bool
}

// ReflectionCache remembers the exported fields of struct payload types. It
// is only used from the render goroutine.
type ReflectionCache struct {
	fields map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{fields: make(map[reflect.Type][]FieldInfo)}
}

// GetFields returns the exported fields of t. Non-struct types have none.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if cached, ok := rc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for _, field := range reflect.VisibleFields(t) {
			if !field.IsExported() || len(field.Index) != 1 {
				continue
			}

			kind := field.Type.Kind()
			isPointer := kind == reflect.Pointer
			if isPointer {
				kind = field.Type.Elem().Kind()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Index:     field.Index[0],
				Kind:      kind,
				IsPointer: isPointer,
			})
		}
	}

	rc.fields[t] = fields
	return fields
}

var inspectorFields = NewReflectionCache()

// sortedKeys returns the keys of a table payload in a stable display order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
