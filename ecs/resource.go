package ecs

// Resource is a single shared data slot that is not associated with any
// entity. Use this for frame timing, configuration, or other global state.
//
// Queries bind a specific Resource instance, never a kind of resource, and
// any system holding the reference may replace or mutate Data in place.
type Resource struct {
	Data any
}

// NewResource creates a resource holding data.
func NewResource(data any) *Resource {
	return &Resource{Data: data}
}

// ResourceData returns the resource data as T. The second result is false if
// the resource is nil or holds a value of another type.
func ResourceData[T any](r *Resource) (T, bool) {
	var zero T
	if r == nil {
		return zero, false
	}
	v, ok := r.Data.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
