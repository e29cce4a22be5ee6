package ecs

import "strings"

type queryElement struct {
	component ComponentType
	resource  *Resource

	required   bool
	excluded   bool
	hidden     bool
	isResource bool
}

func (el queryElement) visible() bool {
	return !el.excluded && !el.hidden
}

// Query describes which entities a system runs against and which values it
// receives. Each builder call appends one element; the order of calls is the
// order of the projected values.
type Query struct {
	elements []queryElement
	arity    int
}

// NewQuery creates an empty query. An empty query matches every entity.
func NewQuery() *Query {
	return &Query{}
}

// With requires the component type and projects its data.
func (q *Query) With(t ComponentType) *Query {
	return q.appendComponent(t, true, false, false)
}

// Without rejects entities holding the component type. Excluded elements
// never project a value.
func (q *Query) Without(t ComponentType) *Query {
	return q.appendComponent(t, false, true, true)
}

// WithHidden requires the component type without projecting its data.
func (q *Query) WithHidden(t ComponentType) *Query {
	return q.appendComponent(t, true, false, true)
}

// Optional projects the component data when present and nil otherwise.
// It never affects matching.
func (q *Query) Optional(t ComponentType) *Query {
	return q.appendComponent(t, false, false, false)
}

// Res projects the data of the bound resource. Resource elements never
// affect matching.
func (q *Query) Res(r *Resource) *Query {
	if r == nil {
		panic("cannot bind nil resource to query")
	}
	q.elements = append(q.elements, queryElement{
		resource:   r,
		isResource: true,
	})
	q.arity++
	return q
}

func (q *Query) appendComponent(t ComponentType, required, excluded, hidden bool) *Query {
	if !t.Valid() {
		panic("cannot build query with an undefined component type")
	}
	el := queryElement{
		component: t,
		required:  required,
		excluded:  excluded,
		hidden:    hidden,
	}
	q.elements = append(q.elements, el)
	if el.visible() {
		q.arity++
	}
	return q
}

// Arity returns the number of values projected per matching entity.
func (q *Query) Arity() int {
	return q.arity
}

// Len returns the number of elements in the query.
func (q *Query) Len() int {
	return len(q.elements)
}

// Match reports whether the entity satisfies every required and excluded
// element. Optional and resource elements are ignored.
func (q *Query) Match(e *Entity) bool {
	if e == nil {
		return false
	}
	for _, el := range q.elements {
		if el.isResource {
			continue
		}
		if el.required && !e.Has(el.component) {
			return false
		}
		if el.excluded && e.Has(el.component) {
			return false
		}
	}
	return true
}

// Apply evaluates the query against the world's current entities and returns
// one row per matching entity, in world order. The rows are a snapshot; later
// world mutations do not affect them.
func (q *Query) Apply(w *World) [][]any {
	rows := make([][]any, 0)
	for _, e := range w.entities {
		if !q.Match(e) {
			continue
		}
		rows = append(rows, q.project(e))
	}
	return rows
}

func (q *Query) project(e *Entity) []any {
	row := make([]any, 0, q.arity)
	for _, el := range q.elements {
		if !el.visible() {
			continue
		}
		if el.isResource {
			row = append(row, el.resource.Data)
			continue
		}
		if c := e.Get(el.component); c != nil {
			row = append(row, c.Data)
		} else {
			row = append(row, nil)
		}
	}
	return row
}

// String renders the query shape, e.g. "Query(Name, !Hidden, ~Tag, ?Nickname, $)".
func (q *Query) String() string {
	var b strings.Builder
	b.WriteString("Query(")
	for i, el := range q.elements {
		if i > 0 {
			b.WriteString(", ")
		}
		switch {
		case el.isResource:
			b.WriteString("$")
		case el.excluded:
			b.WriteString("!" + el.component.String())
		case el.hidden:
			b.WriteString("~" + el.component.String())
		case !el.required:
			b.WriteString("?" + el.component.String())
		default:
			b.WriteString(el.component.String())
		}
	}
	b.WriteString(")")
	return b.String()
}
