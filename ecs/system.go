package ecs

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync/atomic"
)

var (
	lastSystemId atomic.Uint32
	errorType    = reflect.TypeFor[error]()
)

// System pairs a Query with the callback invoked once per matching entity.
//
// The callback receives the projected values positionally, so it must take
// exactly query.Arity() parameters (or be variadic). It may return an error as
// its last result; a non-nil error aborts the schedule being emitted.
type System struct {
	id       uint32
	name     string
	query    *Query
	callback any

	fn           reflect.Value
	fnType       reflect.Type
	returnsError bool
}

// NewSystem creates a system named after its callback function.
func NewSystem(query *Query, callback any) *System {
	return NewNamedSystem("", query, callback)
}

// NewNamedSystem creates a system with an explicit diagnostic name.
func NewNamedSystem(name string, query *Query, callback any) *System {
	if query == nil {
		panic("cannot create system without a query")
	}

	fn := reflect.ValueOf(callback)
	if callback == nil || fn.Kind() != reflect.Func || fn.IsNil() {
		panic("system callback must be a non-nil function")
	}

	if name == "" {
		name = funcName(fn)
	}

	fnType := fn.Type()
	numOut := fnType.NumOut()

	return &System{
		id:           lastSystemId.Add(1),
		name:         name,
		query:        query,
		callback:     callback,
		fn:           fn,
		fnType:       fnType,
		returnsError: numOut > 0 && fnType.Out(numOut-1) == errorType,
	}
}

// Id returns the unique identifier of the system.
func (s *System) Id() uint32 {
	return s.id
}

// Name returns the diagnostic name of the system.
func (s *System) Name() string {
	return s.name
}

// Query returns the query the system runs against.
func (s *System) Query() *Query {
	return s.query
}

func (s *System) invoke(row []any) error {
	switch cb := s.callback.(type) {
	case func(...any):
		cb(row...)
		return nil
	case func(...any) error:
		return cb(row...)
	}

	args, err := s.bind(row)
	if err != nil {
		return err
	}

	out := s.fn.Call(args)
	if s.returnsError {
		if last := out[len(out)-1]; !last.IsNil() {
			return last.Interface().(error)
		}
	}
	return nil
}

func (s *System) bind(row []any) ([]reflect.Value, error) {
	numIn := s.fnType.NumIn()
	variadic := s.fnType.IsVariadic()

	if variadic && len(row) < numIn-1 {
		return nil, fmt.Errorf("%w: query projects %d values, callback takes at least %d", ErrArityMismatch, len(row), numIn-1)
	}
	if !variadic && len(row) != numIn {
		return nil, fmt.Errorf("%w: query projects %d values, callback takes %d", ErrArityMismatch, len(row), numIn)
	}

	args := make([]reflect.Value, len(row))
	for i, v := range row {
		var paramType reflect.Type
		if variadic && i >= numIn-1 {
			paramType = s.fnType.In(numIn - 1).Elem()
		} else {
			paramType = s.fnType.In(i)
		}

		// Absent optional components bind as the parameter's zero value
		if v == nil {
			args[i] = reflect.Zero(paramType)
			continue
		}

		val := reflect.ValueOf(v)
		if !val.Type().AssignableTo(paramType) {
			return nil, fmt.Errorf("%w: argument %d is %s, callback wants %s", ErrArgumentType, i, val.Type(), paramType)
		}
		args[i] = val
	}

	return args, nil
}

func funcName(fn reflect.Value) string {
	f := runtime.FuncForPC(fn.Pointer())
	if f == nil {
		return "system"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
