package vars

import (
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strconv"
	"strings"
)

const (
	// TooDeep replaces any value encountered at or beyond the maximum
	// serialization depth. The depth ceiling, not cycle detection, is
	// what guarantees termination over cyclic object graphs.
	TooDeep = "###TOO DEEP###"

	// DefaultMaxDepth is the depth ceiling used when no explicit limit
	// is configured for a dispatch.
	DefaultMaxDepth = 32
)

// Entry type vocabulary.
const (
	TypeString = "string"
	TypeFloat  = "float"
	TypeArray  = "array"
)

// Entry is one node of a serialized variable tree.
//
// Scalar entries hold their rendered string in Value and carry Reference
// zero. Composite entries (slices, arrays, maps, structs) hold their
// children as []Entry in Value and carry a Reference that is unique
// within one dispatch. ObjectName names the Go type of map and struct
// entries; FunctionName names function values.
type Entry struct {
	Name         string `json:"n"`
	Type         string `json:"t"`
	Value        any    `json:"v"`
	Reference    int    `json:"r,omitempty"`
	ObjectName   string `json:"on,omitempty"`
	FunctionName string `json:"fn,omitempty"`
}

// Counter issues reference numbers for composite entries. One Counter is
// shared across every variable serialized for a single dispatch so that
// references are unique within one debugger entry. The first call to
// Next returns 1.
type Counter struct {
	n int
}

// Next returns the next reference number.
func (c *Counter) Next() int {
	c.n++
	return c.n
}

// Serialize converts an arbitrary value into an Entry tree bounded by
// maxDepth. It never panics on any input shape: values it does not
// recognize degrade to their string conversion. A debug call must never
// crash the host program.
func Serialize(name string, value any, c *Counter, depth, maxDepth int) Entry {
	if depth >= maxDepth {
		return Entry{Name: name, Type: TypeString, Value: TooDeep}
	}

	rv := reflect.ValueOf(value)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			rv = reflect.Value{}
			break
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return Entry{Name: name, Type: TypeString, Value: "<nil>"}
	}

	switch rv.Kind() {
	case reflect.Bool:
		return Entry{Name: name, Type: TypeString, Value: strconv.FormatBool(rv.Bool())}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Entry{Name: name, Type: TypeFloat, Value: strconv.FormatInt(rv.Int(), 10)}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Entry{Name: name, Type: TypeFloat, Value: strconv.FormatUint(rv.Uint(), 10)}

	case reflect.Float32, reflect.Float64:
		return Entry{Name: name, Type: TypeFloat, Value: strconv.FormatFloat(rv.Float(), 'g', -1, 64)}

	case reflect.String:
		return Entry{Name: name, Type: TypeString, Value: rv.String()}

	case reflect.Slice, reflect.Array:
		return serializeSlice(name, rv, c, depth, maxDepth)

	case reflect.Map:
		return serializeMap(name, rv, c, depth, maxDepth)

	case reflect.Struct:
		return serializeStruct(name, rv, c, depth, maxDepth)

	case reflect.Func:
		return Entry{
			Name:         name,
			Type:         TypeString,
			Value:        rv.Type().String(),
			FunctionName: funcName(rv),
		}

	default:
		return Entry{Name: name, Type: TypeString, Value: fmt.Sprint(rv.Interface())}
	}
}

// serializeSlice handles slices and arrays. The entry claims its
// reference before its children are walked so references read parent
// first, top to bottom.
func serializeSlice(name string, rv reflect.Value, c *Counter, depth, maxDepth int) Entry {
	e := Entry{Name: name, Type: TypeArray, Reference: c.Next()}
	children := make([]Entry, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		childName := "[" + strconv.Itoa(i) + "]"
		children = append(children, Serialize(childName, rv.Index(i).Interface(), c, depth+1, maxDepth))
	}
	e.Value = children
	return e
}

func serializeMap(name string, rv reflect.Value, c *Counter, depth, maxDepth int) Entry {
	e := Entry{
		Name:       name,
		Type:       TypeArray,
		Reference:  c.Next(),
		ObjectName: rv.Type().String(),
	}

	keys := make([]string, 0, rv.Len())
	byKey := make(map[string]reflect.Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := fmt.Sprint(iter.Key().Interface())
		keys = append(keys, k)
		byKey[k] = iter.Value()
	}
	SortNames(keys)

	children := make([]Entry, 0, len(keys))
	for _, k := range keys {
		children = append(children, Serialize("["+k+"]", byKey[k].Interface(), c, depth+1, maxDepth))
	}
	e.Value = children
	return e
}

func serializeStruct(name string, rv reflect.Value, c *Counter, depth, maxDepth int) Entry {
	e := Entry{
		Name:       name,
		Type:       TypeArray,
		Reference:  c.Next(),
		ObjectName: rv.Type().String(),
	}

	t := rv.Type()
	names := make([]string, 0, t.NumField())
	byName := make(map[string]reflect.Value, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		names = append(names, f.Name)
		byName[f.Name] = rv.Field(i)
	}
	SortNames(names)

	children := make([]Entry, 0, len(names))
	for _, n := range names {
		children = append(children, Serialize("["+n+"]", byName[n].Interface(), c, depth+1, maxDepth))
	}
	e.Value = children
	return e
}

// SortNames orders property names case-insensitively ascending, with a
// byte-wise comparison breaking ties. Deterministic ordering is a
// correctness requirement: snapshots of the same value must be
// reproducible across dispatches and processes.
func SortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
}

func funcName(rv reflect.Value) string {
	if rv.IsNil() {
		return ""
	}
	if fn := runtime.FuncForPC(rv.Pointer()); fn != nil {
		return fn.Name()
	}
	return ""
}
