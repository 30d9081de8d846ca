package scope

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// Truther is implemented by values that decide their own truthiness.
type Truther interface {
	Truthy() bool
}

// Truthy applies the template boolean coercion. Undefined values, nil, false,
// empty strings, zero numbers and empty sequences or mappings are false.
// Whitespace-only strings are true.
func Truthy(value any, ok bool) bool {
	if !ok || value == nil {
		return false
	}
	switch v := value.(type) {
	case Truther:
		return v.Truthy()
	case bool:
		return v
	case string:
		return v != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	case Map:
		return len(v) > 0
	case time.Time:
		return !v.IsZero()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.String:
		return rv.String() != ""
	case reflect.Bool:
		return rv.Bool()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return false
		}
		return Truthy(rv.Elem().Interface(), true)
	}
	return true
}

// String renders a scalar value the way it appears in text output. Nil,
// contexts and collections have no textual form and render as "".
func String(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	case Context:
		return ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return String(rv.Elem().Interface())
	}
	return ""
}

// Entry is one iteration step over a sequence or mapping. Key holds the
// position ("0", "1", ...) for sequences and the key for mappings.
type Entry struct {
	Key   string
	Value any
}

// Entries lists the iteration steps of value. Sequences iterate in order,
// mappings in ascending key order. Anything else is not iterable.
func Entries(value any) ([]Entry, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case []any:
		out := make([]Entry, len(v))
		for i, item := range v {
			out[i] = Entry{Key: strconv.Itoa(i), Value: item}
		}
		return out, true
	case map[string]any:
		return mapEntries(v), true
	case Map:
		return mapEntries(v), true
	case string:
		return nil, false
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]Entry, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Entry{Key: strconv.Itoa(i), Value: rv.Index(i).Interface()}
		}
		return out, true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		out := make([]Entry, len(keys))
		for i, key := range keys {
			out[i] = Entry{Key: key.String(), Value: rv.MapIndex(key).Interface()}
		}
		return out, true
	}
	return nil, false
}

func mapEntries(m map[string]any) []Entry {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]Entry, len(keys))
	for i, key := range keys {
		out[i] = Entry{Key: key, Value: m[key]}
	}
	return out
}
