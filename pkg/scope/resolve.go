package scope

import (
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// lengthField is the pseudo-field answering the element count of sequences,
// mappings and strings.
const lengthField = "length"

// Resolve looks up a dotted path in ctx. An empty path yields ctx itself.
// Each segment is resolved against the value produced by the previous one;
// sequences accept non-negative integer segments as positions. Any segment
// that cannot be resolved makes the whole path undefined (ok == false).
func Resolve(ctx Context, path string) (any, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		if ctx == nil {
			return nil, false
		}
		return ctx, true
	}

	var current any = ctx
	for _, segment := range strings.Split(path, ".") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			return nil, false
		}
		next, ok := step(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func step(current any, segment string) (any, bool) {
	switch typed := current.(type) {
	case nil:
		return nil, false
	case Context:
		return typed.Lookup(segment)
	case map[string]any:
		v, ok := typed[segment]
		if !ok && segment == lengthField {
			return len(typed), true
		}
		return v, ok
	case map[string]string:
		v, ok := typed[segment]
		if !ok && segment == lengthField {
			return len(typed), true
		}
		return v, ok
	case []any:
		if idx, ok := position(segment); ok {
			if idx < len(typed) {
				return typed[idx], true
			}
			return nil, false
		}
		if segment == lengthField {
			return len(typed), true
		}
		return nil, false
	case string:
		if segment == lengthField {
			return utf8.RuneCountInString(typed), true
		}
		return nil, false
	}
	return reflectStep(reflect.ValueOf(current), segment)
}

func reflectStep(rv reflect.Value, segment string) (any, bool) {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if idx, ok := position(segment); ok {
			if idx < rv.Len() {
				return rv.Index(idx).Interface(), true
			}
			return nil, false
		}
		if segment == lengthField {
			return rv.Len(), true
		}
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		v := rv.MapIndex(reflect.ValueOf(segment).Convert(rv.Type().Key()))
		if v.IsValid() {
			return v.Interface(), true
		}
		if segment == lengthField {
			return rv.Len(), true
		}
	case reflect.Struct:
		field := rv.FieldByName(segment)
		if field.IsValid() && field.CanInterface() {
			return field.Interface(), true
		}
	}
	return nil, false
}

func position(segment string) (int, bool) {
	if segment == "" || segment[0] == '-' || segment[0] == '+' {
		return 0, false
	}
	idx, err := strconv.Atoi(segment)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
