package selfserve

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// BuildQuery serializes params into a query string without the leading "?".
//
// Scalars become key=value, slices and arrays repeat key=item in order, and
// maps and structs nest as key[child]=value. Nil values are skipped at every
// level. Top-level and map keys are emitted in sorted order.
func BuildQuery(params Params) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(params))
	for _, k := range keys {
		pairs = appendValue(pairs, escapeQuery(k), reflect.ValueOf(params[k]))
	}
	return strings.Join(pairs, "&")
}

func appendValue(pairs []string, key string, v reflect.Value) []string {
	v, ok := indirect(v)
	if !ok {
		return pairs
	}

	if s, ok := scalarString(v); ok {
		return append(pairs, key+"="+escapeQuery(s))
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			pairs = appendValue(pairs, key, v.Index(i))
		}
	case reflect.Map:
		type entry struct {
			name  string
			value reflect.Value
		}
		entries := make([]entry, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			entries = append(entries, entry{name: fmt.Sprint(iter.Key().Interface()), value: iter.Value()})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
		for _, e := range entries {
			pairs = appendValue(pairs, key+"["+escapeQuery(e.name)+"]", e.value)
		}
	case reflect.Struct:
		pairs = appendStruct(pairs, key, v)
	}
	return pairs
}

func appendStruct(pairs []string, key string, v reflect.Value) []string {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty := fieldName(field)
		if name == "-" {
			continue
		}
		fv := v.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		if field.Anonymous && field.Tag.Get("json") == "" {
			if inner, ok := indirect(fv); ok && inner.Kind() == reflect.Struct {
				pairs = appendStruct(pairs, key, inner)
				continue
			}
		}
		pairs = appendValue(pairs, key+"["+escapeQuery(name)+"]", fv)
	}
	return pairs
}

func fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, false
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(opts, "omitempty")
}

// indirect dereferences pointers and interfaces, reporting false for nil.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

var textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()

func scalarString(v reflect.Value) (string, bool) {
	if v.Type().Implements(textMarshalerType) && v.CanInterface() {
		text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err == nil {
			return string(text), true
		}
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), true
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	case reflect.Slice:
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return string(v.Bytes()), true
		}
	}
	return "", false
}

// escapeQuery percent-encodes s, encoding spaces as %20.
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// resolveURL joins base, path and the encoded params.
func resolveURL(baseURL, path string, params Params) string {
	full := baseURL + path
	qs := BuildQuery(params)
	if qs == "" {
		return full
	}
	if strings.Contains(path, "?") {
		return full + "&" + qs
	}
	return full + "?" + qs
}
