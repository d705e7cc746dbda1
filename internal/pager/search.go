package pager

import (
	"fmt"
	"reflect"
	"strings"
)

// matchRows filters items to those whose searchable text contains keyword,
// case-insensitively. textFn overrides the default extraction.
func matchRows[T any](items []T, keyword string, textFn func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return items
	}
	var out []T
	for _, item := range items {
		var values []string
		if textFn != nil {
			values = textFn(item)
		} else {
			values = SearchableValues(item)
		}
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), needle) {
				out = append(out, item)
				break
			}
		}
	}
	if out == nil {
		out = []T{}
	}
	return out
}

// SearchableValues walks a struct and collects its string and numeric field
// values. Non-struct items stringify wholesale.
func SearchableValues(item any) []string {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return []string{fmt.Sprintf("%v", item)}
	}

	var out []string
	collectFields(v, &out)
	return out
}

func collectFields(v reflect.Value, out *[]string) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		if !t.Field(i).IsExported() {
			continue
		}
		f := v.Field(i)
		for f.Kind() == reflect.Pointer {
			if f.IsNil() {
				break
			}
			f = f.Elem()
		}
		switch f.Kind() {
		case reflect.String:
			*out = append(*out, f.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			*out = append(*out, fmt.Sprintf("%d", f.Int()))
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			*out = append(*out, fmt.Sprintf("%d", f.Uint()))
		case reflect.Float32, reflect.Float64:
			*out = append(*out, fmt.Sprintf("%g", f.Float()))
		case reflect.Struct:
			collectFields(f, out)
		}
	}
}
