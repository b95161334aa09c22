package payone

import (
	"fmt"
	"net/url"
	"sort"
)

// Fields is a flat request or response mapping keyed by Payone field name.
// Repeating groups embed a 1-based index in the key, e.g. "id[1]".
type Fields map[string]string

// Values converts the mapping to url.Values for form encoding
func (f Fields) Values() url.Values {
	values := make(url.Values, len(f))
	for k, v := range f {
		values.Set(k, v)
	}
	return values
}

// Clone returns an independent copy of the mapping
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the field names in ascending order
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// setIfNotEmpty stores value only when it is non-empty
func (f Fields) setIfNotEmpty(key, value string) {
	if value != "" {
		f[key] = value
	}
}

// mergeFields combines collector outputs into one mapping.
// Collectors own disjoint key sets, so a repeated key is a programming error.
func mergeFields(parts ...Fields) Fields {
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	out := make(Fields, size)
	for _, p := range parts {
		for k, v := range p {
			if _, exists := out[k]; exists {
				panic(fmt.Sprintf("payone: field %q produced by more than one collector", k))
			}
			out[k] = v
		}
	}
	return out
}
