package catalog

import "fmt"

// Kind identifies a content-store entity kind served by the dashboard.
type Kind string

const (
	KindProduct    Kind = "products"
	KindAuthor     Kind = "authors"
	KindCategory   Kind = "categories"
	KindCollection Kind = "collections"
	KindTag        Kind = "tags"
)

// IsValid returns true if the kind is one the dashboard knows about
func (k Kind) IsValid() bool {
	switch k {
	case KindProduct, KindAuthor, KindCategory, KindCollection, KindTag:
		return true
	default:
		return false
	}
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// Record is one content-store entity after shape normalization. The
// attributes envelope, when the source carried one, is always flattened
// into Fields before a Record is constructed.
type Record struct {
	ID         int64
	DocumentID string
	Fields     map[string]any
}

// Get returns the raw field value, or (nil, false) when absent.
func (r Record) Get(name string) (any, bool) {
	v, ok := r.Fields[name]
	return v, ok
}

// GetString returns the field rendered as a string. Numbers are
// formatted, nil and missing fields come back empty.
func (r Record) GetString(name string) string {
	v, ok := r.Fields[name]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// JSON numbers decode as float64; render integers without a fraction
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}
