package catalog

// Field alias resolution. The content store renamed fields several times
// across schema versions (English/Spanish, casing changes), so every logical
// field is declared once as an ordered candidate list instead of each call
// site chaining fallbacks by hand. New aliases are data, not code.

// Logical field names used across the dashboard.
const (
	FieldDisplayName = "displayName"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldCoverURL    = "coverURL"
	FieldISBN        = "isbn"
	FieldPrice       = "price"
)

// defaultAliases applies to every entity kind unless overridden below.
var defaultAliases = map[string][]string{
	FieldDisplayName: {"name", "nombre", "NOMBRE", "titulo", "title"},
	FieldSlug:        {"slug", "url", "enlace"},
	FieldDescription: {"description", "descripcion", "resumen"},
	FieldCoverURL:    {"cover", "portada", "imagen", "image"},
}

// kindAliases holds per-kind overrides and additions. Candidate order is
// part of the contract: first match wins.
var kindAliases = map[Kind]map[string][]string{
	KindProduct: {
		FieldDisplayName: {"title", "titulo", "TITULO", "name", "nombre"},
		FieldISBN:        {"isbn", "ISBN", "codigo_isbn"},
		FieldPrice:       {"price", "precio", "pvp"},
	},
	KindCollection: {
		FieldDisplayName: {"name", "nombre", "NOMBRE", "nombre_marca"},
	},
	KindAuthor: {
		FieldDisplayName: {"name", "nombre", "nombre_completo", "NOMBRE"},
	},
}

// Aliases returns the candidate list for a logical field of the given kind,
// falling back to the shared defaults. Nil when the field is unknown.
func Aliases(kind Kind, logical string) []string {
	if perKind, ok := kindAliases[kind]; ok {
		if candidates, ok := perKind[logical]; ok {
			return candidates
		}
	}
	return defaultAliases[logical]
}

// Resolve walks the alias candidates for the logical field in declaration
// order and returns the first value that is neither nil nor an empty string.
// It never errors; (nil, false) means no candidate matched and the caller
// supplies its own default.
func Resolve(kind Kind, r Record, logical string) (any, bool) {
	for _, candidate := range Aliases(kind, logical) {
		v, ok := r.Fields[candidate]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && s == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// ResolveString is Resolve with the value rendered as a string; empty
// when no candidate matched.
func ResolveString(kind Kind, r Record, logical string) string {
	v, ok := Resolve(kind, r, logical)
	if !ok {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	// Reuse Record's rendering for non-string values
	tmp := Record{Fields: map[string]any{"v": v}}
	return tmp.GetString("v")
}
