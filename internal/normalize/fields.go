package normalize

import (
	"bytes"
	"encoding/json"
	"maps"
)

// Field pairs a canonical payload key with the key the API uses.
type Field struct {
	Canonical string
	Localized string
}

var (
	Name      = Field{Canonical: "name", Localized: "nome"}
	Email     = Field{Canonical: "email", Localized: "email"}
	Password  = Field{Canonical: "password", Localized: "senha"}
	Title     = Field{Canonical: "title", Localized: "titulo"}
	Content   = Field{Canonical: "content", Localized: "conteudo"}
	Author    = Field{Canonical: "author", Localized: "autor"}
	Role      = Field{Canonical: "role", Localized: "tipo"}
	Text      = Field{Canonical: "text", Localized: "text"}
	CreatedAt = Field{Canonical: "createdAt", Localized: "data_criacao"}
	UpdatedAt = Field{Canonical: "updatedAt", Localized: "data_atualizacao"}
)

// inbound aliases applied by Canonicalize
var aliases = []Field{
	Name, Password, Title, Content, Author, Role, CreatedAt, UpdatedAt,
	{Canonical: "id", Localized: "_id"},
}

// FieldMap is the ordered set of fields an outbound payload may carry.
type FieldMap []Field

// Fields builds a FieldMap.
func Fields(f ...Field) FieldMap { return FieldMap(f) }

// Map builds the outbound payload. For every field the localized value
// wins when set, then the canonical one; fields set under neither key are
// left out, as is anything not in the map.
func (m FieldMap) Map(payload map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for _, f := range m {
		if v, ok := Lookup(payload, f); ok {
			out[f.Localized] = v
		}
	}
	return out
}

// Localized returns the localized key names in order.
func (m FieldMap) Localized() []string {
	keys := make([]string, 0, len(m))
	for _, f := range m {
		keys = append(keys, f.Localized)
	}
	return keys
}

// Lookup returns the value of f in payload, preferring the localized key.
// Nil values and empty strings count as unset.
func Lookup(payload map[string]any, f Field) (any, bool) {
	if v, ok := payload[f.Localized]; ok && !isEmpty(v) {
		return v, true
	}
	if v, ok := payload[f.Canonical]; ok && !isEmpty(v) {
		return v, true
	}
	return nil, false
}

// LookupString is Lookup for string values.
func LookupString(payload map[string]any, f Field) string {
	v, _ := Lookup(payload, f)
	s, _ := v.(string)
	return s
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	}
	return false
}

// Canonicalize returns a copy of record where every localized key also
// appears under its canonical name. An existing canonical value is kept.
func Canonicalize(record map[string]any) map[string]any {
	out := maps.Clone(record)
	if out == nil {
		return nil
	}
	for _, a := range aliases {
		v, ok := record[a.Localized]
		if !ok {
			continue
		}
		if cur, exists := out[a.Canonical]; !exists || isEmpty(cur) {
			out[a.Canonical] = v
		}
	}
	return out
}

// Decode canonicalizes every object in raw and decodes the result into v.
func Decode(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return err
	}
	b, err := json.Marshal(canonicalizeTree(tree))
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func canonicalizeTree(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, child := range val {
			val[k] = canonicalizeTree(child)
		}
		return Canonicalize(val)
	case []any:
		for i, child := range val {
			val[i] = canonicalizeTree(child)
		}
		return val
	}
	return v
}
