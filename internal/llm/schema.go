package llm

import (
	"encoding/json"
	"fmt"
)

// FieldKind is the shape of one schema field
type FieldKind int

const (
	KindString FieldKind = iota
	KindStringArray
	KindObjectArray
)

// Field is one required top-level property. Subfields names the required
// string properties of each element when Kind is KindObjectArray.
type Field struct {
	Name      string
	Kind      FieldKind
	Subfields []string
}

// Schema describes a JSON object whose fields are all required
type Schema struct {
	Fields []Field
}

// NewSchema builds a schema from fields
func NewSchema(fields ...Field) *Schema {
	return &Schema{Fields: fields}
}

// String declares a required string field
func String(name string) Field {
	return Field{Name: name, Kind: KindString}
}

// StringArray declares a required array-of-strings field
func StringArray(name string) Field {
	return Field{Name: name, Kind: KindStringArray}
}

// ObjectArray declares a required array of objects with string subfields
func ObjectArray(name string, subfields ...string) Field {
	return Field{Name: name, Kind: KindObjectArray, Subfields: subfields}
}

// Validate checks that raw is a JSON object carrying every field with the
// declared shape. Extra properties are tolerated.
func (s *Schema) Validate(raw []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return fmt.Errorf("response is not a JSON object: %w", err)
	}
	if obj == nil {
		return fmt.Errorf("response is null")
	}

	for _, f := range s.Fields {
		v, ok := obj[f.Name]
		if !ok || string(v) == "null" {
			return fmt.Errorf("missing field %q", f.Name)
		}
		switch f.Kind {
		case KindString:
			var str string
			if err := json.Unmarshal(v, &str); err != nil {
				return fmt.Errorf("field %q: want string", f.Name)
			}
		case KindStringArray:
			var arr []string
			if err := json.Unmarshal(v, &arr); err != nil || arr == nil {
				return fmt.Errorf("field %q: want array of strings", f.Name)
			}
		case KindObjectArray:
			var arr []map[string]json.RawMessage
			if err := json.Unmarshal(v, &arr); err != nil || arr == nil {
				return fmt.Errorf("field %q: want array of objects", f.Name)
			}
			for i, item := range arr {
				for _, sub := range f.Subfields {
					var str string
					sv, ok := item[sub]
					if !ok || string(sv) == "null" {
						return fmt.Errorf("field %q[%d]: missing %q", f.Name, i, sub)
					}
					if err := json.Unmarshal(sv, &str); err != nil {
						return fmt.Errorf("field %q[%d].%s: want string", f.Name, i, sub)
					}
				}
			}
		}
	}
	return nil
}
