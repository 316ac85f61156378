// Package schema defines the core types for declarative resource definitions.
// A resource definition describes the shape and constraints of a REST-style
// resource; the validation and storage layers derive all behavior from it.
package schema

// FieldType is the declared type tag of a schema field.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeArray   FieldType = "array"
	TypeObject  FieldType = "object"
)

// Field defines a single data field of a resource.
type Field struct {
	// Name is the field name, unique within a definition.
	Name string `json:"name" yaml:"name"`

	// Type is the declared type tag. Tags outside the Type* constants are
	// legal and leave the field unconstrained.
	Type FieldType `json:"field_type" yaml:"field_type"`

	// Required indicates the field must be present on create and update.
	Required bool `json:"required" yaml:"required"`

	// Validation holds optional bounds for this field.
	Validation *ValidationRule `json:"validation,omitempty" yaml:"validation,omitempty"`
}

// ValidationRule bounds a field's value. For number fields Min/Max bound the
// numeric value; for string fields they bound the length in runes. Rules on
// any other field type are ignored.
type ValidationRule struct {
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty"`

	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`

	// Pattern is carried for external enforcement and not consulted by the
	// validator.
	Pattern string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// IsKnownType reports whether the type tag is one of the constrained tags.
func (f Field) IsKnownType() bool {
	switch f.Type {
	case TypeString, TypeNumber, TypeBoolean, TypeArray, TypeObject:
		return true
	default:
		return false
	}
}
