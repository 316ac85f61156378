// Package validation checks records against their resource definition.
// Validation is a pure function of definition and record, runs in field
// declaration order, and returns the first failure.
package validation

import (
	"unicode/utf8"

	"github.com/gimlet2/metarest/core/resource"
	"github.com/gimlet2/metarest/core/schema"
	"github.com/gimlet2/metarest/core/value"
	"github.com/gimlet2/metarest/errs"
)

// Validate checks rec against def. It enforces required fields, declared
// types, and validation bounds; fields with unknown type tags are
// unconstrained. Bounds on string fields measure length in runes, not bytes,
// so multi-byte text is bounded by character count.
func Validate(def schema.ResourceDefinition, rec resource.Record) error {
	for _, field := range def.Fields {
		v, present := rec.Data[field.Name]

		if !present {
			if field.Required {
				return errs.Validationf("Required field '%s' is missing", field.Name)
			}
			continue
		}

		if !typeMatches(field.Type, v) {
			return errs.Validationf("Field '%s' has invalid type, expected '%s'", field.Name, field.Type)
		}

		if field.Validation == nil {
			continue
		}

		switch field.Type {
		case schema.TypeNumber:
			if err := checkNumberBounds(field, v); err != nil {
				return err
			}
		case schema.TypeString:
			if err := checkLengthBounds(field, v); err != nil {
				return err
			}
		}
		// Rules on boolean/array/object and unknown types are ignored.
	}

	return nil
}

// typeMatches reports whether a value satisfies a declared type tag. Unknown
// tags match anything.
func typeMatches(t schema.FieldType, v value.Value) bool {
	switch t {
	case schema.TypeString:
		return v.Kind() == value.KindString
	case schema.TypeNumber:
		return v.Kind() == value.KindNumber
	case schema.TypeBoolean:
		return v.Kind() == value.KindBool
	case schema.TypeArray:
		return v.Kind() == value.KindArray
	case schema.TypeObject:
		return v.Kind() == value.KindObject
	default:
		return true
	}
}

func checkNumberBounds(field schema.Field, v value.Value) error {
	num, ok := v.AsNumber()
	if !ok {
		return nil
	}

	rule := field.Validation
	if rule.Min != nil && num < *rule.Min {
		return errs.Validationf("Field '%s' value %v is less than minimum %v", field.Name, num, *rule.Min)
	}
	if rule.Max != nil && num > *rule.Max {
		return errs.Validationf("Field '%s' value %v is greater than maximum %v", field.Name, num, *rule.Max)
	}
	return nil
}

func checkLengthBounds(field schema.Field, v value.Value) error {
	s, ok := v.AsString()
	if !ok {
		return nil
	}

	length := float64(utf8.RuneCountInString(s))
	rule := field.Validation
	if rule.Min != nil && length < *rule.Min {
		return errs.Validationf("Field '%s' length is less than minimum %v", field.Name, *rule.Min)
	}
	if rule.Max != nil && length > *rule.Max {
		return errs.Validationf("Field '%s' length is greater than maximum %v", field.Name, *rule.Max)
	}
	return nil
}
