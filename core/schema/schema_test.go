package schema

import (
	"encoding/json"
	"strings"
	"testing"
)

func testDefinition() ResourceDefinition {
	return ResourceDefinition{
		Name: "users",
		Fields: []Field{
			{Name: "name", Type: TypeString, Required: true, Validation: &ValidationRule{Min: f64(3), Max: f64(50)}},
			{Name: "age", Type: TypeNumber, Validation: &ValidationRule{Min: f64(0), Max: f64(150)}},
			{Name: "email", Type: TypeString, Required: true},
		},
		Security: &SecurityPolicy{
			RequireAuth:  true,
			AllowedRoles: []string{"admin", "user"},
		},
	}
}

func TestFieldLookup(t *testing.T) {
	def := testDefinition()

	f, ok := def.Field("age")
	if !ok || f.Type != TypeNumber {
		t.Errorf("Field(age) = %+v, %v", f, ok)
	}

	if _, ok := def.Field("missing"); ok {
		t.Error("Field(missing) should not be found")
	}
}

func TestIsKnownType(t *testing.T) {
	if !(Field{Type: TypeArray}).IsKnownType() {
		t.Error("array should be a known type")
	}
	if (Field{Type: "timestamp"}).IsKnownType() {
		t.Error("timestamp is not a known type")
	}
}

func TestJSONWireKeys(t *testing.T) {
	data, err := json.Marshal(testDefinition())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	s := string(data)
	for _, key := range []string{
		`"name"`, `"fields"`, `"field_type"`, `"required"`,
		`"validation"`, `"min"`, `"max"`,
		`"security"`, `"require_auth"`, `"allowed_roles"`,
	} {
		if !strings.Contains(s, key) {
			t.Errorf("serialized definition missing key %s: %s", key, s)
		}
	}

	// Absent optionals are omitted, not emitted as null.
	if strings.Contains(s, `"pattern"`) {
		t.Errorf("empty pattern should be omitted: %s", s)
	}

	var decoded ResourceDefinition
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.Name != "users" || len(decoded.Fields) != 3 {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Fields[0].Validation == nil || *decoded.Fields[0].Validation.Max != 50 {
		t.Errorf("decoded validation = %+v", decoded.Fields[0].Validation)
	}
}

func TestJSONOmitsOptionalSections(t *testing.T) {
	def := ResourceDefinition{
		Name:   "events",
		Fields: []Field{{Name: "kind", Type: TypeString, Required: true}},
	}

	data, err := json.Marshal(def)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	s := string(data)
	if strings.Contains(s, "security") || strings.Contains(s, "validation") {
		t.Errorf("optional sections should be omitted: %s", s)
	}
}

func TestDefinitionClone(t *testing.T) {
	def := testDefinition()
	clone := def.Clone()

	clone.Fields[0].Name = "renamed"
	*clone.Fields[1].Validation.Max = 999
	clone.Security.AllowedRoles[0] = "root"

	if def.Fields[0].Name != "name" {
		t.Error("field rename leaked into original")
	}
	if *def.Fields[1].Validation.Max != 150 {
		t.Error("validation mutation leaked into original")
	}
	if def.Security.AllowedRoles[0] != "admin" {
		t.Error("role mutation leaked into original")
	}
}
