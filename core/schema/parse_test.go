package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const usersYAML = `
name: users
fields:
  - name: name
    field_type: string
    required: true
    validation:
      min: 3
      max: 50
  - name: age
    field_type: number
    validation:
      min: 0
      max: 150
  - name: email
    field_type: string
    required: true
security:
  require_auth: true
  allowed_roles: [admin, user]
`

func TestParse(t *testing.T) {
	def, err := Parse([]byte(usersYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if def.Name != "users" {
		t.Errorf("Name = %q, want users", def.Name)
	}
	if len(def.Fields) != 3 {
		t.Fatalf("fields = %d, want 3", len(def.Fields))
	}

	name := def.Fields[0]
	if name.Type != TypeString || !name.Required {
		t.Errorf("name field = %+v", name)
	}
	if name.Validation == nil || *name.Validation.Min != 3 || *name.Validation.Max != 50 {
		t.Errorf("name validation = %+v", name.Validation)
	}

	age := def.Fields[1]
	if age.Type != TypeNumber || age.Required {
		t.Errorf("age field = %+v", age)
	}

	if def.Security == nil || !def.Security.RequireAuth || len(def.Security.AllowedRoles) != 2 {
		t.Errorf("security = %+v", def.Security)
	}
}

func TestParseJSON(t *testing.T) {
	def, err := Parse([]byte(`{"name": "posts", "fields": [{"name": "title", "field_type": "string", "required": true}]}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if def.Name != "posts" || len(def.Fields) != 1 {
		t.Errorf("def = %+v", def)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("{broken")); err == nil {
		t.Error("expected error for broken yaml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		def     ResourceDefinition
		wantErr string
	}{
		{
			name:    "missing name",
			def:     ResourceDefinition{},
			wantErr: "resource name is required",
		},
		{
			name:    "bad resource name",
			def:     ResourceDefinition{Name: "user-accounts"},
			wantErr: "not a valid identifier",
		},
		{
			name: "bad field name",
			def: ResourceDefinition{Name: "users", Fields: []Field{
				{Name: "first name", Type: TypeString},
			}},
			wantErr: "not a valid identifier",
		},
		{
			name: "duplicate field",
			def: ResourceDefinition{Name: "users", Fields: []Field{
				{Name: "email", Type: TypeString},
				{Name: "email", Type: TypeString},
			}},
			wantErr: `duplicate field "email"`,
		},
		{
			name: "min greater than max",
			def: ResourceDefinition{Name: "users", Fields: []Field{
				{Name: "age", Type: TypeNumber, Validation: &ValidationRule{Min: f64(10), Max: f64(5)}},
			}},
			wantErr: "min 10 is greater than max 5",
		},
		{
			name: "broken pattern",
			def: ResourceDefinition{Name: "users", Fields: []Field{
				{Name: "code", Type: TypeString, Validation: &ValidationRule{Pattern: "["}},
			}},
			wantErr: "invalid pattern",
		},
		{
			name: "unknown type tag is legal",
			def: ResourceDefinition{Name: "users", Fields: []Field{
				{Name: "blob", Type: "custom_thing"},
			}},
		},
		{
			name: "empty field list is legal",
			def:  ResourceDefinition{Name: "events"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.def)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate failed: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"users.yaml":  usersYAML,
		"posts.json":  `{"name": "posts", "fields": [{"name": "title", "field_type": "string", "required": true}]}`,
		"ignored.txt": "not a definition",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "tags.yml"), []byte("name: tags\nfields:\n  - name: label\n    field_type: string\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	defs, err := ParseDir(dir)
	if err != nil {
		t.Fatalf("ParseDir failed: %v", err)
	}
	if len(defs) != 3 {
		t.Fatalf("got %d definitions, want 3", len(defs))
	}

	names := make(map[string]bool)
	for _, d := range defs {
		names[d.Name] = true
	}
	for _, want := range []string{"users", "posts", "tags"} {
		if !names[want] {
			t.Errorf("missing definition %q", want)
		}
	}
}

func TestParseDirBadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseDir(dir); err == nil {
		t.Error("expected error for malformed definition file")
	}
}

func f64(v float64) *float64 {
	return &v
}
