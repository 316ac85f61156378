package schema

// SecurityPolicy annotates a definition with access requirements. It is
// pass-through metadata for an external policy layer; nothing in the CRUD
// path consults it.
type SecurityPolicy struct {
	RequireAuth bool `json:"require_auth" yaml:"require_auth"`

	AllowedRoles []string `json:"allowed_roles,omitempty" yaml:"allowed_roles,omitempty"`
}

// ResourceDefinition is the root meta-description of a resource. It is
// treated as immutable once a manager is constructed over it.
type ResourceDefinition struct {
	// Name is the resource name (e.g., "users").
	Name string `json:"name" yaml:"name"`

	// Fields make up the resource, in declaration order.
	Fields []Field `json:"fields" yaml:"fields"`

	// Security is the optional access-policy annotation.
	Security *SecurityPolicy `json:"security,omitempty" yaml:"security,omitempty"`
}

// Field returns the field with the given name.
func (d ResourceDefinition) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Clone returns a copy with independent backing storage, so a caller holding
// the copy cannot mutate the definition through shared slices.
func (d ResourceDefinition) Clone() ResourceDefinition {
	out := ResourceDefinition{Name: d.Name}

	if d.Fields != nil {
		out.Fields = make([]Field, len(d.Fields))
		for i, f := range d.Fields {
			cf := f
			if f.Validation != nil {
				rule := *f.Validation
				if f.Validation.Min != nil {
					min := *f.Validation.Min
					rule.Min = &min
				}
				if f.Validation.Max != nil {
					max := *f.Validation.Max
					rule.Max = &max
				}
				cf.Validation = &rule
			}
			out.Fields[i] = cf
		}
	}

	if d.Security != nil {
		sec := SecurityPolicy{RequireAuth: d.Security.RequireAuth}
		if d.Security.AllowedRoles != nil {
			sec.AllowedRoles = append([]string(nil), d.Security.AllowedRoles...)
		}
		out.Security = &sec
	}

	return out
}
