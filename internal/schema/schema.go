package schema

import "fmt"

// Kind is the semantic type of a record field.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindBool
	KindDate
	KindDatetime
)

// String returns the name used in client-facing type-mismatch messages.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindDatetime:
		return "datetime"
	}
	return "unknown"
}

// Field describes a single column of a record type.
type Field struct {
	Name       string
	Type       Kind
	Nullable   bool
	MaxLength  int // 0 = unbounded; only meaningful for strings
	HasDefault bool
	Identifier bool
}

// Descriptor is the static schema table for one record type.
// Built once at startup and read-only afterwards.
type Descriptor struct {
	Name   string
	Fields []Field
}

// Field returns the descriptor entry for name, or nil if the record
// type has no such column.
func (d *Descriptor) Field(name string) *Field {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// Required returns the names of fields a caller must supply: everything
// that is not the identifier, not nullable and carries no default.
func (d *Descriptor) Required() []string {
	var names []string
	for _, f := range d.Fields {
		if !f.Identifier && !f.Nullable && !f.HasDefault {
			names = append(names, f.Name)
		}
	}
	return names
}

// Identifier returns the primary-key field.
func (d *Descriptor) Identifier() *Field {
	for i := range d.Fields {
		if d.Fields[i].Identifier {
			return &d.Fields[i]
		}
	}
	return nil
}

// Check verifies the descriptor invariants: unique field names and
// exactly one identifier. Called from init of the package that owns
// the table, so a malformed descriptor fails at startup.
func (d *Descriptor) Check() error {
	seen := make(map[string]bool, len(d.Fields))
	ids := 0
	for _, f := range d.Fields {
		if seen[f.Name] {
			return fmt.Errorf("schema %q: duplicate field %q", d.Name, f.Name)
		}
		seen[f.Name] = true
		if f.Identifier {
			ids++
		}
	}
	if ids != 1 {
		return fmt.Errorf("schema %q: expected exactly one identifier field, got %d", d.Name, ids)
	}
	return nil
}
