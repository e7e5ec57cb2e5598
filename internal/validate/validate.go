package validate

import (
	"github.com/01moynul/product-catalog/internal/schema"
)

// Fields is a validated field map: field name to a value in canonical
// form (int64, float64, string, bool, time.Time or nil). Fields absent
// from the payload are absent from the map — the caller decides whether
// omission means "use default" (create) or "leave unchanged" (update).
type Fields map[string]any

// ValidatePayload checks a raw decoded body against the record schema.
//
// The walk is entirely descriptor-driven: required-field presence first,
// then per-key coercion, null, type and length checks in that order.
// Keys that name no schema field are silently ignored, as are values for
// the identifier column.
func ValidatePayload(raw map[string]any, desc *schema.Descriptor) (Fields, error) {
	var missing []string
	for _, name := range desc.Required() {
		if _, ok := raw[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &Error{Kind: ErrMissingFields, Missing: missing}
	}

	fields := make(Fields)
	for _, f := range desc.Fields {
		if f.Identifier {
			continue
		}
		value, present := raw[f.Name]
		if !present {
			continue
		}

		// Timestamps come in as numbers; rewrite them to calendar
		// values before the type check. Null is left for the
		// nullability check below.
		if value != nil && (f.Type == schema.KindDate || f.Type == schema.KindDatetime) {
			coerced, ok := schema.Coerce(value, f.Type)
			if !ok {
				return nil, &Error{Kind: ErrTypeMismatch, Field: f.Name, Value: value, Expected: f.Type}
			}
			value = coerced
		}

		if value == nil {
			if !f.Nullable {
				return nil, &Error{Kind: ErrNullNotAllowed, Field: f.Name}
			}
			fields[f.Name] = nil
			continue
		}

		if !schema.Matches(value, f.Type) {
			return nil, &Error{Kind: ErrTypeMismatch, Field: f.Name, Value: value, Expected: f.Type}
		}
		canon := canonical(value, f.Type)
		if f.MaxLength > 0 {
			if s, ok := canon.(string); ok && len(s) > f.MaxLength {
				return nil, &Error{Kind: ErrLengthExceeded, Field: f.Name, Limit: f.MaxLength}
			}
		}
		fields[f.Name] = canon
	}

	return fields, nil
}

// canonical rewrites json.Number values into their Go representation.
// Matches has already vouched for the conversion, so failures cannot
// happen here.
func canonical(value any, kind schema.Kind) any {
	switch kind {
	case schema.KindInt:
		i, _ := schema.AsInt(value)
		return i
	case schema.KindFloat:
		f, _ := schema.AsFloat(value)
		return f
	}
	return value
}
