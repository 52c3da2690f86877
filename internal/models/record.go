package models

// FieldGroup is one parsed key with its values: element 0 is the field name,
// the rest are the raw values.
type FieldGroup []string

// Name returns the field name, or "" for an empty group.
func (g FieldGroup) Name() string {
	if len(g) == 0 {
		return ""
	}
	return g[0]
}

// Values returns everything after the name.
func (g FieldGroup) Values() []string {
	if len(g) < 2 {
		return nil
	}
	return g[1:]
}

// RawRecord is a parsed but unvalidated object.
type RawRecord []FieldGroup
