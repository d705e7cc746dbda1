package model1

import "reflect"

// Fields represents a collection of row fields.
type Fields []string

// Diff returns true if the fields differ, ignoring the age column.
func (f Fields) Diff(ff Fields, ageCol int) bool {
	if len(f) != len(ff) {
		return true
	}
	if ageCol < 0 || ageCol >= len(f) {
		return !reflect.DeepEqual(f, ff)
	}
	if !reflect.DeepEqual(f[:ageCol], ff[:ageCol]) {
		return true
	}
	if ageCol+1 >= len(f) {
		return false
	}
	return !reflect.DeepEqual(f[ageCol+1:], ff[ageCol+1:])
}

// Clone returns a copy of the fields.
func (f Fields) Clone() Fields {
	cp := make(Fields, len(f))
	copy(cp, f)
	return cp
}
