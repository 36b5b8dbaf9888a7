// Package host is the boundary to the game being narrated. Everything
// the engine reads from the host comes through a field query that can
// report "not available" — a destroyed panel, an object that hasn't
// been constructed yet. All might-be-missing handling lives here so
// handler logic never needs a defensive check.
package host

// IntField reads one numeric host value: a cursor index, a tab index,
// an item count. ok is false when the underlying object is missing.
type IntField func() (int, bool)

// StringField reads one text host value.
type StringField func() (string, bool)

// BoolField reads one boolean host value.
type BoolField func() (bool, bool)

// IntOr reads the field, degrading to fallback when it is nil or
// unavailable.
func IntOr(f IntField, fallback int) int {
	if f == nil {
		return fallback
	}
	if v, ok := f(); ok {
		return v
	}
	return fallback
}

// StringOr reads the field, degrading to fallback when it is nil or
// unavailable.
func StringOr(f StringField, fallback string) string {
	if f == nil {
		return fallback
	}
	if v, ok := f(); ok {
		return v
	}
	return fallback
}

// BoolOr reads the field, degrading to fallback when it is nil or
// unavailable.
func BoolOr(f BoolField, fallback bool) bool {
	if f == nil {
		return fallback
	}
	if v, ok := f(); ok {
		return v
	}
	return fallback
}

// FixedInt wraps a constant as an IntField. Mostly for tests and
// panels whose layout never changes.
func FixedInt(v int) IntField {
	return func() (int, bool) { return v, true }
}

// FixedString wraps a constant as a StringField.
func FixedString(v string) StringField {
	return func() (string, bool) { return v, true }
}

// FixedBool wraps a constant as a BoolField.
func FixedBool(v bool) BoolField {
	return func() (bool, bool) { return v, true }
}
