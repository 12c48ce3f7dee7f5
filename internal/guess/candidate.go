package guess

import (
	"strconv"
	"strings"
)

// Field names a queryable attribute of a Candidate. Only fields listed
// here can appear in a question bank; anything else fails bank validation.
type Field string

const (
	FieldName      Field = "name"
	FieldType      Field = "type"
	FieldAttribute Field = "attribute"
	FieldRace      Field = "race"
	FieldArchetype Field = "archetype"
	FieldLevel     Field = "level"
	FieldATK       Field = "atk"
	FieldDEF       Field = "def"
)

// KnownField reports whether f is a field the comparator understands.
func KnownField(f Field) bool {
	switch f {
	case FieldName, FieldType, FieldAttribute, FieldRace, FieldArchetype, FieldLevel, FieldATK, FieldDEF:
		return true
	}
	return false
}

// Candidate is one card in the space of possible answers. String fields
// are absent when empty; numeric fields carry an explicit presence flag
// because 0 is a legal ATK/DEF/level.
type Candidate struct {
	Name      string
	Type      string
	Attribute string
	Race      string
	Archetype string

	Level    int
	HasLevel bool
	ATK      int
	HasATK   bool
	DEF      int
	HasDEF   bool
}

// fieldValue returns the comparable string form of a field and whether
// the candidate carries that field at all. An absent field never matches.
func (c Candidate) fieldValue(f Field) (string, bool) {
	switch f {
	case FieldName:
		return c.Name, c.Name != ""
	case FieldType:
		return c.Type, c.Type != ""
	case FieldAttribute:
		return c.Attribute, c.Attribute != ""
	case FieldRace:
		return c.Race, c.Race != ""
	case FieldArchetype:
		return c.Archetype, c.Archetype != ""
	case FieldLevel:
		return strconv.Itoa(c.Level), c.HasLevel
	case FieldATK:
		return strconv.Itoa(c.ATK), c.HasATK
	case FieldDEF:
		return strconv.Itoa(c.DEF), c.HasDEF
	}
	return "", false
}

// Matches reports whether the candidate satisfies the question's predicate:
// the field is present and contains the expected value, case-insensitively.
func Matches(c Candidate, q Question) bool {
	v, ok := c.fieldValue(q.Field)
	if !ok {
		return false
	}
	return strings.Contains(strings.ToLower(v), strings.ToLower(q.Expected))
}
