package flatfile

import "strings"

// Column names in file order.
const (
	ColType       = "type"
	ColName       = "name"
	ColAge        = "age"
	ColDescriptor = "descriptor"
	ColExtra1     = "extra1"
	ColExtra2     = "extra2"
	ColEmail      = "email"
	ColPhone      = "phone"
	ColSubjects   = "subjects"
)

// Header is the row written at the top of every file.
var Header = []string{
	ColType, ColName, ColAge, ColDescriptor,
	ColExtra1, ColExtra2,
	ColEmail, ColPhone, ColSubjects,
}

// SubjectSeparator joins subject names inside the subjects cell.
const SubjectSeparator = ";"

// legacyColumns maps header names of older files onto current columns.
var legacyColumns = map[string]string{
	"navn":       ColName,
	"alder":      ColAge,
	"køn":        ColDescriptor,
	"adresse":    ColDescriptor,
	"pensionist": ColDescriptor,
	"skole":      ColExtra1,
	"indkomst":   ColExtra1,
	"klassetrin": ColExtra2,
	"husleje":    ColExtra2,
	"telefon":    ColPhone,
	"fag":        ColSubjects,
}

// legacyTags maps type tags of older files onto current variant tags.
var legacyTags = map[string]string{
	"Elev":   "EnrichedPerson",
	"Borger": "EnrichedPerson",
	"Lærer":  "StaffPerson",
}

// canonicalColumn resolves a header cell to a column name. The second
// result is false for columns the codec does not know.
func canonicalColumn(cell string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff")))
	for _, c := range Header {
		if c == name {
			return c, true
		}
	}
	if c, ok := legacyColumns[name]; ok {
		return c, true
	}
	return "", false
}

// columnIndex maps column names to their position in a decoded header.
// The first occurrence of a column wins.
type columnIndex map[string]int

func newColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(Header))
	for i, cell := range header {
		c, ok := canonicalColumn(cell)
		if !ok {
			continue
		}
		if _, seen := idx[c]; !seen {
			idx[c] = i
		}
	}
	return idx
}

// cell returns the value of column c in row, or "" when the column is
// absent from the header or the row is short.
func (idx columnIndex) cell(row []string, c string) string {
	i, ok := idx[c]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (idx columnIndex) has(c string) bool {
	_, ok := idx[c]
	return ok
}
