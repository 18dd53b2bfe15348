package paper

// Metadata is a sparse extraction result produced by a single extractor.
// Absence is explicit: a nil pointer or nil slice means the extractor had
// nothing to say about the field, which is distinct from a present empty
// value. Merging relies on that distinction.
type Metadata struct {
	Title           *string
	DocumentType    *string
	PublicationDate *PartialDate
	JournalTitle    *string
	BookTitle       *string
	Publisher       *string
	Authors         []string
	Affiliations    []string
	Countries       []string
	Abstract        *string
	Year            *int
	Keywords        []string
}

// IsEmpty reports whether no field at all was extracted.
func (m Metadata) IsEmpty() bool {
	return m.Title == nil &&
		m.DocumentType == nil &&
		m.PublicationDate == nil &&
		m.JournalTitle == nil &&
		m.BookTitle == nil &&
		m.Publisher == nil &&
		m.Authors == nil &&
		m.Affiliations == nil &&
		m.Countries == nil &&
		m.Abstract == nil &&
		m.Year == nil &&
		m.Keywords == nil
}

// String returns a pointer to s, or nil if s is empty.
// Convenience for building sparse results.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
