package properties

// Entry is one logical line of a properties document: either a PropertyEntry
// holding a key-value pair or a BasicEntry holding a comment or blank line.
// Concatenating the String of every entry of a Document reproduces the text
// the document was parsed from.
type Entry interface {
	String() string
	Clone() Entry
	Equal(other Entry) bool

	sealed()
}

// PropertyEntry is a key-value line. Every field holds escaped text and
// String is their concatenation, so a parsed entry serializes back to the
// exact characters it was read from.
type PropertyEntry struct {
	LeadingWhitespace string
	Key               string
	Separator         string
	Value             string
	LineEnding        string
}

// NewPropertyEntry returns an entry for the escaped key and value with
// default formatting: no leading whitespace, " = " as separator and "\n" as
// line ending.
func NewPropertyEntry(key, value string) *PropertyEntry {
	return &PropertyEntry{
		Key:        key,
		Separator:  " = ",
		Value:      value,
		LineEnding: "\n",
	}
}

func (e *PropertyEntry) String() string {
	return e.LeadingWhitespace + e.Key + e.Separator + e.Value + e.LineEnding
}

func (e *PropertyEntry) Clone() Entry {
	dup := *e
	return &dup
}

func (e *PropertyEntry) Equal(other Entry) bool {
	o, ok := other.(*PropertyEntry)
	return ok && *e == *o
}

func (*PropertyEntry) sealed() {}

// BasicEntry is a comment or blank line kept verbatim, line ending included.
type BasicEntry struct {
	Raw string
}

// NewBasicEntry returns an entry holding raw verbatim.
func NewBasicEntry(raw string) *BasicEntry {
	return &BasicEntry{Raw: raw}
}

func (e *BasicEntry) String() string { return e.Raw }

func (e *BasicEntry) Clone() Entry {
	dup := *e
	return &dup
}

func (e *BasicEntry) Equal(other Entry) bool {
	o, ok := other.(*BasicEntry)
	return ok && *e == *o
}

func (*BasicEntry) sealed() {}
