// Package properties reads, edits and writes Java-style .properties
// documents without destroying their formatting.
//
// Specification:
//
// Entries:
//
// 0. a document is an ordered list of entries
//    a. a property entry holds leading whitespace, key, separator, value
//       and line ending, all of them in escaped form
//    b. a basic entry holds a comment or blank line verbatim
//    c. concatenating the serialized entries reproduces the parsed text
//
// Logical lines:
//
// 1. the decoded character stream is broken up into logical lines
//    a. lines are terminated by '\n', '\r' or "\r\n"
//    b. a terminator may be escaped with '\' causing the line to continue
//    c. comment and blank lines never continue
//    d. the last line may end without a terminator; such a line serializes
//       with a trailing '\n', the only deviation from exact round-trips
//
// 2. lines whose first non-whitespace character is '#' or '!' are comments
//
// 3. lines holding only unescaped whitespace are blank
//    a. a backslash directly before the terminator leaves a line blank
//
// 4. every other line is a key-value pair
//    a. the key runs to the first unescaped whitespace, '=', ':' or break
//    b. the separator is whitespace holding at most one '=' or ':'
//    c. the value runs to the end of the logical line
//    d. key and value stay escaped; Unescape resolves their logical text
//
// Documents:
//
// 5. a repeated key keeps the position of its first occurrence and the
//    value of its last one
//
// 6. malformed \uXXXX sequences never fail anything; they stay literal and
//    are collected as diagnostics
package properties

import (
	"fmt"
	"io"

	"github.com/zeebo/errs/v2"
)

// Document is an ordered list of entries with an index over the property
// keys. It is not safe for concurrent use.
type Document struct {
	entries  []Entry
	index    map[string]*PropertyEntry
	keyOrder []string
	diags    []Diagnostic
}

// Diagnostic records a malformed \uXXXX sequence found while unescaping the
// key or value of an appended entry. Entry is the index of the affected
// entry at the time it was appended.
type Diagnostic struct {
	Sequence string
	Entry    int
}

// New returns an empty document.
func New() *Document {
	return &Document{index: make(map[string]*PropertyEntry)}
}

// Read parses a document from r, decoding the bytes with the configured
// charset.
func Read(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	return Parse(data, opts...)
}

// Parse parses a document from data, decoding the bytes with the configured
// charset. Parsing cannot fail: every input decodes to some document. The
// returned error only ever reports a decoding problem.
func Parse(data []byte, opts ...Option) (*Document, error) {
	o := NewOptions(opts...)
	src, err := o.Charset.decode(data)
	if err != nil {
		return nil, err
	}

	doc := New()
	s := scanner{src: src}
	for line, ok := s.next(); ok; line, ok = s.next() {
		doc.Append(parseLine(line))
	}
	return doc, nil
}

// Append adds entry at the end of the document. A property entry is also
// indexed under its unescaped key: a repeated key keeps its original
// position and the appended entry wins.
func (d *Document) Append(entry Entry) {
	switch e := entry.(type) {
	case *PropertyEntry:
		d.ensureIndex()
		d.entries = append(d.entries, e)

		at := len(d.entries) - 1
		key := d.unescapeAt(e.Key, at)
		// the value is unescaped only to collect its diagnostics
		d.unescapeAt(e.Value, at)
		if _, ok := d.index[key]; !ok {
			d.keyOrder = append(d.keyOrder, key)
		}
		d.index[key] = e

	case *BasicEntry:
		d.entries = append(d.entries, e)

	default:
		panic(fmt.Sprintf("properties: unexpected entry type %T", entry))
	}
}

// Set sets key to value, both unescaped. An existing entry keeps its
// position and formatting and only has its value replaced. A new key is
// appended as "<key> = <value>".
func (d *Document) Set(key, value string) {
	if pe, ok := d.index[key]; ok {
		pe.Value = EscapeValue(value)
		return
	}

	d.ensureIndex()
	pe := NewPropertyEntry(EscapeKey(key), EscapeValue(value))
	d.entries = append(d.entries, pe)
	d.keyOrder = append(d.keyOrder, key)
	d.index[key] = pe
}

// Get returns the unescaped value of key and whether the key exists.
func (d *Document) Get(key string) (string, bool) {
	pe, ok := d.index[key]
	if !ok {
		return "", false
	}
	return Unescape(pe.Value), true
}

// GetDefault returns the unescaped value of key, or fallback when the key
// does not exist.
func (d *Document) GetDefault(key, fallback string) string {
	if value, ok := d.Get(key); ok {
		return value
	}
	return fallback
}

// ContainsKey reports whether the document has a property entry for key.
func (d *Document) ContainsKey(key string) bool {
	_, ok := d.index[key]
	return ok
}

// EntryFor returns the indexed property entry of key. The entry is the
// document's own handle: its escaped fields may be edited in place.
func (d *Document) EntryFor(key string) (*PropertyEntry, bool) {
	pe, ok := d.index[key]
	return pe, ok
}

// Remove drops key and its entry from the document.
func (d *Document) Remove(key string) {
	pe, ok := d.index[key]
	if !ok {
		return
	}
	d.dropKey(key)
	for i, entry := range d.entries {
		if entry.Equal(pe) {
			d.entries = append(d.entries[:i], d.entries[i+1:]...)
			break
		}
	}
}

// RemoveEntry drops every entry structurally equal to entry, along with any
// matching index mappings.
func (d *Document) RemoveEntry(entry Entry) {
	kept := d.entries[:0]
	removed := false
	for _, e := range d.entries {
		if e.Equal(entry) {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	d.entries = kept

	if !removed {
		return
	}
	if _, ok := entry.(*PropertyEntry); !ok {
		return
	}
	for _, key := range d.Keys() {
		if d.index[key].Equal(entry) {
			d.dropKey(key)
		}
	}
}

// Replace swaps the first entry structurally equal to old for new and
// reports whether a swap happened. The index follows: old's mapping is
// dropped and new is indexed, so a re-added key moves to the end of the key
// order. Without a match the document is left alone.
func (d *Document) Replace(old, new Entry) bool {
	at := -1
	for i, e := range d.entries {
		if e.Equal(old) {
			at = i
			break
		}
	}
	if at == -1 {
		return false
	}

	if _, ok := old.(*PropertyEntry); ok {
		for _, key := range d.keyOrder {
			if d.index[key].Equal(old) {
				d.dropKey(key)
				break
			}
		}
	}
	if pe, ok := new.(*PropertyEntry); ok {
		d.ensureIndex()
		key := Unescape(pe.Key)
		if _, ok := d.index[key]; !ok {
			d.keyOrder = append(d.keyOrder, key)
		}
		d.index[key] = pe
	}

	d.entries[at] = new
	return true
}

// Clear drops every entry and diagnostic.
func (d *Document) Clear() {
	d.entries = nil
	d.index = make(map[string]*PropertyEntry)
	d.keyOrder = nil
	d.diags = nil
}

// SetEntries replaces the document content with entries, rebuilding the
// index.
func (d *Document) SetEntries(entries []Entry) {
	d.Clear()
	for _, e := range entries {
		d.Append(e)
	}
}

// Entries returns the entries in document order. The slice is a copy; the
// entries are the document's own handles.
func (d *Document) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

// Keys returns every key, unescaped, in insertion order.
func (d *Document) Keys() []string {
	return append([]string(nil), d.keyOrder...)
}

// Values returns the unescaped value of every key in insertion order.
func (d *Document) Values() []string {
	values := make([]string, 0, len(d.keyOrder))
	for _, key := range d.keyOrder {
		values = append(values, Unescape(d.index[key].Value))
	}
	return values
}

// ToMap returns the key-value pairs as a plain map, unescaped.
func (d *Document) ToMap() map[string]string {
	m := make(map[string]string, len(d.keyOrder))
	for _, key := range d.keyOrder {
		m[key] = Unescape(d.index[key].Value)
	}
	return m
}

// PropertyCount returns the number of distinct keys.
func (d *Document) PropertyCount() int { return len(d.index) }

// EntryCount returns the number of entries, comments and blanks included.
func (d *Document) EntryCount() int { return len(d.entries) }

// Clone returns a deep copy sharing nothing with d.
func (d *Document) Clone() *Document {
	c := New()
	for _, e := range d.entries {
		c.Append(e.Clone())
	}
	return c
}

// Equal reports whether d and other hold structurally equal entries in the
// same order, which makes them serialize identically.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.entries) != len(other.entries) {
		return false
	}
	for i, e := range d.entries {
		if !e.Equal(other.entries[i]) {
			return false
		}
	}
	return true
}

// Diagnostics returns the malformed escape sequences found while appending
// entries.
func (d *Document) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), d.diags...)
}

func (d *Document) ensureIndex() {
	if d.index == nil {
		d.index = make(map[string]*PropertyEntry)
	}
}

func (d *Document) unescapeAt(s string, entry int) string {
	return unescape(s, func(seq string) {
		d.diags = append(d.diags, Diagnostic{Sequence: seq, Entry: entry})
	})
}

func (d *Document) dropKey(key string) {
	delete(d.index, key)
	for i, k := range d.keyOrder {
		if k == key {
			d.keyOrder = append(d.keyOrder[:i], d.keyOrder[i+1:]...)
			break
		}
	}
}
