package properties

import (
	"bytes"
	"testing"

	"github.com/zeebo/assert"
)

func TestEntry(t *testing.T) {
	pe := NewPropertyEntry("a", "1")
	assert.Equal(t, pe.String(), "a = 1\n")
	assert.True(t, pe.Equal(pe.Clone()))
	assert.False(t, pe.Equal(NewPropertyEntry("a", "2")))
	assert.False(t, pe.Equal(NewBasicEntry("a = 1\n")))

	be := NewBasicEntry("# note\n")
	assert.Equal(t, be.String(), "# note\n")
	assert.True(t, be.Equal(be.Clone()))
	assert.False(t, be.Equal(NewBasicEntry("# other\n")))
}

func TestAppend(t *testing.T) {
	doc := New()
	doc.Append(NewBasicEntry("# first\n"))
	doc.Append(NewPropertyEntry("dup", "1"))
	doc.Append(NewPropertyEntry("dup", "2"))

	assert.DeepEqual(t, doc.Keys(), []string{"dup"})
	value, ok := doc.Get("dup")
	assert.True(t, ok)
	assert.Equal(t, value, "2")

	assert.Equal(t, doc.EntryCount(), 3)
	assert.Equal(t, doc.PropertyCount(), 1)
	assert.Equal(t, serialized(t, doc), "# first\ndup = 1\ndup = 2\n")
}

func TestSet(t *testing.T) {
	doc, err := Parse([]byte("greeting   :   hello\r\n"))
	assert.NoError(t, err)

	doc.Set("greeting", "goodbye")
	assert.Equal(t, serialized(t, doc), "greeting   :   goodbye\r\n")

	doc.Set("answer", "42")
	assert.Equal(t, serialized(t, doc), "greeting   :   goodbye\r\nanswer = 42\n")

	doc.Set("key with spaces", "line1\nline2")
	value, ok := doc.Get("key with spaces")
	assert.True(t, ok)
	assert.Equal(t, value, "line1\nline2")
	assert.Equal(t, serialized(t, doc),
		"greeting   :   goodbye\r\nanswer = 42\nkey\\ with\\ spaces = line1\\nline2\n")
}

func TestGet(t *testing.T) {
	doc, err := Parse([]byte("a = 1\n"))
	assert.NoError(t, err)

	value, ok := doc.Get("a")
	assert.True(t, ok)
	assert.Equal(t, value, "1")

	_, ok = doc.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, doc.GetDefault("a", "9"), "1")
	assert.Equal(t, doc.GetDefault("missing", "9"), "9")

	assert.True(t, doc.ContainsKey("a"))
	assert.False(t, doc.ContainsKey("missing"))
}

func TestEntryFor(t *testing.T) {
	doc, err := Parse([]byte("a = 1\n"))
	assert.NoError(t, err)

	pe, ok := doc.EntryFor("a")
	assert.True(t, ok)
	pe.Separator = "="
	pe.LineEnding = "\r\n"
	assert.Equal(t, serialized(t, doc), "a=1\r\n")

	_, ok = doc.EntryFor("missing")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	doc, err := Parse([]byte("# keep\na = 1\nb = 2\n"))
	assert.NoError(t, err)

	doc.Remove("a")
	assert.False(t, doc.ContainsKey("a"))
	assert.DeepEqual(t, doc.Keys(), []string{"b"})
	assert.Equal(t, serialized(t, doc), "# keep\nb = 2\n")

	doc.Remove("missing")
	assert.Equal(t, serialized(t, doc), "# keep\nb = 2\n")
}

func TestRemoveEntry(t *testing.T) {
	doc, err := Parse([]byte("a = 1\n# note\na = 1\nb = 2\n"))
	assert.NoError(t, err)

	doc.RemoveEntry(&PropertyEntry{Key: "a", Separator: " = ", Value: "1", LineEnding: "\n"})
	assert.False(t, doc.ContainsKey("a"))
	assert.Equal(t, serialized(t, doc), "# note\nb = 2\n")

	doc.RemoveEntry(NewBasicEntry("# note\n"))
	assert.Equal(t, serialized(t, doc), "b = 2\n")
}

func TestReplace(t *testing.T) {
	doc, err := Parse([]byte("a = 1\nb = 2\n"))
	assert.NoError(t, err)

	old, ok := doc.EntryFor("a")
	assert.True(t, ok)

	assert.True(t, doc.Replace(old, NewPropertyEntry("c", "3")))
	assert.DeepEqual(t, doc.Keys(), []string{"b", "c"})
	assert.Equal(t, serialized(t, doc), "c = 3\nb = 2\n")

	assert.False(t, doc.Replace(NewPropertyEntry("x", "9"), NewPropertyEntry("y", "9")))
	assert.DeepEqual(t, doc.Keys(), []string{"b", "c"})

	b, ok := doc.EntryFor("b")
	assert.True(t, ok)
	assert.True(t, doc.Replace(b, NewBasicEntry(comment(b.String()))))
	assert.False(t, doc.ContainsKey("b"))
	assert.Equal(t, serialized(t, doc), "c = 3\n#b = 2\n")
}

func TestClear(t *testing.T) {
	doc, err := Parse([]byte("a = \\uQQQQ\n"))
	assert.NoError(t, err)
	assert.Equal(t, doc.EntryCount(), 1)
	assert.Equal(t, len(doc.Diagnostics()), 1)

	doc.Clear()
	assert.Equal(t, doc.EntryCount(), 0)
	assert.Equal(t, doc.PropertyCount(), 0)
	assert.Equal(t, len(doc.Diagnostics()), 0)
	assert.Equal(t, serialized(t, doc), "")
}

func TestSetEntries(t *testing.T) {
	doc := New()
	doc.SetEntries([]Entry{
		NewBasicEntry("# generated\n"),
		NewPropertyEntry("a", "1"),
		NewPropertyEntry("b", "2"),
	})

	assert.DeepEqual(t, doc.Keys(), []string{"a", "b"})
	assert.Equal(t, serialized(t, doc), "# generated\na = 1\nb = 2\n")
}

func TestEntries(t *testing.T) {
	doc, err := Parse([]byte("a = 1\nb = 2\n"))
	assert.NoError(t, err)

	entries := doc.Entries()
	assert.Equal(t, len(entries), 2)

	// the slice is a copy, the entries are shared handles
	entries[0] = NewBasicEntry("# replaced\n")
	assert.Equal(t, serialized(t, doc), "a = 1\nb = 2\n")
}

func TestToMap(t *testing.T) {
	doc, err := Parse([]byte("a = 1\nb = caf\\u00e9\na = 3\n"))
	assert.NoError(t, err)
	assert.DeepEqual(t, doc.ToMap(), map[string]string{"a": "3", "b": "café"})
}

func TestClone(t *testing.T) {
	doc, err := Parse([]byte("# c\na = 1\n"))
	assert.NoError(t, err)

	clone := doc.Clone()
	assert.True(t, doc.Equal(clone))

	clone.Set("a", "9")
	value, ok := doc.Get("a")
	assert.True(t, ok)
	assert.Equal(t, value, "1")
	assert.False(t, doc.Equal(clone))
}

func TestEqual(t *testing.T) {
	a, err := Parse([]byte("x = 1\n"))
	assert.NoError(t, err)
	b, err := Parse([]byte("x = 1\n"))
	assert.NoError(t, err)
	assert.True(t, a.Equal(b))

	// same pair, different formatting
	c, err := Parse([]byte("x=1\n"))
	assert.NoError(t, err)
	assert.False(t, a.Equal(c))
}

func TestDiagnostics(t *testing.T) {
	doc := New()
	doc.Append(NewPropertyEntry("ok", "fine"))
	doc.Append(NewPropertyEntry(`bad\uXX`, `\uFFFG`))

	assert.DeepEqual(t, doc.Diagnostics(), []Diagnostic{
		{Sequence: `\uXX`, Entry: 1},
		{Sequence: `\uFFFG`, Entry: 1},
	})
}

func TestDocument_ZeroValue(t *testing.T) {
	var doc Document

	_, ok := doc.Get("a")
	assert.False(t, ok)

	doc.Set("a", "1")
	value, ok := doc.Get("a")
	assert.True(t, ok)
	assert.Equal(t, value, "1")

	doc.Remove("missing")
	assert.Equal(t, serialized(t, &doc), "a = 1\n")
}

func serialized(t *testing.T, doc *Document) string {
	t.Helper()

	var buf bytes.Buffer
	assert.NoError(t, doc.Write(&buf))
	return buf.String()
}
