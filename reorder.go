package properties

import (
	"fmt"
	"sort"
)

// entryGroup is a run of entries that moves as one unit when reordering: at
// most one property entry plus the comment and blank lines attached to it.
type entryGroup struct {
	pe      *PropertyEntry
	entries []Entry
}

func newEntryGroup(entries []Entry) *entryGroup {
	g := &entryGroup{entries: entries}
	for _, e := range entries {
		if pe, ok := e.(*PropertyEntry); ok {
			if g.pe != nil {
				panic("properties: more than one property entry in a group")
			}
			g.pe = pe
		}
	}
	return g
}

// groupEntries splits entries into groups per the attachment policy.
func groupEntries(entries []Entry, attach AttachCommentsTo) []*entryGroup {
	var groups []*entryGroup
	var buffer []Entry

	switch attach {
	case AttachToNext:
		for _, entry := range entries {
			buffer = append(buffer, entry)
			if _, ok := entry.(*PropertyEntry); ok {
				groups = append(groups, newEntryGroup(buffer))
				buffer = nil
			}
		}

	case AttachToPrev:
		for _, entry := range entries {
			if _, ok := entry.(*PropertyEntry); ok && len(buffer) > 0 {
				groups = append(groups, newEntryGroup(buffer))
				buffer = nil
			}
			buffer = append(buffer, entry)
		}

	case KeepOriginalPosition:
		for _, entry := range entries {
			groups = append(groups, newEntryGroup([]Entry{entry}))
		}
		return groups

	default:
		panic(fmt.Sprintf("properties: unexpected attachment policy %d", attach))
	}

	if len(buffer) > 0 {
		groups = append(groups, newEntryGroup(buffer))
	}
	return groups
}

// sortGroups stable-sorts groups by escaped key. Keyless groups sort last
// when comments attach to the following entry and first when they attach to
// the preceding one. With KeepOriginalPosition only the property entries
// move, swapped among the positions they already occupy.
func sortGroups(groups []*entryGroup, attach AttachCommentsTo) {
	switch attach {
	case AttachToNext:
		sort.SliceStable(groups, func(i, j int) bool {
			a, b := groups[i], groups[j]
			switch {
			case a.pe == nil:
				return false
			case b.pe == nil:
				return true
			default:
				return a.pe.Key < b.pe.Key
			}
		})

	case AttachToPrev:
		sort.SliceStable(groups, func(i, j int) bool {
			a, b := groups[i], groups[j]
			switch {
			case b.pe == nil:
				return false
			case a.pe == nil:
				return true
			default:
				return a.pe.Key < b.pe.Key
			}
		})

	case KeepOriginalPosition:
		var keyed []*entryGroup
		for _, g := range groups {
			if g.pe != nil {
				keyed = append(keyed, g)
			}
		}
		sort.SliceStable(keyed, func(i, j int) bool {
			return keyed[i].pe.Key < keyed[j].pe.Key
		})
		for i, g := range groups {
			if g.pe != nil {
				groups[i] = keyed[0]
				keyed = keyed[1:]
			}
		}
	}
}

// popGroup removes the first group keyed by escapedKey, returning the
// remaining groups and the removed one, or nil when no group matches.
func popGroup(groups []*entryGroup, escapedKey string) ([]*entryGroup, *entryGroup) {
	for i, g := range groups {
		if g.pe != nil && g.pe.Key == escapedKey {
			return append(groups[:i], groups[i+1:]...), g
		}
	}
	return groups, nil
}

func flattenGroups(groups []*entryGroup) []Entry {
	var entries []Entry
	for _, g := range groups {
		entries = append(entries, g.entries...)
	}
	return entries
}

// ReorderByKey sorts the document's property entries by their escaped key,
// keeping attached comment and blank lines with them per the configured
// attachment policy. The sort is stable, so entries with equal keys keep
// their relative order. Only the entry sequence changes; the key index is
// untouched.
func (d *Document) ReorderByKey(opts ...ReformatOption) {
	o := NewReformatOptions(opts...)
	groups := groupEntries(d.entries, o.AttachCommentsTo)
	sortGroups(groups, o.AttachCommentsTo)
	d.entries = flattenGroups(groups)
}

// ReorderByTemplate rearranges the document's property entries into the
// order their keys have in template, keeping attached comment and blank
// lines with them per the configured attachment policy. Entries without a
// counterpart in template move to the end in their original relative order.
// The template is not modified.
func (d *Document) ReorderByTemplate(template *Document, opts ...ReformatOption) {
	o := NewReformatOptions(opts...)
	groups := groupEntries(d.entries, o.AttachCommentsTo)

	ordered := make([]Entry, 0, len(d.entries))
	for _, entry := range template.entries {
		pe, ok := entry.(*PropertyEntry)
		if !ok {
			continue
		}
		rest, g := popGroup(groups, pe.Key)
		groups = rest
		if g != nil {
			ordered = append(ordered, g.entries...)
		}
	}
	for _, g := range groups {
		ordered = append(ordered, g.entries...)
	}

	d.entries = ordered
}
