package properties

import (
	"context"
	"regexp"
	"strings"

	"github.com/zeebo/errs/v2"
)

// ErrInvalidFormat tags errors about format strings that do not follow the
// format grammar.
var ErrInvalidFormat = errs.Tag("invalid format")

// formatPattern is the grammar of format strings: optional leading
// whitespace, the literal <key>, a separator of whitespace holding at most
// one '=' or ':', the literal <value> and a line ending. Whitespace and
// line endings are spelled as two-character escape sequences; a plain space
// may be written directly.
var formatPattern = regexp.MustCompile(
	`^(?i)(?P<leading>( |\\t|\\f)*)<key>(?P<separator>( |\\t|\\f)*( |\\t|\\f|=|:)( |\\t|\\f)*)<value>(?P<ending>\\n|\\r|\\r\\n)$`,
)

// entryFormat holds a parsed format string with its escape sequences
// converted to the real characters.
type entryFormat struct {
	leadingWhitespace string
	separator         string
	lineEnding        string
}

func parseFormat(format string) (entryFormat, error) {
	m := formatPattern.FindStringSubmatch(format)
	if m == nil {
		return entryFormat{}, ErrInvalidFormat.Errorf("%q", format)
	}
	return entryFormat{
		leadingWhitespace: convertFormatEscapes(m[formatPattern.SubexpIndex("leading")]),
		separator:         convertFormatEscapes(m[formatPattern.SubexpIndex("separator")]),
		lineEnding:        convertFormatEscapes(m[formatPattern.SubexpIndex("ending")]),
	}, nil
}

func convertFormatEscapes(s string) string {
	s = strings.ReplaceAll(s, `\t`, "\t")
	s = strings.ReplaceAll(s, `\f`, "\f")
	s = strings.ReplaceAll(s, `\r`, "\r")
	s = strings.ReplaceAll(s, `\n`, "\n")
	return s
}

// Reformat rewrites the formatting of every entry to the configured format.
// Property entries get its leading whitespace, separator and line ending;
// with ReformatKeyAndValue set their key and value text is re-escaped
// canonically, collapsing continuation lines. Comment and blank lines lose
// their line break characters and get the format's line ending. The entry
// order does not change.
//
// An invalid format fails before anything is modified.
func (d *Document) Reformat(opts ...ReformatOption) error {
	o := NewReformatOptions(opts...)
	format, err := parseFormat(o.Format)
	if err != nil {
		return err
	}

	reformatted := make([]Entry, 0, len(d.entries))
	for _, entry := range d.entries {
		switch e := entry.(type) {
		case *PropertyEntry:
			key, value := e.Key, e.Value
			if o.ReformatKeyAndValue {
				key = EscapeKey(Unescape(key))
				value = EscapeValue(Unescape(value))
			}
			reformatted = append(reformatted, &PropertyEntry{
				LeadingWhitespace: format.leadingWhitespace,
				Key:               key,
				Separator:         format.separator,
				Value:             value,
				LineEnding:        format.lineEnding,
			})

		case *BasicEntry:
			raw := strings.ReplaceAll(e.Raw, "\n", "")
			raw = strings.ReplaceAll(raw, "\r", "")
			reformatted = append(reformatted, &BasicEntry{Raw: raw + format.lineEnding})
		}
	}

	d.SetEntries(reformatted)
	return nil
}

// ReformatFile loads the document stored at URL, reformats it and writes it
// back in place, decoding and encoding with the configured charset.
func ReformatFile(ctx context.Context, URL string, opts ...ReformatOption) error {
	o := NewReformatOptions(opts...)

	doc, err := Load(ctx, URL, WithCharset(o.Charset))
	if err != nil {
		return err
	}
	if err := doc.Reformat(opts...); err != nil {
		return err
	}
	return doc.Overwrite(ctx, URL, WithCharset(o.Charset))
}

// ReorderFileByKey loads the document stored at URL, sorts its property
// entries by key and writes it back in place, decoding and encoding with
// the configured charset.
func ReorderFileByKey(ctx context.Context, URL string, opts ...ReformatOption) error {
	o := NewReformatOptions(opts...)

	doc, err := Load(ctx, URL, WithCharset(o.Charset))
	if err != nil {
		return err
	}
	doc.ReorderByKey(opts...)
	return doc.Overwrite(ctx, URL, WithCharset(o.Charset))
}

// ReorderFileByTemplate loads the document stored at URL, rearranges its
// property entries into the key order of the document stored at templateURL
// and writes it back in place, decoding and encoding with the configured
// charset.
func ReorderFileByTemplate(ctx context.Context, templateURL, URL string, opts ...ReformatOption) error {
	o := NewReformatOptions(opts...)

	template, err := Load(ctx, templateURL, WithCharset(o.Charset))
	if err != nil {
		return err
	}
	doc, err := Load(ctx, URL, WithCharset(o.Charset))
	if err != nil {
		return err
	}
	doc.ReorderByTemplate(template, opts...)
	return doc.Overwrite(ctx, URL, WithCharset(o.Charset))
}
