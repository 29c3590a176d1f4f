package properties

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Unescape resolves every escape sequence of s and returns the logical text:
// \uXXXX sequences become their code point, literal \n and \r become real
// control characters, \\ collapses to a single backslash, any other escaping
// backslash is dropped, continuation line breaks are removed together with
// the leading whitespace of the continued line, and a lone trailing
// backslash is dropped. Malformed \uXXXX sequences stay as literal text.
//
// Unescape works the same for key and value text.
func Unescape(s string) string {
	return unescape(s, nil)
}

// UnescapeUnicode resolves only the \uXXXX sequences of s and leaves every
// other character, escaping backslashes included, untouched.
func UnescapeUnicode(s string) string {
	return unescapeUnicode(s, nil)
}

func unescape(s string, report func(seq string)) string {
	var sb strings.Builder
	sb.Grow(len(s))

	nonWhitespace := false
	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == '\\':
			if i == len(s)-1 {
				continue
			}

			switch s[i+1] {
			case '\\':
				sb.WriteByte('\\')
				i++

			case 'u':
				if r, size, ok := decodeUnicodeEscape(s[i:]); ok {
					sb.WriteRune(r)
					i += size - 1
				} else {
					// keep the sequence intact: the backslash now, the rest
					// as ordinary characters on the following iterations
					sb.WriteByte('\\')
					if report != nil {
						report(unicodeEscapeWindow(s[i:]))
					}
				}

			case 'n':
				sb.WriteByte('\n')
				i++

			case 'r':
				sb.WriteByte('\r')
				i++

			default:
				// the backslash is dropped and its follower reprocessed
			}

		case c == '\n':
			nonWhitespace = false

		case c == '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			nonWhitespace = false

		case !nonWhitespace && (c == ' ' || c == '\t' || c == '\f'):
			// whitespace at the beginning of a line is skipped

		default:
			nonWhitespace = true
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

func unescapeUnicode(s string, report func(seq string)) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		if c == '\\' && i+1 < len(s) && s[i+1] == 'u' {
			if r, size, ok := decodeUnicodeEscape(s[i:]); ok {
				sb.WriteRune(r)
				i += size - 1
				continue
			}
			if report != nil {
				report(unicodeEscapeWindow(s[i:]))
			}
		}

		sb.WriteByte(c)
	}

	return sb.String()
}

// decodeUnicodeEscape reads the \uXXXX sequence at the start of s, combining
// a surrogate pair with a directly following \uXXXX sequence, and reports
// the number of bytes consumed. The four digits must be hex, in either case,
// exactly.
func decodeUnicodeEscape(s string) (r rune, size int, ok bool) {
	if len(s) < 6 {
		return 0, 0, false
	}
	v, err := strconv.ParseUint(s[2:6], 16, 32)
	if err != nil {
		return 0, 0, false
	}

	r = rune(v)
	if utf16.IsSurrogate(r) && len(s) >= 12 && s[6] == '\\' && s[7] == 'u' {
		if v2, err := strconv.ParseUint(s[8:12], 16, 32); err == nil {
			if paired := utf16.DecodeRune(r, rune(v2)); paired != utf8.RuneError {
				return paired, 12, true
			}
		}
	}
	return r, 6, true
}

// unicodeEscapeWindow returns the malformed sequence for reporting: the six
// characters starting at the backslash, or everything left when the input
// ends early.
func unicodeEscapeWindow(s string) string {
	if len(s) > 6 {
		return s[:6]
	}
	return s
}

// EscapeValue escapes s for use as value text: real line breaks become
// literal \n and \r, and backslashes are doubled. Characters above 0x7f are
// left alone; the writer escapes them when the target charset requires it.
func EscapeValue(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteByte(c)
		}
	}

	return sb.String()
}

// EscapeKey escapes s for use as key text: whitespace, line break, comment,
// separator and backslash characters get a backslash prefix. A real CRLF
// pair is escaped as one unit.
func EscapeKey(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case ' ', '\t', '\f', '=', ':', '\n', '\r', '#', '!', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)

		if c == '\r' && i+1 < len(s) && s[i+1] == '\n' {
			sb.WriteByte('\n')
			i++
		}
	}

	return sb.String()
}

// EscapeUnicode replaces every rune above 0x7f with a \uXXXX escape
// sequence. ASCII passes through unchanged.
func EscapeUnicode(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		switch {
		case r <= 0x7f:
			sb.WriteRune(r)
		case r > 0xffff:
			fmt.Fprintf(&sb, `\u%x`, r)
		default:
			fmt.Fprintf(&sb, `\u%04x`, r)
		}
	}

	return sb.String()
}

// comment prefixes s and each of its continued lines with a '#'. A trailing
// line break gets no marker after it.
func comment(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 1)

	sb.WriteByte('#')
	for i := 0; i < len(s); i++ {
		c := s[i]
		sb.WriteByte(c)

		if c == '\n' || c == '\r' {
			if c == '\r' && i+1 < len(s) && s[i+1] == '\n' {
				sb.WriteByte('\n')
				i++
			}
			if i+1 < len(s) {
				sb.WriteByte('#')
			}
		}
	}

	return sb.String()
}
