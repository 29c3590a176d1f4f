package properties

// parseLine turns one logical line into an entry. Comment and blank lines
// become a BasicEntry holding the line verbatim; everything else splits into
// the five fields of a PropertyEntry. There is no failure: every input has a
// parse.
func parseLine(raw string) Entry {
	if isCommentLine(raw) || isBlankLine(raw) {
		return &BasicEntry{Raw: raw}
	}

	lw := parseLeadingWhitespace(raw)
	key := parseKey(raw, len(lw))
	sep := parseSeparator(raw, len(lw)+len(key))
	value, ending := splitLineEnding(parseValue(raw, len(lw)+len(key)+len(sep)))
	if ending == "" {
		// the input ended without a terminator
		ending = "\n"
	}

	return &PropertyEntry{
		LeadingWhitespace: lw,
		Key:               key,
		Separator:         sep,
		Value:             value,
		LineEnding:        ending,
	}
}

// isCommentLine reports whether the first non-whitespace character is a
// comment marker.
func isCommentLine(line string) bool {
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c == ' ' || c == '\t' || c == '\f' || c == '\n' || c == '\r' {
			continue
		}
		return c == '#' || c == '!'
	}
	return false
}

// isBlankLine reports whether the line holds only whitespace, allowing a
// single backslash directly before a line break.
func isBlankLine(line string) bool {
	for i := 0; i < len(line); i++ {
		c := line[i]

		if c == '\\' && i+1 < len(line) && (line[i+1] == '\n' || line[i+1] == '\r') {
			return true
		}
		if c != ' ' && c != '\t' && c != '\f' && c != '\n' && c != '\r' {
			return false
		}
	}
	return true
}

func parseLeadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		c := line[i]

		// with no key at all the whitespace belongs to the separator
		if c == '=' || c == ':' {
			return ""
		}
		if c != ' ' && c != '\t' && c != '\f' && c != '\n' && c != '\r' {
			return line[:i]
		}
	}
	return line
}

// parseKey scans the escaped key starting at startAt. A backslash takes the
// following character into the key; after an escaped line break the leading
// whitespace of the continued line is skipped, and when the key ends while
// only skipped whitespace has followed the last escape pair, that whitespace
// is left to the separator.
func parseKey(line string, startAt int) string {
	ignoreWhitespace := false
	startOfWhitespace := -1

	for i := startAt; i < len(line); i++ {
		c := line[i]

		if ignoreWhitespace && (c == ' ' || c == '\t' || c == '\f') {
			continue
		}

		if c == '\n' || c == '\r' {
			if c == '\r' && i+1 < len(line) && line[i+1] == '\n' {
				i++
			}
			ignoreWhitespace = true
		}

		if c == '\\' && i+1 < len(line) {
			if next := line[i+1]; next == '\n' || next == '\r' {
				ignoreWhitespace = true
			}
			i++
			startOfWhitespace = i + 1
		} else if c == ' ' || c == '\t' || c == '\f' || c == '\n' || c == '\r' || c == '=' || c == ':' {
			if startOfWhitespace != -1 {
				return line[startAt:startOfWhitespace]
			}
			return line[startAt:i]
		} else {
			ignoreWhitespace = false
			startOfWhitespace = -1
		}
	}

	return line[startAt:]
}

// parseSeparator scans whitespace holding at most one '=' or ':'. A second
// separator character belongs to the value.
func parseSeparator(line string, startAt int) string {
	consumedSep := false

	for i := startAt; i < len(line); i++ {
		c := line[i]

		if c == '=' || c == ':' {
			if consumedSep {
				return line[startAt:i]
			}
			consumedSep = true
		}
		if c != ' ' && c != '\t' && c != '\f' && c != '=' && c != ':' {
			return line[startAt:i]
		}
	}

	return line[startAt:]
}

// parseValue returns the tail of the line from the first character that is
// not blank padding. Padding that belongs to the separator has already been
// consumed.
func parseValue(line string, startAt int) string {
	for i := startAt; i < len(line); i++ {
		if c := line[i]; c != ' ' && c != '\t' && c != '\f' {
			return line[i:]
		}
	}
	return line[startAt:]
}

// splitLineEnding splits the trailing run of line break characters off the
// value.
func splitLineEnding(s string) (value, ending string) {
	for i := len(s) - 1; i >= 0; i-- {
		if c := s[i]; c != '\r' && c != '\n' {
			return s[:i+1], s[i+1:]
		}
	}
	return "", s
}
