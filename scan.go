package properties

// scanner splits decoded input into logical lines. A logical line runs to
// the first unescaped line break, which is kept in the line. A backslash
// escapes a directly following break, continuing the line, except on comment
// and blank lines, which never continue.
type scanner struct {
	src string
	pos int
}

// next returns the next logical line, or false when the input is exhausted.
// The final line carries no terminator when the input ends without one.
func (s *scanner) next() (string, bool) {
	if s.pos >= len(s.src) {
		return "", false
	}

	var (
		start     = s.pos
		escaped   = false
		isComment = false
		isBlank   = true
	)

	for s.pos < len(s.src) {
		c := s.src[s.pos]
		s.pos++

		// the first non-whitespace character decides the classification
		if isBlank && (c == '#' || c == '!') {
			isComment = true
			isBlank = false
		}
		if isBlank && c != ' ' && c != '\t' && c != '\f' && !escaped {
			// a backslash directly before a break or the end of input
			// leaves the line blank
			if c != '\\' || (s.pos < len(s.src) && s.src[s.pos] != '\n' && s.src[s.pos] != '\r') {
				isBlank = false
			}
		}

		if c == '\n' && (!escaped || isComment || isBlank) {
			break
		} else if c == '\r' && (!escaped || isComment || isBlank) {
			// a lone \r terminates too, taking a directly following \n along
			if s.pos < len(s.src) && s.src[s.pos] == '\n' {
				s.pos++
			}
			break
		}

		if c == '\r' && escaped {
			// an escaped \r\n stays escaped as a whole so the \n does not
			// terminate the line either
			if !(s.pos < len(s.src) && s.src[s.pos] == '\n') {
				escaped = false
			}
		} else {
			escaped = c == '\\' && !escaped
		}
	}

	return s.src[start:s.pos], true
}
