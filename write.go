package properties

import (
	"io"

	"github.com/zeebo/errs/v2"
)

type errWriter struct {
	err error
	w   io.Writer
}

func (e *errWriter) Write(p []byte) (n int, err error) {
	if e.err != nil {
		return 0, e.err
	}
	n, e.err = e.w.Write(p)
	return n, e.err
}

// Write serializes the document to w, encoded in the configured charset.
// Characters above 0x7f are escaped or resolved per the configured unicode
// handling; with a charset that cannot hold them they are always escaped.
func (d *Document) Write(w io.Writer, opts ...Option) error {
	return d.write(w, NewOptions(opts...))
}

func (d *Document) write(w io.Writer, o *Options) error {
	cw := o.Charset.writer(w)
	ew := &errWriter{w: cw}
	for _, entry := range d.entries {
		io.WriteString(ew, serializeEntry(entry, o))
	}
	if err := cw.Close(); err != nil && ew.err == nil {
		ew.err = err
	}

	if ew.err != nil {
		return errs.Wrap(ew.err)
	}
	return nil
}

// serializeEntry returns the text written for entry under the configured
// unicode handling.
func serializeEntry(entry Entry, o *Options) string {
	switch {
	case o.UnicodeHandling == UnicodeEscape || !o.Charset.Unicode():
		return EscapeUnicode(entry.String())
	case o.UnicodeHandling == UnicodeUnescape:
		return UnescapeUnicode(entry.String())
	case o.UnicodeHandling == UnicodeByCharset:
		return UnescapeUnicode(entry.String())
	default:
		return entry.String()
	}
}
