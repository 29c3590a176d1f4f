package properties

import (
	"io"

	"github.com/zeebo/errs/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names a text encoding documents are stored in. UTF8 is the
// default wherever no charset is configured.
type Charset struct {
	name string
	enc  encoding.Encoding
	utf  bool
}

var (
	// UTF8 passes bytes through unaltered in both directions.
	UTF8 = &Charset{name: "UTF-8", utf: true}

	// UTF16 decodes big or little endian by the byte order mark, big
	// endian when there is none, and encodes big endian with a mark.
	UTF16 = &Charset{name: "UTF-16", enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM), utf: true}

	// UTF16BE neither consumes nor produces a byte order mark.
	UTF16BE = &Charset{name: "UTF-16BE", enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), utf: true}

	// UTF16LE neither consumes nor produces a byte order mark.
	UTF16LE = &Charset{name: "UTF-16LE", enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), utf: true}

	// ISO8859_1 cannot hold characters above 0xff, so the writer escapes
	// everything above 0x7f.
	ISO8859_1 = &Charset{name: "ISO-8859-1", enc: charmap.ISO8859_1}
)

func (c *Charset) String() string { return c.name }

// Unicode reports whether the charset can hold every unicode character
// without escaping.
func (c *Charset) Unicode() bool { return c.utf }

// decode converts stored bytes into text.
func (c *Charset) decode(data []byte) (string, error) {
	if c.enc == nil {
		return string(data), nil
	}
	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errs.Wrap(err)
	}
	return string(out), nil
}

// writer returns w encoding everything written to it in the charset. The
// returned writer must be closed to flush.
func (c *Charset) writer(w io.Writer) io.WriteCloser {
	if c.enc == nil {
		return nopWriteCloser{w}
	}
	return transform.NewWriter(w, c.enc.NewEncoder())
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
