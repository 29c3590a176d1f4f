package properties

// UnicodeHandling picks how characters above 0x7f are written out.
type UnicodeHandling int

const (
	// UnicodeDoNothing keeps escape sequences and real characters as they
	// are.
	UnicodeDoNothing UnicodeHandling = iota

	// UnicodeByCharset resolves \uXXXX sequences when the target charset
	// can hold the characters and escapes the characters when it cannot.
	UnicodeByCharset

	// UnicodeEscape always writes characters above 0x7f as \uXXXX.
	UnicodeEscape

	// UnicodeUnescape always resolves \uXXXX sequences to real characters.
	UnicodeUnescape
)

// MissingKeyAction picks what Update does with keys present in the target
// but absent from the updating document.
type MissingKeyAction int

const (
	// MissingKeyNothing leaves such entries alone.
	MissingKeyNothing MissingKeyAction = iota

	// MissingKeyDelete removes such entries from the target.
	MissingKeyDelete

	// MissingKeyComment comments such entries out in the target.
	MissingKeyComment
)

// AttachCommentsTo picks how comment and blank lines group with property
// entries when reordering.
type AttachCommentsTo int

const (
	// AttachToNext groups comment and blank lines with the property entry
	// following them.
	AttachToNext AttachCommentsTo = iota

	// AttachToPrev groups comment and blank lines with the property entry
	// preceding them.
	AttachToPrev

	// KeepOriginalPosition moves property entries only and leaves comment
	// and blank lines where they are.
	KeepOriginalPosition
)

// Options configure how documents are read from and written to their
// sources.
type Options struct {
	// Charset decodes and encodes the byte stream. Defaults to UTF8.
	Charset *Charset

	// UnicodeHandling picks how characters above 0x7f are written.
	// Defaults to UnicodeDoNothing.
	UnicodeHandling UnicodeHandling

	// MissingKeyAction picks what Update does with keys the updating
	// document no longer has. Defaults to MissingKeyNothing.
	MissingKeyAction MissingKeyAction
}

// Option customizes reading and writing of documents.
type Option func(*Options)

// NewOptions returns Options with the defaults applied, customized by opts.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		Charset:          UTF8,
		UnicodeHandling:  UnicodeDoNothing,
		MissingKeyAction: MissingKeyNothing,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Charset == nil {
		o.Charset = UTF8
	}
	return o
}

// WithCharset sets the charset that decodes and encodes the document.
func WithCharset(charset *Charset) Option {
	return func(o *Options) {
		o.Charset = charset
	}
}

// WithUnicodeHandling sets how characters above 0x7f are written.
func WithUnicodeHandling(handling UnicodeHandling) Option {
	return func(o *Options) {
		o.UnicodeHandling = handling
	}
}

// WithMissingKeyAction sets what Update does with keys the updating
// document no longer has.
func WithMissingKeyAction(action MissingKeyAction) Option {
	return func(o *Options) {
		o.MissingKeyAction = action
	}
}

// ReformatOptions configure reformatting and reordering.
type ReformatOptions struct {
	// Charset decodes and encodes the target of the file level
	// operations. Defaults to UTF8.
	Charset *Charset

	// Format is the format applied to property entries, written as
	// optional leading whitespace, the literal <key>, a separator of
	// whitespace with at most one '=' or ':', the literal <value> and a
	// line ending. Whitespace and line endings are spelled as two
	// character escape sequences; a plain space may be written directly.
	// Defaults to "<key> = <value>\n".
	Format string

	// ReformatKeyAndValue also rewrites key and value text instead of
	// only the formatting around them.
	ReformatKeyAndValue bool

	// AttachCommentsTo groups comment and blank lines with property
	// entries for reordering. Defaults to AttachToNext.
	AttachCommentsTo AttachCommentsTo
}

// ReformatOption customizes reformatting and reordering.
type ReformatOption func(*ReformatOptions)

// NewReformatOptions returns ReformatOptions with the defaults applied,
// customized by opts.
func NewReformatOptions(opts ...ReformatOption) *ReformatOptions {
	o := &ReformatOptions{
		Charset:          UTF8,
		Format:           `<key> = <value>\n`,
		AttachCommentsTo: AttachToNext,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Charset == nil {
		o.Charset = UTF8
	}
	return o
}

// WithReformatCharset sets the charset of the file level reformatting and
// reordering operations.
func WithReformatCharset(charset *Charset) ReformatOption {
	return func(o *ReformatOptions) {
		o.Charset = charset
	}
}

// WithFormat sets the format applied to property entries.
func WithFormat(format string) ReformatOption {
	return func(o *ReformatOptions) {
		o.Format = format
	}
}

// WithReformatKeyAndValue sets whether key and value text is rewritten too.
func WithReformatKeyAndValue(reformat bool) ReformatOption {
	return func(o *ReformatOptions) {
		o.ReformatKeyAndValue = reformat
	}
}

// WithAttachCommentsTo sets how comment and blank lines group with property
// entries when reordering.
func WithAttachCommentsTo(attach AttachCommentsTo) ReformatOption {
	return func(o *ReformatOptions) {
		o.AttachCommentsTo = attach
	}
}
