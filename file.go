package properties

import (
	"bytes"
	"context"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/zeebo/errs/v2"
)

// fs serves every file level operation, so documents live behind URLs:
// plain paths, file://, mem:// and the other schemes the service knows.
var fs = afs.New()

// Load reads the document stored at URL, decoding it with the configured
// charset.
func Load(ctx context.Context, URL string, opts ...Option) (*Document, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errs.Errorf("reading %s: %w", URL, err)
	}
	return Parse(data, opts...)
}

// Save stores the document at URL. An existing target is updated in place,
// keeping its formatting; a missing one is written fresh.
func (d *Document) Save(ctx context.Context, URL string, opts ...Option) error {
	ok, err := fs.Exists(ctx, URL)
	if err != nil {
		return errs.Errorf("checking %s: %w", URL, err)
	}
	if ok {
		return d.Update(ctx, URL, opts...)
	}
	return d.Overwrite(ctx, URL, opts...)
}

// Overwrite replaces whatever is stored at URL with the serialized
// document. Characters above 0x7f are written the way the target charset
// suggests, as if UnicodeByCharset were configured.
func (d *Document) Overwrite(ctx context.Context, URL string, opts ...Option) error {
	o := NewOptions(opts...)
	o.UnicodeHandling = UnicodeByCharset
	return d.upload(ctx, URL, o)
}

// Update rewrites the document stored at URL in place. Values of keys both
// documents hold are replaced only when their unescaped values differ, so
// untouched entries keep their bytes. Keys missing from the target are
// appended; keys the target holds but d does not follow the configured
// MissingKeyAction. A missing target is an error.
func (d *Document) Update(ctx context.Context, URL string, opts ...Option) error {
	o := NewOptions(opts...)

	target, err := Load(ctx, URL, opts...)
	if err != nil {
		return err
	}

	for _, entry := range d.entries {
		pe, ok := entry.(*PropertyEntry)
		if !ok {
			continue
		}
		key := Unescape(pe.Key)
		if existing, ok := target.index[key]; ok {
			if Unescape(existing.Value) != Unescape(pe.Value) {
				existing.Value = pe.Value
			}
		} else {
			target.Append(pe.Clone())
		}
	}

	switch o.MissingKeyAction {
	case MissingKeyDelete:
		for _, key := range target.missingKeys(d) {
			target.Remove(key)
		}
	case MissingKeyComment:
		for _, key := range target.missingKeys(d) {
			pe := target.index[key]
			target.Replace(pe, NewBasicEntry(comment(pe.String())))
		}
	}

	return target.upload(ctx, URL, o)
}

// missingKeys returns the keys of d that other does not contain, in key
// order.
func (d *Document) missingKeys(other *Document) []string {
	var missing []string
	for _, key := range d.keyOrder {
		if !other.ContainsKey(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

func (d *Document) upload(ctx context.Context, URL string, o *Options) error {
	var buf bytes.Buffer
	if err := d.write(&buf, o); err != nil {
		return err
	}
	if err := fs.Upload(ctx, URL, file.DefaultFileOsMode, &buf); err != nil {
		return errs.Errorf("writing %s: %w", URL, err)
	}
	return nil
}
