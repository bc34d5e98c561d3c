package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// ErrDocumentNotFound is returned when no document exists for a locale and path.
var ErrDocumentNotFound = errors.New("document not found")

// Source reads the message document stored at a content path for a locale.
type Source interface {
	Open(ctx context.Context, locale Locale, contentPath string) (Messages, error)
}

// FSSource serves documents laid out as <locale>/<content path>.<ext>.
type FSSource struct {
	fsys   fs.FS
	codecs []Codec
}

// NewFSSource creates a source over fsys. Without codecs DefaultCodecs is used.
func NewFSSource(fsys fs.FS, codecs ...Codec) *FSSource {
	if len(codecs) == 0 {
		codecs = DefaultCodecs()
	}
	return &FSSource{fsys: fsys, codecs: codecs}
}

// Open decodes the first existing document in codec order.
func (s *FSSource) Open(ctx context.Context, locale Locale, contentPath string) (Messages, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !locale.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, locale)
	}
	if !fs.ValidPath(contentPath) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNamespace, contentPath)
	}
	base := path.Join(string(locale), contentPath)
	for _, codec := range s.codecs {
		name := base + "." + codec.Ext
		data, err := fs.ReadFile(s.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		messages, err := Decode(codec, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return messages, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, base)
}
