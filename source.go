package csvskema

import (
	"context"
	"io"
	"os"
	"strings"
)

// Source supplies the raw text of one CSV document. It is the only blocking
// step of a parse.
type Source interface {
	// Name identifies the source in errors and logs (for example a file path).
	Name() string
	// Open returns a reader over the whole document. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)
}

// FileSource reads the file at path.
func FileSource(path string) Source { return fileSource{path: path} }

// ReaderSource wraps an already-open reader. The reader is consumed by the
// first read; it is closed only if it implements io.Closer.
func ReaderSource(name string, r io.Reader) Source { return readerSource{name: name, r: r} }

// TextSource wraps in-memory text.
func TextSource(text string) Source { return textSource(text) }

type fileSource struct{ path string }

func (s fileSource) Name() string { return s.path }
func (s fileSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(s.path)
}

type readerSource struct {
	name string
	r    io.Reader
}

func (s readerSource) Name() string { return s.name }
func (s readerSource) Open(ctx context.Context) (io.ReadCloser, error) {
	if rc, ok := s.r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(s.r), nil
}

type textSource string

func (s textSource) Name() string { return "<text>" }
func (s textSource) Open(ctx context.Context) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

// ReadSource reads all of src. When maxBytes is positive, sources larger than
// maxBytes fail with ErrSourceTooLarge. Every failure is a *SourceError, so
// errors.Is(err, ErrSourceUnavailable) holds; no partial text is returned.
func ReadSource(ctx context.Context, src Source, maxBytes int64) (string, error) {
	if src == nil {
		return "", &SourceError{Source: "<nil>", Err: os.ErrInvalid}
	}
	if err := ctx.Err(); err != nil {
		return "", &SourceError{Source: src.Name(), Err: err}
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return "", &SourceError{Source: src.Name(), Err: err}
	}
	defer rc.Close()

	var r io.Reader = rc
	if maxBytes > 0 {
		r = io.LimitReader(rc, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", &SourceError{Source: src.Name(), Err: err}
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return "", &SourceError{Source: src.Name(), Err: ErrSourceTooLarge}
	}
	if err := ctx.Err(); err != nil {
		return "", &SourceError{Source: src.Name(), Err: err}
	}
	return string(data), nil
}
