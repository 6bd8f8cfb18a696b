// Package resource finds and loads game assets (fonts, images and audio
// files) from a list of search prefixes.
package resource

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/lixenwraith/ge211/errs"
)

// DefaultPrefixes are searched after any configured prefixes
var DefaultPrefixes = []string{"Resources/", "../Resources/"}

// Locator resolves resource names against search prefixes
type Locator struct {
	prefixes []string
	fsys     fs.FS
	log      *slog.Logger
}

// Option configures a Locator
type Option func(*Locator)

// WithFS resolves names inside fsys instead of the host filesystem
func WithFS(fsys fs.FS) Option {
	return func(l *Locator) { l.fsys = fsys }
}

// WithLogger logs each failed lookup at debug level
func WithLogger(log *slog.Logger) Option {
	return func(l *Locator) { l.log = log }
}

// NewLocator searches the given prefixes first, then DefaultPrefixes
func NewLocator(prefixes []string, opts ...Option) *Locator {
	l := &Locator{
		prefixes: append(append([]string(nil), prefixes...), DefaultPrefixes...),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Prefixes returns the search prefixes in order
func (l *Locator) Prefixes() []string {
	return append([]string(nil), l.prefixes...)
}

// Open opens the first prefix+name that exists
// Absolute names are opened directly. When nothing matches the error is a
// *errs.FileOpenError wrapping the last failure
func (l *Locator) Open(name string) (io.ReadCloser, error) {
	if l.fsys == nil && filepath.IsAbs(name) {
		f, err := os.Open(name)
		if err != nil {
			return nil, &errs.FileOpenError{Filename: name, Reason: err}
		}
		return f, nil
	}

	lastErr := fs.ErrNotExist
	for _, prefix := range l.prefixes {
		f, err := l.open(prefix, name)
		if err == nil {
			return f, nil
		}
		l.log.Debug("resource lookup missed", "prefix", prefix, "name", name, "error", err)
		if !errors.Is(err, fs.ErrInvalid) {
			lastErr = err
		}
	}
	return nil, &errs.FileOpenError{Filename: name, Reason: lastErr}
}

// ReadFile returns the full contents of the named resource
func (l *Locator) ReadFile(name string) ([]byte, error) {
	rc, err := l.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (l *Locator) open(prefix, name string) (io.ReadCloser, error) {
	if l.fsys != nil {
		p := path.Clean(path.Join(prefix, name))
		if !fs.ValidPath(p) {
			return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrInvalid}
		}
		return l.fsys.Open(p)
	}
	f, err := os.Open(filepath.Join(prefix, name))
	if err != nil {
		return nil, err
	}
	if st, err := f.Stat(); err == nil && st.IsDir() {
		f.Close()
		return nil, errors.New("is a directory")
	}
	return f, nil
}
