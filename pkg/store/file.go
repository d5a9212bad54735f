package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	errs "github.com/matzehuels/layoutgen/pkg/errors"
	"github.com/matzehuels/layoutgen/pkg/observability"
	"github.com/matzehuels/layoutgen/pkg/rotate"
)

// DefaultExtension is the layout file extension.
const DefaultExtension = ".xml"

// FileStore implements Store on a layout resource directory.
// Documents live in <dir>/<name>_<angle><ext>; the base uses angle 0.
type FileStore struct {
	dir string
	ext string
}

// FileOption configures a FileStore.
type FileOption func(*FileStore)

// WithExtension sets the layout file extension (default ".xml").
func WithExtension(ext string) FileOption {
	return func(s *FileStore) {
		s.ext = ext
	}
}

// NewFileStore creates a file store rooted at dir.
// The directory must already exist.
func NewFileStore(dir string, opts ...FileOption) (*FileStore, error) {
	s := &FileStore{dir: dir, ext: DefaultExtension}
	for _, opt := range opts {
		opt(s)
	}
	if err := errs.ValidateExtension(s.ext); err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, errs.New(errs.ErrCodeFileNotFound, "layout directory does not exist: %s", dir)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeIO, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return nil, errs.New(errs.ErrCodeInvalidPath, "not a directory: %s", dir)
	}
	return s, nil
}

// Dir returns the layout directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file path of (name, angle).
func (s *FileStore) Path(name string, angle rotate.Angle) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%d%s", name, int(angle), s.ext))
}

// BaseName returns the base layout name of a file path, if path names a
// base layout of this store.
func (s *FileStore) BaseName(path string) (string, bool) {
	if filepath.Clean(filepath.Dir(path)) != filepath.Clean(s.dir) {
		return "", false
	}
	suffix := "_0" + s.ext
	name, ok := strings.CutSuffix(filepath.Base(path), suffix)
	if !ok || name == "" || errs.ValidateBaseName(name) != nil {
		return "", false
	}
	return name, true
}

// Base reads <name>_0<ext>.
func (s *FileStore) Base(ctx context.Context, name string) (rotate.Document, bool, error) {
	return s.read(ctx, kindBase, s.Path(name, rotate.Angle0))
}

// Variant reads <name>_<angle><ext>.
func (s *FileStore) Variant(ctx context.Context, name string, angle rotate.Angle) (rotate.Document, bool, error) {
	return s.read(ctx, kindVariant, s.Path(name, angle))
}

// PutVariant writes the variant through a temporary file and a rename, so
// watchers never observe a partially written layout.
func (s *FileStore) PutVariant(ctx context.Context, name string, angle rotate.Angle, doc rotate.Document) error {
	path := s.Path(name, angle)

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "create temp file for %s", path)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(string(doc)); err != nil {
		tmp.Close()
		return errs.Wrap(errs.ErrCodeIO, err, "write %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "write %s", path)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "chmod %s", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "rename %s", path)
	}

	observability.Store().OnWrite(ctx, BackendFile, len(doc))
	return nil
}

// DeleteVariant removes <name>_<angle><ext>.
func (s *FileStore) DeleteVariant(ctx context.Context, name string, angle rotate.Angle) error {
	path := s.Path(name, angle)
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errs.Wrap(errs.ErrCodeIO, err, "remove %s", path)
	}
	observability.Store().OnDelete(ctx, BackendFile)
	return nil
}

// List returns the names of all base layouts in the directory.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeIO, err, "read %s", s.dir)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if name, ok := s.BaseName(filepath.Join(s.dir, e.Name())); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) read(ctx context.Context, kind, path string) (rotate.Document, bool, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		observability.Store().OnRead(ctx, BackendFile, kind, false)
		return "", false, nil
	}
	if err != nil {
		return "", false, errs.Wrap(errs.ErrCodeIO, err, "read %s", path)
	}
	observability.Store().OnRead(ctx, BackendFile, kind, true)
	return rotate.Document(data), true, nil
}

// Ensure FileStore implements Store and Lister.
var (
	_ Store  = (*FileStore)(nil)
	_ Lister = (*FileStore)(nil)
)
