package storagesvc

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
)

// ErrNotFound is returned when no object is stored under a key.
var ErrNotFound = errors.New("stored file not found")

// diskStorage keeps the objects as files under a root directory.
type diskStorage struct {
	root string
}

var _ core.FileStorage = (*diskStorage)(nil)

func NewDiskStorage(dir string) (core.FileStorage, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", dir)
	}
	if err = os.MkdirAll(root, 0o750); err != nil {
		return nil, errors.Wrapf(err, "creating %s", root)
	}
	return &diskStorage{root: root}, nil
}

// path maps key to a file path, refusing keys escaping the root directory.
func (s *diskStorage) path(key string) (string, error) {
	p := filepath.Join(s.root, filepath.FromSlash(key))
	if !strings.HasPrefix(p, s.root+string(filepath.Separator)) {
		return "", errors.Errorf("invalid storage key %q", key)
	}
	return p, nil
}

func (s *diskStorage) Save(ctx context.Context, key string, r io.Reader, _ int64, _ string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return errors.Wrap(err, "creating directory")
	}

	// write to a temporary file first so a failed upload leaves nothing behind
	tmp, err := os.CreateTemp(filepath.Dir(p), ".upload-*")
	if err != nil {
		return errors.Wrap(err, "creating temporary file")
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, readerWithContext(ctx, r)); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "writing file")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), p), "moving file")
}

func (s *diskStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "opening file")
	}
	return f, nil
}

func (s *diskStorage) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err = os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing file")
	}
	return nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

// URL returns "": files on disk are only served through the API.
func (s *diskStorage) URL(context.Context, string, string, time.Duration) (string, error) {
	return "", nil
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
