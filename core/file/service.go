package file

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/setting"
	"github.com/trezcool/ujumbe/core/user"
)

const (
	sniffLen        = 512
	directURLExpiry = 15 * time.Minute
)

var (
	// errors
	ErrNotFound = errors.New("file not found")
)

type (
	Repository interface {
		CreateFile(ctx context.Context, f File) (File, error)
		GetFile(ctx context.Context, id string) (File, error)
		QueryFiles(ctx context.Context, ids []string) ([]File, error)
		DeleteFile(ctx context.Context, id string) error
	}

	Service interface {
		// Upload stores the content read from r, refusing oversized content and unsupported types.
		Upload(ctx context.Context, owner user.User, filename string, r io.Reader) (File, error)
		GetByID(ctx context.Context, id string) (File, error)
		GetManyByID(ctx context.Context, ids []string) ([]File, error)
		Open(ctx context.Context, f File) (io.ReadCloser, error)
		// DirectURL returns a short-lived link to the stored content, "" when the storage has none.
		DirectURL(ctx context.Context, f File) (string, error)
		// CanManage reports whether actor owns f or is an admin.
		CanManage(actor user.User, f File) bool
		Delete(ctx context.Context, f File) error
		MaxUploadSize(ctx context.Context) int64
	}

	service struct {
		repo     Repository
		storage  core.FileStorage
		settings core.SettingsReader
		conf     *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, storage core.FileStorage, settings core.SettingsReader, conf *core.Config) Service {
	return &service{
		repo:     repo,
		storage:  storage,
		settings: settings,
		conf:     conf,
	}
}

func (svc *service) MaxUploadSize(ctx context.Context) int64 {
	limit := svc.conf.Storage.MaxUploadSize
	if mb := svc.settings.Int(ctx, setting.KeyUploadMaxSizeMB, setting.DefaultUploadMaxSizeMB); mb > 0 {
		if size := int64(mb) << 20; limit <= 0 || size < limit {
			limit = size
		}
	}
	return limit
}

func (svc *service) Upload(ctx context.Context, owner user.User, filename string, r io.Reader) (File, error) {
	filename = cleanFilename(filename)
	limit := svc.MaxUploadSize(ctx)

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return File{}, errors.Wrap(err, "reading upload")
	}
	if len(data) == 0 {
		return File{}, core.NewFieldError("file", "file is empty")
	}
	if int64(len(data)) > limit {
		return File{}, core.NewFieldError("file", fmt.Sprintf("file is too large (max %d MB)", limit>>20))
	}

	head := data
	if len(head) > sniffLen {
		head = head[:sniffLen]
	}
	ct, ok := detectContentType(http.DetectContentType(head), filename, head)
	if !ok {
		return File{}, core.NewFieldError("file", fmt.Sprintf("unsupported file type %q", ct))
	}

	now := time.Now().UTC()
	id := uuid.New().String()
	f := File{
		ID:          id,
		OwnerID:     owner.ID,
		Filename:    filename,
		ContentType: ct,
		Size:        int64(len(data)),
		StorageKey:  fmt.Sprintf("uploads/%s/%s%s", now.Format("2006/01"), id, strings.ToLower(path.Ext(filename))),
		CreatedAt:   now,
	}
	if err = svc.storage.Save(ctx, f.StorageKey, bytes.NewReader(data), f.Size, f.ContentType); err != nil {
		return File{}, errors.Wrap(err, "saving file content")
	}

	created, err := svc.repo.CreateFile(ctx, f)
	if err != nil {
		_ = svc.storage.Delete(ctx, f.StorageKey)
		return File{}, errors.Wrap(err, "creating file")
	}
	return svc.withURL(created), nil
}

func (svc *service) GetByID(ctx context.Context, id string) (File, error) {
	f, err := svc.repo.GetFile(ctx, id)
	if err != nil {
		return File{}, err
	}
	return svc.withURL(f), nil
}

func (svc *service) GetManyByID(ctx context.Context, ids []string) ([]File, error) {
	if len(ids) == 0 {
		return []File{}, nil
	}
	files, err := svc.repo.QueryFiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range files {
		files[i] = svc.withURL(files[i])
	}
	return files, nil
}

func (svc *service) Open(ctx context.Context, f File) (io.ReadCloser, error) {
	return svc.storage.Open(ctx, f.StorageKey)
}

func (svc *service) DirectURL(ctx context.Context, f File) (string, error) {
	return svc.storage.URL(ctx, f.StorageKey, f.Filename, directURLExpiry)
}

func (svc *service) CanManage(actor user.User, f File) bool {
	return f.OwnerID == actor.ID || actor.IsAdmin()
}

func (svc *service) Delete(ctx context.Context, f File) error {
	if err := svc.repo.DeleteFile(ctx, f.ID); err != nil {
		return errors.Wrap(err, "deleting file")
	}
	if err := svc.storage.Delete(ctx, f.StorageKey); err != nil {
		return errors.Wrap(err, "deleting file content")
	}
	return nil
}

func (svc *service) withURL(f File) File {
	f.URL = svc.conf.Storage.BaseURL + "/v1/files/" + f.ID + "/download"
	return f
}

func cleanFilename(name string) string {
	name = path.Base(strings.ReplaceAll(core.CleanString(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	if runes := []rune(name); len(runes) > 255 {
		ext := []rune(path.Ext(name))
		if len(ext) > 20 {
			ext = nil
		}
		name = string(runes[:255-len(ext)]) + string(ext)
	}
	return name
}
