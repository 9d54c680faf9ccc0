package file_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/file"
	"github.com/trezcool/ujumbe/core/setting"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/services/storage"
	"github.com/trezcool/ujumbe/storage/database/inmem"
	"github.com/trezcool/ujumbe/tests"
)

var (
	owner = user.User{ID: "owner-id", Roles: []string{user.RoleTeacher}}
	admin = user.User{ID: "admin-id", Roles: []string{user.RoleAdmin}}
	other = user.User{ID: "other-id", Roles: []string{user.RoleStudent}}

	pngHead = []byte("\x89PNG\x0D\x0A\x1A\x0A")
	oleHead = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

type fixture struct {
	svc      file.Service
	settings setting.Service
}

func setup(t *testing.T) fixture {
	conf := testutil.Config(t)
	conf.Storage.MaxUploadSize = 2 << 20
	db := inmemdb.Open()
	storage, err := storagesvc.NewDiskStorage(conf.Storage.Dir)
	require.NoError(t, err)
	settings := setting.NewService(inmemdb.NewSettingRepository(db), nil, testutil.Logger(conf))
	return fixture{
		svc:      file.NewService(inmemdb.NewFileRepository(db), storage, settings, conf),
		settings: settings,
	}
}

func TestService_Upload(t *testing.T) {
	f := setup(t)
	_, translator := testutil.Validator()

	tests := []struct {
		name     string
		filename string
		content  []byte
		wantCT   string
		wantName string
		wantErr  bool
	}{
		{name: "text", filename: "notes.txt", content: []byte("hello class"), wantCT: "text/plain", wantName: "notes.txt"},
		{name: "png", filename: "photo.PNG", content: append(pngHead, 0, 0, 0, 0), wantCT: "image/png", wantName: "photo.PNG"},
		{
			name:     "docx",
			filename: "report.docx",
			content:  []byte("PK\x03\x04rest-of-the-archive"),
			wantCT:   "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			wantName: "report.docx",
		},
		{name: "doc", filename: "old.doc", content: append(oleHead, 1, 2, 3), wantCT: "application/msword", wantName: "old.doc"},
		{name: "path stripped", filename: `C:\Users\me\notes.txt`, content: []byte("hi"), wantCT: "text/plain", wantName: "notes.txt"},
		{name: "no name", filename: "  ", content: []byte("hi"), wantCT: "text/plain", wantName: "file"},
		{name: "empty", filename: "empty.txt", content: []byte{}, wantErr: true},
		{name: "unknown binary", filename: "tool.exe", content: []byte("MZ\x90\x00\x03\x00\x00\x00\x04\x00"), wantErr: true},
		{name: "ole without office ext", filename: "thing.bin", content: append(oleHead, 1), wantErr: true},
		{name: "too large", filename: "big.txt", content: bytes.Repeat([]byte("a"), 2<<20+1), wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			got, err := f.svc.Upload(ctx, owner, tc.filename, bytes.NewReader(tc.content))
			if tc.wantErr {
				msgs, ok := core.ValidationMessages(err, translator)
				require.True(t, ok, "unexpected error: %v", err)
				assert.Contains(t, msgs, "file")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantCT, got.ContentType)
			assert.Equal(t, tc.wantName, got.Filename)
			assert.Equal(t, int64(len(tc.content)), got.Size)
			assert.Equal(t, owner.ID, got.OwnerID)
			assert.Equal(t, "http://testserver/v1/files/"+got.ID+"/download", got.URL)

			rc, err := f.svc.Open(ctx, got)
			require.NoError(t, err)
			defer rc.Close()
			stored, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, tc.content, stored)
		})
	}
}

func TestService_MaxUploadSize(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	// setting default (10 MB) is above the configured 2 MB
	assert.Equal(t, int64(2<<20), f.svc.MaxUploadSize(ctx))

	_, err := f.settings.Upsert(ctx, admin, setting.UpsertSetting{Key: setting.KeyUploadMaxSizeMB, Value: "1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1<<20), f.svc.MaxUploadSize(ctx))

	_, err = f.svc.Upload(ctx, owner, "big.txt", strings.NewReader(strings.Repeat("a", 1<<20+1)))
	assert.True(t, core.IsValidationError(err))
}

func TestService_ManageAndDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	up, err := f.svc.Upload(ctx, owner, "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	assert.True(t, f.svc.CanManage(owner, up))
	assert.True(t, f.svc.CanManage(admin, up))
	assert.False(t, f.svc.CanManage(other, up))

	files, err := f.svc.GetManyByID(ctx, []string{"unknown", up.ID})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, up.URL, files[0].URL)

	require.NoError(t, f.svc.Delete(ctx, up))
	_, err = f.svc.GetByID(ctx, up.ID)
	assert.Equal(t, file.ErrNotFound, err)
	_, err = f.svc.Open(ctx, up)
	assert.Error(t, err)
}

// presigningStorage serves the stored content from an object store link.
type presigningStorage struct {
	core.FileStorage
	expiry time.Duration
}

func (s *presigningStorage) URL(_ context.Context, key, filename string, expiry time.Duration) (string, error) {
	s.expiry = expiry
	return "https://objects.test/" + key + "?filename=" + filename, nil
}

func TestService_DirectURL(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	up, err := f.svc.Upload(ctx, owner, "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	// disk storage has no direct links
	direct, err := f.svc.DirectURL(ctx, up)
	require.NoError(t, err)
	assert.Empty(t, direct)

	conf := testutil.Config(t)
	disk, err := storagesvc.NewDiskStorage(conf.Storage.Dir)
	require.NoError(t, err)
	store := &presigningStorage{FileStorage: disk}
	db := inmemdb.Open()
	settings := setting.NewService(inmemdb.NewSettingRepository(db), nil, testutil.Logger(conf))
	svc := file.NewService(inmemdb.NewFileRepository(db), store, settings, conf)

	up, err = svc.Upload(ctx, owner, "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	direct, err = svc.DirectURL(ctx, up)
	require.NoError(t, err)
	assert.Equal(t, "https://objects.test/"+up.StorageKey+"?filename=notes.txt", direct)
	assert.Equal(t, 15*time.Minute, store.expiry)
	assert.Equal(t, conf.Storage.BaseURL+"/v1/files/"+up.ID+"/download", up.URL)
}
