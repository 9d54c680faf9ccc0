package tests

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/ujumbe/core/file"
	"github.com/trezcool/ujumbe/core/message"
	"github.com/trezcool/ujumbe/core/setting"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/tests"
)

func Test_fileApi(t *testing.T) {
	f := setup(t)
	admin := testutil.CreateUser(t, f.usrRepo, "Admin", "admin", "", "", []string{user.RoleAdmin}, true)
	teacher := testutil.CreateUser(t, f.usrRepo, "Teacher", "teacher", "", "", []string{user.RoleTeacher}, true)
	student := testutil.CreateUser(t, f.usrRepo, "Student", "student", "", "", []string{user.RoleStudent}, true)

	adminToken := getToken(t, f.conf, admin)
	teacherToken := getToken(t, f.conf, teacher)
	studentToken := getToken(t, f.conf, student)

	content := []byte("Chapter 1: fractions.\n")
	var notes file.File

	t.Run("upload", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/files", "", "notes.txt", content)
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		req, rec = newUploadRequest(t, "/v1/files", teacherToken, "../../notes.txt", content)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		unmarshal(t, rec, &notes)
		assert.NotEmpty(t, notes.ID)
		assert.Equal(t, teacher.ID, notes.OwnerID)
		assert.Equal(t, "notes.txt", notes.Filename)
		assert.Equal(t, "text/plain", notes.ContentType)
		assert.Equal(t, int64(len(content)), notes.Size)
		assert.Equal(t, "http://testserver/v1/files/"+notes.ID+"/download", notes.URL)
	})

	runHTTPTests(t, f.app, []httpTest{
		{
			name: "file required", method: http.MethodPost, path: "/v1/files", token: teacherToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"file": "this field is required"}),
		},
		{name: "owner retrieves", path: "/v1/files/" + notes.ID, token: teacherToken, wantData: marchallObj(t, notes)},
		{name: "admin retrieves", path: "/v1/files/" + notes.ID, token: adminToken, wantData: marchallObj(t, notes)},
		{
			name: "others cannot retrieve", path: "/v1/files/" + notes.ID, token: studentToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "unknown", path: "/v1/files/lol", token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
	})

	t.Run("invalid uploads", func(t *testing.T) {
		tests := []struct {
			name     string
			filename string
			content  []byte
			wantErr  string
		}{
			{"empty", "empty.txt", nil, "file is empty"},
			{"unsupported", "page.html", []byte("<html><body>hi</body></html>"), `unsupported file type "text/html"`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req, rec := newUploadRequest(t, "/v1/files", teacherToken, tt.filename, tt.content)
				f.app.ServeHTTP(rec, req)
				checkCodeAndData(t, httpTest{
					wantCode: http.StatusBadRequest,
					wantData: marchallObj(t, map[string]string{"file": tt.wantErr}),
				}, rec)
			})
		}
	})

	t.Run("too large", func(t *testing.T) {
		_, err := f.settings.Upsert(context.Background(), admin, setting.UpsertSetting{Key: setting.KeyUploadMaxSizeMB, Value: "1"})
		require.NoError(t, err)
		defer func() { _ = f.settings.Delete(context.Background(), setting.KeyUploadMaxSizeMB) }()

		big := bytes.Repeat([]byte("a"), 1<<20+1)
		req, rec := newUploadRequest(t, "/v1/files", teacherToken, "big.txt", big)
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"file": "file is too large"}),
		}, rec)
	})

	t.Run("shared through a message", func(t *testing.T) {
		_, err := f.messages.Send(context.Background(), teacher, message.NewMessage{
			RecipientIDs: []string{student.ID}, Body: "Read this", AttachmentIDs: []string{notes.ID},
		})
		require.NoError(t, err)

		req, rec := newAuthRequest(http.MethodGet, "/v1/files/"+notes.ID, studentToken)
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		req, rec = newAuthRequest(http.MethodGet, "/v1/files/"+notes.ID+"/download", studentToken)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename=notes.txt`, rec.Header().Get("Content-Disposition"))
		assert.Equal(t, content, rec.Body.Bytes())

		// readers cannot delete
		req, rec = newAuthRequest(http.MethodDelete, "/v1/files/"+notes.ID, studentToken)
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/files/"+notes.ID, teacherToken)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		req, rec = newAuthRequest(http.MethodGet, "/v1/files/"+notes.ID+"/download", teacherToken)
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
