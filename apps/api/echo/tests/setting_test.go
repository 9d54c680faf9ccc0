package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/ujumbe/core/setting"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/tests"
)

func Test_settingApi(t *testing.T) {
	f := setup(t)
	admin := testutil.CreateUser(t, f.usrRepo, "Admin", "admin", "", "", []string{user.RoleAdmin}, true)
	teacher := testutil.CreateUser(t, f.usrRepo, "Teacher", "teacher", "", "", []string{user.RoleTeacher}, true)

	adminToken := getToken(t, f.conf, admin)
	teacherToken := getToken(t, f.conf, teacher)

	public, private := true, false
	name, err := f.settings.Upsert(context.Background(), admin, setting.UpsertSetting{
		Key: setting.KeySchoolName, Value: "Shule Yetu", IsPublic: &public,
	})
	require.NoError(t, err)
	replies, err := f.settings.Upsert(context.Background(), admin, setting.UpsertSetting{
		Key: setting.KeyMaxReplies, Value: "5", IsPublic: &private,
	})
	require.NoError(t, err)

	runHTTPTests(t, f.app, []httpTest{
		{name: "Auth required", path: "/v1/settings", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "admin sees all", path: "/v1/settings", token: adminToken, wantData: marchallList(t, replies, name)},
		{name: "others see public ones", path: "/v1/settings", token: teacherToken, wantData: marchallList(t, name)},
		{name: "public retrieved", path: "/v1/settings/school_name", token: teacherToken, wantData: marchallObj(t, name)},
		{
			name: "private hidden", path: "/v1/settings/ai.max_replies", token: teacherToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{name: "admin retrieves private", path: "/v1/settings/ai.max_replies", token: adminToken, wantData: marchallObj(t, replies)},
		{
			name: "unknown", path: "/v1/settings/lol", token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "Admin required to upsert", method: http.MethodPut, path: "/v1/settings/school_name", token: teacherToken,
			body:     marchallObj(t, setting.UpsertSetting{Value: "lol"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "invalid key", method: http.MethodPut, path: "/v1/settings/bad-key", token: adminToken,
			body:     marchallObj(t, setting.UpsertSetting{Value: "lol"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"key": "must be a lower-case dotted identifier"}),
		},
		{
			name: "invalid value", method: http.MethodPut, path: "/v1/settings/ai.max_replies", token: adminToken,
			body:     marchallObj(t, setting.UpsertSetting{Value: "42"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"value": "must be an integer between 1 and 10"}),
		},
		{
			name: "unsupported language", method: http.MethodPut, path: "/v1/settings/default_language", token: adminToken,
			body:     marchallObj(t, setting.UpsertSetting{Value: "xx"}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"value": "unsupported language"}),
		},
		{
			name: "Admin required to delete", method: http.MethodDelete, path: "/v1/settings/school_name", token: teacherToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
	})

	t.Run("upsert", func(t *testing.T) {
		body := marchallObj(t, setting.UpsertSetting{Key: "ignored", Value: " 2 ", Description: "Replies per message"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/settings/AI.Max_Replies", adminToken, body)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var s setting.Setting
		unmarshal(t, rec, &s)
		assert.Equal(t, setting.KeyMaxReplies, s.Key)
		assert.Equal(t, "2", s.Value)
		assert.Equal(t, "Replies per message", s.Description)
		assert.False(t, s.IsPublic)
		assert.Equal(t, admin.ID, s.UpdatedBy)
		assert.Equal(t, replies.CreatedAt.Unix(), s.CreatedAt.Unix())
		assert.Equal(t, 2, f.settings.Int(context.Background(), setting.KeyMaxReplies, 0))

		body = marchallObj(t, setting.UpsertSetting{Value: "sw-notice", IsPublic: &public})
		req, rec = newAuthRequest(http.MethodPut, "/v1/settings/banner.text", adminToken, body)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		req, rec = newAuthRequest(http.MethodGet, "/v1/settings/banner.text", teacherToken)
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/settings/school_name", adminToken)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
		assert.Equal(t, setting.DefaultSchoolName, f.settings.SchoolName(context.Background()))

		req, rec = newAuthRequest(http.MethodDelete, "/v1/settings/school_name", adminToken)
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
