package tests

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/tests"
)

func Test_classApi(t *testing.T) {
	f := setup(t)
	admin := testutil.CreateUser(t, f.usrRepo, "Admin", "admin", "", "", []string{user.RoleAdmin}, true)
	teacher := testutil.CreateUser(t, f.usrRepo, "Teacher", "teacher", "", "", []string{user.RoleTeacher}, true)
	student := testutil.CreateUser(t, f.usrRepo, "Student", "student", "", "", []string{user.RoleStudent}, true)
	outsider := testutil.CreateUser(t, f.usrRepo, "Outsider", "outsider", "", "", []string{user.RoleStudent}, true)

	form1 := testutil.CreateClass(t, f.clsRepo, "Form 1A", []string{teacher.ID}, []string{student.ID})
	form2 := testutil.CreateClass(t, f.clsRepo, "Form 2B", nil, nil)

	adminToken := getToken(t, f.conf, admin)
	teacherToken := getToken(t, f.conf, teacher)
	studentToken := getToken(t, f.conf, student)
	outsiderToken := getToken(t, f.conf, outsider)

	runHTTPTests(t, f.app, []httpTest{
		{name: "Auth required", path: "/v1/classes", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "admin sees all", path: "/v1/classes", token: adminToken, wantData: marchallList(t, form1, form2)},
		{name: "admin filters", path: "/v1/classes?search=2b", token: adminToken, wantData: marchallList(t, form2)},
		{name: "admin orders", path: "/v1/classes?ordering=-name", token: adminToken, wantData: marchallList(t, form2, form1)},
		{name: "member filter", path: "/v1/classes?member=" + student.ID, token: adminToken, wantData: marchallList(t, form1)},
		{name: "student sees own", path: "/v1/classes", token: studentToken, wantData: marchallList(t, form1)},
		{name: "outsider sees none", path: "/v1/classes", token: outsiderToken, wantData: marchallList(t)},
		{
			name: "is_archived (invalid)", path: "/v1/classes?is_archived=lol", token: adminToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"is_archived": "must be true or false"}),
		},
		{name: "member retrieves", path: "/v1/classes/" + form1.ID, token: studentToken, wantData: marchallObj(t, form1)},
		{
			name: "outsider cannot retrieve", path: "/v1/classes/" + form1.ID, token: outsiderToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "Admin required to create", method: http.MethodPost, path: "/v1/classes", token: teacherToken,
			body: marchallObj(t, class.NewClass{Name: "Form 3"}), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "name required", method: http.MethodPost, path: "/v1/classes", token: adminToken,
			body: marchallObj(t, class.NewClass{}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "name taken", method: http.MethodPost, path: "/v1/classes", token: adminToken,
			body: marchallObj(t, class.NewClass{Name: "form 1a", AcademicYear: "2024-2025"}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": class.ErrNameExists.Error()}),
		},
		{
			name: "teacher ids must be teachers", method: http.MethodPost, path: "/v1/classes", token: adminToken,
			body:     marchallObj(t, class.NewClass{Name: "Form 3", TeacherIDs: []string{student.ID}}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"teacher_ids": "invalid users: " + student.ID}),
		},
		{
			name: "Admin required to delete", method: http.MethodDelete, path: "/v1/classes/" + form2.ID, token: teacherToken,
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "deleted", method: http.MethodDelete, path: "/v1/classes/" + form2.ID, token: adminToken, wantCode: http.StatusNoContent},
		{
			name: "already deleted", method: http.MethodDelete, path: "/v1/classes/" + form2.ID, token: adminToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
	})

	t.Run("create", func(t *testing.T) {
		body := marchallObj(t, class.NewClass{
			Name: " Form 3 ", Level: "3", AcademicYear: "2024-2025", TeacherIDs: []string{teacher.ID}, StudentIDs: []string{outsider.ID},
		})
		req, rec := newAuthRequest(http.MethodPost, "/v1/classes", adminToken, body)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var cls class.Class
		unmarshal(t, rec, &cls)
		assert.Equal(t, "Form 3", cls.Name)
		assert.Equal(t, []string{teacher.ID}, cls.TeacherIDs)
		assert.Equal(t, []string{outsider.ID}, cls.StudentIDs)
		assert.False(t, cls.IsArchived)
	})

	t.Run("update", func(t *testing.T) {
		archived := true
		body := marchallObj(t, class.UpdateClass{Level: "1", IsArchived: &archived})
		req, rec := newAuthRequest(http.MethodPut, "/v1/classes/"+form1.ID, adminToken, body)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var cls class.Class
		unmarshal(t, rec, &cls)
		assert.Equal(t, "Form 1A", cls.Name)
		assert.Equal(t, "1", cls.Level)
		assert.True(t, cls.IsArchived)
	})

	t.Run("members", func(t *testing.T) {
		body := marchallObj(t, class.Members{StudentIDs: []string{outsider.ID}})
		req, rec := newAuthRequest(http.MethodPost, "/v1/classes/"+form1.ID+"/members", adminToken, body)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var cls class.Class
		unmarshal(t, rec, &cls)
		assert.ElementsMatch(t, []string{student.ID, outsider.ID}, cls.StudentIDs)

		// the outsider can now see the class
		req, rec = newAuthRequest(http.MethodGet, "/v1/classes/"+form1.ID, outsiderToken)
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)

		req, rec = newAuthRequest(http.MethodDelete, "/v1/classes/"+form1.ID+"/members?student_id="+outsider.ID+"&teacher_id=lol", adminToken)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		cls = class.Class{}
		unmarshal(t, rec, &cls)
		assert.Equal(t, []string{student.ID}, cls.StudentIDs)
		assert.Equal(t, []string{teacher.ID}, cls.TeacherIDs)

		body = marchallObj(t, class.Members{TeacherIDs: []string{"lol"}})
		req, rec = newAuthRequest(http.MethodPost, "/v1/classes/"+form1.ID+"/members", adminToken, body)
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("roster", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/classes/"+form1.ID+"/roster", studentToken)
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/classes/"+form1.ID+"/roster", outsiderToken)
		f.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		req, rec = newAuthRequest(http.MethodGet, "/v1/classes/"+form1.ID+"/roster", teacherToken)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "roster-"+form1.ID+".xlsx")

		xl, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
		rows, err := xl.GetRows(xl.GetSheetName(0))
		require.NoError(t, err)
		var names []string
		for _, row := range rows {
			names = append(names, row...)
		}
		assert.Contains(t, names, teacher.Name)
		assert.Contains(t, names, student.Name)
	})
}
