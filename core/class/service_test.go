package class_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/storage/database/inmem"
	"github.com/trezcool/ujumbe/tests"
)

type fixture struct {
	usrRepo user.Repository
	clsRepo class.Repository
	svc     class.Service

	admin, teacher, student, parent user.User
}

func setup(t *testing.T) fixture {
	conf := testutil.Config(t)
	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)
	clsRepo := inmemdb.NewClassRepository(db)
	usrSvc := user.NewService(usrRepo, testutil.MailService(conf, testutil.Logger(conf)), conf)

	return fixture{
		usrRepo: usrRepo,
		clsRepo: clsRepo,
		svc:     class.NewService(clsRepo, usrSvc),
		admin:   testutil.CreateUser(t, usrRepo, "Admin", "admin", "", "", []string{user.RoleAdmin}, true),
		teacher: testutil.CreateUser(t, usrRepo, "Teacher", "teacher", "", "", []string{user.RoleTeacher}, true),
		student: testutil.CreateUser(t, usrRepo, "Student", "student", "", "", []string{user.RoleStudent}, true),
		parent:  testutil.CreateUser(t, usrRepo, "Parent", "parent", "", "", []string{user.RoleParent}, true),
	}
}

func TestNewClass_Validate(t *testing.T) {
	f := setup(t)
	validate, translator := testutil.Validator()
	testutil.CreateClass(t, f.clsRepo, "Form 1A", nil, nil)

	tests := []struct {
		name       string
		data       class.NewClass
		wantFields []string
	}{
		{
			name: "valid",
			data: class.NewClass{Name: "Form 2B", AcademicYear: "2024-2025", TeacherIDs: []string{f.teacher.ID}, StudentIDs: []string{f.student.ID}},
		},
		{name: "same name other year", data: class.NewClass{Name: "Form 1A", AcademicYear: "2025-2026"}},
		{name: "no name", data: class.NewClass{Name: " "}, wantFields: []string{"name"}},
		{name: "taken name", data: class.NewClass{Name: " form 1a ", AcademicYear: "2024-2025"}, wantFields: []string{"name"}},
		{
			name:       "wrong roles",
			data:       class.NewClass{Name: "Form 3C", TeacherIDs: []string{f.student.ID}, StudentIDs: []string{f.parent.ID, "unknown"}},
			wantFields: []string{"student_ids", "teacher_ids"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := tc.data
			err := data.Validate(context.Background(), validate, f.svc)
			if tc.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			msgs, ok := core.ValidationMessages(err, translator)
			require.True(t, ok, "unexpected error: %v", err)
			fields := make([]string, 0, len(msgs))
			for field := range msgs {
				fields = append(fields, field)
			}
			assert.ElementsMatch(t, tc.wantFields, fields)
		})
	}
}

func TestService_Query(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	c1 := testutil.CreateClass(t, f.clsRepo, "Form 1A", []string{f.teacher.ID}, nil)
	c2 := testutil.CreateClass(t, f.clsRepo, "Form 2A", nil, []string{f.student.ID})
	c3 := testutil.CreateClass(t, f.clsRepo, "Form 3A", nil, nil)

	names := func(classes []class.Class) []string {
		res := make([]string, 0, len(classes))
		for _, cls := range classes {
			res = append(res, cls.Name)
		}
		return res
	}

	tests := []struct {
		name   string
		actor  user.User
		filter *class.QueryFilter
		want   []string
	}{
		{name: "admin sees all", actor: f.admin, want: []string{c1.Name, c2.Name, c3.Name}},
		{name: "admin by member", actor: f.admin, filter: &class.QueryFilter{Member: f.student.ID}, want: []string{c2.Name}},
		{name: "teacher", actor: f.teacher, want: []string{c1.Name}},
		{name: "student", actor: f.student, want: []string{c2.Name}},
		{name: "student asking for others", actor: f.student, filter: &class.QueryFilter{Member: f.teacher.ID}, want: []string{}},
		{name: "parent", actor: f.parent, want: []string{}},
		{name: "search", actor: f.admin, filter: &class.QueryFilter{Search: "3a"}, want: []string{c3.Name}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			classes, err := f.svc.Query(ctx, tc.actor, tc.filter, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(classes))
		})
	}

	_, err := f.svc.GetForUser(ctx, f.teacher, c2.ID)
	assert.Equal(t, class.ErrNotFound, err)
	cls, err := f.svc.GetForUser(ctx, f.student, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, c2.ID, cls.ID)
}

func TestService_Members(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, translator := testutil.Validator()
	student2 := testutil.CreateUser(t, f.usrRepo, "Student 2", "student2", "", "", []string{user.RoleStudent}, true)

	cls := testutil.CreateClass(t, f.clsRepo, "Form 1A", nil, []string{f.student.ID})

	_, err := f.svc.AddMembers(ctx, cls, class.Members{TeacherIDs: []string{f.parent.ID}})
	msgs, ok := core.ValidationMessages(err, translator)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"teacher_ids": "invalid users: " + f.parent.ID}, msgs)

	cls, err = f.svc.AddMembers(ctx, cls, class.Members{
		TeacherIDs: []string{f.teacher.ID, f.teacher.ID},
		StudentIDs: []string{f.student.ID, student2.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{f.teacher.ID}, cls.TeacherIDs)
	assert.Equal(t, []string{f.student.ID, student2.ID}, cls.StudentIDs)
	assert.Equal(t, []string{f.teacher.ID, f.student.ID, student2.ID}, cls.MemberIDs())

	cls, err = f.svc.RemoveMembers(ctx, cls, class.Members{StudentIDs: []string{f.student.ID, "unknown"}})
	require.NoError(t, err)
	assert.Equal(t, []string{student2.ID}, cls.StudentIDs)

	classes, err := f.svc.ClassesOf(ctx, f.student.ID)
	require.NoError(t, err)
	assert.Empty(t, classes)

	stored, err := f.svc.GetByID(ctx, cls.ID)
	require.NoError(t, err)
	assert.Equal(t, cls.StudentIDs, stored.StudentIDs)
}

func TestService_UpdateDelete(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	validate, _ := testutil.Validator()

	cls := testutil.CreateClass(t, f.clsRepo, "Form 1A", nil, nil)

	archived := true
	uc := class.UpdateClass{Level: " 1 ", IsArchived: &archived}
	require.NoError(t, uc.Validate(ctx, cls, validate, f.svc))
	cls, err := f.svc.Update(ctx, cls, uc)
	require.NoError(t, err)
	assert.Equal(t, "Form 1A", cls.Name)
	assert.Equal(t, "1", cls.Level)
	assert.Equal(t, "2024-2025", cls.AcademicYear)
	assert.True(t, cls.IsArchived)

	require.NoError(t, f.svc.Delete(ctx, cls.ID))
	_, err = f.svc.GetByID(ctx, cls.ID)
	assert.Equal(t, class.ErrNotFound, err)
	assert.Equal(t, class.ErrNotFound, f.svc.Delete(ctx, cls.ID))
}
