package sheetsvc

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/user"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf := new(bytes.Buffer)
	require.NoError(t, f.Write(buf))
	return buf
}

func TestReadUserRows(t *testing.T) {
	buf := workbook(t,
		[]interface{}{"Email", "Name", "Roles", "Password", "unknown"},
		[]interface{}{"john@test.com", " John Doe ", "teacher:, parent:", "Passw0rd!", "x"},
		[]interface{}{"", "", "", ""},
		[]interface{}{"", "Jane"},
	)

	rows, err := ReadUserRows(buf)
	require.NoError(t, err)
	assert.Equal(t, []user.ImportRow{
		{Line: 2, Name: "John Doe", Email: "john@test.com", Roles: "teacher:, parent:", Password: "Passw0rd!"},
		{Line: 4, Name: "Jane"},
	}, rows)
}

func TestReadUserRowsErrors(t *testing.T) {
	_, err := ReadUserRows(strings.NewReader("not a workbook"))
	assert.Equal(t, ErrUnreadable, err)

	_, err = ReadUserRows(workbook(t, []interface{}{"email", "username"}))
	assert.Equal(t, ErrNoNameCol, err)
}

func TestWriteUsersCanBeImported(t *testing.T) {
	users := []user.User{
		{Name: "John", Username: "john", Email: "john@test.com", Roles: []string{"teacher:"}, Language: "fr", IsActive: true, CreatedAt: time.Now()},
		{Name: "Jane", Username: "jane", Roles: []string{}, CreatedAt: time.Now(), LastLogin: time.Now()},
	}
	buf := new(bytes.Buffer)
	require.NoError(t, WriteUsers(buf, users))

	rows, err := ReadUserRows(buf)
	require.NoError(t, err)
	assert.Equal(t, []user.ImportRow{
		{Line: 2, Name: "John", Username: "john", Email: "john@test.com", Roles: "teacher:", Language: "fr"},
		{Line: 3, Name: "Jane", Username: "jane"},
	}, rows)
}

func TestWriteRoster(t *testing.T) {
	cls := class.Class{Name: "6A", AcademicYear: "2024-2025"}
	teachers := []user.User{{Name: "Mr T", Username: "t", Email: "t@test.com"}}
	students := []user.User{{Name: "S1", Username: "s1"}, {Name: "S2", Username: "s2"}}

	buf := new(bytes.Buffer)
	require.NoError(t, WriteRoster(buf, cls, teachers, students))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(rosterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 7)
	assert.Equal(t, "6A (2024-2025)", rows[0][0])
	assert.Equal(t, []string{"role", "name", "username", "email"}, rows[3])
	assert.Equal(t, []string{"teacher", "Mr T", "t", "t@test.com"}, rows[4])
	require.GreaterOrEqual(t, len(rows[6]), 3)
	assert.Equal(t, []string{"student", "S2", "s2"}, rows[6][:3])
}
