package sheetsvc

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/user"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	usersSheet  = "Users"
	rosterSheet = "Roster"
	dateLayout  = "2006-01-02 15:04"
)

var (
	// errors
	ErrNoSheet    = errors.New("the file does not contain any sheet")
	ErrNoNameCol  = errors.New(`the header row must have a "name" column`)
	ErrUnreadable = errors.New("the file is not a valid .xlsx spreadsheet")
)

var (
	importColumns  = []string{"name", "username", "email", "roles", "language", "password"}
	exportedHeader = []interface{}{"name", "username", "email", "roles", "language", "is_active", "created_at", "last_login"}
)

// WriteUsers writes users as an .xlsx workbook; its columns can be imported back.
func WriteUsers(w io.Writer, users []user.User) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), usersSheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	if err := writeHeader(f, usersSheet, exportedHeader); err != nil {
		return err
	}
	for i, usr := range users {
		lastLogin := ""
		if !usr.LastLogin.IsZero() {
			lastLogin = usr.LastLogin.Format(dateLayout)
		}
		row := []interface{}{
			usr.Name,
			usr.Username,
			usr.Email,
			strings.Join(usr.Roles, ","),
			usr.Language,
			usr.IsActive,
			usr.CreatedAt.Format(dateLayout),
			lastLogin,
		}
		if err := setRow(f, usersSheet, i+2, row); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(usersSheet, "A", "H", 20)
	return errors.Wrap(f.Write(w), "writing workbook")
}

// ReadUserRows reads the users of the first sheet of an .xlsx workbook.
// The first row is a header naming the columns (name, username, email, roles, language,
// password) in any order; empty rows are skipped.
func ReadUserRows(r io.Reader) ([]user.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, ErrUnreadable
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading rows of %s", sheet)
	}
	if len(rows) == 0 {
		return []user.ImportRow{}, nil
	}

	cols := make(map[string]int, len(importColumns))
	for i, title := range rows[0] {
		title = strings.ToLower(strings.TrimSpace(title))
		for _, col := range importColumns {
			if title == col {
				cols[col] = i
			}
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, ErrNoNameCol
	}

	cell := func(row []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	res := make([]user.ImportRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		res = append(res, user.ImportRow{
			Line:     i + 2, // 1-based, after the header
			Name:     cell(row, "name"),
			Username: cell(row, "username"),
			Email:    cell(row, "email"),
			Roles:    cell(row, "roles"),
			Language: cell(row, "language"),
			Password: cell(row, "password"),
		})
	}
	return res, nil
}

// WriteRoster writes the members of cls as an .xlsx workbook.
func WriteRoster(w io.Writer, cls class.Class, teachers, students []user.User) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), rosterSheet); err != nil {
		return errors.Wrap(err, "naming sheet")
	}
	title := cls.Name
	if cls.AcademicYear != "" {
		title = fmt.Sprintf("%s (%s)", cls.Name, cls.AcademicYear)
	}
	if err := f.SetCellValue(rosterSheet, "A1", title); err != nil {
		return errors.Wrap(err, "writing title")
	}
	if err := f.SetCellValue(rosterSheet, "A2", "exported "+time.Now().UTC().Format(dateLayout)+" UTC"); err != nil {
		return errors.Wrap(err, "writing export date")
	}
	if err := writeHeader(f, rosterSheet, []interface{}{"role", "name", "username", "email"}, 4); err != nil {
		return err
	}

	line := 5
	for _, group := range []struct {
		role  string
		users []user.User
	}{{"teacher", teachers}, {"student", students}} {
		for _, usr := range group.users {
			if err := setRow(f, rosterSheet, line, []interface{}{group.role, usr.Name, usr.Username, usr.Email}); err != nil {
				return err
			}
			line++
		}
	}
	_ = f.SetColWidth(rosterSheet, "A", "D", 24)
	return errors.Wrap(f.Write(w), "writing workbook")
}

func writeHeader(f *excelize.File, sheet string, header []interface{}, line ...int) error {
	ln := 1
	if len(line) > 0 {
		ln = line[0]
	}
	if err := setRow(f, sheet, ln, header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}
	first, _ := excelize.CoordinatesToCellName(1, ln)
	last, _ := excelize.CoordinatesToCellName(len(header), ln)
	return errors.Wrap(f.SetCellStyle(sheet, first, last, style), "styling header")
}

func setRow(f *excelize.File, sheet string, line int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return errors.Wrapf(err, "row %d", line)
	}
	return errors.Wrapf(f.SetSheetRow(sheet, cell, &values), "writing row %d", line)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
