package testutil

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/class"
	"github.com/trezcool/ujumbe/core/file"
	"github.com/trezcool/ujumbe/core/setting"
	"github.com/trezcool/ujumbe/core/user"
	"github.com/trezcool/ujumbe/services/email"
	"github.com/trezcool/ujumbe/services/logger"
)

// Config returns the TEST configuration with uploads kept under a per-test directory.
func Config(t *testing.T) *core.Config {
	conf := core.NewConfigFor("TEST")
	conf.Storage.Dir = t.TempDir()
	conf.Storage.BaseURL = "http://testserver"
	return conf
}

// Logger returns a logger that discards everything and never reports.
func Logger(conf *core.Config) core.Logger {
	l := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	l.Enable(false)
	return l
}

// MailService parses the e-mail templates and returns a mail mock keeping the sent messages.
func MailService(conf *core.Config, logger core.Logger) *emailsvc.ConsoleServiceMock {
	core.ParseEmailTemplates(conf, logger)
	return emailsvc.NewConsoleServiceMock(conf, logger)
}

// Validator returns a validator with every custom validation registered.
func Validator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	setting.InitValidators(validate, translator)
	return validate, translator
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()

	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	if roles == nil {
		roles = []string{}
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		Language:  core.LangEnglish,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateClass(t *testing.T, repo class.Repository, name string, teacherIDs, studentIDs []string) class.Class {
	t.Helper()

	if teacherIDs == nil {
		teacherIDs = []string{}
	}
	if studentIDs == nil {
		studentIDs = []string{}
	}
	now := time.Now().UTC()
	cls, err := repo.CreateClass(context.Background(), class.Class{
		Name:         name,
		AcademicYear: "2024-2025",
		TeacherIDs:   teacherIDs,
		StudentIDs:   studentIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateClass() failed: %v", err)
	}
	return cls
}

func CreateFile(t *testing.T, repo file.Repository, ownerID, filename string) file.File {
	t.Helper()

	f, err := repo.CreateFile(context.Background(), file.File{
		OwnerID:     ownerID,
		Filename:    filename,
		ContentType: "text/plain",
		Size:        5,
		StorageKey:  "uploads/" + filename,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateFile() failed: %v", err)
	}
	return f
}
