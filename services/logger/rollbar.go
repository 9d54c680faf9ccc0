package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/user"
)

// RollbarLogger writes every entry to a std logger and reports it to Rollbar when enabled.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetCustom(map[string]interface{}{"app": conf.AppName})
	return &RollbarLogger{std: std}
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// Close waits for the pending reports to be sent.
func (l RollbarLogger) Close() {
	rollbar.Wait()
}

// expected fmt: msg | error, map[string]interface{}, user.User
func (l RollbarLogger) prepare(msg string, args []interface{}) (report []interface{}, usr *user.User) {
	report = make([]interface{}, 0, len(args)+1)
	report = append(report, msg)
	for _, arg := range args {
		u, ok := arg.(user.User)
		if !ok {
			report = append(report, arg)
			continue
		}
		if usr == nil { // the first User is the actor
			usr = &u
		}
	}
	if usr != nil {
		rollbar.SetPerson(usr.ID, usr.Username, usr.Email)
	} else {
		rollbar.ClearPerson()
	}
	return report, usr
}

func (l RollbarLogger) print(level, msg string, usr *user.User, args []interface{}) {
	if usr != nil {
		l.std.Printf("[%s] %s (user: %s)", level, msg, usr.ID)
	} else {
		l.std.Printf("[%s] %s", level, msg)
	}
	for _, arg := range args {
		if _, ok := arg.(user.User); ok {
			continue
		}
		l.std.Printf("\t%+v", arg)
	}
}

func (l RollbarLogger) log(level string, report func(...interface{}), msg string, args []interface{}) {
	prepared, usr := l.prepare(msg, args)
	report(prepared...)
	l.print(level, msg, usr, args)
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.log("DEBUG", rollbar.Debug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.log("INFO", rollbar.Info, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.log("WARN", rollbar.Warning, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.log("ERROR", rollbar.Error, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log("FATAL", rollbar.Critical, msg, args)
	rollbar.Wait()
	l.std.Fatal(msg)
}
