package core_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/ujumbe/core"
	appfs "github.com/trezcool/ujumbe/fs"
)

type errLogger struct {
	errors []string
}

func (l *errLogger) Debug(string, ...interface{}) {}
func (l *errLogger) Info(string, ...interface{})  {}
func (l *errLogger) Warn(string, ...interface{})  {}
func (l *errLogger) Error(msg string, _ ...interface{}) {
	l.errors = append(l.errors, msg)
}
func (l *errLogger) Fatal(msg string, _ ...interface{}) {
	l.errors = append(l.errors, msg)
}

func TestEmailTemplatesEmbedded(t *testing.T) {
	fps, err := fs.Glob(appfs.FS, "assets/templates/email/_base.*")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"assets/templates/email/_base.gohtml",
		"assets/templates/email/_base.txt",
	}, fps)
}

func TestEmailMessage_Render(t *testing.T) {
	conf := core.NewConfigFor("TEST")
	conf.AppName = "Shule"
	conf.FrontendBaseURL = "http://front.test"
	logger := new(errLogger)
	core.ParseEmailTemplates(conf, logger)
	require.Empty(t, logger.errors)

	msg := &core.EmailMessage{
		Subject:      "Password reset",
		TemplateName: "password_reset",
		TemplateData: map[string]interface{}{"Name": "Jane", "URL": "http://front.test/password-reset/uid/token"},
	}
	require.NoError(t, msg.Render())
	assert.True(t, msg.HasContent())
	assert.Contains(t, msg.TextContent, "Hello Jane,")
	assert.Contains(t, msg.TextContent, "http://front.test/password-reset/uid/token")
	assert.Contains(t, msg.TextContent, "The Shule team")
	assert.Contains(t, msg.HTMLContent, "Jane")
	assert.Contains(t, msg.HTMLContent, "http://front.test/password-reset/uid/token")

	unknown := &core.EmailMessage{TemplateName: "lol"}
	require.NoError(t, unknown.Render())
	assert.False(t, unknown.HasContent())
}
