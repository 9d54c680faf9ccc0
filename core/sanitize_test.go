package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/ujumbe/core"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name, in, want, wantPlain string
	}{
		{"tags", " <b>Essay</b> ", "Essay", "Essay"},
		{"script", "<script>alert(1)</script>Hi", "Hi", "Hi"},
		{"escaped markup stays escaped", "&lt;script&gt;", "&lt;script&gt;", "<script>"},
		{"ampersand", "Tom & Jerry", "Tom &amp; Jerry", "Tom & Jerry"},
		{"idempotent", "Tom &amp; Jerry", "Tom &amp; Jerry", "Tom & Jerry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.StripHTML(tt.in))
			assert.Equal(t, tt.wantPlain, core.PlainText(tt.in))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	assert.Equal(t, "<p>Exams start <b>Monday</b></p>", core.SanitizeHTML(`<p onclick="x()">Exams start <b>Monday</b></p><script>x()</script>`))
}
