package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/ujumbe/core"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "  Hello,   World!! ", want: "hello world"},
		{in: "Félicitations à l'élève", want: "felicitations a l eleve"},
		{in: "Won't be in: 8:30", want: "won t be in 8 30"},
		{in: "ÇA MARCHE", want: "ca marche"},
		{in: "???", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestCatalog(t *testing.T) {
	cats := Catalog()
	require.GreaterOrEqual(t, len(cats), 45)
	assert.Equal(t, CategoryGeneral, cats[len(cats)-1].Name, "the fallback must be listed last")

	names := make(map[string]bool, len(cats))
	for _, cat := range cats {
		assert.False(t, names[cat.Name], "duplicate category %q", cat.Name)
		names[cat.Name] = true

		assert.NotEmpty(t, cat.Reactions, cat.Name)
		for _, lang := range core.Languages {
			assert.GreaterOrEqual(t, len(cat.Replies[lang]), 3, "%s replies in %s", cat.Name, lang)
			if cat.Name == CategoryGeneral {
				continue
			}
			assert.NotEmpty(t, cat.Keywords[lang], "%s keywords in %s", cat.Name, lang)
			for _, kw := range cat.Keywords[lang] {
				assert.NotEmpty(t, Normalize(kw), "%s keyword %q", cat.Name, kw)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name      string
		text      string
		want      string
		wantScore int
	}{
		{name: "no match", text: "asdf qwer", want: CategoryGeneral, wantScore: 0},
		{name: "empty", text: "", want: CategoryGeneral, wantScore: 0},
		{name: "english", text: "There is an emergency, he was injured", want: "urgent_emergency", wantScore: 2},
		{name: "french with accents", text: "Mon fils est malade et a de la fièvre", want: "sickness", wantScore: 2},
		{name: "phrase", text: "Thank you so much!", want: "thanks", wantScore: 2},
		{name: "diacritics folded", text: "Félicitations pour le prix !", want: "congratulations", wantScore: 2},
		{name: "whole words only", text: "Brilliant skills", want: CategoryGeneral, wantScore: 0},
		// sickness and absence both score 1: the first listed wins
		{name: "tie", text: "My son has a fever and will stay home", want: "sickness", wantScore: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat, score := c.Classify(tt.text)
			assert.Equal(t, tt.want, cat.Name)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestClassifyHighestScoreWins(t *testing.T) {
	c := NewClassifier([]Category{
		{Name: "first", Keywords: byLang{en: {"alpha"}}},
		{Name: "second", Keywords: byLang{en: {"alpha", "beta"}, fr: {"beta", "gamma"}}},
		{Name: CategoryGeneral},
	})

	cat, score := c.Classify("alpha beta gamma")
	assert.Equal(t, "second", cat.Name)
	assert.Equal(t, 3, score, "keywords shared by both languages count once")

	cat, score = c.Classify("alpha")
	assert.Equal(t, "first", cat.Name)
	assert.Equal(t, 1, score)

	assert.Equal(t, []string{"first", "second", CategoryGeneral}, c.Categories())
	_, ok := c.Category("missing")
	assert.False(t, ok)
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOk bool
	}{
		{text: "Bonjour, mon fils est malade aujourd'hui", want: core.LangFrench, wantOk: true},
		{text: "Hello, my son is sick today", want: core.LangEnglish, wantOk: true},
		{text: "asdf", wantOk: false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			lang, ok := DetectLanguage(tt.text)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, lang)
		})
	}
}

func TestResolveLanguage(t *testing.T) {
	tests := []struct {
		name              string
		explicit, usrLang string
		text              string
		want              string
	}{
		{name: "explicit", explicit: "fr", usrLang: "en", text: "hello", want: "fr"},
		{name: "user language", usrLang: "fr", text: "hello there", want: "fr"},
		{name: "detected", text: "bonjour et merci", want: "fr"},
		{name: "default", text: "xyz", want: "en"},
		{name: "unsupported explicit", explicit: "de", text: "xyz", want: "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLanguage(tt.explicit, tt.usrLang, tt.text))
		})
	}
}
