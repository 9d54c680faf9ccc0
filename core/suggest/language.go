package suggest

import (
	"strings"

	"github.com/trezcool/ujumbe/core"
)

// marker words, normalized
var (
	frenchMarkers = wordSet(
		"le", "la", "les", "un", "une", "des", "du", "de", "et", "est", "je", "tu", "il", "elle",
		"nous", "vous", "ils", "mon", "ma", "mes", "votre", "vos", "notre", "pour", "avec", "dans",
		"sur", "pas", "ne", "que", "qui", "merci", "bonjour", "bonsoir", "oui", "non", "tres",
		"aujourd", "hui", "demain", "hier", "mais", "ou", "cette", "ce", "sont", "suis", "avez",
	)
	englishMarkers = wordSet(
		"the", "a", "an", "and", "is", "are", "i", "you", "he", "she", "we", "they", "my", "your",
		"our", "for", "with", "in", "on", "not", "that", "which", "who", "thanks", "thank", "hello",
		"hi", "yes", "no", "very", "today", "tomorrow", "yesterday", "but", "or", "this", "will",
		"be", "am", "have", "has", "to", "of", "please", "can", "could", "would",
	)
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// DetectLanguage guesses whether text is French or English by counting marker words.
// ok is false when neither language has more markers.
func DetectLanguage(text string) (lang string, ok bool) {
	var frCount, enCount int
	for _, w := range strings.Fields(Normalize(text)) {
		if frenchMarkers[w] {
			frCount++
		}
		if englishMarkers[w] {
			enCount++
		}
	}
	switch {
	case frCount > enCount:
		return core.LangFrench, true
	case enCount > frCount:
		return core.LangEnglish, true
	}
	return "", false
}

// ResolveLanguage picks the reply language: the explicit one, then the user's, then the
// detected one, English otherwise.
func ResolveLanguage(explicit, userLanguage, text string) string {
	if isSupported(explicit) {
		return explicit
	}
	if isSupported(userLanguage) {
		return userLanguage
	}
	if lang, ok := DetectLanguage(text); ok {
		return lang
	}
	return core.LangEnglish
}

func isSupported(lang string) bool {
	return lang != "" && core.StringInSlice(lang, core.Languages)
}
