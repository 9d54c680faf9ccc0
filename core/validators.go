package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/pkg/errors"
)

var (
	// custom validation tags & texts
	alphaNumUnderTag   = "alphanum_"
	alphaNumUnderText  = "only alphanumeric characters and underscores are allowed"
	alphaNumUnderRegex = regexp.MustCompile(`^\w+$`)

	languageTag  = "language"
	languageText = "unsupported language"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// Supported languages
const (
	LangEnglish = "en"
	LangFrench  = "fr"
)

var Languages = []string{LangEnglish, LangFrench}

// NewTranslator returns the english translator used to render validation errors.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(alphaNumUnderTag, alphaNumUnderValidation)
	RegisterCustomTranslation(validate, translator, alphaNumUnderTag, alphaNumUnderText)

	_ = validate.RegisterValidation(languageTag, languageValidation)
	RegisterCustomTranslation(validate, translator, languageTag, languageText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// Custom Global Validators

// alphaNumUnderValidation only allows alphanumeric characters and underscores.
func alphaNumUnderValidation(fl validator.FieldLevel) bool {
	return alphaNumUnderRegex.MatchString(fl.Field().String())
}

// languageValidation only allows the supported Languages.
func languageValidation(fl validator.FieldLevel) bool {
	return StringInSlice(fl.Field().String(), Languages)
}

// ValidationMessages renders err as a {field: message} map.
// ok is false when err is neither a validator.ValidationErrors nor a *ValidationError.
func ValidationMessages(err error, translator ut.Translator) (msgs map[string]string, ok bool) {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		msgs = make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			msgs[vErr.Field()] = vErr.Translate(translator)
		}
		return msgs, true
	case *ValidationError:
		msgs = make(map[string]string, len(origErr.Fields))
		for _, fErr := range origErr.Fields {
			msgs[fErr.Field] = fErr.Error
		}
		if len(msgs) == 0 {
			msgs["error"] = origErr.Error()
		}
		return msgs, true
	}
	return nil, false
}
