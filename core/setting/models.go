package setting

import (
	"regexp"
	"strconv"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/ujumbe/core"
)

// Known settings
const (
	KeySchoolName         = "school_name"
	KeyDefaultLanguage    = "default_language"
	KeySuggestionsEnabled = "ai.suggestions_enabled"
	KeyModelEnabled       = "ai.model_enabled"
	KeyMaxReplies         = "ai.max_replies"
	KeyUploadMaxSizeMB    = "upload.max_size_mb"

	DefaultSchoolName      = "Ujumbe"
	DefaultLanguage        = core.LangEnglish
	DefaultSuggestions     = true
	DefaultModelEnabled    = false
	DefaultMaxReplies      = 3
	DefaultUploadMaxSizeMB = 10
)

var (
	keyTag   = "settingkey"
	keyText  = "must be a lower-case dotted identifier"
	keyRegex = regexp.MustCompile(`^[a-z0-9_]+(\.[a-z0-9_]+)*$`)

	// value checks of the known settings
	valueCheckers = map[string]func(string) string{
		KeySuggestionsEnabled: checkBool,
		KeyModelEnabled:       checkBool,
		KeyMaxReplies:         checkIntRange(1, 10),
		KeyUploadMaxSizeMB:    checkIntRange(1, 100),
		KeyDefaultLanguage: func(v string) string {
			if !core.StringInSlice(v, core.Languages) {
				return "unsupported language"
			}
			return ""
		},
		KeySchoolName: func(v string) string {
			if v == "" {
				return "this field is required"
			}
			return ""
		},
	}
)

type Setting struct {
	Key         string    `json:"key"`
	Value       string    `json:"value"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"is_public"`
	UpdatedBy   string    `json:"updated_by"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
}

// UpsertSetting contains information needed to create or replace a Setting.
type UpsertSetting struct {
	Key         string `json:"key" validate:"required,max=100,settingkey"`
	Value       string `json:"value" validate:"max=10000"`
	Description string `json:"description" validate:"max=500"`
	IsPublic    *bool  `json:"is_public"`
}

func (us *UpsertSetting) Validate(validate *validator.Validate) error {
	us.Key = core.CleanString(us.Key, true /* lower */)
	us.Value = core.CleanString(us.Value)
	us.Description = core.CleanString(us.Description)
	if err := validate.Struct(us); err != nil {
		return err
	}
	if check, ok := valueCheckers[us.Key]; ok {
		if msg := check(us.Value); msg != "" {
			return core.NewFieldError("value", msg)
		}
	}
	return nil
}

// InitValidators registers the setting validators and their translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(keyTag, func(fl validator.FieldLevel) bool {
		return keyRegex.MatchString(fl.Field().String())
	})
	core.RegisterCustomTranslation(validate, translator, keyTag, keyText)
}

func checkBool(v string) string {
	if _, err := strconv.ParseBool(v); err != nil {
		return "must be a boolean"
	}
	return ""
}

func checkIntRange(min, max int) func(string) string {
	return func(v string) string {
		if n, err := strconv.Atoi(v); err != nil || n < min || n > max {
			return "must be an integer between " + strconv.Itoa(min) + " and " + strconv.Itoa(max)
		}
		return ""
	}
}
