package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/setting"
)

// Suggestion sources
const (
	SourceRules  = "rules"
	SourceModel  = "model"
	SourceHybrid = "hybrid"

	maxReplies = 10
)

var (
	// errors
	ErrDisabled = errors.New("reply suggestions are disabled")
)

type (
	// Request asks for reply suggestions to Text.
	Request struct {
		Text     string `json:"text" validate:"required,max=5000"`
		Language string `json:"language" validate:"omitempty,language"`
	}

	Suggestion struct {
		Category  string   `json:"category"`
		Language  string   `json:"language"`
		Replies   []string `json:"replies"`
		Reactions []string `json:"reactions"`
		Source    string   `json:"source"`
	}

	// ModelRequest is what a ReplyModel is asked for.
	ModelRequest struct {
		Text     string
		Language string
		Category string
		Max      int
	}

	// ReplyModel drafts replies with an external language model.
	ReplyModel interface {
		Replies(ctx context.Context, req ModelRequest) ([]string, error)
	}

	Service interface {
		Suggest(ctx context.Context, req Request, userLanguage string) (Suggestion, error)
		Categories() []string
	}

	service struct {
		classifier *Classifier
		model      ReplyModel
		settings   core.SettingsReader
		logger     core.Logger
		conf       *core.Config
	}
)

var _ Service = (*service)(nil)

func (req *Request) Validate(validate *validator.Validate) error {
	req.Text = core.CleanString(req.Text)
	req.Language = core.CleanString(req.Language, true /* lower */)
	return validate.Struct(req)
}

// NewService returns the suggestion Service; model may be nil.
func NewService(classifier *Classifier, model ReplyModel, settings core.SettingsReader, logger core.Logger, conf *core.Config) Service {
	return &service{
		classifier: classifier,
		model:      model,
		settings:   settings,
		logger:     logger,
		conf:       conf,
	}
}

func (svc *service) Suggest(ctx context.Context, req Request, userLanguage string) (Suggestion, error) {
	if !svc.settings.Bool(ctx, setting.KeySuggestionsEnabled, setting.DefaultSuggestions) {
		return Suggestion{}, ErrDisabled
	}

	cat, _ := svc.classifier.Classify(req.Text)
	lang := ResolveLanguage(req.Language, userLanguage, req.Text)
	limit := svc.maxReplies(ctx)

	var drafted []string
	if svc.modelEnabled(ctx) {
		var err error
		drafted, err = svc.draft(ctx, ModelRequest{Text: req.Text, Language: lang, Category: cat.Name, Max: limit})
		if err != nil {
			svc.logger.Warn(fmt.Sprintf("reply model failed, using canned replies: %v", err), err)
			drafted = nil
		}
	}

	replies, source := merge(drafted, cat.Replies[lang], limit)
	reactions := cat.Reactions
	if reactions == nil {
		reactions = []string{}
	}
	return Suggestion{
		Category:  cat.Name,
		Language:  lang,
		Replies:   replies,
		Reactions: reactions,
		Source:    source,
	}, nil
}

func (svc *service) Categories() []string {
	return svc.classifier.Categories()
}

func (svc *service) modelEnabled(ctx context.Context) bool {
	return svc.model != nil &&
		svc.conf.AI.APIKey != "" &&
		svc.settings.Bool(ctx, setting.KeyModelEnabled, setting.DefaultModelEnabled)
}

func (svc *service) draft(ctx context.Context, req ModelRequest) ([]string, error) {
	if svc.conf.AI.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, svc.conf.AI.Timeout)
		defer cancel()
	}
	replies, err := svc.model.Replies(ctx, req)
	return replies, errors.Wrap(err, "drafting replies")
}

func (svc *service) maxReplies(ctx context.Context) int {
	def := svc.conf.AI.MaxReplies
	if def <= 0 {
		def = setting.DefaultMaxReplies
	}
	n := svc.settings.Int(ctx, setting.KeyMaxReplies, def)
	if n < 1 {
		return 1
	}
	if n > maxReplies {
		return maxReplies
	}
	return n
}

// merge puts the drafted replies first and fills the remaining slots with the canned ones,
// dropping blanks and case-insensitive duplicates.
func merge(drafted, canned []string, limit int) ([]string, string) {
	replies := make([]string, 0, limit)
	seen := make(map[string]bool, limit)
	add := func(r string) bool {
		r = strings.TrimSpace(r)
		key := strings.ToLower(r)
		if r == "" || seen[key] || len(replies) >= limit {
			return false
		}
		seen[key] = true
		replies = append(replies, r)
		return true
	}

	var fromModel, fromRules int
	for _, r := range drafted {
		if add(r) {
			fromModel++
		}
	}
	for _, r := range canned {
		if add(r) {
			fromRules++
		}
	}

	switch {
	case fromModel > 0 && fromRules == 0:
		return replies, SourceModel
	case fromModel > 0:
		return replies, SourceHybrid
	}
	return replies, SourceRules
}
