package aisvc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/suggest"
)

const systemPrompt = `You help school staff, students and parents answer messages.
Write short, polite replies (one or two sentences each) to the message you are given.
Answer with a JSON object: {"replies": ["...", "..."]}.`

var languageNames = map[string]string{
	core.LangEnglish: "English",
	core.LangFrench:  "French",
}

// replyModel drafts replies with an OpenAI compatible chat completion API.
type replyModel struct {
	client *openai.Client
	model  string
}

var _ suggest.ReplyModel = (*replyModel)(nil)

func NewReplyModel(conf core.AIConfig) suggest.ReplyModel {
	cfg := openai.DefaultConfig(conf.APIKey)
	if conf.BaseURL != "" {
		cfg.BaseURL = conf.BaseURL
	}
	model := conf.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &replyModel{client: openai.NewClientWithConfig(cfg), model: model}
}

type modelReplies struct {
	Replies []string `json:"replies"`
}

func (m *replyModel) Replies(ctx context.Context, req suggest.ModelRequest) ([]string, error) {
	lang, ok := languageNames[req.Language]
	if !ok {
		lang = languageNames[core.LangEnglish]
	}
	prompt := fmt.Sprintf(
		"Reply language: %s\nMessage category: %s\nNumber of replies: %d\n\nMessage:\n%s",
		lang, req.Category, req.Max, req.Text,
	)

	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       m.model,
		Temperature: 0.4,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("empty chat completion")
	}
	return parseReplies(resp.Choices[0].Message.Content)
}

// parseReplies reads the {"replies": [...]} answer, tolerating markdown code fences.
func parseReplies(content string) ([]string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var mr modelReplies
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &mr); err != nil {
		return nil, errors.Wrap(err, "decoding model replies")
	}
	return mr.Replies, nil
}
