package aisvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/ujumbe/core"
	"github.com/trezcool/ujumbe/core/suggest"
)

func TestReplyModel(t *testing.T) {
	var gotReq map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]interface{}{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]string{
					"role":    "assistant",
					"content": "```json\n{\"replies\": [\"Prompt rétablissement !\", \"Merci de nous avoir prévenus.\"]}\n```",
				},
			}},
		})
	}))
	defer srv.Close()

	model := NewReplyModel(core.AIConfig{APIKey: "key", BaseURL: srv.URL + "/v1", Model: "test-model"})
	replies, err := model.Replies(context.Background(), suggest.ModelRequest{
		Text: "Il est malade", Language: core.LangFrench, Category: "sickness", Max: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Prompt rétablissement !", "Merci de nous avoir prévenus."}, replies)
	assert.Equal(t, "test-model", gotReq["model"])
}

func TestReplyModelFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	model := NewReplyModel(core.AIConfig{APIKey: "key", BaseURL: srv.URL + "/v1"})
	_, err := model.Replies(context.Background(), suggest.ModelRequest{Text: "hi", Language: core.LangEnglish, Max: 3})
	assert.Error(t, err)
}

func TestParseReplies(t *testing.T) {
	replies, err := parseReplies(`{"replies": ["a", "b"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, replies)

	_, err = parseReplies("not json")
	assert.Error(t, err)
}
