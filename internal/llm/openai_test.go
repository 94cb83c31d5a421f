package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

func chatServer(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server.URL + "/v1"
}

func TestOpenAIGenerate(t *testing.T) {
	var got map[string]any
	base := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion(`{"hint":"shi is a fishing hook","story":"A hook."}`, "stop"))
	})

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-mini", BaseURL: base})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write memory hints for Japanese kana.",
		Messages:  []Message{{Role: RoleUser, Content: "Write a mnemonic for し (shi)."}},
		Schema:    kanaMnemonicSchema(),
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)

	msgs, _ := got["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	format, _ := got["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
}

func TestOpenAISchemaMismatch(t *testing.T) {
	base := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion(`{"hint":"only"}`, "stop"))
	})
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: base})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Schema: kanaMnemonicSchema()})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestOpenAIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limit", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": "nope", "type": "server_error"},
				})
			})
			p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: base})
			require.NoError(t, err)

			_, err = p.Generate(context.Background(), Request{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestOpenAITruncated(t *testing.T) {
	base := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion(`{"hint":"sh`, "length"))
	})
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: base})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{})
	assert.Error(t, err)

	var path string
	base := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion(`{}`, "stop"))
	})
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "gpt-mini", BaseURL: base})
	require.NoError(t, err)
	assert.Equal(t, "gpt-mini", p.ModelID(), "openrouter model IDs pass through")

	_, err = p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "/v1/chat/completions", path)
}

func kanaMnemonicSchema() *Schema {
	return &Schema{
		Name: "test-openai-mnemonic",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"hint":  map[string]any{"type": "string"},
				"story": map[string]any{"type": "string"},
			},
			"required": []any{"hint", "story"},
		},
	}
}
