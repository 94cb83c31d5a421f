// Package llm talks to hosted language models. Kanaz uses it to write
// memory hints for individual kana; every call returns schema-checked JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is implemented by every model backend and decorator.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the content has already been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is one prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the backend for structured output and makes
	// Generate validate the result.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Message is one turn of the prompt.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name must be unique per definition; it
// keys the compiled schema cache and is sent to backends that want one.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason says why the model stopped.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

// Response is the model output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}

// Decode unmarshals resp.Content into a T.
func Decode[T any](resp *Response) (T, error) {
	var out T
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return out, invalidResponse(resp.Content, "decode: %w", err)
	}
	return out, nil
}

// finish turns raw backend output into a Response, rejecting truncated
// output and output that does not match req.Schema.
func finish(req Request, content json.RawMessage, usage Usage, model string, stop StopReason) (*Response, error) {
	if stop == StopMaxTokens {
		return nil, &Error{Kind: KindTruncated, Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are treated as provider model IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
