package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProviderReplaysScript(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"hint":"a"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Content: json.RawMessage(`{"hint":"b"}`)},
	)

	first, err := m.Generate(context.Background(), Request{MaxTokens: 100})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hint":"a"}`, string(first.Content))
	assert.Equal(t, 15, first.Usage.Total())
	assert.Equal(t, StopEnd, first.StopReason)
	assert.Equal(t, "mock", first.Model)

	second, err := m.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hint":"b"}`, string(second.Content))

	_, err = m.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, 3, m.CallCount())
	assert.Equal(t, 100, m.Calls[0].MaxTokens)
}

func TestMockProviderScriptedError(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockProvider(MockResponse{Err: boom})
	m.Model = "local"

	_, err := m.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "local", m.ModelID())

	m.AddResponse(MockResponse{Content: json.RawMessage(`{}`)})
	resp, err := m.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "local", resp.Model)
}

func TestDecode(t *testing.T) {
	type card struct {
		Hint  string `json:"hint"`
		Story string `json:"story"`
	}

	got, err := Decode[card](&Response{Content: json.RawMessage(`{"hint":"h","story":"s"}`)})
	require.NoError(t, err)
	assert.Equal(t, card{Hint: "h", Story: "s"}, got)

	_, err = Decode[card](&Response{Content: json.RawMessage(`["not","an","object"]`)})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestFinishRejectsTruncated(t *testing.T) {
	_, err := finish(Request{}, json.RawMessage(`{"hint":`), Usage{}, "m", StopMaxTokens)

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, KindTruncated, e.Kind)
	assert.Equal(t, `{"hint":`, string(e.Content))
}

func TestPurposeContext(t *testing.T) {
	assert.Equal(t, PurposeUnknown, PurposeFrom(context.Background()))
	assert.Equal(t, PurposeMnemonic, PurposeFrom(WithPurpose(context.Background(), PurposeMnemonic)))
	assert.Equal(t, PurposeUnknown, PurposeFrom(WithPurpose(context.Background(), "")))
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		models map[string]string
		in     string
		want   string
	}{
		{anthropicModels, "claude-haiku", "claude-haiku-4-5-20251001"},
		{anthropicModels, "claude-sonnet", "claude-sonnet-4-5-20250929"},
		{anthropicModels, "claude-opus-4-1", "claude-opus-4-1"},
		{openaiModels, "gpt-mini", "gpt-4o-mini"},
		{geminiModels, "gemini-lite", "gemini-2.5-flash-lite"},
		{geminiModels, "gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveModel(tt.in, tt.models), tt.in)
	}
}
