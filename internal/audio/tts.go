package audio

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTTSURL is the Google Cloud Text-to-Speech synthesize endpoint.
const DefaultTTSURL = "https://texttospeech.googleapis.com/v1/text:synthesize"

// GoogleTTS synthesizes speech with the Google Cloud Text-to-Speech REST API.
type GoogleTTS struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewGoogleTTS returns a synthesizer using apiKey.
func NewGoogleTTS(apiKey string) *GoogleTTS {
	return &GoogleTTS{
		APIKey:     apiKey,
		BaseURL:    DefaultTTSURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type ttsRequest struct {
	Input       ttsInput       `json:"input"`
	Voice       ttsVoice       `json:"voice"`
	AudioConfig ttsAudioConfig `json:"audioConfig"`
}

type ttsInput struct {
	Text string `json:"text"`
}

type ttsVoice struct {
	LanguageCode string `json:"languageCode"`
	SSMLGender   string `json:"ssmlGender"`
}

type ttsAudioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate,omitempty"`
}

func (g *GoogleTTS) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if lang == "" {
		lang = "ja-JP"
	}
	body, err := json.Marshal(ttsRequest{
		Input:       ttsInput{Text: text},
		Voice:       ttsVoice{LanguageCode: lang, SSMLGender: "FEMALE"},
		AudioConfig: ttsAudioConfig{AudioEncoding: "MP3", SpeakingRate: 0.85},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"?key="+g.APIKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := g.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS API error %d: %s", resp.StatusCode, string(raw))
	}

	var result struct {
		AudioContent string `json:"audioContent"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(result.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return audio, nil
}
