package audio

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynth struct {
	calls []string
	err   error
}

func (f *fakeSynth) Synthesize(_ context.Context, text, _ string) ([]byte, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3:" + text), nil
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestResolvePrefersAssets(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "assets", "ka.mp3"))
	synth := &fakeSynth{}
	s := &Source{AssetsDir: filepath.Join(dir, "assets"), CacheDir: filepath.Join(dir, "cache"), Synth: synth}

	p, err := s.Resolve(context.Background(), "ka")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "assets", "ka.mp3"), p)
	assert.Empty(t, synth.calls)
}

func TestResolveSynthesizesOnceAndCaches(t *testing.T) {
	dir := t.TempDir()
	synth := &fakeSynth{}
	s := &Source{
		CacheDir: filepath.Join(dir, "cache"),
		Language: "ja-JP",
		Synth:    synth,
		TextFor:  func(key string) string { return map[string]string{"ka": "か"}[key] },
	}
	ctx := context.Background()

	p1, err := s.Resolve(ctx, "ka")
	require.NoError(t, err)
	p2, err := s.Resolve(ctx, "ka")
	require.NoError(t, err)

	assert.Equal(t, p1, p2)
	assert.Equal(t, []string{"か"}, synth.calls)
	data, err := os.ReadFile(p1)
	require.NoError(t, err)
	assert.Equal(t, "mp3:か", string(data))
}

func TestResolveFallsBackToPlaceholder(t *testing.T) {
	dir := t.TempDir()
	placeholder := filepath.Join(dir, "placeholder.mp3")
	writeFile(t, placeholder)
	s := &Source{
		CacheDir:    filepath.Join(dir, "cache"),
		Placeholder: placeholder,
		Synth:       &fakeSynth{err: errors.New("quota exceeded")},
	}

	p, err := s.Resolve(context.Background(), "ka")
	require.NoError(t, err)
	assert.Equal(t, placeholder, p)
}

func TestResolveNothingAvailable(t *testing.T) {
	s := &Source{AssetsDir: t.TempDir()}
	_, err := s.Resolve(context.Background(), "ka")
	assert.ErrorIs(t, err, ErrNoAudio)

	_, err = s.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoAudio)
}

func TestGoogleTTS(t *testing.T) {
	var got ttsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString([]byte("ID3")),
		})
	}))
	defer srv.Close()

	g := NewGoogleTTS("test-key")
	g.BaseURL = srv.URL

	data, err := g.Synthesize(context.Background(), "あ", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3"), data)
	assert.Equal(t, "あ", got.Input.Text)
	assert.Equal(t, "ja-JP", got.Voice.LanguageCode)
	assert.Equal(t, "MP3", got.AudioConfig.AudioEncoding)
}

func TestGoogleTTSErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	g := NewGoogleTTS("bad")
	g.BaseURL = srv.URL

	_, err := g.Synthesize(context.Background(), "あ", "ja-JP")
	assert.ErrorContains(t, err, "403")
}
