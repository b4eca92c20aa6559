package tts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// DefaultLanguage is the synthesis voice used for Sanskrit recitation.
// Google offers no Sanskrit voice; Hindi at a slow rate is the closest fit.
const DefaultLanguage = "hi-IN"

const speakingRate = 0.7

// Client synthesizes verse pronunciation audio via Google Cloud
// Text-to-Speech and caches the MP3s on disk. The catalog is small and
// fixed, so the cache converges quickly and most requests never reach the
// API.
type Client struct {
	cacheDir string
	google   *texttospeech.Client
	mu       sync.Mutex
}

// NewClient connects to the Google TTS API using the ambient
// GOOGLE_APPLICATION_CREDENTIALS. The cache directory is created if
// missing.
func NewClient(ctx context.Context, cacheDir string) (*Client, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create tts cache dir: %w", err)
	}

	google, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create tts client: %w", err)
	}

	return &Client{cacheDir: cacheDir, google: google}, nil
}

func (c *Client) Close() error {
	return c.google.Close()
}

func cacheKey(text, lang string) string {
	h := sha256.Sum256([]byte(lang + ":" + text))
	return hex.EncodeToString(h[:16])
}

// Synthesize returns MP3 audio for the given text, serving from the disk
// cache when possible. Failures never leave a partial cache entry.
func (c *Client) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if lang == "" {
		lang = DefaultLanguage
	}

	cachePath := filepath.Join(c.cacheDir, cacheKey(text, lang)+".mp3")
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check after acquiring the lock: a concurrent request may have
	// filled the cache while we waited.
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	resp, err := c.google.SynthesizeSpeech(ctx, &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: lang,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_FEMALE,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  speakingRate,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}

	if err := os.WriteFile(cachePath, resp.AudioContent, 0o644); err != nil {
		log.Printf("[tts] failed to cache audio: %v", err)
	}
	return resp.AudioContent, nil
}
