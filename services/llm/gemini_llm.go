package llm

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"
)

// defaultGeminiModels is the fallback order tried per request. Free-tier
// quota is per model, so when one is exhausted the next often still works.
var defaultGeminiModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-flash-lite",
	"gemini-2.0-flash",
}

// modelRetryPause is the wait between model attempts.
const modelRetryPause = 2 * time.Second

type GeminiClient struct {
	client *genai.Client
	models []string
	pause  time.Duration
}

func NewGeminiClient(ctx context.Context) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		secretPath := "/run/secrets/gemini_api_key"
		apiKeyBytes, err := os.ReadFile(secretPath)
		if err == nil {
			apiKey = strings.TrimSpace(string(apiKeyBytes))
			slog.Info("Read the Gemini API Key from Podman Secrets")
		} else {
			slog.Error("GEMINI_API_KEY environment variable not set and secret not found", "path", secretPath)
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	}

	models := defaultGeminiModels
	if env := os.Getenv("GEMINI_MODELS"); env != "" {
		models = nil
		for _, m := range strings.Split(env, ",") {
			if m = strings.TrimSpace(m); m != "" {
				models = append(models, m)
			}
		}
	}
	if len(models) == 0 {
		models = defaultGeminiModels
		slog.Warn("GEMINI_MODELS was empty, using default model list", "models", models)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	slog.Info("Initializing Gemini client", "models", models)
	return &GeminiClient{client: client, models: models, pause: modelRetryPause}, nil
}

// Generate implements the LLMClient interface.
//
// Each configured model is tried in order with a short pause in between.
// The first non-empty response wins; the last error is returned when every
// model fails.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, params GenerationParams) (string, error) {
	config := &genai.GenerateContentConfig{}
	if params.JSONOutput {
		config.ResponseMIMEType = "application/json"
	}
	if params.Temperature != nil {
		config.Temperature = genai.Ptr(*params.Temperature)
	}
	if params.TopP != nil {
		config.TopP = genai.Ptr(*params.TopP)
	}
	if params.TopK != nil {
		config.TopK = genai.Ptr(float32(*params.TopK))
	}
	if params.MaxTokens != nil {
		config.MaxOutputTokens = int32(*params.MaxTokens)
	}
	if len(params.Stop) > 0 {
		config.StopSequences = params.Stop
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	var lastErr error
	for i, model := range g.models {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(g.pause):
			}
		}

		slog.Info("Trying Gemini model", "model", model)
		resp, err := g.client.Models.GenerateContent(ctx, model, contents, config)
		if err != nil {
			lastErr = err
			slog.Warn("Gemini model failed, trying next", "model", model, "error", err)
			continue
		}

		text := strings.TrimSpace(resp.Text())
		if text == "" {
			lastErr = fmt.Errorf("model %s returned empty response", model)
			slog.Warn("Gemini returned empty text, trying next", "model", model)
			continue
		}

		slog.Debug("Received response from Gemini", "model", model, "chars", len(text))
		return text, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no Gemini models configured")
	}
	return "", fmt.Errorf("all Gemini models failed: %w", lastErr)
}
