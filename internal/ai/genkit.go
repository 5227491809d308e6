package ai

import (
	"context"
	"strings"
	"time"

	genkitai "github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/anthropic"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

// modelPrefixes maps a provider to the namespace Genkit expects in front of
// model names. Gemini runs through the native plugin; Anthropic and OpenAI
// go through the OpenAI-compatible shims.
//
//nolint:gochecknoglobals // fixed lookup table
var modelPrefixes = map[string]string{
	ProviderGoogle:    "googleai/",
	ProviderAnthropic: "anthropic/",
	ProviderOpenAI:    "openai/",
}

// GenkitProvider generates commit messages and commit history reviews
// through the Genkit SDK. Gemini is the default backend for this tool;
// Anthropic and OpenAI are selectable via configuration. Thread-safe for
// concurrent use.
type GenkitProvider struct {
	gk       *genkit.Genkit
	provider string
	model    string
	apiKey   string
	logger   *logrus.Entry
}

// NewGenkitProvider initializes the backend named by the configuration.
func NewGenkitProvider(ctx context.Context, cfg *Config, logger *logrus.Entry) (*GenkitProvider, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	model := qualifiedModel(cfg)
	gk, err := initBackend(ctx, cfg, model)
	if err != nil {
		return nil, err
	}

	return &GenkitProvider{
		gk:       gk,
		provider: cfg.Provider,
		model:    model,
		apiKey:   cfg.APIKey,
		logger:   logger,
	}, nil
}

// initBackend wires the provider-specific Genkit plugin and registers the
// default model every generation call will use.
func initBackend(ctx context.Context, cfg *Config, model string) (*genkit.Genkit, error) {
	switch cfg.Provider {
	case ProviderGoogle:
		return genkit.Init(ctx,
			genkit.WithPlugins(&googlegenai.GoogleAI{APIKey: cfg.APIKey}),
			genkit.WithDefaultModel(model),
		), nil
	case ProviderAnthropic:
		return genkit.Init(ctx,
			genkit.WithPlugins(&anthropic.Anthropic{
				Opts: []option.RequestOption{option.WithAPIKey(cfg.APIKey)},
			}),
			genkit.WithDefaultModel(model),
		), nil
	case ProviderOpenAI:
		return genkit.Init(ctx,
			genkit.WithPlugins(&openai.OpenAI{
				Opts: []option.RequestOption{option.WithAPIKey(cfg.APIKey)},
			}),
			genkit.WithDefaultModel(model),
		), nil
	default:
		return nil, ErrUnsupportedProvider
	}
}

// qualifiedModel resolves the configured model, or the provider default, to
// its namespaced Genkit form.
func qualifiedModel(cfg *Config) string {
	model := cfg.Model
	if model == "" {
		model = GetDefaultModel(cfg.Provider)
	}
	return modelPrefixes[cfg.Provider] + model
}

// Name returns the provider identifier.
func (p *GenkitProvider) Name() string {
	return p.provider
}

// Model returns the namespaced model this provider generates with.
func (p *GenkitProvider) Model() string {
	return p.model
}

// IsAvailable checks if the provider is properly configured and ready.
func (p *GenkitProvider) IsAvailable() bool {
	return p.gk != nil && p.apiKey != ""
}

// GenerateText sends one prompt to the backend and returns the generated
// commit message or review text.
func (p *GenkitProvider) GenerateText(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if p.gk == nil {
		return nil, ErrProviderNotConfigured
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, EmptyInputError("prompt")
	}

	start := time.Now()

	// Generation knobs stay on the plugin configuration; the OpenAI-compat
	// shims reject per-call common config, so only the prompt travels here.
	resp, err := genkit.Generate(ctx, p.gk, genkitai.WithPrompt(req.Prompt))
	if err != nil {
		return nil, GenerationError(p.provider, "generate text", err)
	}

	out := &GenerateResponse{
		Content:      resp.Text(),
		FinishReason: string(resp.FinishReason),
		Duration:     time.Since(start),
	}
	if resp.Usage != nil {
		out.TokensUsed = resp.Usage.TotalTokens
	}

	if out.Content == "" {
		return nil, ErrEmptyResponse
	}

	if p.logger != nil {
		p.logger.WithFields(logrus.Fields{
			"provider":    p.provider,
			"model":       p.model,
			"tokens":      out.TokensUsed,
			"duration_ms": out.Duration.Milliseconds(),
		}).Debug("Generated response")
	}

	return out, nil
}
