package config

import (
	"errors"
	"os"
	"strings"

	"github.com/adrianliechti/aiphoto/pkg/limiter"
	"github.com/adrianliechti/aiphoto/pkg/otel"
	"github.com/adrianliechti/aiphoto/pkg/provider"
	"github.com/adrianliechti/aiphoto/pkg/provider/google"
	"github.com/adrianliechti/aiphoto/pkg/provider/openai"
	"github.com/adrianliechti/aiphoto/pkg/provider/replicate"
	"github.com/adrianliechti/aiphoto/pkg/provider/replicate/flux"
)

const defaultModel = "gemini-2.5-flash-image-preview"

func (cfg *Config) RegisterRenderer(id string, p provider.Renderer) {
	cfg.RegisterModel(id)

	if cfg.renderer == nil {
		cfg.renderer = make(map[string]provider.Renderer)
	}

	if _, ok := cfg.renderer[""]; !ok {
		cfg.renderer[""] = p
	}

	cfg.renderer[id] = p
}

func (cfg *Config) Renderer(id string) (provider.Renderer, error) {
	if cfg.renderer != nil {
		if r, ok := cfg.renderer[id]; ok {
			return r, nil
		}
	}

	return nil, errors.New("renderer not found: " + id)
}

func (cfg *Config) registerRenderers(f *configFile) error {
	for id, r := range f.Renderers {
		renderer, err := createRenderer(r)

		if err != nil {
			return err
		}

		model := r.Model

		if model == "" {
			model = defaultModel
		}

		renderer = otel.NewRenderer(r.Type, model, renderer)

		if r.Limit != nil {
			renderer = limiter.NewRenderer(createLimiter(r.Limit), renderer)
		}

		cfg.RegisterRenderer(id, renderer)
	}

	return nil
}

// registerDefaultRenderer resolves a Gemini renderer from the ambient
// environment, matching the credential precedence of the gcloud tooling:
// an API key wins, otherwise application-default credentials and a project.
func (cfg *Config) registerDefaultRenderer() error {
	model := os.Getenv("AIPHOTO_MODEL")

	if model == "" {
		model = defaultModel
	}

	var options []google.Option

	if token := googleToken(); token != "" {
		options = append(options, google.WithToken(token))
	} else if project := os.Getenv("GOOGLE_CLOUD_PROJECT"); project != "" {
		options = append(options, google.WithVertex(project, os.Getenv("GOOGLE_CLOUD_LOCATION")))
	} else {
		return errors.New("no credentials found: set GEMINI_API_KEY, or set GOOGLE_CLOUD_PROJECT after 'gcloud auth application-default login'")
	}

	renderer, err := google.NewRenderer(model, options...)

	if err != nil {
		return err
	}

	cfg.RegisterRenderer(model, otel.NewRenderer("google", model, renderer))

	return nil
}

func googleToken() string {
	for _, env := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"} {
		if val := os.Getenv(env); val != "" {
			return val
		}
	}

	return ""
}

func createRenderer(cfg rendererConfig) (provider.Renderer, error) {
	switch strings.ToLower(cfg.Type) {
	case "gemini", "google":
		return googleRenderer(cfg)

	case "openai":
		return openaiRenderer(cfg)

	case "replicate":
		return replicateRenderer(cfg)

	default:
		return nil, errors.New("invalid renderer type: " + cfg.Type)
	}
}

func googleRenderer(cfg rendererConfig) (provider.Renderer, error) {
	var options []google.Option

	if cfg.Token != "" {
		options = append(options, google.WithToken(cfg.Token))
	}

	if cfg.Project != "" {
		options = append(options, google.WithVertex(cfg.Project, cfg.Location))
	}

	if cfg.Token == "" && cfg.Project == "" {
		return nil, errors.New("google renderer requires a token or a project")
	}

	model := cfg.Model

	if model == "" {
		model = defaultModel
	}

	return google.NewRenderer(model, options...)
}

func openaiRenderer(cfg rendererConfig) (provider.Renderer, error) {
	var options []openai.Option

	if cfg.Token != "" {
		options = append(options, openai.WithToken(cfg.Token))
	}

	return openai.NewRenderer(cfg.URL, cfg.Model, options...)
}

func replicateRenderer(cfg rendererConfig) (provider.Renderer, error) {
	var options []replicate.Option

	if cfg.Token != "" {
		options = append(options, replicate.WithToken(cfg.Token))
	}

	return flux.NewRenderer(cfg.Model, options...)
}
