package config

import (
	"bytes"
	"os"

	"github.com/adrianliechti/aiphoto/pkg/provider"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

type Config struct {
	models map[string]provider.Model

	renderer map[string]provider.Renderer
}

// Parse loads the renderer registry. Without a path (argument or
// AIPHOTO_CONFIG), a renderer is resolved from the environment alone; a path
// that cannot be read is an error.
func Parse(path string) (*Config, error) {
	c := &Config{}

	if path == "" {
		path = os.Getenv("AIPHOTO_CONFIG")
	}

	if path == "" {
		return c, c.registerDefaultRenderer()
	}

	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	if err := c.registerRenderers(file); err != nil {
		return nil, err
	}

	if len(c.renderer) == 0 {
		return c, c.registerDefaultRenderer()
	}

	return c, nil
}

func (cfg *Config) RegisterModel(id string) {
	if cfg.models == nil {
		cfg.models = make(map[string]provider.Model)
	}

	if _, ok := cfg.models[id]; ok {
		return
	}

	cfg.models[id] = provider.Model{
		ID: id,
	}
}

func (cfg *Config) Models() []provider.Model {
	result := make([]provider.Model, 0, len(cfg.models))

	for _, m := range cfg.models {
		result = append(result, m)
	}

	return result
}

type configFile struct {
	Renderers map[string]rendererConfig `yaml:"renderers"`
}

type rendererConfig struct {
	Type string `yaml:"type"`

	Token string `yaml:"token"`
	URL   string `yaml:"url"`

	Model string `yaml:"model"`

	Project  string `yaml:"project"`
	Location string `yaml:"location"`

	Limit *int `yaml:"limit"`
}

func parseFile(path string) (*configFile, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
