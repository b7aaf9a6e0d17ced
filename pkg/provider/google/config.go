package google

import (
	"context"
	"net/http"

	"google.golang.org/genai"
)

type Config struct {
	token string
	model string

	project  string
	location string

	client *http.Client
}

type Option func(*Config)

func WithClient(client *http.Client) Option {
	return func(c *Config) {
		c.client = client
	}
}

func WithToken(token string) Option {
	return func(c *Config) {
		c.token = token
	}
}

// WithVertex routes calls to the Vertex AI backend of the given project.
// Credentials are taken from the ambient application-default context.
func WithVertex(project, location string) Option {
	return func(c *Config) {
		c.project = project
		c.location = location
	}
}

func (c *Config) newClient(ctx context.Context) (*genai.Client, error) {
	config := &genai.ClientConfig{
		APIKey:  c.token,
		Backend: genai.BackendGeminiAPI,

		HTTPClient: c.client,
	}

	if c.project != "" {
		location := c.location

		if location == "" {
			location = "global"
		}

		config = &genai.ClientConfig{
			Backend: genai.BackendVertexAI,

			Project:  c.project,
			Location: location,

			HTTPClient: c.client,
		}
	}

	return genai.NewClient(ctx, config)
}
