package google

import (
	"context"

	"github.com/adrianliechti/aiphoto/pkg/provider"
	"github.com/google/uuid"
	"google.golang.org/genai"
)

var _ provider.Renderer = (*Renderer)(nil)

type Renderer struct {
	*Config
}

func NewRenderer(model string, options ...Option) (*Renderer, error) {
	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Renderer{
		Config: cfg,
	}, nil
}

func (r *Renderer) Render(ctx context.Context, input string, options *provider.RenderOptions) (*provider.Rendering, error) {
	if options == nil {
		options = new(provider.RenderOptions)
	}

	client, err := r.newClient(ctx)

	if err != nil {
		return nil, err
	}

	var parts []*genai.Part

	for _, i := range options.Images {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: i.ContentType,
				Data:     i.Content,
			},
		})
	}

	if options.Style != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: options.Style.ContentType,
				Data:     options.Style.Content,
			},
		})
	}

	parts = append(parts, genai.NewPartFromText(input))

	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},

		CandidateCount: 1,
	}

	if options.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{
			AspectRatio: options.AspectRatio,
		}
	}

	image, err := client.Models.GenerateContent(ctx, r.model, contents, config)

	if err != nil {
		return nil, err
	}

	result := &provider.Rendering{
		ID:    uuid.NewString(),
		Model: r.model,
	}

	for _, candidate := range image.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}

			result.Content = part.InlineData.Data
			result.ContentType = part.InlineData.MIMEType

			return result, nil
		}
	}

	return nil, provider.ErrNoImage
}
