package provider

import (
	"context"
	"errors"
)

// ErrNoImage is returned when the model answered without any image payload.
var ErrNoImage = errors.New("no image generated")

type Renderer interface {
	Render(ctx context.Context, input string, options *RenderOptions) (*Rendering, error)
}

type RenderOptions struct {
	Images []File

	Style *File

	AspectRatio string
}

type Rendering struct {
	ID string

	Model string

	Content     []byte
	ContentType string
}
