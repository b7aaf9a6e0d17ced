// Package operation maps CLI commands to render requests. Each operation is a
// row in a lookup table: an instruction template plus the image slots it
// expects. Adding an operation is a table edit, not new control flow.
package operation

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/adrianliechti/aiphoto/pkg/provider"
)

type Operation struct {
	Name        string
	Description string

	// Instruction is prepended to the user prompt before dispatch.
	Instruction string

	// DefaultPrompt is used when the user supplied no prompt.
	DefaultPrompt string

	MinImages int
	MaxImages int

	Style       bool
	AspectRatio bool
}

var SupportedAspectRatios = []string{
	"1:1",
	"2:3", "3:2",
	"3:4", "4:3",
	"4:5", "5:4",
	"9:16", "16:9",
	"21:9",
}

var operations = []Operation{
	{
		Name:        "generate",
		Description: "Text-to-image generation.",

		AspectRatio: true,
	},
	{
		Name:        "edit",
		Description: "Mask-free image editing (add/remove/move objects, change backgrounds).",

		MinImages: 1,
		MaxImages: 1,

		AspectRatio: true,
	},
	{
		Name:        "restore",
		Description: "Restore and enhance old or damaged photos.",

		Instruction:   "Repair this photograph. Do not alter its content or composition.",
		DefaultPrompt: "Restore this photograph: enhance colors, improve details and sharpness, and remove defects like scratches or fading.",

		MinImages: 1,
		MaxImages: 1,
	},
	{
		Name:        "style_transfer",
		Description: "Apply a new style to an image.",

		Instruction: "Apply the described style to the input image, keeping its content intact.",

		MinImages: 1,
		MaxImages: 1,

		Style: true,
	},
	{
		Name:        "compose",
		Description: "Combine elements from up to 3 reference images and text.",

		Instruction: "Combine elements from the reference images into a single picture.",

		MinImages: 1,
		MaxImages: 3,
	},
	{
		Name:        "add_text",
		Description: "Render text on an image.",

		Instruction: "Render the described text onto this image. Leave everything else unchanged.",

		MinImages: 1,
		MaxImages: 1,
	},
	{
		Name:        "sketch_to_image",
		Description: "Generate a detailed image from a sketch.",

		Instruction:   "Render this sketch as a finished image.",
		DefaultPrompt: "Flesh out this sketch into a detailed color image.",

		MinImages: 1,
		MaxImages: 1,
	},
}

func Lookup(name string) (Operation, error) {
	for _, o := range operations {
		if strings.EqualFold(o.Name, name) {
			return o, nil
		}
	}

	return Operation{}, fmt.Errorf("unknown operation %q (supported: %s)", name, strings.Join(Names(), ", "))
}

func Names() []string {
	names := make([]string, 0, len(operations))

	for _, o := range operations {
		names = append(names, o.Name)
	}

	return names
}

// Build assembles the prompt text and render options for one invocation.
// It is pure data-shaping and performs no I/O.
func (o Operation) Build(prompt string, images []provider.File, style *provider.File, aspectRatio string) (string, *provider.RenderOptions, error) {
	if prompt == "" {
		prompt = o.DefaultPrompt
	}

	if prompt == "" {
		return "", nil, fmt.Errorf("%s requires a prompt (-p)", o.Name)
	}

	if len(images) < o.MinImages {
		return "", nil, fmt.Errorf("%s requires at least %d input image(s)", o.Name, o.MinImages)
	}

	if len(images) > o.MaxImages {
		return "", nil, fmt.Errorf("%s accepts at most %d input image(s)", o.Name, o.MaxImages)
	}

	if style != nil && !o.Style {
		return "", nil, errors.New(o.Name + " does not accept a style reference image")
	}

	if aspectRatio != "" {
		if !o.AspectRatio {
			return "", nil, errors.New(o.Name + " does not accept an aspect ratio")
		}

		if !slices.Contains(SupportedAspectRatios, aspectRatio) {
			return "", nil, fmt.Errorf("unsupported aspect ratio %q (supported: %s)", aspectRatio, strings.Join(SupportedAspectRatios, ", "))
		}
	}

	input := prompt

	if o.Instruction != "" {
		input = o.Instruction + " " + prompt
	}

	options := &provider.RenderOptions{
		Images: images,

		Style: style,

		AspectRatio: aspectRatio,
	}

	return input, options, nil
}
