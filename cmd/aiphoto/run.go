package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/adrianliechti/aiphoto/config"
	"github.com/adrianliechti/aiphoto/pkg/operation"
	"github.com/adrianliechti/aiphoto/pkg/provider"
)

type invocation struct {
	operation operation.Operation

	prompt string

	inputs []string
	style  string

	aspectRatio string

	output string
}

func runOperation(name string, args []string) int {
	op, err := operation.Lookup(name)

	if err != nil {
		errorf("%v", err)
		return 1
	}

	fs := flag.NewFlagSet(op.Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		promptFlag string
		aspectFlag string
		styleFlag  string
		modelFlag  string
		configFlag string

		input1Flag string
		input2Flag string
		input3Flag string
	)

	fs.StringVar(&promptFlag, "prompt", "", "text prompt")
	fs.StringVar(&promptFlag, "p", "", "text prompt (shorthand)")
	fs.StringVar(&aspectFlag, "aspect-ratio", "", "output aspect ratio")
	fs.StringVar(&styleFlag, "style_ref_image", "", "style reference image path")
	fs.StringVar(&modelFlag, "model", "", "renderer id")
	fs.StringVar(&modelFlag, "m", "", "renderer id (shorthand)")
	fs.StringVar(&configFlag, "config", "", "config file path")
	fs.StringVar(&configFlag, "c", "", "config file path (shorthand)")
	fs.StringVar(&input1Flag, "input_file1", "", "first input image path")
	fs.StringVar(&input2Flag, "input_file2", "", "second input image path")
	fs.StringVar(&input3Flag, "input_file3", "", "third input image path")

	positional, err := parseArgs(fs, args)

	if err != nil {
		errorf("invalid flags: %v", err)
		return 1
	}

	call := invocation{
		operation: op,

		prompt: promptFlag,

		style: styleFlag,

		aspectRatio: aspectFlag,
	}

	switch op.Name {
	case "generate":
		if len(positional) != 1 {
			errorf("usage: aiphoto generate OUTPUT -p \"prompt\"")
			return 1
		}

		call.output = positional[0]

	case "compose":
		if len(positional) != 1 {
			errorf("usage: aiphoto compose OUTPUT --input_file1 IMAGE -p \"prompt\"")
			return 1
		}

		call.output = positional[0]

		for _, path := range []string{input1Flag, input2Flag, input3Flag} {
			if path != "" {
				call.inputs = append(call.inputs, path)
			}
		}

		if input1Flag == "" {
			errorf("compose requires --input_file1")
			return 1
		}

	default:
		if len(positional) != 2 {
			errorf("usage: aiphoto %s INPUT OUTPUT -p \"prompt\"", op.Name)
			return 1
		}

		call.inputs = []string{positional[0]}
		call.output = positional[1]
	}

	cfg, err := config.Parse(configFlag)

	if err != nil {
		errorf("%v", err)
		return 1
	}

	renderer, err := cfg.Renderer(modelFlag)

	if err != nil {
		errorf("%v", err)
		return 1
	}

	if err := dispatch(context.Background(), renderer, call); err != nil {
		errorf("%v", err)
		return 1
	}

	return 0
}

// parseArgs collects positional arguments while letting flags appear before
// or after them. The flag package stops at the first non-flag argument, so
// parsing resumes after each positional until everything is consumed.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	rest := fs.Args()

	for len(rest) > 0 {
		positional = append(positional, rest[0])

		if err := fs.Parse(rest[1:]); err != nil {
			return nil, err
		}

		rest = fs.Args()
	}

	return positional, nil
}

// dispatch performs one unit of work: load the input images, shape the
// request, call the renderer once, write the first image verbatim.
func dispatch(ctx context.Context, renderer provider.Renderer, call invocation) error {
	var images []provider.File

	for _, path := range call.inputs {
		file, err := readImage(path)

		if err != nil {
			return err
		}

		images = append(images, file)
	}

	var style *provider.File

	if call.style != "" {
		file, err := readImage(call.style)

		if err != nil {
			return err
		}

		style = &file
	}

	input, options, err := call.operation.Build(call.prompt, images, style, call.aspectRatio)

	if err != nil {
		return err
	}

	slog.Info("rendering", "operation", call.operation.Name, "images", len(images))

	rendering, err := renderer.Render(ctx, input, options)

	if err != nil {
		return err
	}

	if rendering == nil || len(rendering.Content) == 0 {
		return provider.ErrNoImage
	}

	if err := os.WriteFile(call.output, rendering.Content, 0644); err != nil {
		return fmt.Errorf("writing image: %w", err)
	}

	slog.Info("saved", "path", call.output, "type", rendering.ContentType, "bytes", len(rendering.Content))

	return nil
}

// runTest validates configuration and credentials without calling out.
func runTest(args []string) int {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configFlag string

	fs.StringVar(&configFlag, "config", "", "config file path")
	fs.StringVar(&configFlag, "c", "", "config file path (shorthand)")

	if err := fs.Parse(args); err != nil {
		errorf("invalid flags: %v", err)
		return 1
	}

	cfg, err := config.Parse(configFlag)

	if err != nil {
		errorf("%v", err)
		return 1
	}

	if _, err := cfg.Renderer(""); err != nil {
		errorf("%v", err)
		return 1
	}

	if len(cfg.Models()) == 0 {
		errorf("%v", errors.New("no renderers configured"))
		return 1
	}

	fmt.Println("configuration ok")

	for _, m := range cfg.Models() {
		fmt.Println("  " + m.ID)
	}

	return 0
}
