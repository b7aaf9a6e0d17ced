package operation_test

import (
	"strings"
	"testing"

	"github.com/adrianliechti/aiphoto/pkg/operation"
	"github.com/adrianliechti/aiphoto/pkg/provider"

	"github.com/stretchr/testify/require"
)

func testFile(name string) provider.File {
	return provider.File{
		Name: name,

		Content:     []byte{0xff, 0xd8, 0xff},
		ContentType: "image/jpeg",
	}
}

func TestLookup(t *testing.T) {
	for _, name := range operation.Names() {
		op, err := operation.Lookup(name)
		require.NoError(t, err)
		require.Equal(t, name, op.Name)
	}

	_, err := operation.Lookup("upscale")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown operation")
}

func TestBuildSlots(t *testing.T) {
	tests := []struct {
		name string

		operation string
		prompt    string

		images []provider.File
		style  *provider.File

		wantImages int
		wantStyle  bool
	}{
		{
			name:      "generate has no image slots",
			operation: "generate",
			prompt:    "A sunset",
		},
		{
			name:       "edit has one image slot",
			operation:  "edit",
			prompt:     "Remove the car",
			images:     []provider.File{testFile("in.jpg")},
			wantImages: 1,
		},
		{
			name:       "compose with two inputs has two slots",
			operation:  "compose",
			prompt:     "Put the cat on the sofa",
			images:     []provider.File{testFile("cat.jpg"), testFile("sofa.jpg")},
			wantImages: 2,
		},
		{
			name:       "compose with three inputs has three slots",
			operation:  "compose",
			prompt:     "Merge all three",
			images:     []provider.File{testFile("a.jpg"), testFile("b.jpg"), testFile("c.jpg")},
			wantImages: 3,
		},
		{
			name:       "style transfer carries input and reference",
			operation:  "style_transfer",
			prompt:     "In the style of Van Gogh",
			images:     []provider.File{testFile("in.jpg")},
			style:      &provider.File{Name: "style.png", Content: []byte{0x89}, ContentType: "image/png"},
			wantImages: 1,
			wantStyle:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := operation.Lookup(tt.operation)
			require.NoError(t, err)

			_, options, err := op.Build(tt.prompt, tt.images, tt.style, "")
			require.NoError(t, err)

			require.Len(t, options.Images, tt.wantImages)

			if tt.wantStyle {
				require.NotNil(t, options.Style)
			} else {
				require.Nil(t, options.Style)
			}
		})
	}
}

func TestBuildArity(t *testing.T) {
	edit, err := operation.Lookup("edit")
	require.NoError(t, err)

	_, _, err = edit.Build("Remove the car", nil, nil, "")
	require.Error(t, err)

	generate, err := operation.Lookup("generate")
	require.NoError(t, err)

	_, _, err = generate.Build("A sunset", []provider.File{testFile("in.jpg")}, nil, "")
	require.Error(t, err)

	compose, err := operation.Lookup("compose")
	require.NoError(t, err)

	_, _, err = compose.Build("Merge", []provider.File{testFile("a.jpg"), testFile("b.jpg"), testFile("c.jpg"), testFile("d.jpg")}, nil, "")
	require.Error(t, err)
}

func TestBuildInstruction(t *testing.T) {
	restore, err := operation.Lookup("restore")
	require.NoError(t, err)

	input, _, err := restore.Build("", []provider.File{testFile("old.jpg")}, nil, "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(input, restore.Instruction))
	require.Contains(t, input, restore.DefaultPrompt)

	sketch, err := operation.Lookup("sketch_to_image")
	require.NoError(t, err)

	input, _, err = sketch.Build("a watercolor landscape", []provider.File{testFile("sketch.png")}, nil, "")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(input, sketch.Instruction))
	require.Contains(t, input, "a watercolor landscape")
}

func TestBuildPromptRequired(t *testing.T) {
	generate, err := operation.Lookup("generate")
	require.NoError(t, err)

	_, _, err = generate.Build("", nil, nil, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "prompt")
}

func TestBuildAspectRatio(t *testing.T) {
	generate, err := operation.Lookup("generate")
	require.NoError(t, err)

	_, options, err := generate.Build("A sunset", nil, nil, "16:9")
	require.NoError(t, err)
	require.Equal(t, "16:9", options.AspectRatio)

	_, _, err = generate.Build("A sunset", nil, nil, "16:19")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported aspect ratio")

	restore, err := operation.Lookup("restore")
	require.NoError(t, err)

	_, _, err = restore.Build("", []provider.File{testFile("old.jpg")}, nil, "16:9")
	require.Error(t, err)
}

func TestBuildStyleRejected(t *testing.T) {
	edit, err := operation.Lookup("edit")
	require.NoError(t, err)

	style := testFile("style.png")

	_, _, err = edit.Build("Remove the car", []provider.File{testFile("in.jpg")}, &style, "")
	require.Error(t, err)
}
