package google_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/aiphoto/pkg/provider"
	"github.com/adrianliechti/aiphoto/pkg/provider/google"

	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

var testImage = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

func newTestServer(t *testing.T, body string) (*httptest.Server, *[]byte) {
	t.Helper()

	var request []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		request = data

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))

	t.Cleanup(server.Close)

	genai.SetDefaultBaseURLs(genai.BaseURLParameters{
		GeminiURL: server.URL,
	})

	return server, &request
}

func TestRender(t *testing.T) {
	response := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"role": "model",
					"parts": []any{
						map[string]any{
							"text": "here you go",
						},
						map[string]any{
							"inlineData": map[string]any{
								"mimeType": "image/png",
								"data":     base64.StdEncoding.EncodeToString(testImage),
							},
						},
					},
				},
			},
		},
	}

	body, err := json.Marshal(response)
	require.NoError(t, err)

	_, request := newTestServer(t, string(body))

	r, err := google.NewRenderer("gemini-2.5-flash-image-preview", google.WithToken("test-key"))
	require.NoError(t, err)

	input := provider.File{
		Name: "in.jpg",

		Content:     []byte{0xff, 0xd8, 0xff},
		ContentType: "image/jpeg",
	}

	result, err := r.Render(context.Background(), "Make the sky blue", &provider.RenderOptions{
		Images: []provider.File{input},

		AspectRatio: "16:9",
	})

	require.NoError(t, err)
	require.Equal(t, testImage, result.Content)
	require.Equal(t, "image/png", result.ContentType)
	require.NotEmpty(t, result.ID)

	var sent struct {
		Contents []struct {
			Parts []map[string]any `json:"parts"`
		} `json:"contents"`
	}

	require.NoError(t, json.Unmarshal(*request, &sent))
	require.Len(t, sent.Contents, 1)
	require.Len(t, sent.Contents[0].Parts, 2)
	require.Contains(t, string(*request), "16:9")
}

func TestRenderNoImage(t *testing.T) {
	newTestServer(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"sorry"}]}}]}`)

	r, err := google.NewRenderer("gemini-2.5-flash-image-preview", google.WithToken("test-key"))
	require.NoError(t, err)

	_, err = r.Render(context.Background(), "A sunset", nil)
	require.ErrorIs(t, err, provider.ErrNoImage)
}

func TestRenderEmptyCandidates(t *testing.T) {
	newTestServer(t, `{"candidates":[]}`)

	r, err := google.NewRenderer("gemini-2.5-flash-image-preview", google.WithToken("test-key"))
	require.NoError(t, err)

	_, err = r.Render(context.Background(), "A sunset", nil)
	require.ErrorIs(t, err, provider.ErrNoImage)
}
