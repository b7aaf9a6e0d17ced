package main

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrianliechti/aiphoto/pkg/provider"
)

func readImage(path string) (provider.File, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return provider.File{}, fmt.Errorf("reading image %s: %w", path, err)
	}

	return provider.File{
		Name: filepath.Base(path),

		Content:     data,
		ContentType: detectContentType(path, data),
	}, nil
}

func detectContentType(path string, data []byte) string {
	if val := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); strings.HasPrefix(val, "image/") {
		return val
	}

	if val := http.DetectContentType(data); strings.HasPrefix(val, "image/") {
		return val
	}

	return "image/jpeg"
}
