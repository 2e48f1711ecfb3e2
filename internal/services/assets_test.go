package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"photo-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAssetResolver_ImageURL(t *testing.T) {
	resolver := NewLocalAssetResolver(t.TempDir(), "/static/")
	photo := models.Photo{
		ID:            "1",
		ThumbnailPath: "/fotos/foto1_marcada.jpg",
		OriginalPath:  "/fotos/foto1_original.jpg",
	}

	assert.Equal(t, "/static/fotos/foto1_marcada.jpg", resolver.ImageURL(photo, false))
	assert.Equal(t, "/static/fotos/foto1_original.jpg", resolver.ImageURL(photo, true))
}

func TestLocalAssetResolver_AbsoluteURLsPassThrough(t *testing.T) {
	resolver := NewLocalAssetResolver(t.TempDir(), "/static")

	assert.Equal(t, "https://cdn.example.com/a.jpg", resolver.GetURL("https://cdn.example.com/a.jpg"))
}

func TestLocalAssetResolver_MissingAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "fotos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fotos", "foto1_marcada.jpg"), []byte("jpg"), 0o644))

	catalog, err := LoadCatalog("")
	require.NoError(t, err)

	resolver := NewLocalAssetResolver(dir, "/static")
	missing, err := resolver.MissingAssets(context.Background(), catalog)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"/fotos/foto1_original.jpg",
		"/fotos/foto2_marcada.jpg",
		"/fotos/foto2_original.jpg",
	}, missing)
}
