package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"photo-storefront/internal/models"
)

// LocalAssetResolver maps catalog asset paths to URLs served from a local
// static directory
type LocalAssetResolver struct {
	basePath string
	baseURL  string
}

// NewLocalAssetResolver creates a resolver for assets under basePath,
// published under baseURL
func NewLocalAssetResolver(basePath, baseURL string) *LocalAssetResolver {
	return &LocalAssetResolver{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// ImageURL returns the original when the photo is unlocked, the watermarked
// thumbnail otherwise
func (f *LocalAssetResolver) ImageURL(photo models.Photo, unlocked bool) string {
	if unlocked {
		return f.GetURL(photo.OriginalPath)
	}
	return f.GetURL(photo.ThumbnailPath)
}

// GetURL returns the public URL for an asset path
func (f *LocalAssetResolver) GetURL(key string) string {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	key = strings.TrimPrefix(key, "/")
	return fmt.Sprintf("%s/%s", f.baseURL, key)
}

// Exists checks if an asset exists in the static directory
func (f *LocalAssetResolver) Exists(ctx context.Context, key string) (bool, error) {
	key = strings.TrimPrefix(key, "/")
	fullPath := filepath.Join(f.basePath, filepath.FromSlash(key))

	_, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if asset exists: %w", err)
	}

	return true, nil
}

// MissingAssets lists catalog asset paths that are not present locally
func (f *LocalAssetResolver) MissingAssets(ctx context.Context, catalog *Catalog) ([]string, error) {
	var missing []string
	for _, photo := range catalog.All() {
		for _, key := range []string{photo.ThumbnailPath, photo.OriginalPath} {
			if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
				continue
			}
			ok, err := f.Exists(ctx, key)
			if err != nil {
				return nil, err
			}
			if !ok {
				missing = append(missing, key)
			}
		}
	}
	return missing, nil
}
