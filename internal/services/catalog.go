package services

import (
	_ "embed"
	"fmt"
	"os"

	"photo-storefront/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog_default.yaml
var defaultCatalogYAML []byte

// Catalog is the immutable list of photos offered by the storefront
type Catalog struct {
	photos []models.Photo
	byID   map[string]int
}

type catalogFile struct {
	Photos []catalogEntry `yaml:"photos"`
}

type catalogEntry struct {
	models.Photo `yaml:",inline"`
	Price        float64 `yaml:"price"`
}

// LoadCatalog reads the catalog from a YAML file. An empty path loads the
// built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return ParseCatalog(defaultCatalogYAML)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	catalog, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}

// ParseCatalog decodes a YAML catalog document
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	photos := make([]models.Photo, 0, len(file.Photos))
	for _, entry := range file.Photos {
		cents, err := models.PriceToCents(entry.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: photo %s: %v", models.ErrInvalidInput, entry.ID, err)
		}
		photo := entry.Photo
		photo.PriceCents = cents
		photos = append(photos, photo)
	}

	return NewCatalog(photos)
}

// NewCatalog builds a catalog from photo records
func NewCatalog(photos []models.Photo) (*Catalog, error) {
	if len(photos) == 0 {
		return nil, models.ErrEmptyCatalog
	}

	c := &Catalog{
		photos: make([]models.Photo, len(photos)),
		byID:   make(map[string]int, len(photos)),
	}
	for i, photo := range photos {
		if err := photo.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[photo.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate photo id %s", models.ErrInvalidInput, photo.ID)
		}
		c.photos[i] = photo
		c.byID[photo.ID] = i
	}

	return c, nil
}

// All returns the photos in catalog order
func (c *Catalog) All() []models.Photo {
	out := make([]models.Photo, len(c.photos))
	copy(out, c.photos)
	return out
}

// Get returns the photo with the given id
func (c *Catalog) Get(id string) (models.Photo, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Photo{}, fmt.Errorf("%w: %s", models.ErrPhotoNotFound, id)
	}
	return c.photos[i], nil
}

// Len returns the number of photos
func (c *Catalog) Len() int {
	return len(c.photos)
}
