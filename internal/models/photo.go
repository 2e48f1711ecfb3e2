package models

import (
	"errors"
	"fmt"
	"strings"
)

// Photo represents a purchasable photo in the catalog
type Photo struct {
	ID            string `json:"id" yaml:"id"`
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description" yaml:"description"`
	ThumbnailPath string `json:"thumbnail_path" yaml:"thumbnail"`
	OriginalPath  string `json:"original_path" yaml:"original"`
	PriceCents    int64  `json:"price_cents" yaml:"-"` // Price in cents
}

// Validate validates the photo record
func (p *Photo) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: photo id is required", ErrInvalidInput)
	}

	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: photo %s: name is required", ErrInvalidInput, p.ID)
	}

	if p.PriceCents < 0 {
		return fmt.Errorf("%w: photo %s: price cannot be negative", ErrInvalidInput, p.ID)
	}

	if p.ThumbnailPath == "" || p.OriginalPath == "" {
		return fmt.Errorf("%w: photo %s: thumbnail and original paths are required", ErrInvalidInput, p.ID)
	}

	return nil
}

// FormatPrice formats an amount in cents with two decimals
func FormatPrice(currency string, cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	amount := fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
	if currency == "" {
		return amount
	}
	return currency + " " + amount
}

// PriceToCents converts a decimal price into cents, rounding half away from zero
func PriceToCents(price float64) (int64, error) {
	if price < 0 {
		return 0, errors.New("price cannot be negative")
	}
	return int64(price*100 + 0.5), nil
}
