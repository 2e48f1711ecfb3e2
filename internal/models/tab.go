package models

import (
	"fmt"
	"strings"
)

// Tab identifies one of the storefront panel sections
type Tab string

const (
	TabPhotos  Tab = "fotos"
	TabAbout   Tab = "sobre"
	TabContact Tab = "contato"
)

// Tabs lists the panel sections in display order
var Tabs = []Tab{TabPhotos, TabAbout, TabContact}

var tabAliases = map[string]Tab{
	"fotos":   TabPhotos,
	"photos":  TabPhotos,
	"sobre":   TabAbout,
	"about":   TabAbout,
	"contato": TabContact,
	"contact": TabContact,
}

// ParseTab parses a tab name, accepting the English aliases as well
func ParseTab(s string) (Tab, error) {
	tab, ok := tabAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTab, s)
	}
	return tab, nil
}

// Label returns the display label of the tab
func (t Tab) Label() string {
	switch t {
	case TabPhotos:
		return "Fotos"
	case TabAbout:
		return "Sobre"
	case TabContact:
		return "Contato"
	default:
		return string(t)
	}
}

func (t Tab) valid() bool {
	return t == TabPhotos || t == TabAbout || t == TabContact
}
