package main

import (
	"bytes"
	"strings"
	"testing"

	"photo-storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintCatalog(t *testing.T) {
	catalog, err := services.LoadCatalog("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, printCatalog(&buf, catalog, "R$"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Foto 1")
	assert.Contains(t, lines[1], "R$ 15.00")
	assert.Contains(t, lines[2], "/fotos/foto2_original.jpg")
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "catalog"}, names)

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("port"))
}
