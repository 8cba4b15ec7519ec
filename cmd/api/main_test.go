package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bookconnect/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const fileCatalog = `
authors:
  a1: Ada
genres:
  g1: Essays
books:
  - id: x1
    title: Notes
    author: a1
    image: https://img.example.com/x1.jpg
    description: Short notes
    published: "1843-01-01T00:00:00.000Z"
    genres: [g1]
`

func TestOpenSource_Embedded(t *testing.T) {
	src, ready, closeSource, err := openSource(context.Background(), &config.Config{}, zap.NewNop())
	require.NoError(t, err)
	defer closeSource()

	assert.Nil(t, ready)
	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, ds.Books)
}

func TestOpenSource_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fileCatalog), 0644))

	src, _, closeSource, err := openSource(context.Background(), &config.Config{CatalogFile: path}, zap.NewNop())
	require.NoError(t, err)
	defer closeSource()

	ds, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, ds.Books, 1)
	assert.Equal(t, "Notes", ds.Books[0].Title)
}

func TestExitWithError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	code := exitWithError(zap.New(core), errors.New("listen tcp :8080: address already in use"))

	assert.Equal(t, 1, code)
	entries := logs.FilterMessage("server stopped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "listen tcp :8080: address already in use", entries[0].ContextMap()["error"])
}
