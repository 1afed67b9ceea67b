package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/newspipe/internal/sources/loader"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `sources:
  - id: apnews
    name: Associated Press
    link_pattern: 'apnews\.com/[a-z0-9]'
    sections:
      - category_id: world
        url: https://apnews.com/hub/world-news
      - category_id: politics
        url: https://apnews.com/hub/politics
  - id: bbc
    name: BBC News
    render: true
    sections:
      - category_id: world
        url: https://www.bbc.com/news/world
`)

	configs, err := loader.LoadFromFile(path)
	require.NoError(t, err)
	require.Len(t, configs, 2)

	ap := configs[0]
	assert.Equal(t, "apnews", ap.ID)
	assert.Equal(t, `apnews\.com/[a-z0-9]`, ap.LinkPattern)
	require.Len(t, ap.Sections, 2)
	assert.Equal(t, "politics", ap.Sections[1].CategoryID)
	assert.False(t, ap.Render)

	assert.True(t, configs[1].Render)
}

func TestLoadFromFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := loader.LoadFromFile(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestLoadFromFile_Empty(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "sources: []\n")
	_, err := loader.LoadFromFile(path)
	assert.ErrorIs(t, err, loader.ErrNoSources)
}

func TestLoadFromFile_BadYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "sources: [unclosed\n")
	_, err := loader.LoadFromFile(path)
	assert.Error(t, err)
}
