package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesJSONFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := InitLogger("swim-scraper", dir, "error")
	require.NoError(t, err)

	logger.Debug("file only")
	_ = logger.Sync()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "swim-scraper_"))

	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"file only"`)
	assert.Contains(t, string(content), `"level":"debug"`)
}

func TestInitLoggerConsoleOnly(t *testing.T) {
	logger, err := InitLogger("swim-scraper", "", "warn")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestInitLoggerRejectsLevel(t *testing.T) {
	_, err := InitLogger("swim-scraper", "", "loud")
	assert.Error(t, err)
}
