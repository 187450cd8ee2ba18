// Package testutil provides shared test helpers for creating config files and catalog fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/dailyword/internal/catalog"
	"github.com/at-ishikawa/dailyword/internal/language"
)

// SetupTestConfig creates a config file storing progress and catalogs under tmpDir, with
// no typing delay. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"data", "catalogs"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`content:
  catalog_directory: %s
storage:
  driver: file
  directory: %s
  write_attempts: 1
tutor:
  min_typing_delay: 0s
  max_typing_delay: 0s
`,
		filepath.Join(tmpDir, "catalogs"),
		filepath.Join(tmpDir, "data"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithReminder creates a config file with the daily reminder enabled at at.
func SetupTestConfigWithReminder(t *testing.T, tmpDir string, at string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte(fmt.Sprintf("reminder:\n  enabled: true\n  at: \"%s\"\n", at))...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// CatalogOption configures optional fields when creating a catalog fixture.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	level language.Level
}

// WithCatalogLevel sets the level of every item in the catalog.
func WithCatalogLevel(level language.Level) CatalogOption {
	return func(cfg *catalogConfig) {
		cfg.level = level
	}
}

// CreateCatalog writes a valid <code>.yml catalog with one item per id to catalogDir and
// returns the items. By default the items are B1. Use WithCatalogLevel to override.
func CreateCatalog(t *testing.T, catalogDir string, code language.Code, ids []string, opts ...CatalogOption) []catalog.Item {
	t.Helper()

	cfg := catalogConfig{
		level: language.LevelB1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	items := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, catalog.Item{
			ID:         id,
			TargetText: "word " + id,
			Level:      cfg.level,
			Translations: map[language.Code]string{
				language.English: "meaning of " + id,
				language.Turkish: id + " anlamı",
			},
			ExampleText: "This sentence uses word " + id + ".",
			ExampleTranslations: map[language.Code]string{
				language.English: "This sentence explains " + id + ".",
			},
		})
	}
	require.NoError(t, catalog.WriteFile(filepath.Join(catalogDir, string(code)+".yml"), items))
	return items
}
