package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/at-ishikawa/dailyword/internal/language"
)

const importCSV = `id,target_text,level,pronunciation,example_text,translation_en,translation_tr,example_en
w-1,break the ice,B1,/breɪk ði aɪs/,They played a game to break the ice.,start a conversation,buzları eritmek,They played a game to relax.
w-2,piece of cake,,,It was a piece of cake.,very easy,,It was very easy.
,missing id,A1,,No id here.,no id,,
w-3,no english,A1,,No English here.,,anlam,
w-1,duplicate,A1,,Duplicate row.,duplicate,,

`

func TestImport_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.csv")
	require.NoError(t, os.WriteFile(path, []byte(importCSV), 0o644))

	got, err := Import(path, DefaultImportConfig())
	require.NoError(t, err)

	assert.Equal(t, 5, got.TotalProcessed)
	assert.Equal(t, 3, got.Skipped)
	assert.Equal(t, []string{
		"Row 4: id cannot be empty",
		"Row 5: translation_en cannot be empty",
		`Row 6: duplicate id "w-1"`,
	}, got.Errors)
	assert.Equal(t, []Item{
		{
			ID:                  "w-1",
			TargetText:          "break the ice",
			Level:               language.LevelB1,
			Pronunciation:       "/breɪk ði aɪs/",
			ExampleText:         "They played a game to break the ice.",
			Translations:        map[language.Code]string{"en": "start a conversation", "tr": "buzları eritmek"},
			ExampleTranslations: map[language.Code]string{"en": "They played a game to relax."},
		},
		{
			ID:                  "w-2",
			TargetText:          "piece of cake",
			Level:               language.LevelB1,
			ExampleText:         "It was a piece of cake.",
			Translations:        map[language.Code]string{"en": "very easy"},
			ExampleTranslations: map[language.Code]string{"en": "It was very easy."},
		},
	}, got.Items)
}

func TestImport_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.xlsx")

	f := excelize.NewFile()
	rows := [][]any{
		{"ID", "Target_Text", "Level", "Example_Text", "Translation_EN", "Example_EN", "Category"},
		{"x-1", "call it a day", "b2", "Let's call it a day.", "stop working", "Let's stop working.", "idiom"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	got, err := Import(path, DefaultImportConfig())
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, language.LevelB2, got.Items[0].Level)
	assert.Equal(t, "idiom", got.Items[0].Category)
	assert.Equal(t, "stop working", got.Items[0].Translations[language.English])
}

func TestImport_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Import(filepath.Join(dir, "words.txt"), DefaultImportConfig())
	assert.ErrorContains(t, err, "unsupported file extension")

	path := filepath.Join(dir, "headers.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,target_text\n"), 0o644))
	_, err = Import(path, DefaultImportConfig())
	assert.ErrorContains(t, err, `missing "example_text" column`)

	path = filepath.Join(dir, "language.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,target_text,example_text,translation_en,translation_nl\nw,t,e,m,n\n"), 0o644))
	got, err := Import(path, DefaultImportConfig())
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Len(t, got.Errors, 1)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogs", "en.yml")
	items := []Item{validItem("a")}
	require.NoError(t, WriteFile(path, items))

	loader := NewLoader(WithDirectory(filepath.Dir(path)))
	got, err := loader.Load(language.English)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestWriteFile_Errors(t *testing.T) {
	t.Run("parent is a file", func(t *testing.T) {
		parent := filepath.Join(t.TempDir(), "catalogs")
		require.NoError(t, os.WriteFile(parent, nil, 0o644))
		assert.Error(t, WriteFile(filepath.Join(parent, "en.yml"), []Item{validItem("a")}))
	})

	t.Run("device is full", func(t *testing.T) {
		if _, err := os.Stat("/dev/full"); err != nil {
			t.Skip("/dev/full is not available")
		}
		assert.Error(t, WriteFile("/dev/full", []Item{validItem("a")}))
	})
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.yml")
	items := []Item{validItem("a"), validItem("b")}
	require.NoError(t, WriteFile(path, items))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(t.TempDir(), "broken.yml")
	require.NoError(t, os.WriteFile(broken, []byte("id: [unclosed"), 0o644))
	_, err = ReadFile(broken)
	assert.Error(t, err)
}
