package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/dailyword/internal/language"
)

const (
	translationColumnPrefix = "translation_"
	exampleColumnPrefix     = "example_"
)

// ImportConfig describes how a spreadsheet maps to catalog items.
// Columns are found by header name: id, target_text, level, pronunciation, category,
// example_text, translation_<code> and example_<code>.
type ImportConfig struct {
	// SheetName is the sheet to read from an xlsx file. The first sheet is used when empty.
	SheetName string
	// DefaultLevel is used for rows without a level.
	DefaultLevel language.Level
}

func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		DefaultLevel: language.LevelB1,
	}
}

type ImportResult struct {
	Items          []Item
	TotalProcessed int
	Skipped        int
	Errors         []string
}

// Import reads catalog items from an .xlsx or .csv file.
// Rows that cannot become an item are skipped and reported in the result.
func Import(path string, config ImportConfig) (*ImportResult, error) {
	var rows [][]string
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSVRows(path)
	case ".xlsx", ".xlsm":
		rows, err = readExcelRows(path, config.SheetName)
	default:
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}
	return importRows(rows, config)
}

func readExcelRows(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%s) > %w", sheetName, err)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()
	return parseCSV(file)
}

func parseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reader.Read() > %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func importRows(rows [][]string, config ImportConfig) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, errors.New("no header row")
	}
	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"id", "target_text", "example_text"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	result := &ImportResult{}
	seen := make(map[string]bool)
	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlank(row) {
			continue
		}
		result.TotalProcessed++

		item, err := rowToItem(row, columns, config)
		if err == nil && seen[item.ID] {
			err = fmt.Errorf("duplicate id %q", item.ID)
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		seen[item.ID] = true
		result.Items = append(result.Items, item)
	}
	return result, nil
}

func rowToItem(row []string, columns map[string]int, config ImportConfig) (Item, error) {
	cell := func(name string) string {
		index, ok := columns[name]
		if !ok || index >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[index])
	}

	item := Item{
		ID:            cell("id"),
		TargetText:    cell("target_text"),
		ExampleText:   cell("example_text"),
		Pronunciation: cell("pronunciation"),
		Category:      cell("category"),
		Level:         config.DefaultLevel,
	}
	if item.ID == "" {
		return Item{}, errors.New("id cannot be empty")
	}
	if item.TargetText == "" {
		return Item{}, errors.New("target_text cannot be empty")
	}
	if value := cell("level"); value != "" {
		level, err := language.ParseLevel(value)
		if err != nil {
			return Item{}, err
		}
		item.Level = level
	}

	for name := range columns {
		var target map[language.Code]string
		var code string
		switch {
		case strings.HasPrefix(name, translationColumnPrefix):
			code = strings.TrimPrefix(name, translationColumnPrefix)
			if item.Translations == nil {
				item.Translations = make(map[language.Code]string)
			}
			target = item.Translations
		case strings.HasPrefix(name, exampleColumnPrefix) && name != "example_text":
			code = strings.TrimPrefix(name, exampleColumnPrefix)
			if item.ExampleTranslations == nil {
				item.ExampleTranslations = make(map[language.Code]string)
			}
			target = item.ExampleTranslations
		default:
			continue
		}
		parsed, err := language.Parse(code)
		if err != nil {
			return Item{}, fmt.Errorf("column %q: %w", name, err)
		}
		if value := cell(name); value != "" {
			target[parsed] = value
		}
	}
	if item.Translations[language.Default] == "" {
		return Item{}, errors.New("translation_en cannot be empty")
	}
	return item, nil
}

func isBlank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// WriteFile writes items as a catalog file that Loader can read.
func WriteFile(path string, items []Item) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	if err := encoder.Encode(items); err != nil {
		_ = file.Close()
		return fmt.Errorf("encoder.Encode() > %w", err)
	}
	if err := encoder.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("encoder.Close() > %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("file.Close(%s) > %w", path, err)
	}
	return nil
}

// ReadFile reads a catalog file written by WriteFile or by hand.
func ReadFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	var items []Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return items, nil
}
