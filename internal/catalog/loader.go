package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/dailyword/internal/language"
)

//go:embed data/*.yml
var embeddedCatalogs embed.FS

// ErrContentUnavailable is returned when neither the requested nor the default catalog has items.
var ErrContentUnavailable = errors.New("content unavailable")

// Loader loads catalogs once per language and keeps them for its lifetime.
// A catalog file in the override directory replaces the embedded catalog of the same language.
type Loader struct {
	directory       string
	source          fs.FS
	defaultLanguage language.Code
	logger          *slog.Logger

	mu    sync.Mutex
	cache map[language.Code][]Item
}

type LoaderOption func(*Loader)

// WithDirectory makes files named <code>.yml in dir take precedence over embedded catalogs.
func WithDirectory(dir string) LoaderOption {
	return func(l *Loader) {
		l.directory = dir
	}
}

// WithSource replaces the embedded catalogs. The source must contain data/<code>.yml files.
func WithSource(source fs.FS) LoaderOption {
	return func(l *Loader) {
		l.source = source
	}
}

func WithDefaultLanguage(code language.Code) LoaderOption {
	return func(l *Loader) {
		l.defaultLanguage = code
	}
}

func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	loader := &Loader{
		source:          embeddedCatalogs,
		defaultLanguage: language.Default,
		logger:          slog.Default(),
		cache:           make(map[language.Code][]Item),
	}
	for _, opt := range opts {
		opt(loader)
	}
	return loader
}

// Load returns the catalog for target. When target has no catalog it falls back to the
// default language's catalog and logs a warning; ErrContentUnavailable is returned only
// when that catalog is missing or empty too.
// The returned slice is shared and must not be modified.
func (l *Loader) Load(target language.Code) ([]Item, error) {
	items, err := l.load(target)
	if err == nil && len(items) > 0 {
		return items, nil
	}
	if err != nil {
		l.logger.Warn("failed to load a catalog",
			slog.String("language", string(target)),
			slog.Any("error", err),
		)
	}
	if target == l.defaultLanguage {
		return nil, unavailable(target, err)
	}

	l.logger.Warn("no catalog for the target language, falling back to the default language",
		slog.String("language", string(target)),
		slog.String("fallback", string(l.defaultLanguage)),
	)
	items, err = l.load(l.defaultLanguage)
	if err != nil || len(items) == 0 {
		return nil, unavailable(l.defaultLanguage, err)
	}
	return items, nil
}

// Languages returns the target languages that have a catalog of their own.
func (l *Loader) Languages() []language.Code {
	var result []language.Code
	for _, code := range language.Supported() {
		if items, err := l.load(code); err == nil && len(items) > 0 {
			result = append(result, code)
		}
	}
	return result
}

func unavailable(code language.Code, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w for %s: %w", ErrContentUnavailable, code, cause)
	}
	return fmt.Errorf("%w for %s", ErrContentUnavailable, code)
}

func (l *Loader) load(code language.Code) ([]Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if items, ok := l.cache[code]; ok {
		return items, nil
	}

	data, err := l.read(code)
	if errors.Is(err, fs.ErrNotExist) {
		l.cache[code] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s catalog) > %w", code, err)
	}
	l.cache[code] = items
	return items, nil
}

func (l *Loader) read(code language.Code) ([]byte, error) {
	fileName := string(code) + ".yml"
	if l.directory != "" {
		path := filepath.Join(l.directory, fileName)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
		}
	}

	data, err := fs.ReadFile(l.source, "data/"+fileName)
	if err != nil {
		return nil, fmt.Errorf("fs.ReadFile(%s) > %w", fileName, err)
	}
	return data, nil
}
