// Package datasync copies saved records from one storage backend to another.
package datasync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/dailyword/internal/storage"
)

// ImportResult tracks counts for each import operation.
type ImportResult struct {
	New     int
	Skipped int
	Updated int
	Missing int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer reads records from a source store and writes them to a destination store.
type Importer struct {
	source      storage.Store
	destination storage.Store
	writer      io.Writer
}

func NewImporter(source, destination storage.Store, writer io.Writer) *Importer {
	return &Importer{
		source:      source,
		destination: destination,
		writer:      writer,
	}
}

// Import copies the records named by keys. A record already in the destination is kept
// unless opts.UpdateExisting is set.
func (imp *Importer) Import(ctx context.Context, keys []string, opts ImportOptions) (*ImportResult, error) {
	var result ImportResult
	for _, key := range keys {
		if err := imp.importRecord(ctx, key, opts, &result); err != nil {
			return nil, fmt.Errorf("importRecord(%s) > %w", key, err)
		}
	}
	return &result, nil
}

func (imp *Importer) importRecord(ctx context.Context, key string, opts ImportOptions, result *ImportResult) error {
	value, err := imp.source.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		result.Missing++
		_, _ = fmt.Fprintf(imp.writer, "  [MISSING]  %s\n", key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("source.Get() > %w", err)
	}

	existing, err := imp.destination.Get(ctx, key)
	exists := true
	if errors.Is(err, storage.ErrNotFound) {
		exists = false
	} else if err != nil {
		return fmt.Errorf("destination.Get() > %w", err)
	}

	switch {
	case exists && (!opts.UpdateExisting || bytes.Equal(existing, value)):
		result.Skipped++
		_, _ = fmt.Fprintf(imp.writer, "  [SKIP]  %s\n", key)
		return nil
	case exists:
		result.Updated++
		_, _ = fmt.Fprintf(imp.writer, "  [UPDATE]  %s\n", key)
	default:
		result.New++
		_, _ = fmt.Fprintf(imp.writer, "  [NEW]  %s\n", key)
	}

	if opts.DryRun {
		return nil
	}
	if err := imp.destination.Put(ctx, key, value); err != nil {
		return fmt.Errorf("destination.Put() > %w", err)
	}
	return nil
}
