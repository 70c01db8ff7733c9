package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"glaze-matrix-be/internal/entity"

	"github.com/google/uuid"
)

// toggleStateDocument is the on-disk shape of toggle-states.json. Fields after LastUpdated
// describe the last reconciliation and are ignored by Load.
type toggleStateDocument struct {
	DisabledCells        []string `json:"disabledCells"`
	LastUpdated          string   `json:"lastUpdated"`
	Source               string   `json:"source,omitempty"`
	TotalCombinations    *int     `json:"totalCombinations,omitempty"`
	EnabledCombinations  *int     `json:"enabledCombinations,omitempty"`
	DisabledCombinations *int     `json:"disabledCombinations,omitempty"`
	NotFoundCombinations []string `json:"notFoundCombinations,omitempty"`
}

type FileBackend struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{
		path: path,
		now:  time.Now,
	}
}

func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) Source() Source {
	return SourceFile
}

// Save writes a temp file in the target directory and renames it over the state file,
// so readers never observe a partial document.
func (b *FileBackend) Save(ctx context.Context, cells []string, meta SaveMeta) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := toggleStateDocument{
		DisabledCells: cells,
		LastUpdated:   b.now().UTC().Format(time.RFC3339Nano),
	}
	if doc.DisabledCells == nil {
		doc.DisabledCells = []string{}
	}
	if run := meta.Run; run != nil {
		total, enabled, disabled := run.TotalCombinations, run.EnabledCount, run.DisabledCount
		doc.Source = run.Source
		doc.TotalCombinations = &total
		doc.EnabledCombinations = &enabled
		doc.DisabledCombinations = &disabled
		doc.NotFoundCombinations = run.NotFoundNames
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return &FileError{Op: "encode", Path: b.path, Err: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &FileError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".toggle-states-*.json")
	if err != nil {
		return &FileError{Op: "create temp", Path: dir, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return &FileError{Op: "write", Path: tmpName, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return &FileError{Op: "sync", Path: tmpName, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &FileError{Op: "close", Path: tmpName, Err: err}
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		cleanup()
		return &FileError{Op: "rename", Path: b.path, Err: err}
	}
	return nil
}

// Load returns an empty set when the file has never been written
func (b *FileBackend) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	data, err := os.ReadFile(b.path)
	b.mu.Unlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, &FileError{Op: "read", Path: b.path, Err: err}
	}

	var doc toggleStateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FileError{Op: "decode", Path: b.path, Err: err}
	}
	if doc.DisabledCells == nil {
		return []string{}, nil
	}
	return doc.DisabledCells, nil
}

func (b *FileBackend) Count(ctx context.Context) (int, error) {
	keys, err := b.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(keys), nil
}

// ListRuns has no history to offer; only the last run is kept inside the state file.
func (b *FileBackend) ListRuns(ctx context.Context, limit, offset int) ([]*entity.ReconciliationRun, error) {
	return []*entity.ReconciliationRun{}, nil
}

func (b *FileBackend) FindRun(ctx context.Context, id uuid.UUID) (*entity.ReconciliationRun, error) {
	return nil, nil
}

func (b *FileBackend) Close() error {
	return nil
}
