package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tuannm99/minisql/internal/heap"
)

// StorageManager maps tables to "<dir>/<table>.tbl" files. Every save
// rewrites the whole file in place.
type StorageManager struct {
	Dir string
}

func NewStorageManager(dir string) *StorageManager {
	return &StorageManager{Dir: dir}
}

// Path returns the file path of the named table.
func (sm *StorageManager) Path(table string) string {
	return filepath.Join(sm.Dir, table+TableExt)
}

func (sm *StorageManager) ensureDir() error {
	if err := os.MkdirAll(sm.Dir, FileMode0755); err != nil {
		return fmt.Errorf("%w: create data dir %s: %v", ErrStorageIO, sm.Dir, err)
	}
	return nil
}

// Save writes the schema and every row of tbl to its table file.
func (sm *StorageManager) Save(tbl *heap.Table) (err error) {
	if err := sm.ensureDir(); err != nil {
		return err
	}

	path := sm.Path(tbl.Name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, FileMode0644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrStorageIO, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close %s: %v", ErrStorageIO, path, cerr)
		}
	}()

	if err := EncodeTable(f, tbl); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorageIO, path, err)
	}
	return nil
}

// Load reads one table file.
func (sm *StorageManager) Load(table string) (*heap.Table, error) {
	path := sm.Path(table)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageIO, path, err)
	}
	defer func() { _ = f.Close() }()

	tbl, err := DecodeTable(table, f)
	if err != nil {
		return nil, fmt.Errorf("load table %s: %w", table, err)
	}
	return tbl, nil
}

// LoadAll reads every *.tbl file in the data directory, creating the directory
// if needed. A file that fails to load is logged and skipped.
func (sm *StorageManager) LoadAll() ([]*heap.Table, error) {
	if err := sm.ensureDir(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(sm.Dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read dir %s: %v", ErrStorageIO, sm.Dir, err)
	}

	var tables []*heap.Table
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != TableExt {
			continue
		}
		name := strings.TrimSuffix(e.Name(), TableExt)
		tbl, err := sm.Load(name)
		if err != nil {
			slog.Warn("storage: failed to load table", "table", name, "err", err)
			continue
		}
		tables = append(tables, tbl)
	}
	return tables, nil
}
