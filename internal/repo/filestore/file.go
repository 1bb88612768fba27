// Package filestore 以 JSON 数组文件做全量读 / 全量写的存储
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"property-alerts/internal/domain"
)

// jsonFile 单个 JSON 数组文件；同进程内串行写
type jsonFile[T any] struct {
	path string
	mu   sync.Mutex
}

func newJSONFile[T any](path string) (*jsonFile[T], error) {
	if path == "" {
		return nil, fmt.Errorf("filestore: path cannot be empty")
	}
	return &jsonFile[T]{path: path}, nil
}

func unavailable(op, path string, err error) error {
	return fmt.Errorf("filestore %s %s: %w", op, path, errors.Join(domain.ErrStoreUnavailable, err))
}

// readAll 文件不存在也算读失败
func (f *jsonFile[T]) readAll() ([]T, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, unavailable("read", f.path, err)
	}
	items := []T{}
	if len(b) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, unavailable("decode", f.path, err)
	}
	return items, nil
}

func (f *jsonFile[T]) load() ([]T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.readAll()
}

// appendOne 读全部 → 追加 → 写全部；首次写入时创建文件
func (f *jsonFile[T]) appendOne(v T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.readAll()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		items = []T{}
	}
	items = append(items, v)
	return f.writeAll(items)
}

// writeAll 先写临时文件再 rename，避免半截文件
func (f *jsonFile[T]) writeAll(items []T) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return unavailable("encode", f.path, err)
	}
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return unavailable("write", f.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return unavailable("write", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return unavailable("write", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return unavailable("write", f.path, err)
	}
	return nil
}
