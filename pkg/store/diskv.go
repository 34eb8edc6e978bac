package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/thoughts/pkg/entry"
)

// SnapshotKey is the single diskv key holding every item.
const SnapshotKey = "items.json"

// Persistence defines the persistence contract for the item snapshot.
type Persistence interface {
	Load(ctx context.Context) ([]*entry.Item, error)
	Save(ctx context.Context, items []*entry.Item) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           filepath.Join(basePath, tempDir),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

const tempDir = ".tmp"

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Load(ctx context.Context) ([]*entry.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !p.d.Has(SnapshotKey) {
		return []*entry.Item{}, nil
	}
	val, err := p.d.Read(SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", SnapshotKey, err)
	}
	if len(strings.TrimSpace(string(val))) == 0 {
		return []*entry.Item{}, nil
	}

	var items []*entry.Item
	if err := json.Unmarshal(val, &items); err == nil {
		return items, nil
	}

	// Keep whatever records still decode.
	var raw []json.RawMessage
	if err := json.Unmarshal(val, &raw); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", SnapshotKey, err)
	}
	items = make([]*entry.Item, 0, len(raw))
	for i, r := range raw {
		it := &entry.Item{}
		if err := json.Unmarshal(r, it); err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: record %d: %v\n", SnapshotKey, i, err)
			continue
		}
		items = append(items, it)
	}
	return items, nil
}

func (p *persistence) Save(ctx context.Context, items []*entry.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []*entry.Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := p.d.Write(SnapshotKey, data); err != nil {
		return fmt.Errorf("store: write %s: %w", SnapshotKey, err)
	}
	return nil
}

// Keys are "dir-dir-file"; the snapshot key has no directory part.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}
