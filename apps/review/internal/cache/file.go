package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mikgur/eth-address-review/apps/review/internal/model"
)

// FileCache keeps one JSON file per address and category under a cache
// directory. It is the default backend when no database is configured.
type FileCache struct {
	dir    string
	logger *zap.Logger
}

// NewFileCache creates the cache directory if needed.
func NewFileCache(dir string, logger *zap.Logger) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &FileCache{dir: dir, logger: logger}, nil
}

func (c *FileCache) path(address string, cat model.Category) string {
	name := fmt.Sprintf("account_%s_%s.json", cat, strings.ToLower(address))
	return filepath.Join(c.dir, name)
}

// Get implements Cache.
func (c *FileCache) Get(_ context.Context, address string, cat model.Category) ([]model.RawEvent, bool, error) {
	data, err := os.ReadFile(c.path(address, cat))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache file: %w", err)
	}

	var events []model.RawEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, false, fmt.Errorf("failed to parse cache file %s: %w", c.path(address, cat), err)
	}

	c.logger.Debug("Cache hit",
		zap.String("address", address),
		zap.String("category", string(cat)),
		zap.Int("count", len(events)))
	return events, true, nil
}

// Put implements Cache.
func (c *FileCache) Put(_ context.Context, address string, cat model.Category, events []model.RawEvent) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := os.WriteFile(c.path(address, cat), data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}
