package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-process Database used by tests and when no Mongo URI is
// configured. Documents are copied on the way in and out.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]Document
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string][]Document)}
}

func (m *Memory) Collection(name string) Collection {
	return &memoryCollection{db: m, name: name}
}

type memoryCollection struct {
	db   *Memory
	name string
}

func (c *memoryCollection) InsertOne(_ context.Context, doc Document) (string, error) {
	stored := copyDoc(doc)
	id, ok := stored["_id"].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		stored["_id"] = id
	}

	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.collections[c.name] = append(c.db.collections[c.name], stored)
	return id, nil
}

func (c *memoryCollection) Find(_ context.Context, filter Document, opts FindOptions) ([]Document, error) {
	c.db.mu.RLock()
	var result []Document
	for _, doc := range c.db.collections[c.name] {
		if matches(doc, filter) {
			result = append(result, copyDoc(doc))
		}
	}
	c.db.mu.RUnlock()

	if opts.SortField != "" {
		sort.SliceStable(result, func(i, j int) bool {
			cmp := compareValues(result[i][opts.SortField], result[j][opts.SortField])
			if opts.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if opts.Limit > 0 && int64(len(result)) > opts.Limit {
		result = result[:opts.Limit]
	}
	return result, nil
}

func (c *memoryCollection) FindOne(_ context.Context, filter Document) (Document, error) {
	c.db.mu.RLock()
	defer c.db.mu.RUnlock()
	for _, doc := range c.db.collections[c.name] {
		if matches(doc, filter) {
			return copyDoc(doc), nil
		}
	}
	return nil, ErrNotFound
}

func (c *memoryCollection) DeleteOne(_ context.Context, filter Document) (bool, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	docs := c.db.collections[c.name]
	for i, doc := range docs {
		if matches(doc, filter) {
			c.db.collections[c.name] = append(docs[:i], docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func matches(doc, filter Document) bool {
	for key, want := range filter {
		if compareValues(doc[key], want) != 0 {
			return false
		}
	}
	return true
}

func copyDoc(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

// compareValues orders the scalar types that appear in stored documents.
// Timestamps are fixed-width ISO-8601 strings, so string comparison
// preserves recency.
func compareValues(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as, bs := stringify(a), stringify(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
