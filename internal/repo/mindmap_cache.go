package repo

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/maptotext/mindmap/internal/model"
)

// WrapLruCache adds a read-through cache of recently loaded maps in front of
// a Store. Entries are cloned on the way in and out so callers can mutate
// what they get back without corrupting the cached value.
func WrapLruCache(next Store, size int, ttl time.Duration) Store {
	if next == nil || size <= 0 || ttl <= 0 {
		return next
	}
	return &lruStore{
		next:  next,
		cache: expirable.NewLRU[string, *model.MindMap](size, nil, ttl),
	}
}

type lruStore struct {
	next  Store
	cache *expirable.LRU[string, *model.MindMap]
}

func (l *lruStore) Load(ctx context.Context, id string) (*model.MindMap, error) {
	if cached, ok := l.cache.Get(id); ok {
		logutil.GetLogger(ctx).Debug("mindmap cache hit", zap.String("id", id))
		return cached.Clone(), nil
	}
	m, err := l.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	l.cache.Add(id, m.Clone())
	return m, nil
}

func (l *lruStore) Save(ctx context.Context, m *model.MindMap, mtime int64) error {
	if err := l.next.Save(ctx, m, mtime); err != nil {
		return err
	}
	l.cache.Add(m.ID, m.Clone())
	return nil
}

func (l *lruStore) Delete(ctx context.Context, id string) error {
	l.cache.Remove(id)
	return l.next.Delete(ctx, id)
}

func (l *lruStore) List(ctx context.Context) ([]model.MindMapInfo, error) {
	return l.next.List(ctx)
}
