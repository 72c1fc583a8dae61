// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"taskverse_backend/internal/feature/tasks/domain/entity"
	"taskverse_backend/internal/feature/tasks/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "tasks"

	// versionTTL は所有者ごとのバージョンキーの保持期間です。
	versionTTL = 24 * time.Hour
)

// storeIfUnchanged はDB読み込み前に観測したバージョンが変わっていない場合のみ一覧を保存します。
// KEYS[1]=一覧キー, KEYS[2]=バージョンキー, ARGV[1]=JSON, ARGV[2]=TTL(ms), ARGV[3]=観測したバージョン
var storeIfUnchanged = redis.NewScript(`
local cur = redis.call('GET', KEYS[2]) or ''
if cur ~= ARGV[3] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
return 1
`)

// CachingTaskRepository decorates a TaskRepository with a Redis read-through
// cache of each owner's task list. Writes invalidate the owner's entry and bump
// the owner's version key; a list read from the database is stored only if the
// version is still the one observed before the read.
// FindByID is never cached so ownership checks always see the database.
type CachingTaskRepository struct {
	inner     usecase.TaskRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.TaskRepository = (*CachingTaskRepository)(nil)

// NewCachingTaskRepository decorates a TaskRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "tasks".
// A nil rdb turns the decorator into a pass-through.
func NewCachingTaskRepository(rdb *redis.Client, ttl time.Duration, inner usecase.TaskRepository, namespace string) *CachingTaskRepository {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingTaskRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingTaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if err := c.inner.Create(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx, t.OwnerID)
	return nil
}

func (c *CachingTaskRepository) FindByID(ctx context.Context, id string) (*entity.Task, error) {
	return c.inner.FindByID(ctx, id)
}

// ListByOwner checks the cache first, then falls back to the database.
func (c *CachingTaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Task, error) {
	if c.rdb == nil {
		return c.inner.ListByOwner(ctx, ownerID)
	}

	key := c.cacheKey(ownerID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Task
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Remember the version before reading the database
	version, err := c.rdb.Get(ctx, c.versionKey(ownerID)).Result()
	cacheable := true
	if errors.Is(err, redis.Nil) {
		version = ""
	} else if err != nil {
		slog.Warn("task cache version read failed", "key", key, "error", err)
		cacheable = false
	}

	// 3) Fallback to database
	out, err := c.inner.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !cacheable {
		return out, nil
	}

	// 4) Store in cache unless a write invalidated the owner meanwhile (best effort)
	if b, err := json.Marshal(out); err == nil {
		keys := []string{key, c.versionKey(ownerID)}
		stored, err := storeIfUnchanged.Run(ctx, c.rdb, keys, string(b), c.ttl.Milliseconds(), version).Int64()
		switch {
		case err != nil:
			slog.Warn("task cache store failed", "key", key, "error", err)
		case stored == 0:
			slog.Debug("task cache store skipped: list changed during read", "key", key)
		}
	}

	return out, nil
}

func (c *CachingTaskRepository) Update(ctx context.Context, t *entity.Task) error {
	if err := c.inner.Update(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx, t.OwnerID)
	return nil
}

func (c *CachingTaskRepository) Delete(ctx context.Context, id, ownerID string) error {
	if err := c.inner.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	c.invalidate(ctx, ownerID)
	return nil
}

// invalidate bumps the owner's version and drops the cached list. Failures are
// logged, not returned: the write has already been committed and the entry
// expires with its TTL.
func (c *CachingTaskRepository) invalidate(ctx context.Context, ownerID string) {
	if c.rdb == nil {
		return
	}
	verKey := c.versionKey(ownerID)
	if err := c.rdb.Incr(ctx, verKey).Err(); err != nil {
		slog.Warn("task cache version bump failed", "key", verKey, "error", err)
	} else if err := c.rdb.Expire(ctx, verKey, versionTTL).Err(); err != nil {
		slog.Warn("task cache version expire failed", "key", verKey, "error", err)
	}
	key := c.cacheKey(ownerID)
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		slog.Warn("task cache invalidation failed", "key", key, "error", err)
	}
}

// cacheKey generates the cache key of an owner's task list.
func (c *CachingTaskRepository) cacheKey(ownerID string) string {
	return fmt.Sprintf("%s:owner:%s", c.namespace, safe(ownerID))
}

// versionKey はキャッシュ書き込みの競合検出に使うバージョンキーです。
func (c *CachingTaskRepository) versionKey(ownerID string) string {
	return c.cacheKey(ownerID) + ":ver"
}
