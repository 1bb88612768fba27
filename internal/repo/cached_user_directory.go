package repo

import (
	"context"
	"strconv"
	"time"

	"github.com/karlseguin/ccache/v3"

	"property-alerts/internal/core/cache"
	"property-alerts/internal/domain"
)

// CachedUserDirectory 两级缓存：进程内 ccache → redis（可选）→ 回源
// 不存在的用户同样缓存，TTL 内新建的用户会被视为不存在
type CachedUserDirectory struct {
	next     domain.UserDirectory
	local    *ccache.Cache[*domain.User]
	remote   *cache.Cache
	localTTL time.Duration
	ttl      time.Duration
}

type CacheOpts struct {
	Remote    *cache.Cache // nil 时只用本地缓存
	LocalSize int64
	LocalTTL  time.Duration
	TTL       time.Duration
}

func NewCachedUserDirectory(next domain.UserDirectory, o CacheOpts) *CachedUserDirectory {
	if o.LocalSize <= 0 {
		o.LocalSize = 1000
	}
	if o.LocalTTL <= 0 {
		o.LocalTTL = time.Minute
	}
	if o.TTL <= 0 {
		o.TTL = 5 * time.Minute
	}
	return &CachedUserDirectory{
		next:     next,
		local:    ccache.New(ccache.Configure[*domain.User]().MaxSize(o.LocalSize)),
		remote:   o.Remote,
		localTTL: o.LocalTTL,
		ttl:      o.TTL,
	}
}

func userKey(id int) string { return "user:" + strconv.Itoa(id) }

func (d *CachedUserDirectory) FindByID(ctx context.Context, id int) (*domain.User, error) {
	key := userKey(id)
	if it := d.local.Get(key); it != nil && !it.Expired() {
		return copyUser(it.Value()), nil
	}

	var (
		u   *domain.User
		err error
	)
	if d.remote != nil {
		u, err = cache.GetOrLoadJSON(d.remote, ctx, key, d.ttl, func(ctx context.Context) (*domain.User, error) {
			return d.next.FindByID(ctx, id)
		})
	} else {
		u, err = d.next.FindByID(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	d.local.Set(key, u, d.localTTL)
	return copyUser(u), nil
}

func (d *CachedUserDirectory) Stop() { d.local.Stop() }

func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
