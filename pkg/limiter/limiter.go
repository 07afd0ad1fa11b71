// Package limiter holds token buckets keyed by request path prefix.
package limiter

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 令牌桶规则
type BucketRule struct {
	Key          string        // path prefix, e.g. "/api/user/login"
	FillInterval time.Duration // 每次放入令牌的间隔
	Capacity     int64         // 桶容量
	Quantum      int64         // 每次放入的令牌数
}

// MethodLimiter limits by the longest registered path prefix of the request.
type MethodLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*ratelimit.Bucket
	keys    []string
}

func NewMethodLimiter() *MethodLimiter {
	return &MethodLimiter{buckets: make(map[string]*ratelimit.Bucket)}
}

// Key returns the matching rule key for the request path, or "".
func (l *MethodLimiter) Key(c *gin.Context) string {
	path := c.Request.URL.Path
	l.mu.RLock()
	defer l.mu.RUnlock()

	best := ""
	for _, k := range l.keys {
		if strings.HasPrefix(path, k) && len(k) > len(best) {
			best = k
		}
	}
	return best
}

func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, ok := l.buckets[key]
	return b, ok
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, r := range rules {
		if _, ok := l.buckets[r.Key]; ok || r.Key == "" {
			continue
		}
		l.buckets[r.Key] = ratelimit.NewBucketWithQuantum(r.FillInterval, r.Capacity, r.Quantum)
		l.keys = append(l.keys, r.Key)
	}
	return l
}
