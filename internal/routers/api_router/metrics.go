package api_router

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/learncss/Annotum/pkg/workerpool"

	"github.com/gin-gonic/gin"
)

var (
	publishOnce sync.Once
	currentPool atomic.Pointer[workerpool.Pool]
)

// PublishPoolMetrics exposes the archive worker pool under the expvar key
// "archive_pool". The variable is published once; a reload only swaps the
// pool it reads from.
func PublishPoolMetrics(pool *workerpool.Pool) {
	currentPool.Store(pool)
	publishOnce.Do(func() {
		expvar.Publish("archive_pool", expvar.Func(func() any {
			if p := currentPool.Load(); p != nil {
				return p.GetMetrics()
			}
			return nil
		}))
	})
}

// Expvar 导出系统运行时指标 (expvar)，以 JSON 写入响应
func Expvar(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	first := true
	report := func(key string, value interface{}) {
		if !first {
			fmt.Fprintf(c.Writer, ",\n")
		}
		first = false
		if str, ok := value.(string); ok {
			fmt.Fprintf(c.Writer, "%q: %q", key, str)
		} else {
			fmt.Fprintf(c.Writer, "%q: %v", key, value)
		}
	}

	fmt.Fprintf(c.Writer, "{\n")
	expvar.Do(func(kv expvar.KeyValue) {
		report(kv.Key, kv.Value)
	})
	fmt.Fprintf(c.Writer, "\n}\n")
}
