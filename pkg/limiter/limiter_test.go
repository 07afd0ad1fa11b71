package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMethodLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewMethodLimiter().AddBuckets(
		BucketRule{Key: "/articles", FillInterval: time.Hour, Capacity: 2, Quantum: 1},
		BucketRule{Key: "/api/user/login", FillInterval: time.Hour, Capacity: 1, Quantum: 1},
	)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/articles/a-study/xml", nil)

	key := l.Key(c)
	assert.Equal(t, "/articles", key)
	b, ok := l.GetBucket(key)
	assert.True(t, ok)
	assert.Equal(t, int64(1), b.TakeAvailable(1))
	assert.Equal(t, int64(1), b.TakeAvailable(1))
	assert.Equal(t, int64(0), b.TakeAvailable(1))

	c.Request = httptest.NewRequest("GET", "/api/health", nil)
	assert.Equal(t, "", l.Key(c))
}
