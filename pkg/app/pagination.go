package app

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PaginationConfig pagination configuration // 分页配置
type PaginationConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultPaginationConfig default pagination configuration // 默认分页配置
var DefaultPaginationConfig = PaginationConfig{
	DefaultPageSize: 10,
	MaxPageSize:     100,
}

func queryInt(c *gin.Context, key string) int {
	s, ok := c.GetQuery(key)
	if !ok {
		s = c.PostForm(key)
	}
	n, _ := strconv.Atoi(s)
	return n
}

func GetPage(c *gin.Context) int {
	if page := queryInt(c, "page"); page > 0 {
		return page
	}
	return 1
}

// GetPageSize 获取分页大小
func GetPageSize(c *gin.Context) int {
	cfg := DefaultPaginationConfig
	pageSize := queryInt(c, "pageSize")
	if pageSize <= 0 {
		return cfg.DefaultPageSize
	}
	if pageSize > cfg.MaxPageSize {
		return cfg.MaxPageSize
	}
	return pageSize
}

func GetPageOffset(page, pageSize int) int {
	if page > 0 {
		return (page - 1) * pageSize
	}
	return 0
}
