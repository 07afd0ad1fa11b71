// Package dto Defines data transfer objects (request parameters and response structs)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/learncss/Annotum/pkg/util"

// VersionDTO version information for API response
// VersionDTO 版本信息 API 响应对象
type VersionDTO struct {
	Name      string `json:"name"`      // Service name // 服务名称
	Version   string `json:"version"`   // Current version // 当前版本
	GitTag    string `json:"gitTag"`    // Git tag // Git 标签
	BuildTime string `json:"buildTime"` // Build time // 构建时间
}

// HealthDTO health check response
// HealthDTO 健康检查响应
type HealthDTO struct {
	Status   string          `json:"status"`   // ok / degraded
	Database string          `json:"database"` // ok / error message
	Uptime   string          `json:"uptime"`
	Host     *util.HostStats `json:"host,omitempty"`
}
