package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldArticleID 文章 ID 字段
	FieldArticleID = "articleId"

	// FieldSlug 文章别名字段
	FieldSlug = "slug"

	// FieldMode 导出模式字段 (published / preview / autosave)
	FieldMode = "mode"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldSize 字节数字段
	FieldSize = "size"

	// FieldStorage 存储类型字段
	FieldStorage = "storage"

	// FieldFileKey 文件键字段
	FieldFileKey = "fileKey"

	// FieldTask 任务名称字段
	FieldTask = "task"
)
