package dto

// ExportRequest resolves one article for XML download
// 导出请求参数
type ExportRequest struct {
	ID       int64  `form:"p"`
	Slug     string `form:"slug"`
	Preview  bool   `form:"preview"`
	Autosave bool   `form:"autosave"`
	// Screen shows the XML inline instead of as an attachment
	Screen bool `form:"screen"`
}

// DownloadURLRequest 获取下载链接
type DownloadURLRequest struct {
	ID       int64 `json:"id" form:"id" binding:"required,gt=0"`
	Preview  bool  `json:"preview" form:"preview"`
	Autosave bool  `json:"autosave" form:"autosave"`
}

// DownloadURLDTO 下载链接响应
type DownloadURLDTO struct {
	URL string `json:"url"`
}

// ExportResult is a rendered document
type ExportResult struct {
	Filename string
	Body     []byte
}

// ArchiveResultDTO 归档结果
type ArchiveResultDTO struct {
	Total   int      `json:"total"`
	Stored  int      `json:"stored"`
	Failed  int      `json:"failed"`
	Keys    []string `json:"keys,omitempty"`
	Storage string   `json:"storage"`
}
