package fileurl

import (
	"os"
	"path/filepath"
	"strings"
)

// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建文件所在目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// PathSuffixCheckAdd appends suffix when path lacks it. An empty path stays
// empty so it can be used directly as an optional key prefix.
// PathSuffixCheckAdd 检查路径后缀，如果没有则添加；空路径保持为空
func PathSuffixCheckAdd(path string, suffix string) string {
	if path == "" || strings.HasSuffix(path, suffix) {
		return path
	}
	return path + suffix
}
