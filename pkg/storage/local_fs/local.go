package local_fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/learncss/Annotum/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	SavePath   string `yaml:"save-path"`
	CustomPath string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	if conf.SavePath == "" {
		return nil, errors.New("local_fs: save-path is empty")
	}
	return &LocalFS{Config: conf}, nil
}

func (p *LocalFS) fullPath(fileKey string) string {
	return filepath.Join(p.Config.SavePath, filepath.FromSlash(fileKey))
}

// SendContent 写入文件，目录不存在时自动创建
func (p *LocalFS) SendContent(_ context.Context, fileKey string, content []byte, _ string) (string, error) {
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey
	dst := p.fullPath(fileKey)

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	// write then rename so readers never see a partial file
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if err := os.Rename(tmp, dst); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	return fileKey, nil
}

func (p *LocalFS) Delete(_ context.Context, fileKey string) error {
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey
	if err := os.Remove(p.fullPath(fileKey)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "local_fs")
	}
	return nil
}
