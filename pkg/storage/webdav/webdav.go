package webdav

import (
	"context"
	"os"
	"path"

	"github.com/learncss/Annotum/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

// Config 结构体用于存储 WebDAV 连接信息。
type Config struct {
	Endpoint   string `yaml:"endpoint"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

// WebDAV 结构体表示 WebDAV 客户端。
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

// NewClient 创建一个新的 WebDAV 客户端实例。
func NewClient(conf *Config) (*WebDAV, error) {
	if conf.Endpoint == "" {
		return nil, errors.New("webdav: endpoint is empty")
	}
	return &WebDAV{
		Client: gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password),
		Config: conf,
	}, nil
}

// SendContent 将内容上传到 WebDAV 服务器，按需创建目录
func (w *WebDAV) SendContent(_ context.Context, fileKey string, content []byte, _ string) (string, error) {
	fileKey = fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey

	if dir := path.Dir(fileKey); dir != "." && dir != "/" {
		if err := w.Client.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrap(err, "webdav")
		}
	}
	if err := w.Client.Write(fileKey, content, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return fileKey, nil
}

func (w *WebDAV) Delete(_ context.Context, fileKey string) error {
	fileKey = fileurl.PathSuffixCheckAdd(w.Config.CustomPath, "/") + fileKey
	return errors.Wrap(w.Client.Remove(fileKey), "webdav")
}
