package aliyun_oss

import (
	"bytes"
	"context"

	"github.com/learncss/Annotum/pkg/fileurl"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

type OSS struct {
	Bucket *oss.Bucket
	Config *Config
}

// NewClient 创建阿里云 OSS 存储实例
func NewClient(conf *Config) (*OSS, error) {
	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	bucket, err := client.Bucket(conf.BucketName)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	return &OSS{Bucket: bucket, Config: conf}, nil
}

func (p *OSS) SendContent(ctx context.Context, fileKey string, content []byte, contentType string) (string, error) {
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey
	err := p.Bucket.PutObject(fileKey, bytes.NewReader(content), oss.ContentType(contentType), oss.WithContext(ctx))
	if err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

func (p *OSS) Delete(ctx context.Context, fileKey string) error {
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey
	return errors.Wrap(p.Bucket.DeleteObject(fileKey, oss.WithContext(ctx)), "aliyun_oss")
}
