// Package storage uploads archive objects to local disk or a remote store.
package storage

import (
	"context"

	"github.com/learncss/Annotum/pkg/storage/aliyun_oss"
	"github.com/learncss/Annotum/pkg/storage/aws_s3"
	"github.com/learncss/Annotum/pkg/storage/local_fs"
	"github.com/learncss/Annotum/pkg/storage/webdav"

	"github.com/pkg/errors"
)

type Type = string

const (
	LOCAL  Type = "localfs"
	S3     Type = "s3"
	R2     Type = "r2"
	MinIO  Type = "minio"
	OSS    Type = "oss"
	WebDAV Type = "webdav"
)

// ErrInvalidType is returned for an unknown storage type.
var ErrInvalidType = errors.New("invalid storage type")

// Config Unified storage configuration
type Config struct {
	Type       Type   `yaml:"type" default:"localfs"`
	CustomPath string `yaml:"custom-path"`

	// Cloud Storage (S3/R2/MinIO/OSS)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region" default:"auto"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/archive"`
}

// Storager stores one object and returns the key it was written under.
type Storager interface {
	SendContent(ctx context.Context, pathKey string, content []byte, contentType string) (string, error)
	Delete(ctx context.Context, pathKey string) error
}

// NewClient builds the backend selected by config.Type. R2 and MinIO use
// the S3 client with a custom endpoint.
func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, ErrInvalidType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:   config.SavePath,
			CustomPath: config.CustomPath,
		})
	case S3, R2, MinIO:
		endpoint := config.Endpoint
		if config.Type == R2 && endpoint == "" && config.AccountID != "" {
			endpoint = "https://" + config.AccountID + ".r2.cloudflarestorage.com"
		}
		return aws_s3.NewClient(&aws_s3.Config{
			Endpoint:        endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
			PathStyle:       config.Type == MinIO,
		})
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	}
	return nil, errors.Wrap(ErrInvalidType, config.Type)
}
