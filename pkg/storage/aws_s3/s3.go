package aws_s3

import (
	"bytes"
	"context"

	"github.com/learncss/Annotum/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"
)

type Config struct {
	Endpoint        string `yaml:"endpoint"` // empty for AWS, set for R2 / MinIO
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
	PathStyle       bool   `yaml:"path-style"`
}

type S3 struct {
	S3Client *s3.Client
	Config   *Config
}

// NewClient 创建 S3 兼容存储实例
func NewClient(conf *Config) (*S3, error) {
	if conf.BucketName == "" {
		return nil, errors.New("aws_s3: bucket-name is empty")
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
		}
		o.UsePathStyle = conf.PathStyle
	})

	return &S3{S3Client: client, Config: conf}, nil
}

func (p *S3) SendContent(ctx context.Context, fileKey string, content []byte, contentType string) (string, error) {
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	_, err := p.S3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.Config.BucketName),
		Key:           aws.String(fileKey),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		return "", errors.Wrap(err, "aws_s3")
	}
	return fileKey, nil
}

func (p *S3) Delete(ctx context.Context, fileKey string) error {
	fileKey = fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + fileKey

	_, err := p.S3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(fileKey),
	})
	return errors.Wrap(err, "aws_s3")
}
