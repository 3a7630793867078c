package minio

import (
	"context"
	"io"
	"net/url"
	"time"

	"Reddit_MVP/internal/model"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint       string // 内网地址，直接读写走这里
	PublicEndpoint string // 外部可达地址，presign 用它签名
	AccessKey      string
	SecretKey      string
	Bucket         string
	UseSSL         bool
}

// MediaStore 持有内外两个客户端：容器部署里对象存储通常有两条网络路径，
// 用内网地址签出的 URL 浏览器打不开，所以签名必须用公网客户端。
type MediaStore struct {
	internal *minio.Client
	public   *minio.Client
	bucket   string
}

func NewMediaStore(cfg Config) (*MediaStore, error) {
	creds := credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")

	internal, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	public, err := minio.New(cfg.PublicEndpoint, &minio.Options{
		Creds:  creds,
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MediaStore{internal: internal, public: public, bucket: cfg.Bucket}, nil
}

// EnsureBucket 启动时建桶，已存在则跳过
func (s *MediaStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.internal.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.internal.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *MediaStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.internal.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// Stat 仅取元数据，不拉字节；对象不存在时 found=false
func (s *MediaStore) Stat(ctx context.Context, key string) (model.MediaInfo, bool, error) {
	info, err := s.internal.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return model.MediaInfo{}, false, nil
		}
		return model.MediaInfo{}, false, err
	}
	return model.MediaInfo{ContentType: info.ContentType, Size: info.Size}, true, nil
}

// Get 打开对象字节流，直接透传给调用方；对象不存在时 found=false
func (s *MediaStore) Get(ctx context.Context, key string) (io.ReadCloser, model.MediaInfo, bool, error) {
	obj, err := s.internal.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, model.MediaInfo{}, false, err
	}
	// GetObject 是懒连接，Stat 一次才知道对象在不在
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, model.MediaInfo{}, false, nil
		}
		return nil, model.MediaInfo{}, false, err
	}
	return obj, model.MediaInfo{ContentType: info.ContentType, Size: info.Size}, true, nil
}

// PresignGet 用公网端点签发限时只读 URL
func (s *MediaStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.public.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
