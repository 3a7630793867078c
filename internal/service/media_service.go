package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"Reddit_MVP/internal/model"
	"Reddit_MVP/internal/pkg"
)

// PresignExpiry 固定策略常量，不随请求配置
const PresignExpiry = 3600 * time.Second

// mediaTypeExt 封闭白名单：content-type → 规范扩展名。
// 扩展名只从 content-type 推导，文件名里的扩展名不可信。
var mediaTypeExt = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/ogg":       ".ogv",
	"video/quicktime": ".mov",
}

type MediaService struct {
	store ObjectStore
	sink  pkg.EventSink
}

func NewMediaService(store ObjectStore, sink pkg.EventSink) *MediaService {
	return &MediaService{store: store, sink: sink}
}

type UploadResult struct {
	Key            string `json:"media_key"`
	URL            string `json:"presigned_get_url"`
	ContentType    string `json:"content_type"`
	ExpiresSeconds int64  `json:"expires_seconds"`
}

// Upload 白名单校验在任何存储写入之前；key 以上传者 id 为命名空间，
// 随机部分不可猜测。filename 只用于日志，不参与 key 推导。
func (s *MediaService) Upload(ctx context.Context, userID uint64, filename, contentType string, r io.Reader, size int64) (*UploadResult, error) {
	ext, ok := mediaTypeExt[contentType]
	if !ok {
		return nil, pkg.UnsupportedMedia("unsupported content type: " + contentType)
	}

	key := fmt.Sprintf("media/u%d/%s%s", userID, pkg.NewObjectSuffix(), ext)
	if err := s.store.Put(ctx, key, r, size, contentType); err != nil {
		return nil, pkg.Internal("media store write failed", err)
	}

	url, err := s.store.PresignGet(ctx, key, PresignExpiry)
	if err != nil {
		return nil, pkg.Internal("presign failed", err)
	}

	s.sink.Log(ctx, "media_upload", userID, map[string]any{
		"key":          key,
		"content_type": contentType,
		"filename":     filename,
		"bytes":        size,
	})
	return &UploadResult{
		Key:            key,
		URL:            url,
		ContentType:    contentType,
		ExpiresSeconds: int64(PresignExpiry / time.Second),
	}, nil
}

// Presign 给已存在的 key 换发新的限时 URL；只做元数据查询，不传字节
func (s *MediaService) Presign(ctx context.Context, key string) (string, model.MediaInfo, error) {
	info, found, err := s.store.Stat(ctx, key)
	if err != nil {
		return "", model.MediaInfo{}, pkg.Internal("media stat failed", err)
	}
	if !found {
		return "", model.MediaInfo{}, pkg.NotFound("media not found")
	}
	url, err := s.store.PresignGet(ctx, key, PresignExpiry)
	if err != nil {
		return "", model.MediaInfo{}, pkg.Internal("presign failed", err)
	}
	return url, info, nil
}

// Serve 直接透传字节流，presign 端点对外不可达时的兜底取流路径。
// 调用方负责 Close 返回的流。
func (s *MediaService) Serve(ctx context.Context, key string) (io.ReadCloser, model.MediaInfo, error) {
	rc, info, found, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, model.MediaInfo{}, pkg.Internal("media read failed", err)
	}
	if !found {
		return nil, model.MediaInfo{}, pkg.NotFound("media not found")
	}
	return rc, info, nil
}
