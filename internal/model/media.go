package model

// MediaInfo 对象元数据，presign/serve 时随 key 一起返回
type MediaInfo struct {
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
