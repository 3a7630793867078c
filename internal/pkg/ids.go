package pkg

import (
	"strings"

	"github.com/google/uuid"
)

// NewOpaqueID 帖子/评论的不透明 id，随机不可猜测
func NewOpaqueID() string {
	return uuid.NewString()
}

// NewObjectSuffix 媒体对象 key 的随机部分（hex，不带连字符）
func NewObjectSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
