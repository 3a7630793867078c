package handler

import (
	"net/http"
	"strings"

	"Reddit_MVP/internal/middleware"
	"Reddit_MVP/internal/pkg"
	"Reddit_MVP/internal/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	svc *service.MediaService
}

func NewMediaHandler(svc *service.MediaService) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// Upload multipart 上传。content-type 取表单声明值，白名单校验在 service 层
func (h *MediaHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "file required"})
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "missing content type"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "file open failed"})
		return
	}
	defer f.Close()

	result, err := h.svc.Upload(c.Request.Context(), middleware.UserID(c), fileHeader.Filename, contentType, f, fileHeader.Size)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"media_key":         result.Key,
		"media_url":         "/media/" + result.Key,
		"presigned_get_url": result.URL,
		"content_type":      result.ContentType,
		"expires_seconds":   result.ExpiresSeconds,
	})
}

// Presign 给已有 key 换发新的限时 URL
func (h *MediaHandler) Presign(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "key required"})
		return
	}

	url, info, err := h.svc.Presign(c.Request.Context(), key)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "url": url, "content_type": info.ContentType})
}

// Serve 直接透传对象字节，presign 端点不可达时的兜底路径
func (h *MediaHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "key required"})
		return
	}

	rc, info, err := h.svc.Serve(c.Request.Context(), key)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	defer rc.Close()

	c.Header("X-Content-Type-Options", "nosniff")
	c.DataFromReader(http.StatusOK, info.Size, info.ContentType, rc, nil)
}
