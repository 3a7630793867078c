package handler

import (
	"net/http"
	"strconv"

	"Reddit_MVP/internal/middleware"
	"Reddit_MVP/internal/pkg"
	"Reddit_MVP/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.ContentService
}

func NewPostHandler(svc *service.ContentService) *PostHandler {
	return &PostHandler{svc: svc}
}

type CreatePostReq struct {
	CommunityID uint64   `json:"community_id" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Body        string   `json:"body"`
	MediaKeys   []string `json:"media_keys"`
}

// Create 发帖，成员门禁在 service 层
func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	post, err := h.svc.CreatePost(c.Request.Context(), middleware.UserID(c), req.CommunityID, req.Title, req.Body, req.MediaKeys)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListByCommunity 社区帖子列表，新帖在前
func (h *PostHandler) ListByCommunity(c *gin.Context) {
	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || communityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid community id"})
		return
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)

	posts, err := h.svc.ListPosts(c.Request.Context(), communityID, limit, skip)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.svc.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, post)
}
