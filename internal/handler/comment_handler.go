package handler

import (
	"net/http"
	"strconv"

	"Reddit_MVP/internal/middleware"
	"Reddit_MVP/internal/pkg"
	"Reddit_MVP/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.ContentService
}

func NewCommentHandler(svc *service.ContentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type CreateCommentReq struct {
	PostID          string  `json:"post_id" binding:"required"`
	Body            string  `json:"body"`
	ParentCommentID *string `json:"parent_comment_id"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	comment, err := h.svc.CreateComment(c.Request.Context(), middleware.UserID(c), req.PostID, req.Body, req.ParentCommentID)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ListByPost 时间正序平铺列表
func (h *CommentHandler) ListByPost(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	skip, _ := strconv.ParseInt(c.DefaultQuery("skip", "0"), 10, 64)

	comments, err := h.svc.ListComments(c.Request.Context(), c.Param("id"), limit, skip)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, comments)
}
