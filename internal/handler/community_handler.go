package handler

import (
	"net/http"
	"strconv"

	"Reddit_MVP/internal/middleware"
	"Reddit_MVP/internal/pkg"
	"Reddit_MVP/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

type CommunityCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	community, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req.Name, req.Description)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, community)
}

func (h *CommunityHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.List(page, size)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CommunityHandler) Join(c *gin.Context) {
	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || communityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid community id"})
		return
	}

	joined, err := h.svc.Join(c.Request.Context(), middleware.UserID(c), communityID)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	status := "joined"
	if !joined {
		status = "already_joined"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	communityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || communityID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid community id"})
		return
	}

	if err := h.svc.Leave(c.Request.Context(), middleware.UserID(c), communityID); err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "left"})
}
