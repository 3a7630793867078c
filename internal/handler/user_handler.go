package handler

import (
	"net/http"

	"Reddit_MVP/internal/middleware"
	"Reddit_MVP/internal/pkg"
	"Reddit_MVP/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc         *service.UserService
	communities *service.CommunityService
}

func NewUserHandler(svc *service.UserService, communities *service.CommunityService) *UserHandler {
	return &UserHandler{svc: svc, communities: communities}
}

type RegisterReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册接口
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username, "email": user.Email})
}

// Login 登录接口，签发 access/refresh 一对
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken, "token_type": "bearer"})
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.UserID(c)); err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// TokenRefresh 用 refresh token 换发新的一对
func (h *UserHandler) TokenRefresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken, "token_type": "bearer"})
}

// Me 当前用户资料
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.svc.GetProfile(middleware.UserID(c))
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateMeReq struct {
	Username        *string `json:"username"`
	DisplayName     *string `json:"display_name"`
	ProfileImageKey *string `json:"profile_image_key"`
}

// UpdateMe PATCH 语义，缺省字段不动
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), service.ProfileUpdate{
		Username:        req.Username,
		DisplayName:     req.DisplayName,
		ProfileImageKey: req.ProfileImageKey,
	})
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, user)
}

// MyCommunities 自己创建的/加入的社区
func (h *UserHandler) MyCommunities(c *gin.Context) {
	created, joined, err := h.communities.MyCommunities(middleware.UserID(c))
	if err != nil {
		c.JSON(pkg.HTTPStatus(err), gin.H{"msg": pkg.Message(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created, "joined": joined})
}
