package router

import (
	"Reddit_MVP/internal/handler"
	"Reddit_MVP/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	User      *handler.UserHandler
	Community *handler.CommunityHandler
	Post      *handler.PostHandler
	Comment   *handler.CommentHandler
	Media     *handler.MediaHandler
	Sessions  middleware.SessionStore
}

func InitRouter(h Handlers) *gin.Engine {
	r := gin.Default()

	auth := middleware.AuthMiddleware(h.Sessions)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// 认证相关接口
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.User.Register)
		authGroup.POST("/login", h.User.Login)
		authGroup.POST("/logout", auth, h.User.Logout)
	}

	// token 相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", h.User.TokenRefresh)
	}

	// 用户资料接口
	userGroup := r.Group("/api/users", auth)
	{
		userGroup.GET("/me", h.User.Me)
		userGroup.PATCH("/me", h.User.UpdateMe)
		userGroup.GET("/me/communities", h.User.MyCommunities)
	}

	// 社区相关接口
	communityGroup := r.Group("/api/communities")
	{
		communityGroup.GET("", h.Community.List)
		communityGroup.POST("", auth, h.Community.Create)
		communityGroup.POST("/:id/join", auth, h.Community.Join)
		communityGroup.DELETE("/:id/join", auth, h.Community.Leave)
		communityGroup.GET("/:id/posts", h.Post.ListByCommunity)
	}

	// 帖子/评论接口，读公开，写过门禁
	postGroup := r.Group("/api/posts")
	{
		postGroup.POST("", auth, h.Post.Create)
		postGroup.GET("/:id", h.Post.Get)
		postGroup.GET("/:id/comments", h.Comment.ListByPost)
	}
	r.POST("/api/comments", auth, h.Comment.Create)

	// 媒体接口；直读路径挂在根上，对应上传返回的 media_url
	mediaGroup := r.Group("/api/media", auth)
	{
		mediaGroup.POST("/upload", h.Media.Upload)
		mediaGroup.GET("/presign", h.Media.Presign)
	}
	r.GET("/media/*key", h.Media.Serve)

	return r
}
