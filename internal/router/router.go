package router

import (
	"yatube/internal/cache"
	"yatube/internal/handlers"
	"yatube/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册全部路由。缓存服务由调用方构造后注入。
func RegisterRoutes(r *gin.Engine, cacheService *cache.Service) {
	// Handlers
	postHandler := handlers.NewPostHandler(cacheService)
	commentHandler := handlers.NewCommentHandler()
	followHandler := handlers.NewFollowHandler()
	likeHandler := handlers.NewLikeHandler()
	authHandler := handlers.NewAuthHandler()
	aboutHandler := handlers.NewAboutHandler()

	// 公共路由 (Public Routes)
	r.GET("/", postHandler.Index)                     // 首页 - 最新帖子
	r.GET("/group/:slug", postHandler.GroupPosts)     // 小组下的帖子列表
	r.GET("/profile/:username", postHandler.Profile)  // 作者主页
	r.GET("/posts/:id", postHandler.Detail)           // 帖子详情页

	r.GET("/auth/signup", authHandler.ShowSignup) // 注册页面
	r.POST("/auth/signup", authHandler.Signup)    // 提交注册
	r.GET("/auth/login", authHandler.ShowLogin)   // 登录页面
	r.POST("/auth/login", authHandler.Login)      // 提交登录
	r.GET("/auth/logout", authHandler.Logout)     // 退出登录

	r.GET("/about/author", aboutHandler.Author) // 关于作者
	r.GET("/about/tech", aboutHandler.Tech)     // 技术栈

	// 受保护路由 (Protected Routes)
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create", postHandler.ShowCreate)        // 发帖页面
		authorized.POST("/create", postHandler.Create)           // 提交发帖
		authorized.GET("/posts/:id/edit", postHandler.ShowEdit)  // 编辑帖子页面
		authorized.POST("/posts/:id/edit", postHandler.Edit)     // 提交帖子更新
		authorized.POST("/posts/:id/delete", postHandler.Delete) // 删除帖子

		authorized.POST("/posts/:id/comment", commentHandler.Add)       // 发表评论
		authorized.POST("/comments/:id/delete", commentHandler.Delete)  // 删除评论

		authorized.GET("/follow", followHandler.Feed)                          // 关注的作者的帖子
		authorized.GET("/profile/:username/follow", followHandler.Follow)      // 关注作者
		authorized.GET("/profile/:username/unfollow", followHandler.Unfollow)  // 取消关注
		authorized.GET("/profile/:username/edit", authHandler.ShowEditProfile) // 资料编辑页面
		authorized.POST("/profile/:username/edit", authHandler.EditProfile)    // 提交资料更新

		authorized.GET("/posts/:id/like", likeHandler.LikePost)       // 点赞/取消点赞帖子
		authorized.GET("/comments/:id/like", likeHandler.LikeComment) // 点赞/取消点赞评论
	}

	// 自定义 404 页面
	r.NoRoute(handlers.NotFound)
}
