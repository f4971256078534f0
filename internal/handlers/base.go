package handlers

import (
	"net/http"
	"yatube/internal/middleware"
	"yatube/internal/models"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'.
// 注入前先复制，请求级字段不能写回调用方的 map（首页缓存里存的就是它）。
func Render(c *gin.Context, code int, name string, obj gin.H) {
	data := gin.H{}
	for k, v := range obj {
		data[k] = v
	}

	// Inject Current User
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		data["CurrentUser"] = user
	}
	data["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, data)
}

// RenderError 渲染统一的错误页
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// currentUser 取 LoadUser 放入上下文的用户，受保护路由下一定存在
func currentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// NotFound 自定义 404 页面
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "页面不存在")
}
