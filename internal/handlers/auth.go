package handlers

import (
	"net/http"
	"strings"
	"yatube/internal/db"
	"yatube/internal/forms"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signup.html", gin.H{"Title": "注册"})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var form forms.SignupForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(db.DB); len(errs) > 0 {
		Render(c, http.StatusBadRequest, "auth/signup.html", gin.H{
			"Errors": errs,
			"Form":   form,
			"Title":  "注册",
		})
		return
	}

	hash, err := utils.HashPassword(form.Password)
	if err != nil {
		Render(c, http.StatusInternalServerError, "auth/signup.html", gin.H{
			"Errors": map[string]string{"form": "注册失败"},
			"Form":   form,
			"Title":  "注册",
		})
		return
	}

	user := form.User()
	user.Password = hash

	// 可选头像
	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		if path, err := services.SaveUpload(file, header, "users"); err == nil {
			user.Image = path
		}
	}

	if err := db.DB.Create(user).Error; err != nil {
		Render(c, http.StatusConflict, "auth/signup.html", gin.H{
			"Errors": map[string]string{"Username": "用户名已被占用"},
			"Form":   form,
			"Title":  "注册",
		})
		return
	}

	// 注册成功后直接登录
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Title": "登录",
		"Next":  c.Query("next"),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	next := c.PostForm("next")

	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Error": "用户名或密码错误",
			"Next":  next,
			"Title": "登录",
		})
		return
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Error": "用户名或密码错误",
			"Next":  next,
			"Title": "登录",
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	// 只允许站内回跳
	if next == "" || !strings.HasPrefix(next, "/") {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

// ShowEditProfile 资料编辑页，仅本人可见，其他人静默跳回主页
func (h *AuthHandler) ShowEditProfile(c *gin.Context) {
	user := currentUser(c)
	username := c.Param("username")

	var target models.User
	if err := db.DB.Where("username = ?", username).First(&target).Error; err != nil {
		RenderError(c, http.StatusNotFound, "用户不存在")
		return
	}

	if target.ID != user.ID {
		c.Redirect(http.StatusFound, "/profile/"+username)
		return
	}

	Render(c, http.StatusOK, "user/edit.html", gin.H{
		"Title": "编辑资料",
		"User":  target,
	})
}

func (h *AuthHandler) EditProfile(c *gin.Context) {
	user := currentUser(c)
	username := c.Param("username")

	var target models.User
	if err := db.DB.Where("username = ?", username).First(&target).Error; err != nil {
		RenderError(c, http.StatusNotFound, "用户不存在")
		return
	}

	if target.ID != user.ID {
		c.Redirect(http.StatusFound, "/profile/"+username)
		return
	}

	var form forms.ProfileForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(db.DB, target.ID); len(errs) > 0 {
		Render(c, http.StatusBadRequest, "user/edit.html", gin.H{
			"Errors": errs,
			"Form":   form,
			"User":   target,
			"Title":  "编辑资料",
		})
		return
	}

	form.Apply(&target)

	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		if path, err := services.SaveUpload(file, header, "users"); err == nil {
			target.Image = path
		}
	}

	if err := db.DB.Save(&target).Error; err != nil {
		Render(c, http.StatusInternalServerError, "user/edit.html", gin.H{
			"Errors": map[string]string{"form": "保存失败"},
			"Form":   form,
			"User":   target,
			"Title":  "编辑资料",
		})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+target.Username)
}
