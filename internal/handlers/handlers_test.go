package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"yatube/internal/cache"
	"yatube/internal/db"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/router"
	"yatube/internal/utils"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// testTemplates 用带标记的迷你模板替代线上模板，断言只看标记
func testTemplates() multitemplate.Renderer {
	r := multitemplate.NewRenderer()
	r.AddFromString("post/list.html",
		`list:{{with .CurrentUser}}user:{{.Username}}{{else}}anon{{end}}:{{range .Posts}}[post:{{.ID}}:{{.Text}}]{{end}}page:{{.Page.Number}}/{{.Page.TotalPages}}`)
	r.AddFromString("post/group.html",
		`group:{{.Group.Slug}}:{{range .Posts}}[post:{{.ID}}]{{end}}page:{{.Page.Number}}/{{.Page.TotalPages}}`)
	r.AddFromString("post/profile.html",
		`profile:{{.Author.Username}}:following:{{.Following}}:count:{{.PostCount}}:{{range .Posts}}[post:{{.ID}}]{{end}}`)
	r.AddFromString("post/detail.html",
		`detail:[post:{{.Post.ID}}]likes:{{.Post.LikeCount}}:liked:{{.Post.Liked}}:following:{{.Following}}:{{range .Comments}}[comment:{{.ID}}:floor:{{.Floor}}:likes:{{.LikeCount}}]{{end}}`)
	r.AddFromString("post/create.html",
		`create:errors:{{range $f, $m := .Errors}}({{$f}}){{end}}`)
	r.AddFromString("post/edit.html",
		`edit:[post:{{.Post.ID}}]selected:{{.SelectedGroup}}:errors:{{range $f, $m := .Errors}}({{$f}}){{end}}`)
	r.AddFromString("post/follow.html",
		`feed:{{range .Posts}}[post:{{.ID}}]{{end}}page:{{.Page.Number}}/{{.Page.TotalPages}}`)
	r.AddFromString("auth/login.html",
		`login:next:{{.Next}}:{{.Error}}`)
	r.AddFromString("auth/signup.html",
		`signup:errors:{{range $f, $m := .Errors}}({{$f}}){{end}}`)
	r.AddFromString("user/edit.html",
		`useredit:{{.User.Username}}:errors:{{range $f, $m := .Errors}}({{$f}}){{end}}`)
	r.AddFromString("about/author.html", `about-author`)
	r.AddFromString("about/tech.html", `about-tech`)
	r.AddFromString("error.html", `error:{{.Error}}`)
	return r
}

// setupServer 内存库 + 完整路由。db.DB 是包级变量，测试串行跑。
func setupServer(t *testing.T) (*gin.Engine, *cache.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// 内存库每个连接一份数据，必须收紧到单连接
	sqlDB.SetMaxOpenConns(1)
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = gdb

	cacheService, err := cache.New(64)
	if err != nil {
		t.Fatalf("cache: %v", err)
	}

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("yatube_session", store))
	r.HTMLRender = testTemplates()
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r, cacheService)
	return r, cacheService
}

const testPassword = "secret123"

func createUser(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return &user
}

// login 走真实登录接口，返回会话 cookie
func login(t *testing.T, r *gin.Engine, username string) []*http.Cookie {
	t.Helper()
	form := url.Values{"username": {username}, "password": {testPassword}}
	w := doPost(r, "/auth/login", form, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("login %s: status %d", username, w.Code)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("login %s: no session cookie", username)
	}
	return cookies
}

func doGet(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doPost(r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createPost(t *testing.T, user *models.User, text string, groupID *uint) *models.Post {
	t.Helper()
	post := models.Post{UserID: user.ID, GroupID: groupID, Text: text}
	if err := db.DB.Create(&post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return &post
}

func createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := models.Group{Title: slug, Slug: slug}
	if err := db.DB.Create(&group).Error; err != nil {
		t.Fatalf("create group: %v", err)
	}
	return &group
}
