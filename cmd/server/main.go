package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/middleware"
	"yatube/internal/router"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	config.Load()

	// Initialize Database
	db.Init()

	// 首页缓存
	cacheService, err := cache.New(500)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("yatube_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets & Uploaded Media
	r.Static("/static", "./web/static")
	r.Static("/media", config.MediaRoot)

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r, cacheService)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Yatube server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%d秒前", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%d分钟前", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%d小时前", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%d天前", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%d个月前", seconds/2592000)
			}
			return fmt.Sprintf("%d年前", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	// Manual registration to ensure keys match handler expectation
	// Post
	r.AddFromFilesFuncs("post/list.html", funcMap, assemble(templatesDir+"/views/post/list.html")...)
	r.AddFromFilesFuncs("post/group.html", funcMap, assemble(templatesDir+"/views/post/group.html")...)
	r.AddFromFilesFuncs("post/profile.html", funcMap, assemble(templatesDir+"/views/post/profile.html")...)
	r.AddFromFilesFuncs("post/detail.html", funcMap, assemble(templatesDir+"/views/post/detail.html")...)
	r.AddFromFilesFuncs("post/create.html", funcMap, assemble(templatesDir+"/views/post/create.html")...)
	r.AddFromFilesFuncs("post/edit.html", funcMap, assemble(templatesDir+"/views/post/edit.html")...)
	r.AddFromFilesFuncs("post/follow.html", funcMap, assemble(templatesDir+"/views/post/follow.html")...)

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/signup.html", funcMap, assemble(templatesDir+"/views/auth/signup.html")...)
	r.AddFromFilesFuncs("user/edit.html", funcMap, assemble(templatesDir+"/views/user/edit.html")...)

	// About
	r.AddFromFilesFuncs("about/author.html", funcMap, assemble(templatesDir+"/views/about/author.html")...)
	r.AddFromFilesFuncs("about/tech.html", funcMap, assemble(templatesDir+"/views/about/tech.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
