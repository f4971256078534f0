package handlers

import (
	"fmt"
	"html/template"
	"net/http"
	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/forms"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	cache *cache.Service
}

func NewPostHandler(cacheService *cache.Service) *PostHandler {
	return &PostHandler{cache: cacheService}
}

// fillCommentCounts 批量填充帖子的评论数量
func fillCommentCounts(posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	type CountResult struct {
		PostID uint
		Count  int
	}
	var results []CountResult
	db.DB.Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.PostID] = r.Count
	}

	for i := range posts {
		posts[i].CommentCount = countMap[posts[i].ID]
	}
}

// selectedGroup 编辑表单里当前选中的小组 ID，未选时为 0
func selectedGroup(post *models.Post) uint {
	if post.GroupID != nil {
		return *post.GroupID
	}
	return 0
}

// loadGroups 侧边栏的小组列表
func loadGroups() []models.Group {
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)
	return groups
}

// Index 首页帖子列表。渲染数据按页缓存，帖子增删不主动失效，
// 只能等 TTL 过期或对缓存键显式 Clear。
func (h *PostHandler) Index(c *gin.Context) {
	var total int64
	db.DB.Model(&models.Post{}).Count(&total)
	pg := utils.Paginate(c.Query("page"), total, config.PageSize)

	// 缓存键用钳制后的页码，越界参数不会另开一份缓存
	cacheKey := fmt.Sprintf("posts:index:page:%d", pg.Number)
	if cachedData := h.cache.Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "post/list.html", hData)
			return
		}
	}

	var posts []models.Post
	db.DB.Preload("User").Preload("Group").
		Order("created_at DESC").
		Limit(pg.PerPage).
		Offset(pg.Offset).
		Find(&posts)

	fillCommentCounts(posts)

	renderData := gin.H{
		"Posts":  posts,
		"Groups": loadGroups(),
		"Page":   pg,
		"Title":  "最新帖子",
		"Active": "index",
	}

	h.cache.Set(cacheKey, renderData, config.IndexCacheTTL)

	Render(c, http.StatusOK, "post/list.html", renderData)
}

// GroupPosts 小组下的帖子列表，slug 不存在时 404
func (h *PostHandler) GroupPosts(c *gin.Context) {
	slug := c.Param("slug")

	var group models.Group
	if err := db.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		RenderError(c, http.StatusNotFound, "小组不存在")
		return
	}

	var total int64
	db.DB.Model(&models.Post{}).Where("group_id = ?", group.ID).Count(&total)
	pg := utils.Paginate(c.Query("page"), total, config.PageSize)

	var posts []models.Post
	db.DB.Preload("User").Preload("Group").
		Where("group_id = ?", group.ID).
		Order("created_at DESC").
		Limit(pg.PerPage).
		Offset(pg.Offset).
		Find(&posts)

	fillCommentCounts(posts)

	Render(c, http.StatusOK, "post/group.html", gin.H{
		"Group":  group,
		"Posts":  posts,
		"Groups": loadGroups(),
		"Page":   pg,
		"Title":  group.Title,
		"Active": "group",
	})
}

// Profile 作者主页：帖子列表 + 当前访问者是否已关注
func (h *PostHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderError(c, http.StatusNotFound, "用户不存在")
		return
	}

	// 匿名访问时 following 恒为 false
	following := false
	if viewer, exists := c.Get(middleware.CheckUserKey); exists {
		var count int64
		db.DB.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", viewer.(*models.User).ID, author.ID).
			Count(&count)
		following = count > 0
	}

	var total int64
	db.DB.Model(&models.Post{}).Where("user_id = ?", author.ID).Count(&total)
	pg := utils.Paginate(c.Query("page"), total, config.PageSize)

	var posts []models.Post
	db.DB.Preload("User").Preload("Group").
		Where("user_id = ?", author.ID).
		Order("created_at DESC").
		Limit(pg.PerPage).
		Offset(pg.Offset).
		Find(&posts)

	fillCommentCounts(posts)

	Render(c, http.StatusOK, "post/profile.html", gin.H{
		"Author":    author,
		"Following": following,
		"Posts":     posts,
		"PostCount": total,
		"Page":      pg,
		"Title":     author.Username + " 的主页",
	})
}

// Detail 帖子详情：正文、全部评论（楼层序）、空评论表单、关注状态
func (h *PostHandler) Detail(c *gin.Context) {
	id := c.Param("id")

	var post models.Post
	if err := db.DB.Preload("User").Preload("Group").First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "帖子不存在")
		return
	}

	viewerID := uint(0)
	if viewer, exists := c.Get(middleware.CheckUserKey); exists {
		viewerID = viewer.(*models.User).ID
	}

	following := false
	if viewerID > 0 {
		var count int64
		db.DB.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", viewerID, post.UserID).
			Count(&count)
		following = count > 0
	}

	fillPostLikes(&post, viewerID)

	// 评论按发布顺序展示，不分页
	var comments []models.Comment
	db.DB.Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at ASC").
		Find(&comments)
	fillCommentLikes(comments, viewerID)

	type FlatComment struct {
		models.Comment
		TextHTML template.HTML
		Floor    int
	}
	flatComments := make([]FlatComment, len(comments))
	for i, com := range comments {
		flatComments[i] = FlatComment{
			Comment:  com,
			TextHTML: utils.RenderMarkdown(com.Text),
			Floor:    i + 1,
		}
	}

	Render(c, http.StatusOK, "post/detail.html", gin.H{
		"Post":      post,
		"PostText":  utils.RenderMarkdown(post.Text),
		"Author":    post.User,
		"Comments":  flatComments,
		"Following": following,
		"Title":     post.User.Username + " 的帖子",
	})
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "post/create.html", gin.H{
		"Title":  "发布",
		"Groups": loadGroups(),
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	user := currentUser(c)

	var form forms.PostForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(db.DB); len(errs) > 0 {
		Render(c, http.StatusBadRequest, "post/create.html", gin.H{
			"Errors": errs,
			"Form":   form,
			"Groups": loadGroups(),
			"Title":  "发布",
		})
		return
	}

	post := models.Post{UserID: user.ID}
	form.Apply(&post)

	// 可选配图
	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		path, err := services.SaveUpload(file, header, "posts")
		if err != nil {
			Render(c, http.StatusBadRequest, "post/create.html", gin.H{
				"Errors": map[string]string{"Image": err.Error()},
				"Form":   form,
				"Groups": loadGroups(),
				"Title":  "发布",
			})
			return
		}
		post.Image = path
	}

	if err := db.DB.Create(&post).Error; err != nil {
		Render(c, http.StatusInternalServerError, "post/create.html", gin.H{
			"Errors": map[string]string{"form": "发布失败"},
			"Form":   form,
			"Groups": loadGroups(),
			"Title":  "发布",
		})
		return
	}

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "帖子不存在")
		return
	}

	// 非作者静默跳回详情页
	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	Render(c, http.StatusOK, "post/edit.html", gin.H{
		"Title":         "编辑帖子",
		"Post":          post,
		"SelectedGroup": selectedGroup(&post),
		"Groups":        loadGroups(),
	})
}

func (h *PostHandler) Edit(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "帖子不存在")
		return
	}

	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	var form forms.PostForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(db.DB); len(errs) > 0 {
		Render(c, http.StatusBadRequest, "post/edit.html", gin.H{
			"Errors":        errs,
			"Post":          post,
			"SelectedGroup": selectedGroup(&post),
			"Form":          form,
			"Groups":        loadGroups(),
			"Title":         "编辑帖子",
		})
		return
	}

	form.Apply(&post)

	if file, header, err := c.Request.FormFile("image"); err == nil {
		defer file.Close()
		if path, err := services.SaveUpload(file, header, "posts"); err == nil {
			post.Image = path
		}
	}

	if err := db.DB.Save(&post).Error; err != nil {
		Render(c, http.StatusInternalServerError, "post/edit.html", gin.H{
			"Errors":        map[string]string{"form": "保存失败"},
			"Post":          post,
			"SelectedGroup": selectedGroup(&post),
			"Form":          form,
			"Groups":        loadGroups(),
			"Title":         "编辑帖子",
		})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

// Delete 删除帖子，评论及相关点赞一并删除
func (h *PostHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "帖子不存在")
		return
	}

	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
		return
	}

	var commentIDs []uint
	db.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Pluck("id", &commentIDs)

	tx := db.DB.Begin()
	if len(commentIDs) > 0 {
		tx.Where("target_type = ? AND target_id IN ?", models.LikeTargetComment, commentIDs).Delete(&models.Like{})
		tx.Where("post_id = ?", post.ID).Delete(&models.Comment{})
	}
	tx.Where("target_type = ? AND target_id = ?", models.LikeTargetPost, post.ID).Delete(&models.Like{})
	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		RenderError(c, http.StatusInternalServerError, "删除失败")
		return
	}
	tx.Commit()

	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}
