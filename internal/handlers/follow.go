package handlers

import (
	"net/http"
	"yatube/internal/config"
	"yatube/internal/db"
	"yatube/internal/models"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct{}

func NewFollowHandler() *FollowHandler {
	return &FollowHandler{}
}

// Feed 关注的作者发布的帖子，分页
func (h *FollowHandler) Feed(c *gin.Context) {
	user := currentUser(c)

	authorIDs := db.DB.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", user.ID)

	var total int64
	db.DB.Model(&models.Post{}).Where("user_id IN (?)", authorIDs).Count(&total)
	pg := utils.Paginate(c.Query("page"), total, config.PageSize)

	var posts []models.Post
	db.DB.Preload("User").Preload("Group").
		Where("user_id IN (?)", authorIDs).
		Order("created_at DESC").
		Limit(pg.PerPage).
		Offset(pg.Offset).
		Find(&posts)

	fillCommentCounts(posts)

	Render(c, http.StatusOK, "post/follow.html", gin.H{
		"Posts":  posts,
		"Groups": loadGroups(),
		"Page":   pg,
		"Title":  "我的关注",
		"Active": "follow",
	})
}

// Follow 关注作者。自己关注自己是空操作；重复关注幂等，
// 唯一索引加 FirstOrCreate 保证同一对关系只有一行。
func (h *FollowHandler) Follow(c *gin.Context) {
	user := currentUser(c)
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderError(c, http.StatusNotFound, "用户不存在")
		return
	}

	if author.ID != user.ID {
		follow := models.Follow{UserID: user.ID, AuthorID: author.ID}
		db.DB.Where("user_id = ? AND author_id = ?", user.ID, author.ID).FirstOrCreate(&follow)
	}

	c.Redirect(http.StatusFound, "/profile/"+username)
}

// Unfollow 取消关注。关系不存在时返回 404 而不是空操作。
func (h *FollowHandler) Unfollow(c *gin.Context) {
	user := currentUser(c)
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderError(c, http.StatusNotFound, "用户不存在")
		return
	}

	var follow models.Follow
	if err := db.DB.Where("user_id = ? AND author_id = ?", user.ID, author.ID).First(&follow).Error; err != nil {
		RenderError(c, http.StatusNotFound, "未关注该作者")
		return
	}

	db.DB.Delete(&follow)

	c.Redirect(http.StatusFound, "/profile/"+username)
}
