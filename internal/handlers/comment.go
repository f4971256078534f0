package handlers

import (
	"fmt"
	"net/http"
	"yatube/internal/db"
	"yatube/internal/forms"
	"yatube/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// Add 在帖子下发表评论。无效提交不回显错误，直接跳回详情页。
func (h *CommentHandler) Add(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "帖子不存在")
		return
	}

	var form forms.CommentForm
	_ = c.ShouldBind(&form)

	if errs := form.Validate(); len(errs) == 0 {
		comment := models.Comment{
			PostID: post.ID,
			UserID: user.ID,
			Text:   form.Text,
		}
		db.DB.Create(&comment)
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", post.ID))
}

// Delete 删除评论，仅作者本人生效，其他人静默跳回
func (h *CommentHandler) Delete(c *gin.Context) {
	user := currentUser(c)
	id := c.Param("id")

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "评论不存在")
		return
	}

	if comment.UserID == user.ID {
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("target_type = ? AND target_id = ?", models.LikeTargetComment, comment.ID).
				Delete(&models.Like{}).Error; err != nil {
				return err
			}
			return tx.Delete(&comment).Error
		})
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "删除失败")
			return
		}
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", comment.PostID))
}
