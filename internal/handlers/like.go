package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"yatube/internal/db"
	"yatube/internal/models"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct{}

func NewLikeHandler() *LikeHandler {
	return &LikeHandler{}
}

// likeTargetInfo 点赞目标的作者和所属帖子（用于回跳）
type likeTargetInfo struct {
	AuthorID uint
	PostID   uint
}

// likeTargetLookup 按目标类型标签分发查询
var likeTargetLookup = map[models.LikeTarget]func(id uint) (*likeTargetInfo, error){
	models.LikeTargetPost: func(id uint) (*likeTargetInfo, error) {
		var post models.Post
		if err := db.DB.First(&post, id).Error; err != nil {
			return nil, err
		}
		return &likeTargetInfo{AuthorID: post.UserID, PostID: post.ID}, nil
	},
	models.LikeTargetComment: func(id uint) (*likeTargetInfo, error) {
		var comment models.Comment
		if err := db.DB.First(&comment, id).Error; err != nil {
			return nil, err
		}
		return &likeTargetInfo{AuthorID: comment.UserID, PostID: comment.PostID}, nil
	},
}

// toggle 切换点赞：已有则删除，没有则创建。作者给自己点赞是空操作。
// (user, target) 上的唯一索引兜底并发下的重复插入。
func (h *LikeHandler) toggle(c *gin.Context, targetType models.LikeTarget) (*likeTargetInfo, bool) {
	user := currentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RenderError(c, http.StatusNotFound, "内容不存在")
		return nil, false
	}
	targetID := uint(id)

	info, err := likeTargetLookup[targetType](targetID)
	if err != nil {
		RenderError(c, http.StatusNotFound, "内容不存在")
		return nil, false
	}

	if info.AuthorID == user.ID {
		return info, true
	}

	tx := db.DB.Begin()
	var existing models.Like
	err = tx.Where("user_id = ? AND target_type = ? AND target_id = ?", user.ID, targetType, targetID).
		First(&existing).Error
	if err == nil {
		tx.Delete(&existing)
	} else {
		tx.Create(&models.Like{
			UserID:     user.ID,
			TargetType: targetType,
			TargetID:   targetID,
		})
	}
	tx.Commit()

	return info, true
}

// LikePost 点赞/取消点赞帖子，跳回来源页
func (h *LikeHandler) LikePost(c *gin.Context) {
	info, ok := h.toggle(c, models.LikeTargetPost)
	if !ok {
		return
	}

	redirect := c.Request.Referer()
	if redirect == "" {
		redirect = fmt.Sprintf("/posts/%d", info.PostID)
	}
	c.Redirect(http.StatusFound, redirect)
}

// LikeComment 点赞/取消点赞评论，跳回所属帖子详情页
func (h *LikeHandler) LikeComment(c *gin.Context) {
	info, ok := h.toggle(c, models.LikeTargetComment)
	if !ok {
		return
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d", info.PostID))
}

// fillPostLikes 填充帖子的点赞数和当前用户是否已点赞
func fillPostLikes(post *models.Post, viewerID uint) {
	db.DB.Model(&models.Like{}).
		Where("target_type = ? AND target_id = ?", models.LikeTargetPost, post.ID).
		Count(&post.LikeCount)
	if viewerID > 0 {
		var count int64
		db.DB.Model(&models.Like{}).
			Where("user_id = ? AND target_type = ? AND target_id = ?", viewerID, models.LikeTargetPost, post.ID).
			Count(&count)
		post.Liked = count > 0
	}
}

// fillCommentLikes 批量填充评论的点赞数和当前用户点赞状态
func fillCommentLikes(comments []models.Comment, viewerID uint) {
	if len(comments) == 0 {
		return
	}

	commentIDs := make([]uint, len(comments))
	for i, com := range comments {
		commentIDs[i] = com.ID
	}

	type CountResult struct {
		TargetID uint
		Count    int64
	}
	var results []CountResult
	db.DB.Model(&models.Like{}).
		Select("target_id, COUNT(*) as count").
		Where("target_type = ? AND target_id IN ?", models.LikeTargetComment, commentIDs).
		Group("target_id").
		Scan(&results)

	countMap := make(map[uint]int64)
	for _, r := range results {
		countMap[r.TargetID] = r.Count
	}

	likedMap := make(map[uint]bool)
	if viewerID > 0 {
		var likedIDs []uint
		db.DB.Model(&models.Like{}).
			Where("user_id = ? AND target_type = ? AND target_id IN ?", viewerID, models.LikeTargetComment, commentIDs).
			Pluck("target_id", &likedIDs)
		for _, id := range likedIDs {
			likedMap[id] = true
		}
	}

	for i := range comments {
		comments[i].LikeCount = countMap[comments[i].ID]
		comments[i].Liked = likedMap[comments[i].ID]
	}
}
