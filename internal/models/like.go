package models

import (
	"time"
)

// LikeTarget 点赞目标类型标签
type LikeTarget string

const (
	LikeTargetPost    LikeTarget = "post"
	LikeTargetComment LikeTarget = "comment"
)

// Like 点赞，目标通过 (TargetType, TargetID) 标签化引用帖子或评论。
// (user_id, target_type, target_id) 唯一索引保证每人每目标至多一行。
type Like struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;index;uniqueIndex:idx_user_target" json:"user_id"`
	User       User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	TargetType LikeTarget `gorm:"type:varchar(10);not null;uniqueIndex:idx_user_target" json:"target_type"`
	TargetID   uint       `gorm:"not null;index;uniqueIndex:idx_user_target" json:"target_id"`
	CreatedAt  time.Time  `json:"created_at"`
}
