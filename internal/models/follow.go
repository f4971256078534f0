package models

import (
	"time"
)

// Follow 关注关系：UserID 关注 AuthorID。
// (user_id, author_id) 上的唯一索引保证同一对关系只有一行。
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_author" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_user_author" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
