package models

import (
	"time"
)

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"uniqueIndex;size:150;not null" json:"username"`
	FirstName string     `gorm:"size:150" json:"first_name"`
	LastName  string     `gorm:"size:150" json:"last_name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"` // Hash
	Image     string     `json:"image"`             // 头像路径，相对 /media
	BirthDate *time.Time `json:"birth_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	// No DeletedAt for hard delete
}

// FullName 显示名，为空时回退到用户名
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Username
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
