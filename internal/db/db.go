package db

import (
	"log"
	"os"
	"yatube/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// Seed initial groups
	seedGroups()
}

// Migrate 建表，测试环境也复用同一份迁移
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.Like{},
	)
}

func seedGroups() {
	// 检查是否已有小组数据
	var count int64
	DB.Model(&models.Group{}).Count(&count)
	if count > 0 {
		log.Println("Groups already seeded, skipping")
		return
	}

	// 创建预设小组，小组只能由管理侧创建
	groups := []models.Group{
		{Title: "技术", Slug: "tech", Description: "技术相关的讨论和分享"},
		{Title: "生活", Slug: "life", Description: "生活日常、经验分享"},
		{Title: "展示", Slug: "showcase", Description: "作品展示、项目分享"},
		{Title: "闲聊", Slug: "chat", Description: "随便聊聊"},
	}

	for _, group := range groups {
		if err := DB.Create(&group).Error; err != nil {
			log.Printf("Failed to create group %s: %v", group.Slug, err)
		}
	}
	log.Println("Initial groups created successfully")
}
