package forms

import (
	"strconv"
	"yatube/internal/models"

	"gorm.io/gorm"
)

// PostForm 发帖/编辑表单。Image 由 handler 单独处理上传。
type PostForm struct {
	Text  string `form:"text" validate:"required"`
	Group string `form:"group"`

	// 校验通过后填充
	GroupID *uint `form:"-"`
}

// Validate 返回 字段 -> 提示 的错误映射，空映射表示通过。
// group 非空时必须指向已存在的小组。
func (f *PostForm) Validate(gdb *gorm.DB) map[string]string {
	errs := make(map[string]string)
	if err := validate.Struct(f); err != nil {
		errs = fieldErrors(err)
	}
	checkTextLen(errs, "Text", f.Text)

	if f.Group != "" {
		id, err := strconv.Atoi(f.Group)
		if err != nil {
			errs["Group"] = "小组不存在"
			return errs
		}
		var group models.Group
		if err := gdb.First(&group, id).Error; err != nil {
			errs["Group"] = "小组不存在"
			return errs
		}
		f.GroupID = &group.ID
	}
	return errs
}

// Apply 把表单值写到帖子实体上，不落库
func (f *PostForm) Apply(post *models.Post) {
	post.Text = f.Text
	post.GroupID = f.GroupID
}
