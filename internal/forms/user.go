package forms

import (
	"time"
	"yatube/internal/models"

	"gorm.io/gorm"
)

// SignupForm 注册表单，密码输入两次
type SignupForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Username  string `form:"username" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Password  string `form:"password" validate:"required,min=6"`
	Password2 string `form:"password2" validate:"required"`
	BirthDate string `form:"birth_date"`
}

// Validate 校验并返回错误映射。唯一性检查针对整张表。
func (f *SignupForm) Validate(gdb *gorm.DB) map[string]string {
	errs := make(map[string]string)
	if err := validate.Struct(f); err != nil {
		errs = fieldErrors(err)
	}

	if f.Password != "" && f.Password2 != "" && f.Password != f.Password2 {
		errs["Password2"] = "两次输入的密码不一致"
	}
	if _, ok := errs["BirthDate"]; !ok && f.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", f.BirthDate); err != nil {
			errs["BirthDate"] = "日期格式应为 YYYY-MM-DD"
		}
	}

	if _, ok := errs["Username"]; !ok && f.Username != "" {
		var count int64
		gdb.Model(&models.User{}).Where("username = ?", f.Username).Count(&count)
		if count > 0 {
			errs["Username"] = "用户名已被占用"
		}
	}
	if _, ok := errs["Email"]; !ok && f.Email != "" {
		var count int64
		gdb.Model(&models.User{}).Where("email = ?", f.Email).Count(&count)
		if count > 0 {
			errs["Email"] = "邮箱已注册"
		}
	}
	return errs
}

// User 构造未保存的用户实体，密码哈希由 handler 负责
func (f *SignupForm) User() *models.User {
	user := &models.User{
		Username:  f.Username,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     f.Email,
	}
	if f.BirthDate != "" {
		if t, err := time.Parse("2006-01-02", f.BirthDate); err == nil {
			user.BirthDate = &t
		}
	}
	return user
}

// ProfileForm 资料编辑表单，绑定已有用户，不含密码
type ProfileForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Username  string `form:"username" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	BirthDate string `form:"birth_date"`
}

// Validate 唯一性检查排除被编辑的用户本身
func (f *ProfileForm) Validate(gdb *gorm.DB, userID uint) map[string]string {
	errs := make(map[string]string)
	if err := validate.Struct(f); err != nil {
		errs = fieldErrors(err)
	}

	if f.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", f.BirthDate); err != nil {
			errs["BirthDate"] = "日期格式应为 YYYY-MM-DD"
		}
	}

	if _, ok := errs["Username"]; !ok && f.Username != "" {
		var count int64
		gdb.Model(&models.User{}).Where("username = ? AND id != ?", f.Username, userID).Count(&count)
		if count > 0 {
			errs["Username"] = "用户名已被占用"
		}
	}
	if _, ok := errs["Email"]; !ok && f.Email != "" {
		var count int64
		gdb.Model(&models.User{}).Where("email = ? AND id != ?", f.Email, userID).Count(&count)
		if count > 0 {
			errs["Email"] = "邮箱已注册"
		}
	}
	return errs
}

// Apply 把表单值写到用户实体上，不落库
func (f *ProfileForm) Apply(user *models.User) {
	user.Username = f.Username
	user.FirstName = f.FirstName
	user.LastName = f.LastName
	user.Email = f.Email
	if f.BirthDate != "" {
		if t, err := time.Parse("2006-01-02", f.BirthDate); err == nil {
			user.BirthDate = &t
		}
	} else {
		user.BirthDate = nil
	}
}
