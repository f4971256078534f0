package forms

import (
	"fmt"
	"yatube/internal/config"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// fieldErrors 把 validator 的错误转换成 字段名 -> 提示 的映射
func fieldErrors(err error) map[string]string {
	errs := make(map[string]string)
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["form"] = "提交的数据无效"
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "email":
		return "邮箱格式不正确"
	case "min":
		return fmt.Sprintf("至少 %s 个字符", fe.Param())
	case "max":
		return fmt.Sprintf("最多 %s 个字符", fe.Param())
	default:
		return "格式不正确"
	}
}

// checkTextLen 统一的正文长度校验，上限来自配置
func checkTextLen(errs map[string]string, field, text string) {
	if len([]rune(text)) > config.MaxTextLen {
		errs[field] = fmt.Sprintf("最多 %d 个字符", config.MaxTextLen)
	}
}
