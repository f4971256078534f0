package forms

// CommentForm 评论表单
type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

func (f *CommentForm) Validate() map[string]string {
	errs := make(map[string]string)
	if err := validate.Struct(f); err != nil {
		errs = fieldErrors(err)
	}
	checkTextLen(errs, "Text", f.Text)
	return errs
}
