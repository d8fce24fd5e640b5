package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/tutorial-blog-backend/errs"
	"github.com/rpupo63/tutorial-blog-backend/models"
	"github.com/rpupo63/tutorial-blog-backend/render"
)

// Renderer converts a Markdown body into HTML and a table of contents.
type Renderer interface {
	Render(raw string) (render.Result, error)
}

// Clock supplies the timestamps written on save.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// PrepareForSave returns the post as it must be persisted: validated, with
// ModifiedTime set to now, CreateTime set to now when still zero, and the
// excerpt derived again from the body.
//
// Parameters:
//   - r: renderer for the excerpt profile (no table of contents)
//   - post: the post as edited by the author
//   - now: the save instant
//
// Returns:
//   - the prepared copy, or a validation error; nothing is modified on error
func PrepareForSave(r Renderer, post models.Post, now time.Time) (models.Post, error) {
	if err := validateStruct(post); err != nil {
		return models.Post{}, err
	}

	rendered, err := r.Render(post.Body)
	if err != nil {
		return models.Post{}, errs.NewInternalErrorWithCause("render post body", err)
	}

	if post.CreateTime.IsZero() {
		post.CreateTime = now
	}
	post.ModifiedTime = now
	post.Excerpt = render.Excerpt(rendered.HTML, render.DefaultExcerptLength)
	return post, nil
}

// validateStruct maps the first validator failure onto the errs taxonomy.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errs.NewInternalErrorWithCause("validate input", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return errs.NewMissingRequiredFieldError(fe.Field())
	case "max":
		return errs.NewInvalidFieldError(fe.Field(), fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	default:
		return errs.NewInvalidFieldError(fe.Field(), fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
	}
}
