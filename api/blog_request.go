package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/blog-catalog-backend/errs"
	"github.com/rpupo63/blog-catalog-backend/models"
)

// newValidator builds the validator used for blog payloads, reporting
// violations under the JSON field names clients actually sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type imagePayload struct {
	URL    string `json:"url" validate:"required"`
	FileID string `json:"fileId" validate:"required"`
	Name   string `json:"name" validate:"required"`
}

// createBlogPayload is the body of a create request. Fields are trimmed
// before validation so length constraints apply to the meaningful text.
type createBlogPayload struct {
	Title   string         `json:"title" validate:"required,min=1,max=200"`
	Content string         `json:"content" validate:"required,min=10"`
	Author  string         `json:"author" validate:"required,min=1,max=100"`
	Tags    []string       `json:"tags" validate:"omitempty,dive,min=1,max=50"`
	Images  []imagePayload `json:"images" validate:"omitempty,dive"`
}

func (p *createBlogPayload) trim() {
	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)
	p.Author = strings.TrimSpace(p.Author)
	for i, tag := range p.Tags {
		p.Tags[i] = strings.TrimSpace(tag)
	}
}

// toModel builds a new BlogPost with defaults applied and tags
// normalized. The store assigns the ID and timestamps.
func (p createBlogPayload) toModel() models.BlogPost {
	return models.BlogPost{
		Title:       p.Title,
		Content:     p.Content,
		Author:      p.Author,
		Tags:        models.NormalizeTags(p.Tags),
		Images:      toImages(p.Images),
		IsPublished: true,
	}
}

// updateBlogPayload is the body of an update request. Nil pointers mean
// the field was not supplied and must be left untouched; a supplied but
// empty required field is a validation failure, so the merged document
// can never lose its required fields.
type updateBlogPayload struct {
	Title       *string        `json:"title" validate:"omitnil,min=1,max=200"`
	Content     *string        `json:"content" validate:"omitnil,min=10"`
	Author      *string        `json:"author" validate:"omitnil,min=1,max=100"`
	Tags        []string       `json:"tags" validate:"omitempty,dive,min=1,max=50"`
	Images      []imagePayload `json:"images" validate:"omitempty,dive"`
	IsPublished *bool          `json:"isPublished"`
}

func (p *updateBlogPayload) trim() {
	if p.Title != nil {
		*p.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		*p.Content = strings.TrimSpace(*p.Content)
	}
	if p.Author != nil {
		*p.Author = strings.TrimSpace(*p.Author)
	}
	for i, tag := range p.Tags {
		p.Tags[i] = strings.TrimSpace(tag)
	}
}

func toImages(payloads []imagePayload) []models.BlogImage {
	if payloads == nil {
		return nil
	}
	images := make([]models.BlogImage, len(payloads))
	for i, p := range payloads {
		images[i] = models.BlogImage{URL: p.URL, FileID: p.FileID, Name: p.Name}
	}
	return images
}

// validationError converts a validator result into the API's validation
// failure, carrying every violated field rather than only the first.
func validationError(err error) *errs.ApiErr {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValidationError([]errs.FieldViolation{{Field: "body", Message: err.Error()}})
	}

	violations := make([]errs.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, errs.FieldViolation{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		})
	}
	return errs.NewValidationError(violations)
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "title":
		return "Title must be between 1 and 200 characters"
	case "content":
		return "Content must be at least 10 characters long"
	case "author":
		return "Author must be between 1 and 100 characters"
	case "url", "fileId", "name":
		return fmt.Sprintf("Image %s is required", fe.Field())
	}
	if strings.HasPrefix(fe.Namespace(), "createBlogPayload.tags") ||
		strings.HasPrefix(fe.Namespace(), "updateBlogPayload.tags") {
		return "Each tag must be between 1 and 50 characters"
	}
	return fmt.Sprintf("%s failed the %s constraint", fe.Field(), fe.Tag())
}
