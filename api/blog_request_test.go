package api

import (
	"strings"
	"testing"

	"github.com/rpupo63/blog-catalog-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func violatedFields(t *testing.T, err error) []string {
	t.Helper()
	apiErr := validationError(err)
	fields := make([]string, len(apiErr.Violations))
	for i, v := range apiErr.Violations {
		fields[i] = v.Field
	}
	return fields
}

func TestCreatePayloadValid(t *testing.T) {
	v := newValidator()

	payload := createBlogPayload{
		Title:   "Hi",
		Content: "0123456789",
		Author:  "A",
	}
	assert.NoError(t, v.Struct(payload))
}

func TestCreatePayloadShortContent(t *testing.T) {
	v := newValidator()

	payload := createBlogPayload{
		Title:   "Hi",
		Content: "01234",
		Author:  "A",
	}
	err := v.Struct(payload)
	require.Error(t, err)

	apiErr := validationError(err)
	assert.True(t, errs.IsValidation(apiErr))
	require.Len(t, apiErr.Violations, 1)
	assert.Equal(t, "content", apiErr.Violations[0].Field)
	assert.Equal(t, "Content must be at least 10 characters long", apiErr.Violations[0].Message)
}

func TestCreatePayloadReportsEveryViolation(t *testing.T) {
	v := newValidator()

	payload := createBlogPayload{
		Title:   "",
		Content: "short",
		Author:  strings.Repeat("a", 101),
		Tags:    []string{strings.Repeat("t", 51)},
	}
	err := v.Struct(payload)
	require.Error(t, err)

	fields := violatedFields(t, err)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "content")
	assert.Contains(t, fields, "author")
	assert.Len(t, fields, 4, "every violation must be reported, not just the first")
}

func TestCreatePayloadBounds(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name    string
		mutate  func(*createBlogPayload)
		wantErr bool
	}{
		{"title at max", func(p *createBlogPayload) { p.Title = strings.Repeat("t", 200) }, false},
		{"title over max", func(p *createBlogPayload) { p.Title = strings.Repeat("t", 201) }, true},
		{"author at max", func(p *createBlogPayload) { p.Author = strings.Repeat("a", 100) }, false},
		{"author over max", func(p *createBlogPayload) { p.Author = strings.Repeat("a", 101) }, true},
		{"tag at max", func(p *createBlogPayload) { p.Tags = []string{strings.Repeat("g", 50)} }, false},
		{"tag over max", func(p *createBlogPayload) { p.Tags = []string{strings.Repeat("g", 51)} }, true},
		{"content at min", func(p *createBlogPayload) { p.Content = strings.Repeat("c", 10) }, false},
		{"image missing fileId", func(p *createBlogPayload) {
			p.Images = []imagePayload{{URL: "https://cdn/x.png", Name: "x.png"}}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := createBlogPayload{Title: "Hi", Content: "0123456789", Author: "A"}
			tt.mutate(&payload)

			err := v.Struct(payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreatePayloadTrimBeforeValidation(t *testing.T) {
	v := newValidator()

	payload := createBlogPayload{
		Title:   "   ",
		Content: "  0123456789  ",
		Author:  " A ",
	}
	payload.trim()

	err := v.Struct(payload)
	require.Error(t, err, "whitespace-only title must fail after trimming")

	fields := violatedFields(t, err)
	assert.Equal(t, []string{"title"}, fields)
	assert.Equal(t, "0123456789", payload.Content)
}

func TestCreatePayloadToModelNormalizesTags(t *testing.T) {
	payload := createBlogPayload{
		Title:   "Hi",
		Content: "0123456789",
		Author:  "A",
		Tags:    []string{" Go ", "WEB"},
	}
	payload.trim()
	post := payload.toModel()

	assert.Equal(t, []string{"go", "web"}, post.Tags)
	assert.True(t, post.IsPublished)
	assert.Zero(t, post.Views)
	assert.Zero(t, post.Likes)
}

func TestUpdatePayloadOmittedFieldsSkipValidation(t *testing.T) {
	v := newValidator()

	assert.NoError(t, v.Struct(updateBlogPayload{}))
}

func TestUpdatePayloadSuppliedEmptyFieldFails(t *testing.T) {
	v := newValidator()

	empty := ""
	err := v.Struct(updateBlogPayload{Title: &empty})
	require.Error(t, err, "a required field cannot be blanked by an update")

	fields := violatedFields(t, err)
	assert.Equal(t, []string{"title"}, fields)
}

func TestUpdatePayloadSuppliedShortContentFails(t *testing.T) {
	v := newValidator()

	short := "tiny"
	err := v.Struct(updateBlogPayload{Content: &short})
	assert.Error(t, err)
}
