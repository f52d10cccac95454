package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rpupo63/blog-catalog-backend/database"
	"github.com/rpupo63/blog-catalog-backend/errs"
	"github.com/rpupo63/blog-catalog-backend/models"
	"github.com/rpupo63/blog-catalog-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	// maxUploadSize is the upload limit for a single image (5 MB).
	maxUploadSize = 5 << 20

	// uploadFolder is the logical folder images land in.
	uploadFolder = "blog-images"
)

// timeNow is swapped out in tests.
var timeNow = func() time.Time { return time.Now().UTC() }

// blogStore is the slice of the document store the handlers consume.
// *database.BlogPostRepo is the production implementation.
type blogStore interface {
	Find(ctx context.Context, filter database.BlogFilter, sortBy string, page, limit int) ([]models.BlogPost, error)
	Count(ctx context.Context, filter database.BlogFilter) (int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	Add(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.BlogPost, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error)
	FindPublished(ctx context.Context) ([]models.BlogPost, error)
	DistinctTags(ctx context.Context) ([]string, error)
	DistinctAuthors(ctx context.Context) ([]string, error)
}

// imageStorage is the external object-storage collaborator.
// *services.ImageStorage is the production implementation; a nil value
// means storage was not configured.
type imageStorage interface {
	Upload(ctx context.Context, data []byte, filename, folder string) (services.ImageAsset, error)
	Delete(ctx context.Context, fileID string) error
}

type blogPostHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     blogStore
	images    imageStorage
	validate  *validator.Validate
}

func newBlogPostHandler(store blogStore, images imageStorage) blogPostHandler {
	logger := log.With().Str("handlerName", "blogPostHandler").Logger()

	return blogPostHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		images:    images,
		validate:  newValidator(),
	}
}

// blogResponse is a stored post plus the derived excerpt.
type blogResponse struct {
	models.BlogPost
	Excerpt string `json:"excerpt"`
}

func newBlogResponse(post models.BlogPost) blogResponse {
	return blogResponse{BlogPost: post, Excerpt: models.Excerpt(post.Content)}
}

func newBlogResponses(posts []models.BlogPost) []blogResponse {
	responses := make([]blogResponse, len(posts))
	for i, post := range posts {
		responses[i] = newBlogResponse(post)
	}
	return responses
}

// getAllBlogs lists blog posts with search, author and tag filters,
// sorting, and pagination metadata.
func (h blogPostHandler) getAllBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		page := queryInt(query.Get("page"), defaultPage)
		if page < 1 {
			page = defaultPage
		}
		limit := queryInt(query.Get("limit"), defaultLimit)
		if limit < 1 {
			limit = defaultLimit
		}

		filter := database.BlogFilter{
			Search: strings.TrimSpace(query.Get("search")),
			Author: strings.TrimSpace(query.Get("author")),
			Tags:   parseTagList(query.Get("tags")),
		}
		sortBy := query.Get("sortBy")

		posts, err := h.store.Find(r.Context(), filter, sortBy, page, limit)
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreError("find", "blog posts", err))
			return
		}

		total, err := h.store.Count(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreError("count", "blog posts", err))
			return
		}

		h.responder.WriteList(w, newBlogResponses(posts), newPagination(page, limit, total))
	}
}

// getBlog retrieves a single blog post by ID.
func (h blogPostHandler) getBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, apiErr := parseBlogID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		post, err := h.store.FindByID(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, newBlogResponse(*post), "")
	}
}

// createBlog validates and persists a new blog post.
func (h blogPostHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createBlogPayload
		if apiErr := h.decodeBody(r, &payload); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		payload.trim()
		if err := h.validate.Struct(payload); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		post := payload.toModel()
		if err := h.store.Add(r.Context(), &post); err != nil {
			h.responder.WriteError(w, errs.NewStoreError("create", "blog post", err))
			return
		}

		h.responder.WriteData(w, http.StatusCreated, newBlogResponse(post), "Blog created successfully")
	}
}

// updateBlog applies the supplied fields to an existing post. Absent
// fields keep their stored values; a publish transition into the
// published state refreshes publishedAt.
func (h blogPostHandler) updateBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, apiErr := parseBlogID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		var payload updateBlogPayload
		if apiErr := h.decodeBody(r, &payload); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		payload.trim()
		if err := h.validate.Struct(payload); err != nil {
			h.responder.WriteError(w, validationError(err))
			return
		}

		existing, err := h.store.FindByID(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreError("find", "blog post", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		fields := updateFields(payload, *existing)

		updated, err := h.store.Update(r.Context(), blogID, fields)
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreError("update", "blog post", err))
			return
		}
		if updated == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, newBlogResponse(*updated), "Blog updated successfully")
	}
}

// deleteBlog removes a post. Associated images are deleted from object
// storage first, each independently; a failed image deletion is logged
// and never blocks the others or the record deletion.
func (h blogPostHandler) deleteBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, apiErr := parseBlogID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		post, err := h.store.FindByID(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreError("find", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		h.deleteImages(r.Context(), post.Images)

		if err := h.store.Delete(r.Context(), blogID); err != nil {
			h.responder.WriteError(w, errs.NewStoreError("delete", "blog post", err))
			return
		}

		h.responder.WriteMessage(w, "Blog deleted successfully")
	}
}

// deleteImages fans the deletions out; each external call is
// independent and failures are intentionally not propagated.
func (h blogPostHandler) deleteImages(ctx context.Context, images []models.BlogImage) {
	if len(images) == 0 {
		return
	}
	if h.images == nil {
		h.logger.Warn().Int("imageCount", len(images)).Msg("Object storage not configured, skipping image cleanup")
		return
	}

	var wg sync.WaitGroup
	for _, image := range images {
		wg.Add(1)
		go func(image models.BlogImage) {
			defer wg.Done()
			if err := h.images.Delete(ctx, image.FileID); err != nil {
				h.logger.Error().Err(err).Str("fileId", image.FileID).Msg("Failed to delete blog image from object storage")
			}
		}(image)
	}
	wg.Wait()
}

// uploadImage stores a single multipart image in object storage and
// returns the asset descriptor. Attachment to a post happens later via
// create or update.
func (h blogPostHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.images == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "object storage is not configured"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			// A body that is not multipart at all carries no file; only
			// genuine size failures map to 413.
			var maxBytesErr *http.MaxBytesError
			switch {
			case errors.Is(err, http.ErrNotMultipart):
				h.responder.WriteError(w, errs.NewMissingUploadError("no image file provided"))
			case errors.As(err, &maxBytesErr), errors.Is(err, multipart.ErrMessageTooLarge):
				h.responder.WriteError(w, errs.NewApiErr(http.StatusRequestEntityTooLarge, "image exceeds the 5 MB limit"))
			default:
				h.responder.WriteError(w, errs.NewBadRequestError("malformed multipart body"))
			}
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingUploadError("no image file provided"))
			return
		}
		defer file.Close()

		if header.Size > maxUploadSize {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusRequestEntityTooLarge, "image exceeds the 5 MB limit"))
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to read uploaded file")
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read uploaded file"))
			return
		}

		// Sniff the content type instead of trusting the client header.
		if !strings.HasPrefix(http.DetectContentType(data), "image/") {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusUnsupportedMediaType, "only image files are allowed"))
			return
		}

		asset, err := h.images.Upload(r.Context(), data, header.Filename, uploadFolder)
		if err != nil {
			h.responder.WriteError(w, errs.NewObjectStorageError("upload image", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, asset, "Image uploaded successfully")
	}
}

// getPublishedBlogs lists every published post, newest publication
// first, without pagination. Backs feeds and sitemaps.
func (h blogPostHandler) getPublishedBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.store.FindPublished(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreError("find", "published blog posts", err))
			return
		}
		h.responder.WriteData(w, http.StatusOK, newBlogResponses(posts), "")
	}
}

// getTags returns the distinct non-empty tag values across all posts.
func (h blogPostHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.store.DistinctTags(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreError("list", "tags", err))
			return
		}
		h.responder.WriteData(w, http.StatusOK, tags, "")
	}
}

// getAuthors returns the distinct non-empty author values across all posts.
func (h blogPostHandler) getAuthors() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authors, err := h.store.DistinctAuthors(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreError("list", "authors", err))
			return
		}
		h.responder.WriteData(w, http.StatusOK, authors, "")
	}
}

// incrementBlogViews atomically bumps a post's view counter.
func (h blogPostHandler) incrementBlogViews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blogID, apiErr := parseBlogID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		post, err := h.store.IncrementViews(r.Context(), blogID)
		if err != nil {
			h.responder.WriteError(w, errs.NewStoreError("increment views for", "blog post", err))
			return
		}
		if post == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("blog not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, newBlogResponse(*post), "")
	}
}

// parseBlogID extracts and validates the {blogID} route parameter. A
// malformed identifier is a client error distinct from not-found.
func parseBlogID(r *http.Request) (primitive.ObjectID, *errs.ApiErr) {
	raw := chi.URLParam(r, "blogID")
	if raw == "" {
		return primitive.NilObjectID, errs.NewBadRequestError("missing blogID")
	}

	blogID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errs.NewInvalidIDError("invalid blog ID")
	}
	return blogID, nil
}

func (h blogPostHandler) decodeBody(r *http.Request, v any) *errs.ApiErr {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode blog post request body")
		return errs.NewBadRequestError("malformed request body")
	}
	return nil
}

// updateFields translates the supplied payload fields into the merge
// document. The publish transition is decided here, at the call site,
// against the previously stored flag.
func updateFields(payload updateBlogPayload, existing models.BlogPost) bson.M {
	fields := bson.M{}

	if payload.Title != nil {
		fields["title"] = *payload.Title
	}
	if payload.Content != nil {
		fields["content"] = *payload.Content
	}
	if payload.Author != nil {
		fields["author"] = *payload.Author
	}
	if payload.Tags != nil {
		fields["tags"] = models.NormalizeTags(payload.Tags)
	}
	if payload.Images != nil {
		fields["images"] = toImages(payload.Images)
	}
	if payload.IsPublished != nil {
		fields["isPublished"] = *payload.IsPublished
		publishedAt := models.NextPublishedAt(existing.PublishedAt, existing.IsPublished, *payload.IsPublished, timeNow())
		if !publishedAt.Equal(existing.PublishedAt) {
			fields["publishedAt"] = publishedAt
		}
	}

	return fields
}

func parseTagList(raw string) []string {
	if raw == "" {
		return nil
	}

	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if normalized := models.NormalizeTag(tag); normalized != "" {
			tags = append(tags, normalized)
		}
	}
	return tags
}

func queryInt(raw string, defaultValue int) int {
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
