package database

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/blog-catalog-backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const blogCollection = "blogs"

type BlogPostRepo struct {
	collection *mongo.Collection
}

func NewBlogPostRepo(db *mongo.Database) *BlogPostRepo {
	return &BlogPostRepo{collection: db.Collection(blogCollection)}
}

// Find returns one page of blog posts matching the filter, ordered by
// the given sort key.
func (r *BlogPostRepo) Find(ctx context.Context, filter BlogFilter, sortBy string, page, limit int) ([]models.BlogPost, error) {
	opts := options.Find().
		SetSort(SortSpec(sortBy)).
		SetSkip(Skip(page, limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter.Document(), opts)
	if err != nil {
		return nil, err
	}

	posts := []models.BlogPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns the total number of posts matching the filter.
func (r *BlogPostRepo) Count(ctx context.Context, filter BlogFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, filter.Document())
}

// FindByID returns a blog post by its ID, or (nil, nil) when no post
// with that ID exists.
func (r *BlogPostRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Add inserts a new blog post, stamping timestamps and defaulting
// publishedAt to the creation time. The store-assigned ID is written
// back onto the post.
func (r *BlogPostRepo) Add(ctx context.Context, post *models.BlogPost) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.PublishedAt.IsZero() {
		post.PublishedAt = now
	}

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		post.ID = id
	}
	return nil
}

// Update merges the given fields into an existing post and returns the
// post-update document, or (nil, nil) when the post does not exist.
// Fields not present in the map are left untouched.
func (r *BlogPostRepo) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (*models.BlogPost, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for key, value := range fields {
		set[key] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.BlogPost
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a blog post by id.
func (r *BlogPostRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// IncrementViews atomically bumps a post's view counter and returns the
// updated post, or (nil, nil) when the post does not exist. Atomicity
// comes from the store's per-document write guarantee.
func (r *BlogPostRepo) IncrementViews(ctx context.Context, id primitive.ObjectID) (*models.BlogPost, error) {
	update := bson.M{
		"$inc": bson.M{"views": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.BlogPost
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// DistinctTags returns the unique non-empty tag values across all posts,
// in store-determined order.
func (r *BlogPostRepo) DistinctTags(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "tags")
}

// DistinctAuthors returns the unique non-empty author values across all
// posts, in store-determined order.
func (r *BlogPostRepo) DistinctAuthors(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "author")
}

func (r *BlogPostRepo) distinctStrings(ctx context.Context, field string) ([]string, error) {
	values, err := r.collection.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, err
	}

	result := []string{}
	for _, value := range values {
		if s, ok := value.(string); ok && s != "" {
			result = append(result, s)
		}
	}
	return result, nil
}

// FindPublished returns all published posts, newest publication first.
func (r *BlogPostRepo) FindPublished(ctx context.Context) ([]models.BlogPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"isPublished": true}, opts)
	if err != nil {
		return nil, err
	}

	posts := []models.BlogPost{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// EnsureIndexes creates the text index backing search plus the filter
// and sort indexes.
func (r *BlogPostRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "content", Value: "text"},
			{Key: "author", Value: "text"},
		}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "publishedAt", Value: -1}}},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
