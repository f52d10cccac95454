package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogImage is an asset stored in external object storage and attached
// to a blog post. FileID is the storage handle needed to delete the
// object later; entries are never partially populated.
type BlogImage struct {
	URL    string `bson:"url" json:"url"`
	FileID string `bson:"fileId" json:"fileId"`
	Name   string `bson:"name" json:"name"`
}

// BlogPost represents a complete blog post with metadata
type BlogPost struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Author      string             `bson:"author" json:"author"`
	Tags        []string           `bson:"tags" json:"tags"`
	Images      []BlogImage        `bson:"images" json:"images"`
	IsPublished bool               `bson:"isPublished" json:"isPublished"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
	Views       int64              `bson:"views" json:"views"`
	Likes       int64              `bson:"likes" json:"likes"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// excerptRunes is the number of leading characters shown in list views.
const excerptRunes = 150

// Excerpt returns the leading slice of content used as a preview. It is
// derived on read and never persisted. Content at or under the limit is
// returned verbatim; longer content is cut at the limit with an
// ellipsis marker appended.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptRunes {
		return content
	}
	return string(runes[:excerptRunes]) + "..."
}

// NormalizeTag canonicalizes a single tag value for storage and matching.
func NormalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// NormalizeTags canonicalizes every tag in place-order. Duplicates are
// kept; tag order is meaningful to clients.
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	normalized := make([]string, len(tags))
	for i, tag := range tags {
		normalized[i] = NormalizeTag(tag)
	}
	return normalized
}

// NextPublishedAt computes the publishedAt value after a write that may
// change the publish flag. The timestamp only moves forward when the
// flag transitions into the published state; every other change leaves
// it untouched.
func NextPublishedAt(current time.Time, wasPublished, isPublished bool, now time.Time) time.Time {
	if isPublished && !wasPublished {
		return now
	}
	return current
}
