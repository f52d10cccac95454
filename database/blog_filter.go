package database

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlogFilter is the typed query a list request resolves to. Zero-value
// fields are inactive; active clauses combine with logical AND.
type BlogFilter struct {
	// Search runs a text-index match across title, content, and author.
	// Ranking is whatever the store's text search produces.
	Search string
	// Author matches as a case-insensitive substring, not an exact value.
	Author string
	// Tags matches posts whose tag array intersects this set. Values
	// must already be normalized (trimmed, lower-cased).
	Tags []string
}

// Document renders the filter as the query document sent to the store.
// An empty filter matches every post.
func (f BlogFilter) Document() bson.M {
	query := bson.M{}

	if f.Search != "" {
		query["$text"] = bson.M{"$search": f.Search}
	}

	if f.Author != "" {
		// QuoteMeta keeps the substring semantics: a literal match, not
		// a client-supplied regular expression.
		query["author"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Author), Options: "i"}
	}

	if len(f.Tags) > 0 {
		query["tags"] = bson.M{"$in": f.Tags}
	}

	return query
}

// Sort keys accepted by the list operation. Anything else falls back to
// newest-first.
const (
	SortTitle  = "title"
	SortAuthor = "author"
	SortOldest = "oldest"
)

// SortSpec maps a sortBy key to the store sort document.
func SortSpec(sortBy string) bson.D {
	switch sortBy {
	case SortTitle:
		return bson.D{{Key: "title", Value: 1}}
	case SortAuthor:
		return bson.D{{Key: "author", Value: 1}}
	case SortOldest:
		return bson.D{{Key: "createdAt", Value: 1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// Skip computes how many records a page offset passes over.
func Skip(page, limit int) int64 {
	return int64(page-1) * int64(limit)
}
