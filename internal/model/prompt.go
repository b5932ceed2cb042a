package model

import (
	"strings"
	"time"
)

// Category classifies a prompt. The zero value means uncategorised.
type Category string

const (
	CategoryNone      Category = ""
	CategoryWriting   Category = "writing"
	CategoryCoding    Category = "coding"
	CategoryMarketing Category = "marketing"
	CategoryAnalysis  Category = "analysis"
	CategoryCreative  Category = "creative"
	CategoryOther     Category = "other"
)

// Categories lists the selectable categories in display order.
var Categories = []Category{
	CategoryWriting,
	CategoryCoding,
	CategoryMarketing,
	CategoryAnalysis,
	CategoryCreative,
	CategoryOther,
}

// Valid reports whether c is empty or one of Categories.
func (c Category) Valid() bool {
	if c == CategoryNone {
		return true
	}
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Prompt is a user-owned prompt document.
type Prompt struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
	Category    Category  `json:"category"`
	IsPublic    bool      `json:"is_public"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Shares      int64     `json:"shares"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PromptDraft carries the user-editable fields of a new prompt.
type PromptDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	Category    Category `json:"category"`
	IsPublic    bool     `json:"is_public"`
}

// PromptPatch is a partial update. Nil fields are left untouched; counters
// and ownership are not client-writable.
type PromptPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Category    *Category `json:"category,omitempty"`
	IsPublic    *bool     `json:"is_public,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p PromptPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Content == nil &&
		p.Tags == nil && p.Category == nil && p.IsPublic == nil
}

// NormalizeTags trims every tag, drops blanks and removes duplicates while
// keeping the order of first appearance. It never returns nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
