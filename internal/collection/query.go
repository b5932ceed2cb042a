package collection

import (
	"cmp"
	"slices"
	"strings"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

// Sort orders a filtered collection.
type Sort string

const (
	SortNone   Sort = ""
	SortViews  Sort = "views"
	SortLikes  Sort = "likes"
	SortRecent Sort = "recent"
)

// Query narrows a collection locally, without a remote call.
type Query struct {
	// Search matches case-insensitively against title, description and tags.
	Search   string
	Category model.Category
	Sort     Sort
}

// Filter returns the prompts matching q in a new slice. Sorting is stable,
// so prompts that compare equal keep their input order.
func Filter(prompts []model.Prompt, q Query) []model.Prompt {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]model.Prompt, 0, len(prompts))
	for _, p := range prompts {
		if q.Category != model.CategoryNone && p.Category != q.Category {
			continue
		}
		if needle != "" && !matches(p, needle) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortViews:
		slices.SortStableFunc(out, func(a, b model.Prompt) int { return cmp.Compare(b.Views, a.Views) })
	case SortLikes:
		slices.SortStableFunc(out, func(a, b model.Prompt) int { return cmp.Compare(b.Likes, a.Likes) })
	case SortRecent:
		slices.SortStableFunc(out, func(a, b model.Prompt) int { return b.UpdatedAt.Compare(a.UpdatedAt) })
	}
	return out
}

func matches(p model.Prompt, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) ||
		strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// Stats summarises a collection for the dashboard.
type Stats struct {
	Total  int   `json:"total"`
	Public int   `json:"public"`
	Views  int64 `json:"views"`
	Likes  int64 `json:"likes"`
}

func ComputeStats(prompts []model.Prompt) Stats {
	var s Stats
	for _, p := range prompts {
		s.Total++
		if p.IsPublic {
			s.Public++
		}
		s.Views += p.Views
		s.Likes += p.Likes
	}
	return s
}
