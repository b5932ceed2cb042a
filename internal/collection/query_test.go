package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

func ids(prompts []model.Prompt) []string {
	out := make([]string, 0, len(prompts))
	for _, p := range prompts {
		out = append(out, p.ID)
	}
	return out
}

func fixtures() []model.Prompt {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []model.Prompt{
		{ID: "a", Title: "Blog outline", Tags: []string{"writing"}, Category: model.CategoryWriting, Views: 5, Likes: 1, UpdatedAt: base},
		{ID: "b", Title: "Refactor helper", Description: "Go code review", Category: model.CategoryCoding, Views: 9, Likes: 1, UpdatedAt: base.Add(2 * time.Hour), IsPublic: true},
		{ID: "c", Title: "Ad copy", Tags: []string{"SEO", "blog"}, Category: model.CategoryMarketing, Views: 5, Likes: 7, UpdatedAt: base.Add(time.Hour)},
	}
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"no query keeps order", Query{}, []string{"a", "b", "c"}},
		{"search title case-insensitive", Query{Search: "BLOG"}, []string{"a", "c"}},
		{"search description", Query{Search: "code review"}, []string{"b"}},
		{"search tags", Query{Search: "seo"}, []string{"c"}},
		{"category", Query{Category: model.CategoryCoding}, []string{"b"}},
		{"views stable on ties", Query{Sort: SortViews}, []string{"b", "a", "c"}},
		{"likes", Query{Sort: SortLikes}, []string{"c", "a", "b"}},
		{"recent", Query{Sort: SortRecent}, []string{"b", "c", "a"}},
		{"combined", Query{Search: "blog", Sort: SortLikes}, []string{"c", "a"}},
		{"no match", Query{Search: "nothing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := fixtures()
			got := Filter(in, tt.q)

			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, []string{"a", "b", "c"}, ids(in), "input must not be reordered")
		})
	}
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(fixtures())

	assert.Equal(t, Stats{Total: 3, Public: 1, Views: 19, Likes: 9}, s)
	assert.Equal(t, Stats{}, ComputeStats(nil))
}
