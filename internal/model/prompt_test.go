package model

import (
	"reflect"
	"testing"
)

func TestCategoryValid(t *testing.T) {
	tests := []struct {
		category Category
		want     bool
	}{
		{CategoryNone, true},
		{CategoryWriting, true},
		{CategoryOther, true},
		{"poetry", false},
		{"Writing", false},
	}

	for _, tt := range tests {
		if got := tt.category.Valid(); got != tt.want {
			t.Errorf("Category(%q).Valid() = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"trims and dedups", []string{" seo ", "seo", "blog", "", "  "}, []string{"seo", "blog"}},
		{"keeps first order", []string{"b", "a", "b", "c", "a"}, []string{"b", "a", "c"}},
		{"case sensitive", []string{"Go", "go"}, []string{"Go", "go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPromptPatchEmpty(t *testing.T) {
	if !(PromptPatch{}).Empty() {
		t.Error("zero patch should be empty")
	}

	public := true
	if (PromptPatch{IsPublic: &public}).Empty() {
		t.Error("patch with is_public should not be empty")
	}
}
