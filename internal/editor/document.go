// Package editor holds the client-side state of a prompt being edited and
// drives its enhancement through the gateway.
package editor

import (
	"errors"
	"slices"
	"strings"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

// ErrIncomplete is returned by Validate when title or content is blank.
var ErrIncomplete = errors.New("title and content are required")

// Document is the editable form of a prompt.
type Document struct {
	ID          string
	Title       string
	Description string
	Content     string
	Tags        []string
	Category    model.Category
	IsPublic    bool
}

// DocumentFrom loads a stored prompt into the editor.
func DocumentFrom(p model.Prompt) *Document {
	return &Document{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Content:     p.Content,
		Tags:        slices.Clone(p.Tags),
		Category:    p.Category,
		IsPublic:    p.IsPublic,
	}
}

// AddTag appends tag after trimming it. Blank and duplicate tags are ignored
// and reported as false.
func (d *Document) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(d.Tags, tag) {
		return false
	}
	d.Tags = append(d.Tags, tag)
	return true
}

func (d *Document) RemoveTag(tag string) {
	d.Tags = slices.DeleteFunc(d.Tags, func(t string) bool { return t == tag })
}

// Validate checks the document can be saved.
func (d *Document) Validate() error {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
		return ErrIncomplete
	}
	return nil
}

// Draft returns the fields sent when creating a prompt.
func (d *Document) Draft() model.PromptDraft {
	return model.PromptDraft{
		Title:       d.Title,
		Description: d.Description,
		Content:     d.Content,
		Tags:        slices.Clone(d.Tags),
		Category:    d.Category,
		IsPublic:    d.IsPublic,
	}
}

// Patch returns every editable field as a full update.
func (d *Document) Patch() model.PromptPatch {
	doc := *d
	doc.Tags = slices.Clone(d.Tags)
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	return model.PromptPatch{
		Title:       &doc.Title,
		Description: &doc.Description,
		Content:     &doc.Content,
		Tags:        &doc.Tags,
		Category:    &doc.Category,
		IsPublic:    &doc.IsPublic,
	}
}
