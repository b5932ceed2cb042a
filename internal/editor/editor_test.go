package editor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstudio/promptstudio-go/internal/enhance"
	"github.com/promptstudio/promptstudio-go/internal/model"
)

type recorder struct {
	mu       sync.Mutex
	success  []string
	failures []string
}

func (r *recorder) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success = append(r.success, msg)
}

func (r *recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, msg)
}

type stubEnhancer struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	result  model.EnhancementResult
	err     error
}

func (s *stubEnhancer) Enhance(ctx context.Context, text string) (model.EnhancementResult, error) {
	s.calls.Add(1)
	if s.started != nil {
		close(s.started)
	}
	if s.release != nil {
		<-s.release
	}
	return s.result, s.err
}

func TestEnhance_EmptyContent(t *testing.T) {
	enh := &stubEnhancer{}
	notes := &recorder{}
	c := NewController(&Document{Content: "  \n"}, enh, notes)

	err := c.Enhance(context.Background())

	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, int32(0), enh.calls.Load())
	assert.Equal(t, []string{"Please enter some content to enhance"}, notes.failures)
}

func TestEnhance_SecondRequestWhileInFlight(t *testing.T) {
	enh := &stubEnhancer{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  model.EnhancementResult{Enhanced: "E"},
	}
	c := NewController(&Document{Content: "draft"}, enh, &recorder{})

	done := make(chan error, 1)
	go func() { done <- c.Enhance(context.Background()) }()
	<-enh.started

	assert.Equal(t, Enhancing, c.State())
	assert.ErrorIs(t, c.Enhance(context.Background()), ErrInFlight)

	close(enh.release)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), enh.calls.Load())
	assert.Equal(t, ResultReady, c.State())

	// A staged result blocks new requests too.
	assert.ErrorIs(t, c.Enhance(context.Background()), ErrInFlight)
	assert.Equal(t, int32(1), enh.calls.Load())
}

func TestAcceptReplacesContent(t *testing.T) {
	doc := &Document{Title: "T", Content: "draft"}
	notes := &recorder{}
	c := NewController(doc, &stubEnhancer{result: model.EnhancementResult{Enhanced: "E"}}, notes)

	require.NoError(t, c.Enhance(context.Background()))
	res, ok := c.Result()
	require.True(t, ok)
	assert.Equal(t, "E", res.Enhanced)
	assert.Equal(t, "draft", doc.Content)

	require.NoError(t, c.Accept())

	assert.Equal(t, "E", doc.Content)
	assert.Equal(t, Idle, c.State())
	_, ok = c.Result()
	assert.False(t, ok)
	assert.Equal(t, []string{MsgEnhanced, MsgApplied}, notes.success)
}

func TestDiscardKeepsContent(t *testing.T) {
	doc := &Document{Content: "draft"}
	c := NewController(doc, &stubEnhancer{result: model.EnhancementResult{Enhanced: "E"}}, &recorder{})

	require.NoError(t, c.Enhance(context.Background()))
	require.NoError(t, c.Discard())

	assert.Equal(t, "draft", doc.Content)
	assert.Equal(t, Idle, c.State())
}

func TestAcceptWithoutResult(t *testing.T) {
	c := NewController(&Document{Content: "draft"}, &stubEnhancer{}, &recorder{})

	assert.ErrorIs(t, c.Accept(), ErrNoResult)
	assert.ErrorIs(t, c.Discard(), ErrNoResult)
}

func TestEnhance_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"misconfigured", &enhance.Error{Kind: enhance.KindMisconfigured}, MsgMisconfigured},
		{"unauthorized", &enhance.Error{Kind: enhance.KindUnauthorized}, MsgUnauthorized},
		{"rate limited", &enhance.Error{Kind: enhance.KindRateLimited}, MsgRateLimited},
		{"throttled by server", &enhance.Error{Kind: enhance.KindThrottled, Message: enhance.MsgThrottled}, MsgThrottled},
		{"network", &enhance.Error{Kind: enhance.KindNetwork, Message: "dial tcp: refused"}, MsgNetwork},
		{"upstream", &enhance.Error{Kind: enhance.KindUpstream, Message: "OpenAI API Error: overloaded"}, "Failed to enhance prompt: OpenAI API Error: overloaded"},
		{"no content", &enhance.Error{Kind: enhance.KindNoContent, Message: enhance.MsgNoContent}, "Failed to enhance prompt: " + enhance.MsgNoContent},
		{"plain error", errors.New("boom"), "Failed to enhance prompt: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes := &recorder{}
			doc := &Document{Content: "draft"}
			c := NewController(doc, &stubEnhancer{err: tt.err}, notes)

			err := c.Enhance(context.Background())

			assert.Equal(t, tt.err, err)
			assert.Equal(t, Idle, c.State())
			assert.Equal(t, "draft", doc.Content)
			assert.Equal(t, []string{tt.want}, notes.failures)
		})
	}
}

func TestClose_DropsLateResult(t *testing.T) {
	enh := &stubEnhancer{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  model.EnhancementResult{Enhanced: "E"},
	}
	notes := &recorder{}
	doc := &Document{Content: "draft"}
	c := NewController(doc, enh, notes)

	done := make(chan error, 1)
	go func() { done <- c.Enhance(context.Background()) }()
	<-enh.started

	c.Close()
	close(enh.release)

	assert.ErrorIs(t, <-done, ErrClosed)
	assert.Equal(t, "draft", doc.Content)
	assert.Empty(t, notes.success)
	assert.Empty(t, notes.failures)
	_, ok := c.Result()
	assert.False(t, ok)
}

func TestDocumentTags(t *testing.T) {
	doc := &Document{}

	assert.True(t, doc.AddTag(" seo "))
	assert.False(t, doc.AddTag("seo"))
	assert.False(t, doc.AddTag("   "))
	assert.True(t, doc.AddTag("blog"))
	assert.Equal(t, []string{"seo", "blog"}, doc.Tags)

	doc.RemoveTag("seo")
	assert.Equal(t, []string{"blog"}, doc.Tags)
}

func TestDocumentValidate(t *testing.T) {
	assert.ErrorIs(t, (&Document{Title: " ", Content: "C"}).Validate(), ErrIncomplete)
	assert.ErrorIs(t, (&Document{Title: "T", Content: ""}).Validate(), ErrIncomplete)
	assert.NoError(t, (&Document{Title: "T", Content: "C"}).Validate())
	assert.Equal(t, MsgIncomplete, Message(ErrIncomplete))
}

func TestDocumentPatchIsDetached(t *testing.T) {
	doc := DocumentFrom(model.Prompt{ID: "p1", Title: "T", Content: "C"})
	patch := doc.Patch()
	doc.Title = "changed"

	assert.Equal(t, "T", *patch.Title)
	assert.NotNil(t, *patch.Tags)
}
