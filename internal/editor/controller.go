package editor

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

var (
	ErrEmptyContent = errors.New("content is empty")
	// ErrInFlight is returned while an enhancement is running or its result
	// is waiting to be accepted or discarded.
	ErrInFlight = errors.New("an enhancement is already pending")
	ErrNoResult = errors.New("no enhancement result to apply")
	ErrClosed   = errors.New("editor closed")
)

// State is the enhancement lifecycle of one document.
type State int

const (
	Idle State = iota
	Enhancing
	ResultReady
)

func (s State) String() string {
	switch s {
	case Enhancing:
		return "enhancing"
	case ResultReady:
		return "result_ready"
	}
	return "idle"
}

// Enhancer rewrites prompt text. *client.Client satisfies it.
type Enhancer interface {
	Enhance(ctx context.Context, text string) (model.EnhancementResult, error)
}

// Notifier receives user-facing messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Controller admits at most one enhancement per document at a time and
// stages its result until the user accepts or discards it.
type Controller struct {
	enhancer Enhancer
	notifier Notifier

	mu     sync.Mutex
	doc    *Document
	state  State
	result model.EnhancementResult
	closed bool
}

func NewController(doc *Document, enhancer Enhancer, notifier Notifier) *Controller {
	return &Controller{doc: doc, enhancer: enhancer, notifier: notifier}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Result returns the staged enhancement, if any.
func (c *Controller) Result() (model.EnhancementResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != ResultReady {
		return model.EnhancementResult{}, false
	}
	return c.result, true
}

// Enhance sends the document's content to the gateway and blocks until it
// answers. Notifications are delivered before it returns.
func (c *Controller) Enhance(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != Idle {
		c.mu.Unlock()
		return ErrInFlight
	}
	content := c.doc.Content
	if strings.TrimSpace(content) == "" {
		c.mu.Unlock()
		c.notifier.Error(Message(ErrEmptyContent))
		return ErrEmptyContent
	}
	c.state = Enhancing
	c.mu.Unlock()

	result, err := c.enhancer.Enhance(ctx, content)

	c.mu.Lock()
	if c.closed {
		// The view went away while the call was running.
		c.state = Idle
		c.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		c.state = Idle
		c.mu.Unlock()
		c.notifier.Error(Message(err))
		return err
	}
	c.state = ResultReady
	c.result = result
	c.mu.Unlock()

	c.notifier.Success(MsgEnhanced)
	return nil
}

// Accept replaces the document's content with the staged result.
func (c *Controller) Accept() error {
	c.mu.Lock()
	if c.state != ResultReady {
		c.mu.Unlock()
		return ErrNoResult
	}
	c.doc.Content = c.result.Enhanced
	c.result = model.EnhancementResult{}
	c.state = Idle
	c.mu.Unlock()

	c.notifier.Success(MsgApplied)
	return nil
}

// Discard drops the staged result, leaving the document untouched.
func (c *Controller) Discard() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != ResultReady {
		return ErrNoResult
	}
	c.result = model.EnhancementResult{}
	c.state = Idle
	return nil
}

// Close detaches the controller from its view. A result that arrives later
// is dropped without notification.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.result = model.EnhancementResult{}
	c.state = Idle
}
