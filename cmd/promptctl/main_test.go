package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptstudio/promptstudio-go/internal/client"
	"github.com/promptstudio/promptstudio-go/internal/collection"
	"github.com/promptstudio/promptstudio-go/internal/editor"
	"github.com/promptstudio/promptstudio-go/internal/enhance"
	"github.com/promptstudio/promptstudio-go/internal/handler"
	"github.com/promptstudio/promptstudio-go/internal/identity"
	"github.com/promptstudio/promptstudio-go/internal/model"
	"github.com/promptstudio/promptstudio-go/internal/repository"
	"github.com/promptstudio/promptstudio-go/internal/service"
)

const testSecret = "test-secret"

// newTestServer runs the real router over in-memory stores with a fake
// completion API that always answers with result.
func newTestServer(t *testing.T, apiKey string, result model.EnhancementResult) string {
	t.Helper()

	content, err := json.Marshal(result)
	require.NoError(t, err)
	body, err := json.Marshal(map[string]any{
		"choices": []any{map[string]any{"message": map[string]string{"role": "assistant", "content": string(content)}}},
	})
	require.NoError(t, err)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	t.Cleanup(upstream.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(handler.NewRouter(handler.RouterConfig{
		Logger:    logger,
		JWTSecret: testSecret,
		Gateway:   enhance.New(enhance.Config{APIKey: apiKey, BaseURL: upstream.URL}, logger),
		Prompts:   service.NewPromptService(repository.NewMemoryPromptRepository(), logger),
		Profiles:  service.NewProfileService(repository.NewMemoryProfileRepository(), logger),
		RateLimit: 1000,
		RateBurst: 1000,
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := identity.GenerateToken(model.Identity{ID: userID, Email: userID + "@example.com"}, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

type runResult struct {
	out, errOut string
	err         error
}

func run(t *testing.T, stdin string, args ...string) runResult {
	t.Helper()
	t.Setenv("PROMPTSTUDIO_TOKEN", "")
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return runResult{out: out.String(), errOut: errOut.String(), err: err}
}

var enhanced = model.EnhancementResult{
	Enhanced:     "Write a vivid haiku about autumn rain.",
	Improvements: []string{"Named the form"},
	Suggestions:  []string{"Pick a mood"},
}

func TestPromptLifecycle(t *testing.T) {
	url := newTestServer(t, "", enhanced)
	tok := tokenFor(t, "u1")
	auth := []string{"--url", url, "--token", tok}

	res := run(t, "", append(auth, "create", "--title", "Haiku", "--content", "write a haiku", "--tag", "poetry", "--category", "creative")...)
	require.NoError(t, res.err)
	id := strings.TrimSpace(res.out)
	require.NotEmpty(t, id)

	res = run(t, "", append(auth, "update", id, "--title", "Autumn haiku", "--tag", "seasons", "--untag", "poetry")...)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "Updated "+id)

	res = run(t, "", append(auth, "list", "--json")...)
	require.NoError(t, res.err)
	var own []model.Prompt
	require.NoError(t, json.Unmarshal([]byte(res.out), &own))
	require.Len(t, own, 1)
	assert.Equal(t, "Autumn haiku", own[0].Title)
	assert.Equal(t, "write a haiku", own[0].Content)
	assert.Equal(t, []string{"seasons"}, own[0].Tags)

	res = run(t, "", append(auth, "stats", "--json")...)
	require.NoError(t, res.err)
	var stats collection.Stats
	require.NoError(t, json.Unmarshal([]byte(res.out), &stats))
	assert.Equal(t, collection.Stats{Total: 1}, stats)

	res = run(t, "", append(auth, "delete", id)...)
	require.NoError(t, res.err)

	res = run(t, "", append(auth, "list")...)
	require.NoError(t, res.err)
	assert.Contains(t, res.out, "No prompts found.")
}

func TestCreate_IncompleteMakesNoCall(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	t.Cleanup(srv.Close)

	res := run(t, "", "--url", srv.URL, "--token", tokenFor(t, "u1"), "create", "--title", "T")

	require.Error(t, res.err)
	assert.Equal(t, editor.MsgIncomplete, res.err.Error())
	assert.Equal(t, 0, calls)
}

func TestList_RequiresToken(t *testing.T) {
	res := run(t, "", "--url", "http://127.0.0.1:1", "list")

	assert.ErrorIs(t, res.err, client.ErrNoToken)
}

func TestLibrary_FiltersLocally(t *testing.T) {
	url := newTestServer(t, "", enhanced)
	auth := []string{"--url", url, "--token", tokenFor(t, "u1")}

	for _, title := range []string{"Blog outline", "Refactor helper"} {
		res := run(t, "", append(auth, "create", "--title", title, "--content", "C", "--public")...)
		require.NoError(t, res.err)
	}

	res := run(t, "", "--url", url, "library", "--search", "blog", "--json")
	require.NoError(t, res.err)

	var library []model.Prompt
	require.NoError(t, json.Unmarshal([]byte(res.out), &library))
	require.Len(t, library, 1)
	assert.Equal(t, "Blog outline", library[0].Title)

	res = run(t, "", "--url", url, "library", "--sort", "oldest")
	assert.EqualError(t, res.err, `unknown sort "oldest"`)
}

func TestEnhance_FromStdin(t *testing.T) {
	url := newTestServer(t, "sk-test", enhanced)

	res := run(t, "write a haiku", "--url", url, "enhance")

	require.NoError(t, res.err)
	assert.Contains(t, res.out, enhanced.Enhanced)
	assert.Contains(t, res.out, "Named the form")
	assert.Contains(t, res.out, "Pick a mood")
	assert.Contains(t, res.errOut, editor.MsgEnhanced)
}

func TestEnhance_ApplySavesPrompt(t *testing.T) {
	ctx := context.Background()
	url := newTestServer(t, "sk-test", enhanced)
	tok := tokenFor(t, "u1")

	c := client.New(url, tok, nil)
	p, err := c.Prompts().Create(ctx, model.PromptDraft{Title: "Haiku", Content: "write a haiku"}, "u1")
	require.NoError(t, err)

	res := run(t, "", "--url", url, "--token", tok, "enhance", "--id", p.ID, "--apply")
	require.NoError(t, res.err)
	assert.Contains(t, res.errOut, editor.MsgApplied)

	got, err := c.Prompts().Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, enhanced.Enhanced, got.Content)
	assert.Equal(t, "Haiku", got.Title)
}

func TestEnhance_FailureIsNotified(t *testing.T) {
	url := newTestServer(t, "", enhanced)

	res := run(t, "", "--url", url, "enhance", "--text", "write a haiku")

	assert.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.errOut, editor.MsgMisconfigured)
	assert.Empty(t, res.out)
}

func TestEnhance_EmptyContent(t *testing.T) {
	res := run(t, "   ", "--url", "http://127.0.0.1:1", "enhance")

	assert.ErrorIs(t, res.err, errReported)
	assert.Contains(t, res.errOut, editor.MsgEmptyContent)
}
