package model

// EnhanceRequest is the body of POST /enhance.
type EnhanceRequest struct {
	Prompt string `json:"prompt"`
}

// EnhancementResult is a rewritten prompt plus commentary. It is never persisted.
type EnhancementResult struct {
	Enhanced     string   `json:"enhanced"`
	Improvements []string `json:"improvements"`
	Suggestions  []string `json:"suggestions"`
}

// IdeasRequest is the body of POST /ideas.
type IdeasRequest struct {
	Topic    string `json:"topic"`
	Category string `json:"category"`
}

// PromptIdea is a single generated starting point for a new prompt.
type PromptIdea struct {
	Title       string `json:"title"`
	Prompt      string `json:"prompt"`
	Description string `json:"description"`
}

// IdeasResponse is the body returned by POST /ideas.
type IdeasResponse struct {
	Prompts []PromptIdea `json:"prompts"`
}
