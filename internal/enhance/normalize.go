package enhance

import (
	"encoding/json"
	"strings"

	"github.com/promptstudio/promptstudio-go/internal/model"
)

var (
	defaultImprovements = []string{"AI enhanced the prompt structure and clarity"}
	defaultSuggestions  = []string{"Consider adding more specific context", "Test the prompt with different AI models"}
)

// reply is the outcome of parsing a completion. When ok is false the text was
// not a JSON object and only raw is meaningful.
type reply struct {
	raw  string
	ok   bool
	body replyBody
}

// replyBody holds the fields that decoded with the expected type. A nil
// list means the field was missing or unusable.
type replyBody struct {
	Enhanced     string
	Improvements []string
	Suggestions  []string
}

// parseReply decodes each field on its own, so one malformed field does not
// discard the others.
func parseReply(raw string) reply {
	r := reply{raw: raw}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripFence(raw)), &fields); err != nil || fields == nil {
		return r
	}
	r.ok = true

	if v, ok := fields["enhanced"]; ok {
		_ = json.Unmarshal(v, &r.body.Enhanced)
	}
	r.body.Improvements = decodeList(fields["improvements"])
	r.body.Suggestions = decodeList(fields["suggestions"])
	return r
}

// decodeList accepts a list of strings, or a lone string as a one-item list.
// Anything else yields nil.
func decodeList(v json.RawMessage) []string {
	if len(v) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(v, &list); err == nil {
		return list
	}
	var one string
	if err := json.Unmarshal(v, &one); err == nil && strings.TrimSpace(one) != "" {
		return []string{one}
	}
	return nil
}

// normalize turns any reply into a complete result. A field the model left
// out takes its default; an explicitly empty list is kept.
func normalize(r reply) model.EnhancementResult {
	if !r.ok {
		return model.EnhancementResult{
			Enhanced:     r.raw,
			Improvements: cloneStrings(defaultImprovements),
			Suggestions:  cloneStrings(defaultSuggestions),
		}
	}

	out := model.EnhancementResult{
		Enhanced:     r.body.Enhanced,
		Improvements: r.body.Improvements,
		Suggestions:  r.body.Suggestions,
	}
	if strings.TrimSpace(out.Enhanced) == "" {
		out.Enhanced = r.raw
	}
	if out.Improvements == nil {
		out.Improvements = cloneStrings(defaultImprovements)
	}
	if out.Suggestions == nil {
		out.Suggestions = cloneStrings(defaultSuggestions)
	}
	return out
}

// stripFence removes a surrounding ``` or ```json code fence.
func stripFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return s
	}
	t = strings.TrimPrefix(t, "```")
	t = strings.TrimPrefix(t, "json")
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

func cloneStrings(s []string) []string {
	return append([]string(nil), s...)
}
