package assistant

import (
	"encoding/json"
	"strings"
)

// Reply is the fixed-shape object the language model is asked to produce.
type Reply struct {
	Answer             string   `json:"answer"`
	NeedsMoreInfo      bool     `json:"needs_more_info"`
	FollowUpQuestion   string   `json:"follow_up_question,omitempty"`
	SuggestedFollowUps []string `json:"suggested_follow_ups,omitempty"`
	Topic              string   `json:"topic,omitempty"`
	IsTopicChanged     bool     `json:"is_topic_changed"`
	Sources            []string `json:"sources,omitempty"`
}

// ParseReply decodes the model output into a Reply. Models wrap JSON in
// code fences often enough that fences are stripped first. A reply that
// still fails to parse degrades to the raw text as the answer with every
// other field zero; this function never returns an error.
func ParseReply(raw string) Reply {
	text := stripCodeFence(strings.TrimSpace(raw))

	var reply Reply
	if err := json.Unmarshal([]byte(text), &reply); err == nil && reply.populated() {
		return reply
	}

	// Some models emit prose around the JSON object. Try the outermost
	// braces before giving up.
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		var reply Reply
		if err := json.Unmarshal([]byte(text[start:end+1]), &reply); err == nil && reply.populated() {
			return reply
		}
	}

	return Reply{Answer: strings.TrimSpace(raw)}
}

// populated reports whether a decoded reply carries contract content. A
// clarification turn is a valid reply with an empty answer, so the
// needs-more-info flag and the follow-up question count too.
func (r Reply) populated() bool {
	return r.Answer != "" || r.NeedsMoreInfo || r.FollowUpQuestion != ""
}

// FilterCitations intersects retrieved sources with the ids the model
// cited. An empty intersection returns the full retrieved set: showing
// all supporting evidence beats an answer with none.
func FilterCitations(retrieved []Source, cited []string) []Source {
	if len(cited) == 0 {
		return retrieved
	}

	citedSet := make(map[string]struct{}, len(cited))
	for _, ref := range cited {
		citedSet[strings.TrimSpace(ref)] = struct{}{}
	}

	var kept []Source
	for _, s := range retrieved {
		if _, ok := citedSet[s.Ref()]; ok {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return retrieved
	}
	return kept
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:] // drop the language tag line
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
