package session

import "strings"

// shortQueryTokens is the length under which a question-marked query is
// treated as a follow-up fragment.
const shortQueryTokens = 5

// deicticTokens are referential words that point back at the previous turn.
// Matched on whole tokens: "dia" must not fire inside "diabetes".
var deicticTokens = map[string]struct{}{
	"itu": {}, "tersebut": {}, "dia": {}, "beliau": {}, "ia": {},
	"tadi": {}, "sebelumnya": {}, "nya": {},
	"that": {}, "it": {}, "those": {}, "previous": {},
}

// notAnaphoric lists words that end in "nya" without referring to anything.
var notAnaphoric = map[string]struct{}{
	"hanya": {}, "punya": {}, "tanya": {}, "bertanya": {}, "biasanya": {},
}

// RewriteQuery resolves follow-up ellipsis without coreference resolution:
// when the current query is a short question or leans on a referential
// pronoun, the previous raw query is prepended for search purposes. The
// original query text is left untouched for the model itself.
func RewriteQuery(current, previous string) string {
	if previous == "" {
		return current
	}

	tokens := strings.Fields(strings.ToLower(current))
	shortQuestion := len(tokens) <= shortQueryTokens && strings.Contains(current, "?")

	deictic := false
	for _, token := range tokens {
		trimmed := strings.Trim(token, ".,?!;:'\"()")
		if _, ok := deicticTokens[trimmed]; ok {
			deictic = true
			break
		}
		if _, plain := notAnaphoric[trimmed]; plain {
			continue
		}
		if strings.HasSuffix(trimmed, "nya") && len(trimmed) > 3 {
			deictic = true
			break
		}
	}

	if shortQuestion || deictic {
		return previous + " " + current
	}
	return current
}
