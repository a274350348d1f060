package application

import (
	"strings"
)

type Intent int

const (
	IntentText Intent = iota
	IntentData
	IntentDone
	IntentCancel
	IntentQuestion
)

func (i Intent) String() string {
	switch i {
	case IntentData:
		return "data"
	case IntentDone:
		return "done"
	case IntentCancel:
		return "cancel"
	case IntentQuestion:
		return "question"
	default:
		return "text"
	}
}

const (
	// MinDataLength is the shortest message treated as record data.
	MinDataLength = 20
	// MinTitleWords is exclusive: a title needs more words than this.
	MinTitleWords = 2
)

type Verdict struct {
	Intent Intent
	Words  int
}

func (v Verdict) TitleLike() bool {
	return v.Intent != IntentCancel && v.Words > MinTitleWords
}

var donePhrases = phraseSet(
	"done", "all done", "i'm done", "im done", "i am done",
	"that's all", "thats all", "that is all", "that's it", "thats it",
	"finish", "finished", "submit", "publish",
	"no", "nope", "no more", "nothing else",
	"create pr", "create the pr", "create pull request", "open pr",
)

var cancelPhrases = phraseSet(
	"cancel", "reset", "start over", "abort", "discard", "never mind", "nevermind",
)

var questionWords = phraseSet(
	"what", "how", "why", "which", "where", "when", "who",
	"can", "could", "should", "would", "is", "are", "do", "does",
)

type intentRule struct {
	intent Intent
	match  func(raw, normalized string) bool
}

// Rules are evaluated in order; the first match wins.
var intentRules = []intentRule{
	{intent: IntentCancel, match: func(_, normalized string) bool { return cancelPhrases[normalized] }},
	{intent: IntentDone, match: func(_, normalized string) bool { return donePhrases[normalized] }},
	{intent: IntentQuestion, match: isQuestion},
	{intent: IntentData, match: isDataLike},
}

func ClassifyIntent(text string) Verdict {
	raw := strings.TrimSpace(text)
	normalized := normalizePhrase(raw)
	verdict := Verdict{Intent: IntentText, Words: len(strings.Fields(raw))}
	for _, rule := range intentRules {
		if rule.match(raw, normalized) {
			verdict.Intent = rule.intent
			break
		}
	}
	return verdict
}

func isQuestion(raw, normalized string) bool {
	if strings.Contains(raw, "\n") {
		return false
	}
	if strings.HasSuffix(raw, "?") {
		return true
	}
	first, _, _ := strings.Cut(normalized, " ")
	return questionWords[first] && !strings.ContainsAny(raw, ",:")
}

func isDataLike(raw, _ string) bool {
	return strings.ContainsAny(raw, ",:\n") && len(raw) > MinDataLength
}

func normalizePhrase(text string) string {
	text = strings.ToLower(strings.Join(strings.Fields(text), " "))
	return strings.TrimRight(text, ".!")
}

func phraseSet(phrases ...string) map[string]bool {
	set := make(map[string]bool, len(phrases))
	for _, phrase := range phrases {
		set[phrase] = true
	}
	return set
}
