package intent

import (
	"strings"

	"github.com/ent0n29/iris/internal/input"
)

// Kind is the routed action chosen for an utterance.
type Kind string

const (
	KindModeSwitch     Kind = "mode_switch"
	KindScheduleCreate Kind = "schedule_create"
	KindScheduleQuery  Kind = "schedule_query"
	KindExit           Kind = "exit"
	KindDialog         Kind = "dialog"
)

// Action carries the classification result. TargetMode is set only for
// mode-switch actions.
type Action struct {
	Kind       Kind
	TargetMode input.Mode
}

type rule struct {
	match func(normalized string) bool
	build func(normalized string) Action
}

// Router classifies utterances into exactly one action. Rules run in a fixed
// priority order and the first match wins; the order is part of the contract.
type Router struct {
	rules []rule
}

var (
	textSwitchPhrases  = []string{"switch to text", "text mode", "use text"}
	voiceSwitchPhrases = []string{"switch to voice", "voice mode", "use voice"}

	// "shedule" is an accepted misspelling for the bare create command.
	scheduleCreateWords = []string{"schedule", "shedule"}

	scheduleQueryKeywords = []string{
		"schedule", "schedules", "tasks", "task", "what do i have", "what's scheduled",
		"show me my schedule", "tell me my schedule", "what are my tasks",
	}

	exitWords = []string{"exit", "quit", "stop", "goodbye"}
)

func NewRouter() *Router {
	return &Router{rules: []rule{
		{
			match: func(s string) bool { return containsAny(s, textSwitchPhrases) || containsAny(s, voiceSwitchPhrases) },
			build: func(s string) Action {
				if containsAny(s, textSwitchPhrases) {
					return Action{Kind: KindModeSwitch, TargetMode: input.ModeText}
				}
				return Action{Kind: KindModeSwitch, TargetMode: input.ModeVoice}
			},
		},
		{
			// Exact bare word only. "show me my schedule" must fall through to
			// the query rule below.
			match: func(s string) bool { return equalsAny(s, scheduleCreateWords) },
			build: func(string) Action { return Action{Kind: KindScheduleCreate} },
		},
		{
			match: func(s string) bool { return containsAny(s, scheduleQueryKeywords) },
			build: func(string) Action { return Action{Kind: KindScheduleQuery} },
		},
		{
			match: func(s string) bool { return equalsAny(s, exitWords) },
			build: func(string) Action { return Action{Kind: KindExit} },
		},
		{
			match: func(string) bool { return true },
			build: func(string) Action { return Action{Kind: KindDialog} },
		},
	}}
}

// Route picks the single action for a raw utterance.
func (r *Router) Route(utterance string) Action {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	for _, rl := range r.rules {
		if rl.match(normalized) {
			return rl.build(normalized)
		}
	}
	// Unreachable: the dialog rule matches everything.
	return Action{Kind: KindDialog}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func equalsAny(s string, words []string) bool {
	for _, w := range words {
		if s == w {
			return true
		}
	}
	return false
}
