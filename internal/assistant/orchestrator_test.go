package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ent0n29/iris/internal/brain"
	"github.com/ent0n29/iris/internal/convo"
	"github.com/ent0n29/iris/internal/input"
	"github.com/ent0n29/iris/internal/intent"
	"github.com/ent0n29/iris/internal/journal"
	"github.com/ent0n29/iris/internal/schedule"
	"github.com/ent0n29/iris/internal/speech"
)

// scriptedSource feeds a fixed utterance sequence and records the mode used
// for each acquisition. An empty line means "no input".
type scriptedSource struct {
	lines []string
	modes []input.Mode
}

func (s *scriptedSource) Acquire(_ context.Context, mode input.Mode) (string, input.Mode, bool) {
	s.modes = append(s.modes, mode)
	if len(s.lines) == 0 {
		return "exit", mode, true
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	if line == "" {
		return "", mode, false
	}
	return line, mode, true
}

type failingBrain struct{}

func (failingBrain) Generate(context.Context, []convo.Turn) (string, error) {
	return "", errors.New("model unreachable")
}

type countingBrain struct {
	calls int
	last  []convo.Turn
}

func (b *countingBrain) Generate(_ context.Context, turns []convo.Turn) (string, error) {
	b.calls++
	b.last = turns
	return "a reply", nil
}

func newTestOrchestrator(t *testing.T, source InputSource, adapter brain.Adapter, store schedule.Store, mode input.Mode) (*Orchestrator, *speech.MockSynthesizer, *convo.Buffer) {
	t.Helper()
	synth := speech.NewMockSynthesizer()
	worker := speech.NewWorker(synth, nil)
	worker.Start(context.Background())
	buffer := convo.NewBuffer(0)
	o := New(source, intent.NewRouter(), adapter, store, worker, buffer,
		journal.NewInMemoryJournal(), nil, nil, mode, time.Second)
	return o, synth, buffer
}

func TestRunEndToEndScheduleAndExit(t *testing.T) {
	store := schedule.NewInMemoryStore()
	source := &scriptedSource{lines: []string{"schedule", "call mom", "exit"}}
	o, synth, _ := newTestOrchestrator(t, source, brain.NewMockAdapter(), store, input.ModeText)

	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	tasks, err := store.List(context.Background(), schedule.StatusPending)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(tasks) != 1 || tasks[0].Text != "call mom" {
		t.Fatalf("stored tasks = %+v, want one pending 'call mom'", tasks)
	}

	spoken := synth.Spoken()
	want := []string{replySchedulePrompt, replyScheduleStored, replyFarewell}
	if len(spoken) != len(want) {
		t.Fatalf("spoken = %v, want %v", spoken, want)
	}
	for i := range want {
		if spoken[i] != want[i] {
			t.Fatalf("spoken[%d] = %q, want %q", i, spoken[i], want[i])
		}
	}
}

func TestRunScheduleCreateEmptyFollowUpApologizes(t *testing.T) {
	store := schedule.NewInMemoryStore()
	source := &scriptedSource{lines: []string{"schedule", "", "exit"}}
	o, synth, _ := newTestOrchestrator(t, source, brain.NewMockAdapter(), store, input.ModeText)

	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	tasks, _ := store.List(context.Background(), "")
	if len(tasks) != 0 {
		t.Fatalf("no task should be stored, got %+v", tasks)
	}
	spoken := synth.Spoken()
	if len(spoken) < 2 || spoken[1] != replyScheduleUnheard {
		t.Fatalf("spoken = %v, want apology after empty follow-up", spoken)
	}
}

func TestRunModeSwitchBypassesStoreAndBrain(t *testing.T) {
	store := schedule.NewInMemoryStore()
	adapter := &countingBrain{}
	source := &scriptedSource{lines: []string{"switch to text mode", "exit"}}
	o, synth, buffer := newTestOrchestrator(t, source, adapter, store, input.ModeVoice)

	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if o.Mode() != input.ModeText {
		t.Fatalf("mode = %q, want text after switch", o.Mode())
	}
	if adapter.calls != 0 {
		t.Fatalf("brain calls = %d, want 0", adapter.calls)
	}
	tasks, _ := store.List(context.Background(), "")
	if len(tasks) != 0 {
		t.Fatalf("store should be untouched")
	}
	spoken := synth.Spoken()
	if len(spoken) == 0 || spoken[0] != replySwitchedToText {
		t.Fatalf("spoken = %v, want switch confirmation first", spoken)
	}
	// Confirmations are spoken but never journaled into the buffer.
	if buffer.Len() != 0 {
		t.Fatalf("buffer len = %d, want 0", buffer.Len())
	}
}

func TestRunScheduleQuerySkipsBrainAndJournalsReply(t *testing.T) {
	store := schedule.NewInMemoryStore()
	if _, err := store.Create(context.Background(), "water plants"); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	adapter := &countingBrain{}
	source := &scriptedSource{lines: []string{"show me my schedule", "exit"}}
	o, synth, buffer := newTestOrchestrator(t, source, adapter, store, input.ModeText)

	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if adapter.calls != 0 {
		t.Fatalf("brain calls = %d, want 0 for schedule query", adapter.calls)
	}
	spoken := synth.Spoken()
	if len(spoken) == 0 || !strings.Contains(spoken[0], "Task 1: water plants") {
		t.Fatalf("spoken = %v, want task enumeration", spoken)
	}
	turns := buffer.Turns()
	if len(turns) != 2 {
		t.Fatalf("buffer turns = %d, want user + model", len(turns))
	}
	if turns[0].Role != convo.RoleUser || turns[1].Role != convo.RoleModel {
		t.Fatalf("turn roles = %+v", turns)
	}
	if !strings.Contains(turns[1].Content, "water plants") {
		t.Fatalf("model turn = %q", turns[1].Content)
	}
}

func TestRunDialogFallbackOnBrainFailure(t *testing.T) {
	source := &scriptedSource{lines: []string{"tell me a story", "exit"}}
	o, synth, buffer := newTestOrchestrator(t, source, failingBrain{}, schedule.NewInMemoryStore(), input.ModeText)

	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantReply := "Sorry, I could not reach the language model. You said: tell me a story"
	spoken := synth.Spoken()
	if len(spoken) == 0 || spoken[0] != wantReply {
		t.Fatalf("spoken = %v, want fallback reply", spoken)
	}
	turns := buffer.Turns()
	if len(turns) != 2 || turns[1].Content != wantReply {
		t.Fatalf("fallback reply should still be journaled, got %+v", turns)
	}
}

func TestRunDialogSendsFullConversation(t *testing.T) {
	adapter := &countingBrain{}
	source := &scriptedSource{lines: []string{"hello", "how are you", "exit"}}
	o, _, _ := newTestOrchestrator(t, source, adapter, schedule.NewInMemoryStore(), input.ModeText)

	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if adapter.calls != 2 {
		t.Fatalf("brain calls = %d, want 2", adapter.calls)
	}
	// Second call sees user, model, user.
	if len(adapter.last) != 3 {
		t.Fatalf("last request turns = %d, want 3", len(adapter.last))
	}
	if adapter.last[2].Content != "how are you" {
		t.Fatalf("last turn = %+v", adapter.last[2])
	}
}

func TestRunNoInputLoopsWithoutActing(t *testing.T) {
	adapter := &countingBrain{}
	source := &scriptedSource{lines: []string{"", "", "exit"}}
	o, synth, _ := newTestOrchestrator(t, source, adapter, schedule.NewInMemoryStore(), input.ModeVoice)

	if err := o.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if adapter.calls != 0 {
		t.Fatalf("no-input iterations must not reach the brain")
	}
	if spoken := synth.Spoken(); len(spoken) != 1 || spoken[0] != replyFarewell {
		t.Fatalf("spoken = %v, want only the farewell", spoken)
	}
}

func TestRunContextCancellationStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	source := &scriptedSource{lines: []string{"hello"}}
	o, synth, _ := newTestOrchestrator(t, source, &countingBrain{}, schedule.NewInMemoryStore(), input.ModeText)

	if err := o.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if spoken := synth.Spoken(); len(spoken) != 0 {
		t.Fatalf("cancelled run should not speak, got %v", spoken)
	}
}
