package assistant

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ent0n29/iris/internal/alert"
	"github.com/ent0n29/iris/internal/brain"
	"github.com/ent0n29/iris/internal/convo"
	"github.com/ent0n29/iris/internal/input"
	"github.com/ent0n29/iris/internal/intent"
	"github.com/ent0n29/iris/internal/journal"
	"github.com/ent0n29/iris/internal/observability"
	"github.com/ent0n29/iris/internal/schedule"
	"github.com/ent0n29/iris/internal/speech"
)

// Canned replies. These are spoken verbatim; the mode-switch and farewell
// lines are deliberately not appended to the conversation buffer.
const (
	replySwitchedToText  = "Switched to text input mode."
	replySwitchedToVoice = "Switched to voice input mode."
	replySchedulePrompt  = "Scheduling a task..."
	replyScheduleStored  = "Task scheduled successfully."
	replyScheduleFailed  = "Sorry, I could not store that task."
	replyScheduleUnheard = "I'm sorry, I didn't understand that. Please try again."
	replyNoTasks         = "You have no scheduled tasks."
	replyFarewell        = "Goodbye! It was nice talking to you."
)

// InputSource produces one raw utterance per call and reports the mode to use
// on the next iteration (text mode may auto-fall back to voice).
type InputSource interface {
	Acquire(ctx context.Context, mode input.Mode) (text string, next input.Mode, ok bool)
}

// Orchestrator runs the dialog loop: acquire input, route the intent, act,
// speak the reply, wait for playback, repeat. It owns the session mode, the
// conversation buffer and the store handle; the speech worker is the only
// other goroutine, coupled through the queue and its drain barrier.
type Orchestrator struct {
	source    InputSource
	router    *intent.Router
	brain     brain.Adapter
	store     schedule.Store
	speech    *speech.Worker
	buffer    *convo.Buffer
	journal   journal.Journal
	notifier  alert.Notifier
	metrics   *observability.Metrics
	mode      input.Mode
	sessionID string

	speechStopTimeout time.Duration
}

func New(
	source InputSource,
	router *intent.Router,
	brainAdapter brain.Adapter,
	store schedule.Store,
	worker *speech.Worker,
	buffer *convo.Buffer,
	jrnl journal.Journal,
	notifier alert.Notifier,
	metrics *observability.Metrics,
	initialMode input.Mode,
	speechStopTimeout time.Duration,
) *Orchestrator {
	if notifier == nil {
		notifier = alert.NoopNotifier{}
	}
	if speechStopTimeout <= 0 {
		speechStopTimeout = 2 * time.Second
	}
	return &Orchestrator{
		source:            source,
		router:            router,
		brain:             brainAdapter,
		store:             store,
		speech:            worker,
		buffer:            buffer,
		journal:           jrnl,
		notifier:          notifier,
		metrics:           metrics,
		mode:              initialMode,
		sessionID:         uuid.NewString(),
		speechStopTimeout: speechStopTimeout,
	}
}

// Mode returns the current session mode.
func (o *Orchestrator) Mode() input.Mode { return o.mode }

// Run drives the loop until the user exits or ctx is cancelled. The exit path
// speaks a farewell and drains the speech queue before returning.
func (o *Orchestrator) Run(ctx context.Context) error {
	log.Printf("[assistant] session %s started in %s mode", o.sessionID, o.mode)

	for {
		if ctx.Err() != nil {
			return o.stopSpeech()
		}

		text, next, ok := o.source.Acquire(ctx, o.mode)
		o.mode = next
		if !ok {
			continue
		}

		action := o.router.Route(text)
		o.countTurn(action.Kind)

		switch action.Kind {
		case intent.KindModeSwitch:
			o.actModeSwitch(action.TargetMode)
		case intent.KindScheduleCreate:
			o.actScheduleCreate(ctx)
		case intent.KindScheduleQuery:
			o.actScheduleQuery(ctx, text)
		case intent.KindExit:
			o.speakAndWait(replyFarewell)
			log.Printf("[assistant] session %s ended by user", o.sessionID)
			return o.stopSpeech()
		default:
			o.actDialog(ctx, text)
		}
	}
}

func (o *Orchestrator) actModeSwitch(target input.Mode) {
	o.mode = target
	if target == input.ModeText {
		log.Printf("[assistant] switched to text input mode")
		o.speakAndWait(replySwitchedToText)
		return
	}
	log.Printf("[assistant] switched to voice input mode")
	o.speakAndWait(replySwitchedToVoice)
}

func (o *Orchestrator) actScheduleCreate(ctx context.Context) {
	o.speakAndWait(replySchedulePrompt)

	// Exactly one extra acquisition, in the current mode. A skipped line here
	// never switches the session mode.
	taskText, _, ok := o.source.Acquire(ctx, o.mode)
	if !ok || strings.TrimSpace(taskText) == "" {
		o.speakAndWait(replyScheduleUnheard)
		return
	}

	task, err := o.createTask(ctx, taskText)
	if err != nil {
		if !errors.Is(err, schedule.ErrEmptyText) {
			log.Printf("[assistant] store task failed: %v", err)
			if o.metrics != nil {
				o.metrics.StoreErrors.WithLabelValues("create").Inc()
			}
			o.speakAndWait(replyScheduleFailed)
			return
		}
		o.speakAndWait(replyScheduleUnheard)
		return
	}

	if err := o.notifier.TaskStored(ctx, task); err != nil {
		log.Printf("[assistant] alert delivery failed: %v", err)
	}
	o.speakAndWait(replyScheduleStored)
}

func (o *Orchestrator) createTask(ctx context.Context, text string) (schedule.Task, error) {
	id, err := o.store.Create(ctx, text)
	if err != nil {
		return schedule.Task{}, err
	}
	log.Printf("[assistant] task stored (id %d): %s", id, strings.TrimSpace(text))
	return schedule.Task{
		ID:     id,
		Text:   strings.TrimSpace(text),
		Status: schedule.StatusPending,
	}, nil
}

func (o *Orchestrator) actScheduleQuery(ctx context.Context, utterance string) {
	tasks, err := o.store.List(ctx, schedule.StatusPending)
	if err != nil {
		// Degrade to an empty listing rather than failing the turn.
		log.Printf("[assistant] list tasks failed: %v", err)
		if o.metrics != nil {
			o.metrics.StoreErrors.WithLabelValues("list").Inc()
		}
		tasks = nil
	}

	reply := replyNoTasks
	if len(tasks) > 0 {
		var b strings.Builder
		b.WriteString("Here are your scheduled tasks: ")
		for i, t := range tasks {
			fmt.Fprintf(&b, "Task %d: %s. ", i+1, t.Text)
		}
		reply = strings.TrimSpace(b.String())
	}

	// Unlike general dialog this path never reaches the language model, but
	// the exchange still lands in the conversation buffer.
	o.appendTurn(convo.RoleUser, utterance)
	o.appendTurn(convo.RoleModel, reply)
	o.speakAndWait(reply)
}

func (o *Orchestrator) actDialog(ctx context.Context, utterance string) {
	o.appendTurn(convo.RoleUser, utterance)

	start := time.Now()
	reply, err := o.brain.Generate(ctx, o.buffer.Request())
	if o.metrics != nil {
		o.metrics.ObserveBrainLatency(time.Since(start))
	}
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			log.Printf("[assistant] brain call failed: %v", err)
		}
		if o.metrics != nil {
			o.metrics.BrainErrors.Inc()
		}
		reply = fmt.Sprintf("Sorry, I could not reach the language model. You said: %s", utterance)
	}

	o.appendTurn(convo.RoleModel, reply)
	o.speakAndWait(reply)
}

// speakAndWait enqueues one reply and blocks on the drain barrier, so the
// next acquisition never overlaps playback.
func (o *Orchestrator) speakAndWait(text string) {
	if err := o.speech.Enqueue(text); err != nil {
		log.Printf("[assistant] speech enqueue failed: %v", err)
		return
	}
	o.speech.Join()
}

func (o *Orchestrator) appendTurn(role convo.Role, content string) {
	o.buffer.Append(role, content)
	o.saveTurnBestEffort(role, content)
}

func (o *Orchestrator) saveTurnBestEffort(role convo.Role, content string) {
	if o.journal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := o.journal.SaveTurn(ctx, journal.Record{
		SessionID: o.sessionID,
		Role:      string(role),
		Content:   content,
	})
	if err != nil {
		log.Printf("[assistant] journal save failed: %v", err)
	}
}

func (o *Orchestrator) countTurn(kind intent.Kind) {
	if o.metrics != nil {
		o.metrics.TurnsTotal.WithLabelValues(string(kind)).Inc()
	}
}

func (o *Orchestrator) stopSpeech() error {
	if err := o.speech.Stop(o.speechStopTimeout); err != nil {
		log.Printf("[assistant] speech worker stop: %v", err)
	}
	return nil
}
